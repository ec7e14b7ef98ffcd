package session

import (
	"encoding/json"
	"path/filepath"

	"vscch/internal/compiler"
	"vscch/internal/host"
	"vscch/internal/probe"
)

// Environment is what discovery found at startup. Compilers may grow by
// one entry when the user finishes with a path that was verified ad hoc.
type Environment struct {
	Editor    probe.Editor
	Compilers []compiler.Info
	// Version is the release of this tool; callers echo it back as the
	// schema version at finish.
	Version string
	GBK     bool
}

type environmentJSON struct {
	VscodePath   *string         `json:"VscodePath"`
	VscodeStatus string          `json:"VscodeStatus"`
	Compilers    []compiler.Info `json:"Compilers"`
	Version      string          `json:"Version"`
	Gbk          bool            `json:"Gbk"`
}

// MarshalJSON reports the editor as its launcher path, or null when
// discovery found nothing.
func (e Environment) MarshalJSON() ([]byte, error) {
	out := environmentJSON{
		VscodeStatus: e.Editor.Status(),
		Compilers:    e.Compilers,
		Version:      e.Version,
		Gbk:          e.GBK,
	}
	if out.Compilers == nil {
		out.Compilers = []compiler.Info{}
	}
	if e.Editor.Resolved {
		p := filepath.Join(e.Editor.Path, host.EditorLauncher)
		out.VscodePath = &p
	}
	return json.Marshal(out)
}

// FindCompiler returns the discovered compiler installed at path.
func (e Environment) FindCompiler(path string) (compiler.Info, bool) {
	for _, c := range e.Compilers {
		if probe.SamePath(c.Path, path) {
			return c, true
		}
	}
	return compiler.Info{}, false
}
