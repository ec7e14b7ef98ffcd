package probe

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"vscch/internal/host"
)

// CandidateSource enumerates directories that may hold an installation.
// Sources only list paths; the prober decides which ones are usable.
type CandidateSource interface {
	Candidates(ctx context.Context) []string
}

// SourceFunc adapts a function to CandidateSource.
type SourceFunc func(ctx context.Context) []string

func (f SourceFunc) Candidates(ctx context.Context) []string { return f(ctx) }

// StaticSource yields a fixed list of directories.
func StaticSource(dirs ...string) CandidateSource {
	return SourceFunc(func(context.Context) []string {
		return append([]string(nil), dirs...)
	})
}

// PathSource yields the parent of every bin directory on the search path.
func PathSource() CandidateSource {
	return SourceFunc(func(context.Context) []string {
		var out []string
		for _, entry := range filepath.SplitList(os.Getenv("PATH")) {
			entry = strings.TrimSpace(entry)
			if entry == "" || !IsBinDir(entry) {
				continue
			}
			out = append(out, filepath.Dir(filepath.Clean(entry)))
		}
		return out
	})
}

// LookPathSource resolves name on the search path, following symlinks, and
// yields the directory holding the real executable.
func LookPathSource(name string) CandidateSource {
	return SourceFunc(func(context.Context) []string {
		p, err := exec.LookPath(name)
		if err != nil {
			return nil
		}
		if real, err := filepath.EvalSymlinks(p); err == nil {
			p = real
		}
		return []string{filepath.Dir(p)}
	})
}

// DefaultCompilerSources lists the host sources in discovery order.
func DefaultCompilerSources() []CandidateSource {
	return []CandidateSource{
		registryCompilerSource(),
		PathSource(),
		StaticSource(compilerRoots()...),
	}
}

// DefaultEditorSources lists where the editor is looked for, in order.
func DefaultEditorSources() []CandidateSource {
	return []CandidateSource{
		registryEditorSource(),
		StaticSource(editorRoots()...),
		LookPathSource(strings.TrimSuffix(host.EditorCLI, ".cmd")),
	}
}
