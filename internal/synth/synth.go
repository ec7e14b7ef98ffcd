// Package synth turns a profile and the detected environment into the
// versioned options document and the workspace files built from it.
package synth

import (
	"errors"
	"path/filepath"
	"strings"

	"vscch/internal/compiler"
	"vscch/internal/host"
	"vscch/internal/profile"
)

var (
	ErrNoWorkspace = errors.New("workspace path is empty")
	ErrNoEditor    = errors.New("editor installation is not resolved")
)

// Target is the part of the environment a synthesis depends on.
type Target struct {
	// EditorDir is the editor installation directory.
	EditorDir string
	// Compiler is nil when the user has not chosen a compiler.
	Compiler *compiler.Info
	// GBK enables the execution charset flag.
	GBK bool
}

// Synthesize builds the options document for schema. It does no I/O.
func Synthesize(p profile.Profile, t Target, schema Schema) (Artifact, error) {
	if strings.TrimSpace(p.WorkspacePath) == "" {
		return nil, ErrNoWorkspace
	}
	if strings.TrimSpace(t.EditorDir) == "" {
		return nil, ErrNoEditor
	}
	var mingw *string
	if t.Compiler != nil && t.Compiler.Path != "" {
		bin := filepath.Join(t.Compiler.Path, host.BinDir)
		mingw = &bin
	}
	std := EffectiveStandard(p, t.Compiler)
	c := Common{
		VscodePath:                filepath.Join(t.EditorDir, host.EditorLauncher),
		MingwPath:                 mingw,
		WorkspacePath:             p.WorkspacePath,
		Language:                  p.Language,
		LanguageStandard:          std,
		CompileArgs:               CompileArgs(p, std, t.GBK),
		NoSetEnv:                  !p.SetEnv,
		UseExternalTerminal:       p.DbgStyle == profile.DebugExternal,
		ApplyNonAsciiCheck:        p.NonASCIICheck,
		OfflineInstallCCpp:        p.OfflineExt,
		ShouldUninstallExtensions: p.UninstExt,
		GenerateTestFile:          p.GenTest,
		GenerateDesktopShortcut:   p.GenShortcut,
		OpenVscodeAfterConfig:     p.OpenVscode,
		NoSendAnalytics:           !p.SendAnalytics,
	}
	switch schema {
	case SchemaV300:
		return OptionsV300{Common: c, ShouldInstallL11n: p.InstL10n}, nil
	default:
		return OptionsV310{Common: c, ShouldInstallL10n: p.InstL10n}, nil
	}
}

// EffectiveStandard is the explicit standard of the profile, or the newest
// one the compiler supports, with the GNU dialect applied when requested.
func EffectiveStandard(p profile.Profile, c *compiler.Info) string {
	std := p.Standard()
	if std == "" {
		ver := ""
		if c != nil {
			ver = c.VersionNumber
		}
		sel := compiler.SelectStandards(ver)
		std = sel.Cpp
		if p.Language == profile.C {
			std = sel.C
		}
	}
	if !p.GnuEx {
		return std
	}
	if p.Language == profile.C {
		return strings.Replace(std, "c", "gnu", 1)
	}
	return strings.Replace(std, "c++", "gnu++", 1)
}

// CompileArgs assembles compiler flags in their fixed order. Extra options
// are appended verbatim.
func CompileArgs(p profile.Profile, std string, gbk bool) []string {
	args := []string{"-std=" + std}
	if p.Optimization != "" {
		args = append(args, p.Optimization)
	}
	if p.Wall {
		args = append(args, "-Wall")
	}
	if p.Wextra {
		args = append(args, "-Wextra")
	}
	if p.Werror {
		args = append(args, "-Werror")
	}
	if gbk && p.FexecCharsetGbk {
		args = append(args, "-fexec-charset=GBK")
	}
	if p.StaticStd {
		args = append(args, "-static-libgcc")
		if p.Language == profile.Cpp {
			args = append(args, "-static-libstdc++")
		}
	}
	return append(args, p.CustomOptions...)
}
