package session

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"time"

	"vscch/internal/host"
	"vscch/internal/synth"
	"vscch/internal/system"
)

// Extensions that clash with the generated tasks and are removed on request.
var ConflictingExtensions = []string{
	"formulahendry.code-runner",
	"austin.code-gnu-global",
	"danielpinto8zz6.c-cpp-compile-run",
	"mitaki28.vscode-clang",
	"jaycetyle.vscode-gnu-global",
	"franneck94.c-cpp-runner",
	"ajshort.include-autocomplete",
	"xaver.clang-format",
	"jbenden.c-cpp-flylint",
}

const (
	cppToolsExtension = "ms-vscode.cpptools"
	l10nExtension     = "ms-ceintl.vscode-language-pack-zh-hans"
	extensionTimeout  = 2 * time.Minute
)

// HostActions performs the post-configuration steps on the local machine.
// Failures of individual steps are logged and do not stop later steps.
type HostActions struct {
	// Run executes a command to completion. Nil means os/exec.
	Run func(ctx context.Context, name string, args ...string) error
	// Start launches a program without waiting. Nil means system.StartDetached.
	Start func(name string, args ...string) error
	// AddToPath persists a PATH entry. Nil means system.AddToUserPath.
	AddToPath func(dir string) error
}

func (h HostActions) run(ctx context.Context, name string, args ...string) error {
	if h.Run != nil {
		return h.Run(ctx, name, args...)
	}
	cctx, cancel := context.WithTimeout(ctx, extensionTimeout)
	defer cancel()
	return exec.CommandContext(cctx, name, args...).Run()
}

func (h HostActions) Apply(ctx context.Context, a synth.Artifact, res synth.Result) error {
	o := a.Options()
	log := system.Logger

	if !o.NoSetEnv && o.MingwPath != nil {
		add := h.AddToPath
		if add == nil {
			add = system.AddToUserPath
		}
		if err := add(*o.MingwPath); err != nil {
			if errors.Is(err, system.ErrUnsupportedOS) {
				log.Info("add the compiler to PATH manually", "dir", *o.MingwPath)
			} else {
				log.Warn("could not update PATH", "err", err)
			}
		} else {
			log.Info("compiler added to user PATH", "dir", *o.MingwPath)
		}
	}

	cli := filepath.Join(filepath.Dir(o.VscodePath), host.BinDir, host.EditorCLI)
	if o.ShouldUninstallExtensions {
		for _, ext := range ConflictingExtensions {
			if err := h.run(ctx, cli, "--uninstall-extension", ext); err != nil {
				log.Debug("extension not uninstalled", "ext", ext, "err", err)
			}
		}
	}
	if o.OfflineInstallCCpp {
		log.Info("no bundled extension package, installing online", "ext", cppToolsExtension)
	}
	want := []string{cppToolsExtension}
	if a.InstallL10n() {
		want = append(want, l10nExtension)
	}
	for _, ext := range want {
		if err := h.run(ctx, cli, "--install-extension", ext); err != nil {
			log.Warn("extension install failed", "ext", ext, "err", err)
		} else {
			log.Info("extension installed", "ext", ext)
		}
	}

	if o.GenerateDesktopShortcut {
		log.Info("desktop shortcut is not supported, skipped")
	}
	if !o.NoSendAnalytics {
		log.Debug("analytics reporting is not implemented, skipped")
	}

	if o.OpenVscodeAfterConfig {
		start := h.Start
		if start == nil {
			start = system.StartDetached
		}
		args := []string{o.WorkspacePath}
		if res.TestFile != "" {
			args = append(args, "--goto", res.TestFile)
		}
		if err := start(o.VscodePath, args...); err != nil {
			log.Warn("could not open the editor", "err", err)
		}
	}
	return nil
}
