//go:build windows

package probe

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const uninstallKey = `Software\Microsoft\Windows\CurrentVersion\Uninstall`

// Registry ids of the user and system installers of VS Code.
var editorUninstallIDs = []string{
	`{771FD6B0-FA20-440A-A002-3B3BAC16DC50}_is1`,
	`{EA457B21-F73E-494C-ACAB-524FDE069978}_is1`,
	`{D628A17A-9713-46BF-8D57-E671B46A741E}_is1`,
}

type uninstallRoot struct {
	root registry.Key
	path string
}

var uninstallRoots = []uninstallRoot{
	{registry.CURRENT_USER, uninstallKey},
	{registry.LOCAL_MACHINE, uninstallKey},
	{registry.LOCAL_MACHINE, `Software\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`},
}

// MSYS2-style distributions keep their toolchains one level below the
// install location.
var toolchainSubdirs = []string{"mingw64", "ucrt64", "clang64", "mingw32"}

func registryCompilerSource() CandidateSource {
	return SourceFunc(func(context.Context) []string {
		var out []string
		for _, r := range uninstallRoots {
			k, err := registry.OpenKey(r.root, r.path, registry.ENUMERATE_SUB_KEYS)
			if err != nil {
				continue
			}
			names, _ := k.ReadSubKeyNames(-1)
			k.Close()
			for _, name := range names {
				loc := readInstallLocation(r.root, r.path+`\`+name)
				if loc == "" {
					continue
				}
				out = append(out, loc)
				for _, sub := range toolchainSubdirs {
					out = append(out, filepath.Join(loc, sub))
				}
			}
		}
		return out
	})
}

func registryEditorSource() CandidateSource {
	return SourceFunc(func(context.Context) []string {
		var out []string
		for _, r := range uninstallRoots {
			for _, id := range editorUninstallIDs {
				if loc := readInstallLocation(r.root, r.path+`\`+id); loc != "" {
					out = append(out, loc)
				}
			}
		}
		return out
	})
}

func readInstallLocation(root registry.Key, path string) string {
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()
	v, _, err := k.GetStringValue("InstallLocation")
	if err != nil {
		return ""
	}
	return strings.Trim(strings.TrimSpace(v), `"`)
}

func compilerRoots() []string {
	drive := os.Getenv("SystemDrive")
	if drive == "" {
		drive = "C:"
	}
	drive += `\`
	return []string{
		filepath.Join(drive, "mingw64"),
		filepath.Join(drive, "mingw32"),
		filepath.Join(drive, "MinGW"),
		filepath.Join(drive, "TDM-GCC-64"),
		filepath.Join(drive, "TDM-GCC-32"),
		filepath.Join(drive, "msys64", "ucrt64"),
		filepath.Join(drive, "msys64", "mingw64"),
		filepath.Join(drive, "msys64", "mingw32"),
		filepath.Join(drive, "Program Files", "mingw-w64"),
	}
}

func editorRoots() []string {
	var out []string
	if la := os.Getenv("LOCALAPPDATA"); la != "" {
		out = append(out, filepath.Join(la, "Programs", "Microsoft VS Code"))
	}
	for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
		if pf := os.Getenv(env); pf != "" {
			out = append(out, filepath.Join(pf, "Microsoft VS Code"))
		}
	}
	return out
}
