//go:build !windows

package probe

import "context"

// Hosts without an installed-package registry have nothing to enumerate.
func registryCompilerSource() CandidateSource {
	return SourceFunc(func(context.Context) []string { return nil })
}

func registryEditorSource() CandidateSource {
	return SourceFunc(func(context.Context) []string { return nil })
}

func compilerRoots() []string {
	return []string{"/usr", "/usr/local", "/opt/homebrew", "/opt/local"}
}

func editorRoots() []string {
	return []string{
		"/usr/share/code",
		"/usr/lib/code",
		"/opt/visual-studio-code",
		"/snap/code/current/usr/share/code",
	}
}
