//go:build !windows

package host

const (
	Windows = false

	ExeSuffix = ""
	// ProgramSuffix is appended to programs built from a single source file.
	ProgramSuffix = ".out"

	EditorLauncher = "code"
	EditorCLI      = "code"
)
