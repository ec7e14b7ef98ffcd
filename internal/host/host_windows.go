//go:build windows

package host

const (
	Windows = true

	ExeSuffix = ".exe"
	// ProgramSuffix is appended to programs built from a single source file.
	ProgramSuffix = ".exe"

	EditorLauncher = "Code.exe"
	EditorCLI      = "code.cmd"
)
