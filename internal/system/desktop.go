package system

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// OpenBrowser tries to open a URL in the system browser.
func OpenBrowser(url string) error {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}
	return StartDetached(cmd, args...)
}

// StartDetached launches a program without waiting for it.
func StartDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

const folderScript = `Add-Type -AssemblyName System.Windows.Forms
$d = New-Object System.Windows.Forms.FolderBrowserDialog
$d.SelectedPath = $env:VSCCH_INIT_DIR
$d.ShowNewFolderButton = $true
if ($d.ShowDialog() -eq [System.Windows.Forms.DialogResult]::OK) { Write-Output $d.SelectedPath }`

// DialogPicker shows the native folder chooser of the host.
type DialogPicker struct{}

// PickFolder blocks until the user closes the dialog. An empty result means
// the dialog was cancelled.
func (DialogPicker) PickFolder(ctx context.Context, initDir string) (string, error) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "powershell", "-Sta", "-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", folderScript)
		cmd.Env = append(os.Environ(), "VSCCH_INIT_DIR="+initDir)
	case "darwin":
		cmd = exec.CommandContext(ctx, "osascript", "-e", `POSIX path of (choose folder)`)
	default:
		args := []string{"--file-selection", "--directory"}
		if initDir != "" {
			args = append(args, "--filename="+strings.TrimRight(initDir, "/")+"/")
		}
		cmd = exec.CommandContext(ctx, "zenity", args...)
	}
	out, err := cmd.Output()
	if err != nil {
		// zenity and osascript exit non-zero on cancel.
		if _, ok := err.(*exec.ExitError); ok {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
