//go:build !windows

package system

import "fmt"

// CheckOSVersion accepts every non-Windows host.
func CheckOSVersion() error { return nil }

// GBKCodePage is a Windows concept; other hosts print UTF-8.
func GBKCodePage() bool { return false }

// AddToUserPath is only supported where a per-user PATH can be persisted.
func AddToUserPath(dir string) error {
	return fmt.Errorf("%w: persisting PATH entry %s", ErrUnsupportedOS, dir)
}
