//go:build windows

package system

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const gbkCodePage = 936

// CheckOSVersion refuses Windows releases older than 10.
func CheckOSVersion() error {
	v := windows.RtlGetVersion()
	if v.MajorVersion < 10 {
		return fmt.Errorf("%w: Windows %d.%d, Windows 10 or later is required",
			ErrUnsupportedOS, v.MajorVersion, v.MinorVersion)
	}
	return nil
}

// GBKCodePage reports whether the active ANSI code page is GBK.
func GBKCodePage() bool {
	return windows.GetACP() == gbkCodePage
}

// AddToUserPath prepends dir to the per-user PATH stored in the registry.
// It is a no-op when dir is already listed.
func AddToUserPath(dir string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open user environment: %w", err)
	}
	defer k.Close()
	cur, _, err := k.GetStringValue("Path")
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("read user PATH: %w", err)
	}
	for _, entry := range strings.Split(cur, ";") {
		if strings.EqualFold(strings.TrimRight(strings.TrimSpace(entry), `\`), strings.TrimRight(dir, `\`)) {
			return nil
		}
	}
	next := dir
	if strings.TrimSpace(cur) != "" {
		next = dir + ";" + cur
	}
	if err := k.SetExpandStringValue("Path", next); err != nil {
		return fmt.Errorf("write user PATH: %w", err)
	}
	return nil
}
