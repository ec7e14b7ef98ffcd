package probe

import (
	"os"
	"path/filepath"
	"strings"

	"vscch/internal/host"
)

// IsBinDir reports whether the last element of path is the bin folder.
func IsBinDir(path string) bool {
	return strings.EqualFold(filepath.Base(filepath.Clean(path)), host.BinDir)
}

// InstallDir normalizes path to an installation directory: cleaned and
// without a trailing bin segment.
func InstallDir(path string) string {
	p := filepath.Clean(strings.TrimSpace(path))
	if IsBinDir(p) {
		p = filepath.Dir(p)
	}
	return p
}

// SamePath compares two installation paths the way the host filesystem does.
func SamePath(a, b string) bool {
	return pathKey(a) == pathKey(b)
}

func pathKey(p string) string {
	p = InstallDir(p)
	if host.Windows {
		return strings.ToLower(p)
	}
	return p
}

func isFile(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

func isDir(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}
