package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultProfileName is the profile file kept in the working directory.
const DefaultProfileName = "profile.json"

// Dir returns the vscch config directory under the user config base.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "vscch"), nil
}

// EnvFile is the user-wide dotenv file read after ./.env.
func EnvFile() (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "vscch.env"), nil
}

// ProfilePath resolves the profile location. An empty override means
// profile.json in the working directory. Relative paths are made absolute
// so later chdirs do not move the file.
func ProfilePath(override string) (string, error) {
	p := strings.TrimSpace(override)
	if p == "" {
		p = DefaultProfileName
	}
	return filepath.Abs(p)
}
