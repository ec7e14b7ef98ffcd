package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// WithEnv sets env var to val for the duration of the test scope.
// Returns a cleanup func to restore previous value.
func WithEnv(t *testing.T, key, val string) func() {
	t.Helper()
	old, had := os.LookupEnv(key)
	if val == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, val)
	}
	return func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	}
}

// WithWorkdir changes the working directory until the test ends.
func WithWorkdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// RequireShell skips tests that drive fake executables written as sh scripts.
func RequireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake executables are shell scripts")
	}
}

// WriteScript writes an executable sh script at path, creating parents.
func WriteScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// FakeCompiler creates <root>/bin/g++ printing banner and returns root.
// The script only uses shell builtins so it runs with any PATH.
func FakeCompiler(t *testing.T, root, banner string) string {
	t.Helper()
	quoted := "'" + strings.ReplaceAll(banner, "'", `'\''`) + "'"
	WriteScript(t, filepath.Join(root, "bin", "g++"), "printf '%s\\n' "+quoted)
	return root
}

// FakeEditor creates an installation directory holding an editor launcher.
func FakeEditor(t *testing.T, root, launcher string) string {
	t.Helper()
	WriteScript(t, filepath.Join(root, launcher), "exit 0")
	return root
}
