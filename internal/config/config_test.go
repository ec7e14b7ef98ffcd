package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"vscch/internal/testutil"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	testutil.WithWorkdir(t, dir)
	for _, k := range []string{"VSCCH_ADDR", "VSCCH_GUI_ADDRESS", "VSCCH_PROFILE", "VSCCH_PROBE_TIMEOUT", "VSCCH_LOG_LEVEL"} {
		t.Cleanup(testutil.WithEnv(t, k, ""))
	}
	t.Cleanup(testutil.WithEnv(t, "XDG_CONFIG_HOME", filepath.Join(dir, "xdg")))
	t.Cleanup(testutil.WithEnv(t, "HOME", dir))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Addr != DefaultAddr || s.GUIAddress != DefaultGUIAddress || s.ProbeTimeout != DefaultProbeTimeout {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	wd, _ := os.Getwd()
	if s.ProfilePath != filepath.Join(wd, DefaultProfileName) {
		t.Fatalf("profile path %q", s.ProfilePath)
	}
}

func TestLoadDotEnvAndOverrides(t *testing.T) {
	isolate(t)
	env := "VSCCH_GUI_ADDRESS=http://localhost:5173/\nVSCCH_PROBE_TIMEOUT=750ms\nVSCCH_PROFILE=cfg/p.json\n"
	if err := os.WriteFile(".env", []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}
	// Process variables win over the file.
	t.Cleanup(testutil.WithEnv(t, "VSCCH_PROBE_TIMEOUT", "2s"))

	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.GUIAddress != "http://localhost:5173/" {
		t.Fatalf("gui address %q", s.GUIAddress)
	}
	if s.ProbeTimeout != 2*time.Second {
		t.Fatalf("timeout %s", s.ProbeTimeout)
	}
	if filepath.Base(s.ProfilePath) != "p.json" || !filepath.IsAbs(s.ProfilePath) {
		t.Fatalf("profile path %q", s.ProfilePath)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	isolate(t)
	t.Cleanup(testutil.WithEnv(t, "VSCCH_PROBE_TIMEOUT", "soon"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}
