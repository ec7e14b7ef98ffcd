package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultGUIAddress hosts the configuration front end.
const DefaultGUIAddress = "https://v3.vscch.tk/"

// DefaultAddr binds the request channel to loopback on a free port.
const DefaultAddr = "127.0.0.1:0"

// DefaultProbeTimeout bounds each compiler invocation during discovery.
const DefaultProbeTimeout = 3 * time.Second

// Settings are the process-wide knobs. Flags override them after Load.
type Settings struct {
	Addr         string
	GUIAddress   string
	ProfilePath  string
	ProbeTimeout time.Duration
	LogLevel     string
}

// Load reads ./.env and the user env file (missing files are fine), then
// VSCCH_* variables. Variables already set in the process win over files.
func Load() (Settings, error) {
	_ = godotenv.Load()
	if f, err := EnvFile(); err == nil {
		_ = godotenv.Load(f)
	}

	s := Settings{
		Addr:       firstNonEmpty(strings.TrimSpace(os.Getenv("VSCCH_ADDR")), DefaultAddr),
		GUIAddress: firstNonEmpty(strings.TrimSpace(os.Getenv("VSCCH_GUI_ADDRESS")), DefaultGUIAddress),
		LogLevel:   firstNonEmpty(strings.TrimSpace(os.Getenv("VSCCH_LOG_LEVEL")), "info"),
	}

	timeout := DefaultProbeTimeout
	if raw := strings.TrimSpace(os.Getenv("VSCCH_PROBE_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Settings{}, fmt.Errorf("VSCCH_PROBE_TIMEOUT: invalid duration %q", raw)
		}
		timeout = d
	}
	s.ProbeTimeout = timeout

	p, err := ProfilePath(os.Getenv("VSCCH_PROFILE"))
	if err != nil {
		return Settings{}, fmt.Errorf("resolve profile path: %w", err)
	}
	s.ProfilePath = p
	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
