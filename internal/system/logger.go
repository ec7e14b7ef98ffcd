package system

import (
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger. It prints to stderr with
// timestamps so the console window doubles as a progress log.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "vscch",
})

// SetLogLevel applies a textual level ("debug", "info", ...). Verbose wins
// over the textual level. Unknown levels leave the logger at info.
func SetLogLevel(level string, verbose bool) {
	if verbose {
		Logger.SetLevel(clog.DebugLevel)
		return
	}
	if strings.TrimSpace(level) == "" {
		Logger.SetLevel(clog.InfoLevel)
		return
	}
	lvl, err := clog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		Logger.Warn("unknown log level, using info", "level", level)
		lvl = clog.InfoLevel
	}
	Logger.SetLevel(lvl)
}
