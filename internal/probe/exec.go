package probe

import (
	"context"
	"os"
	"os/exec"
	"time"
)

// runCmd executes a command and returns its standard output. The process is
// killed when ctx expires; WaitDelay bounds the wait for pipes held open by
// grandchildren so a hung candidate cannot stall the caller.
func runCmd(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	// Keep banners in English and free of color codes.
	cmd.Env = append(os.Environ(), "LC_ALL=C", "NO_COLOR=1")
	cmd.WaitDelay = 500 * time.Millisecond
	out, err := cmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, ctx.Err()
	}
	return out, err
}
