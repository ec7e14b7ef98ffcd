package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vscch/internal/probe"
	"vscch/internal/profile"
	"vscch/internal/router"
	"vscch/internal/session"
	"vscch/internal/system"
	"vscch/internal/webui/server"
)

// newActions builds the post-configuration steps. Tests replace it.
var newActions = func() session.Actions { return session.HostActions{} }

func newSession(ctx context.Context) *session.Session {
	return session.New(ctx, session.Options{
		Prober:  probe.NewProber(settings.ProbeTimeout),
		Store:   profile.NewStore(settings.ProfilePath),
		Picker:  system.DialogPicker{},
		Actions: newActions(),
		GBK:     system.GBKCodePage(),
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	if err := system.CheckOSVersion(); err != nil {
		return err
	}
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = settings.Addr
	}
	gui, _ := cmd.Flags().GetString("gui-address")
	if gui == "" {
		gui = settings.GUIAddress
	}
	noOpen, _ := cmd.Flags().GetBool("no-open-browser")

	// Handle Ctrl+C
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sess := newSession(ctx)
	rt := router.New()
	sess.Register(rt)
	srv := &server.Server{Addr: addr, Router: rt}
	bound, err := srv.Listen()
	if err != nil {
		return err
	}
	url, err := server.FrontEndURL(gui, bound.Port)
	if err != nil {
		return err
	}
	system.Logger.Info("configurator ready", "url", url)
	if !noOpen {
		if err := server.OpenBrowser(url); err != nil {
			system.Logger.Warn("failed to open browser", "err", err)
		}
	}
	if err := srv.Start(ctx); err != nil {
		return err
	}

	switch sess.State() {
	case session.Synthesized:
		return sess.RunPostActions(ctx)
	default:
		system.Logger.Info("configuration not completed, nothing written")
		return nil
	}
}
