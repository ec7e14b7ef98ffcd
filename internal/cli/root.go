package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vscch/internal/config"
	"vscch/internal/system"
)

// settings is filled before any command runs.
var settings config.Settings

var rootCmd = &cobra.Command{
	Use:   "vscch",
	Short: "vscch – C/C++ workspace configurator for VS Code",
	Long: "vscch detects VS Code and GCC installations and writes a ready-to-use C/C++ " +
		"workspace. Without a subcommand it opens the graphical configurator in the browser.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load()
		if err != nil {
			return err
		}
		if p, _ := cmd.Flags().GetString("profile"); p != "" {
			if s.ProfilePath, err = config.ProfilePath(p); err != nil {
				return err
			}
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		system.SetLogLevel(s.LogLevel, verbose)
		settings = s
		return nil
	},
	RunE:          runGUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "show debug output")
	rootCmd.PersistentFlags().String("profile", "", "profile file (default ./profile.json)")
	rootCmd.Flags().String("addr", "", "address of the local request channel (default 127.0.0.1:0)")
	rootCmd.Flags().String("gui-address", "", "page opened in the browser")
	rootCmd.Flags().Bool("no-open-browser", false, "print the configurator URL instead of opening it")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
