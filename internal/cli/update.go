package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	latest "github.com/tcnksm/go-latest"

	appver "vscch/internal/version"
)

const (
	releaseOwner = "Guyutongxue"
	releaseRepo  = "VSCodeConfigHelper3"
)

func init() {
	rootCmd.AddCommand(checkUpdateCmd)
}

var checkUpdateCmd = &cobra.Command{
	Use:   "check-update",
	Short: "Check GitHub for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := &latest.GithubTag{Owner: releaseOwner, Repository: releaseRepo}
		res, err := latest.Check(tag, appver.AppVersion)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		out := cmd.OutOrStdout()
		if res.Outdated {
			fmt.Fprintf(out, "A new version is available: %s (you have %s)\n", res.Current, appver.AppVersion)
			fmt.Fprintf(out, "Download it from https://github.com/%s/%s/releases\n", releaseOwner, releaseRepo)
			return nil
		}
		fmt.Fprintf(out, "You are using the latest version: %s\n", appver.AppVersion)
		return nil
	},
}
