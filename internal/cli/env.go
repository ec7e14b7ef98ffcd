package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"vscch/internal/compiler"
	"vscch/internal/host"
	"vscch/internal/session"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().Bool("json", false, "print the environment report as JSON")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show detected VS Code and GCC installations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env := newSession(cmd.Context()).Environment()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			b, err := json.MarshalIndent(env, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			return err
		}
		out, err := r.Render(envMarkdown(env))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func envMarkdown(env session.Environment) string {
	var b strings.Builder
	b.WriteString("# Environment\n\n")
	if env.Editor.Resolved {
		fmt.Fprintf(&b, "- **VS Code**: `%s`\n", env.Editor.Path)
	} else {
		b.WriteString("- **VS Code**: not found\n")
	}
	fmt.Fprintf(&b, "- **Options schema**: %s\n", env.Version)
	fmt.Fprintf(&b, "- **GBK console**: %t\n\n", env.GBK)
	if len(env.Compilers) == 0 {
		b.WriteString("No GCC installation found.\n")
		return b.String()
	}
	b.WriteString("| Path | Version | Package | Arch | C++ | C |\n|---|---|---|---|---|---|\n")
	for _, c := range env.Compilers {
		arch := "64-bit"
		if c.Not64Bit {
			arch = "32-bit"
		}
		std := compiler.SelectStandards(c.VersionNumber)
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s | %s |\n",
			filepath.Join(c.Path, host.BinDir), c.VersionNumber,
			strings.ReplaceAll(c.PackageString, "|", "\\|"), arch, std.Cpp, std.C)
	}
	return b.String()
}
