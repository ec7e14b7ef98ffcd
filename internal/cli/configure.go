package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vscch/internal/compiler"
	"vscch/internal/profile"
	"vscch/internal/session"
	"vscch/internal/system"
)

// ask is replaced in tests.
var ask prompter = huhPrompter{}

func init() {
	rootCmd.AddCommand(configureCmd)
	f := configureCmd.Flags()
	f.StringP("workspace-path", "w", "", "workspace folder to configure (required)")
	f.StringP("compiler-path", "c", "", "GCC installation or its bin folder (default: detected)")
	f.String("vscode-path", "", "VS Code installation folder (default: detected)")
	f.String("language", "c++", "target language: c++ or c")
	f.String("language-standard", "", "language standard (default: newest the compiler supports)")
	f.StringArrayP("compile-arg", "a", nil, "extra compiler argument, repeatable")
	f.BoolP("external-terminal", "e", false, "run and debug in an external terminal")
	f.Bool("install-chinese", false, "install the Chinese language pack")
	f.Bool("offline-cpptools", false, "install the C/C++ extension from a bundled package")
	f.Bool("uninstall-extensions", false, "uninstall extensions that conflict with the generated tasks")
	f.Bool("apply-nonascii-check", false, "check source paths for non-ASCII characters before building")
	f.Bool("no-set-env", false, "do not add the compiler to the user PATH")
	f.Bool("generate-shortcut", false, "create a desktop shortcut to the workspace")
	f.BoolP("open-vscode", "o", false, "open VS Code when done")
	f.Bool("no-send-analytics", false, "do not send usage statistics")
	f.Bool("generate-test", false, "always write the hello-world test file")
	f.Bool("no-generate-test", false, "never write the hello-world test file")
	f.BoolP("newbie-mode", "n", false, "recommended settings for beginners, implies --assume-yes")
	f.BoolP("assume-yes", "y", false, "never prompt, answer yes")
	f.String("options", "", "YAML file with profile fields, flags override it")
	f.String("schema-version", "", "options schema to write (default: newest)")
	configureCmd.MarkFlagsMutuallyExclusive("generate-test", "no-generate-test")
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure a workspace from the command line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := system.CheckOSVersion(); err != nil {
			return err
		}
		gbk := system.GBKCodePage()
		p, err := profileFromFlags(cmd, gbk)
		if err != nil {
			return err
		}
		newbie, _ := cmd.Flags().GetBool("newbie-mode")
		assumeYes, _ := cmd.Flags().GetBool("assume-yes")
		assumeYes = assumeYes || newbie

		ctx := cmd.Context()
		sess := newSession(ctx)
		env := sess.Environment()

		compilerPath, _ := cmd.Flags().GetString("compiler-path")
		if compilerPath == "" {
			c, err := chooseCompiler(env.Compilers, assumeYes)
			if err != nil {
				return err
			}
			compilerPath = c.Path
			system.Logger.Info("using detected compiler", "path", c.Path, "version", c.VersionNumber)
		}
		editorPath, _ := cmd.Flags().GetString("vscode-path")
		if editorPath == "" && !env.Editor.Resolved {
			return errors.New("VS Code not found, pass --vscode-path")
		}

		if _, err := os.Stat(filepath.Join(p.WorkspacePath, ".vscode")); err == nil && !assumeYes {
			ok, err := ask.Confirm("Overwrite existing configuration?",
				fmt.Sprintf("%s already has a .vscode folder.", p.WorkspacePath))
			if err != nil {
				return err
			}
			if !ok {
				_ = sess.Finish(ctx, session.FinishRequest{Success: false})
				return errors.New("configuration cancelled")
			}
		}

		schemaVer, _ := cmd.Flags().GetString("schema-version")
		err = sess.Finish(ctx, session.FinishRequest{
			Success: true,
			Config: &session.FinishConfig{
				Profile:       p,
				SchemaVersion: schemaVer,
				VscodePath:    editorPath,
				CompilerPath:  compilerPath,
			},
		})
		if err != nil {
			return err
		}
		_, res, _ := sess.Result()
		for _, f := range res.Files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return sess.RunPostActions(ctx)
	},
}

func chooseCompiler(list []compiler.Info, assumeYes bool) (compiler.Info, error) {
	switch {
	case len(list) == 0:
		return compiler.Info{}, errors.New("no GCC installation found, pass --compiler-path")
	case len(list) == 1, assumeYes:
		return list[0], nil
	}
	i, err := ask.ChooseCompiler(list)
	if err != nil {
		return compiler.Info{}, err
	}
	if i < 0 || i >= len(list) {
		return compiler.Info{}, fmt.Errorf("compiler choice %d out of range", i)
	}
	return list[i], nil
}

// profileFromFlags starts from the options file (or a preset) and applies
// every flag the user set.
func profileFromFlags(cmd *cobra.Command, gbk bool) (profile.Profile, error) {
	f := cmd.Flags()
	p := profile.Default()
	// Flag defaults differ from the GUI defaults for these.
	p.OpenVscode = false

	if path, _ := f.GetString("options"); path != "" {
		var err error
		if p, err = profile.LoadYAML(path); err != nil {
			return p, err
		}
	}
	if newbie, _ := f.GetBool("newbie-mode"); newbie {
		ws := p.WorkspacePath
		p = profile.Newbie(gbk)
		p.WorkspacePath = ws
	}

	if f.Changed("workspace-path") {
		p.WorkspacePath, _ = f.GetString("workspace-path")
	}
	if strings.TrimSpace(p.WorkspacePath) == "" {
		return p, errors.New("--workspace-path is required")
	}
	abs, err := filepath.Abs(p.WorkspacePath)
	if err != nil {
		return p, err
	}
	p.WorkspacePath = abs

	if f.Changed("language") {
		s, _ := f.GetString("language")
		if p.Language, err = profile.ParseLanguage(s); err != nil {
			return p, err
		}
	}
	if f.Changed("compile-arg") {
		extra, _ := f.GetStringArray("compile-arg")
		p.CustomOptions = append(p.CustomOptions, extra...)
	}
	std, _ := f.GetString("language-standard")
	var fromArgs string
	p.CustomOptions, fromArgs = extractStandard(p.CustomOptions)
	if std == "" {
		std = fromArgs
	}
	if std != "" {
		if err := setStandard(&p, std); err != nil {
			return p, err
		}
	}

	boolFlag := func(name string, dst *bool, invert bool) {
		if f.Changed(name) {
			v, _ := f.GetBool(name)
			*dst = v != invert
		}
	}
	if f.Changed("external-terminal") {
		p.DbgStyle = profile.DebugInternal
		if v, _ := f.GetBool("external-terminal"); v {
			p.DbgStyle = profile.DebugExternal
		}
	}
	boolFlag("install-chinese", &p.InstL10n, false)
	boolFlag("offline-cpptools", &p.OfflineExt, false)
	boolFlag("uninstall-extensions", &p.UninstExt, false)
	boolFlag("apply-nonascii-check", &p.NonASCIICheck, false)
	boolFlag("no-set-env", &p.SetEnv, true)
	boolFlag("generate-shortcut", &p.GenShortcut, false)
	boolFlag("open-vscode", &p.OpenVscode, false)
	boolFlag("no-send-analytics", &p.SendAnalytics, true)
	if v, _ := f.GetBool("generate-test"); v {
		p.GenTest = profile.TestFileAlways
	}
	if v, _ := f.GetBool("no-generate-test"); v {
		p.GenTest = profile.TestFileNever
	}
	if !gbk {
		p.FexecCharsetGbk = false
	}
	return p, nil
}

// extractStandard removes -std= arguments and returns the last standard seen.
func extractStandard(args []string) ([]string, string) {
	out := make([]string, 0, len(args))
	std := ""
	for _, a := range args {
		if v, ok := strings.CutPrefix(a, "-std="); ok {
			std = v
			continue
		}
		out = append(out, a)
	}
	return out, std
}

// setStandard validates std for the profile language. A GNU dialect turns
// on the GNU extension toggle.
func setStandard(p *profile.Profile, std string) error {
	cpp := p.Language == profile.Cpp
	std = strings.ToLower(strings.TrimSpace(std))
	if !compiler.ValidStandard(cpp, std) {
		valid := compiler.CStandards
		name := "C"
		if cpp {
			valid, name = compiler.CppStandards, "C++"
		}
		return fmt.Errorf("%s is not a valid %s standard (valid: %s)", std, name, strings.Join(valid, ", "))
	}
	if rest, ok := strings.CutPrefix(std, "gnu"); ok {
		std = "c" + rest
		p.GnuEx = true
	}
	if cpp {
		p.CppStandard = std
	} else {
		p.CStandard = std
	}
	return nil
}
