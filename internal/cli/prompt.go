package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"vscch/internal/compiler"
)

// prompter asks the questions configure cannot answer from flags.
type prompter interface {
	ChooseCompiler(list []compiler.Info) (int, error)
	Confirm(title, description string) (bool, error)
}

type huhPrompter struct{}

func formTheme() *huh.Theme {
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base.BorderForeground(green)
	return theme
}

func (huhPrompter) ChooseCompiler(list []compiler.Info) (int, error) {
	opts := make([]huh.Option[int], 0, len(list))
	for i, c := range list {
		label := fmt.Sprintf("%s  %s (%s)", c.Path, c.VersionNumber, c.PackageString)
		opts = append(opts, huh.NewOption(label, i))
	}
	height := len(opts)
	if height > 12 {
		height = 12
	}
	chosen := 0
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Compiler").
				Description("Several GCC installations were found. Pick one.").
				Options(opts...).
				Height(height + 2).
				Value(&chosen),
		),
	).WithTheme(formTheme()).WithWidth(80)
	if err := form.Run(); err != nil {
		return 0, err
	}
	return chosen, nil
}

func (huhPrompter) Confirm(title, description string) (bool, error) {
	ok := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(formTheme())
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
