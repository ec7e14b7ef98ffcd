package synth

import "vscch/internal/profile"

// Common holds the fields every schema shares. JSON names are the ones the
// workspace generator has always read.
type Common struct {
	VscodePath                string               `json:"VscodePath"`
	MingwPath                 *string              `json:"MingwPath"`
	WorkspacePath             string               `json:"WorkspacePath"`
	Language                  profile.Language     `json:"Language"`
	LanguageStandard          string               `json:"LanguageStandard"`
	CompileArgs               []string             `json:"CompileArgs"`
	NoSetEnv                  bool                 `json:"NoSetEnv"`
	UseExternalTerminal       bool                 `json:"UseExternalTerminal"`
	ApplyNonAsciiCheck        bool                 `json:"ApplyNonAsciiCheck"`
	OfflineInstallCCpp        bool                 `json:"OfflineInstallCCpp"`
	ShouldUninstallExtensions bool                 `json:"ShouldUninstallExtensions"`
	GenerateTestFile          profile.TestFileMode `json:"GenerateTestFile"`
	GenerateDesktopShortcut   bool                 `json:"GenerateDesktopShortcut"`
	OpenVscodeAfterConfig     bool                 `json:"OpenVscodeAfterConfig"`
	NoSendAnalytics           bool                 `json:"NoSendAnalytics"`
}

// OptionsV300 is the 3.0.x layout.
type OptionsV300 struct {
	Common
	ShouldInstallL11n bool `json:"ShouldInstallL11n"`
}

// OptionsV310 is the 3.1.0+ layout.
type OptionsV310 struct {
	Common
	ShouldInstallL10n bool `json:"ShouldInstallL10n"`
}

// Artifact is one of OptionsV300 or OptionsV310.
type Artifact interface {
	Schema() Schema
	Options() Common
	InstallL10n() bool
}

func (o OptionsV300) Schema() Schema    { return SchemaV300 }
func (o OptionsV300) Options() Common   { return o.Common }
func (o OptionsV300) InstallL10n() bool { return o.ShouldInstallL11n }

func (o OptionsV310) Schema() Schema    { return SchemaV310 }
func (o OptionsV310) Options() Common   { return o.Common }
func (o OptionsV310) InstallL10n() bool { return o.ShouldInstallL10n }

// CompilerBin returns the compiler bin directory, or "" when none was chosen.
func CompilerBin(a Artifact) string {
	if p := a.Options().MingwPath; p != nil {
		return *p
	}
	return ""
}
