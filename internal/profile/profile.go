// Package profile holds the user's configuration choices and persists them
// between runs.
package profile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Language is the source language of the workspace.
type Language int

const (
	Cpp Language = 0
	C   Language = 1
)

func (l Language) String() string {
	if l == C {
		return "c"
	}
	return "c++"
}

// ParseLanguage accepts "c++", "cpp", "cxx" and "c", case-insensitively.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c++", "cpp", "cxx", "":
		return Cpp, nil
	case "c":
		return C, nil
	}
	return Cpp, fmt.Errorf("unknown language %q (want c++ or c)", s)
}

// UnmarshalYAML takes either the numeric form used on the wire or a name.
func (l *Language) UnmarshalYAML(n *yaml.Node) error {
	var i int
	if err := n.Decode(&i); err == nil {
		if i != int(Cpp) && i != int(C) {
			return fmt.Errorf("line %d: unknown language %d", n.Line, i)
		}
		*l = Language(i)
		return nil
	}
	var s string
	if err := n.Decode(&s); err != nil {
		return fmt.Errorf("line %d: language: %w", n.Line, err)
	}
	v, err := ParseLanguage(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*l = v
	return nil
}

// DebugStyle selects where the debuggee's console lives.
type DebugStyle int

const (
	DebugInternal DebugStyle = 0
	DebugExternal DebugStyle = 1
)

// TestFileMode controls generation of the hello-world source file.
type TestFileMode int

const (
	// TestFileAuto writes the file only when the workspace has no sources.
	TestFileAuto   TestFileMode = 0
	TestFileAlways TestFileMode = 1
	TestFileNever  TestFileMode = 2
)

// Profile is the flat set of user choices. Field names on disk are shared
// with the web front end.
type Profile struct {
	WorkspacePath   string       `json:"workspacePath" yaml:"workspacePath"`
	Language        Language     `json:"language" yaml:"language"`
	CppStandard     string       `json:"cppStandard" yaml:"cppStandard"`
	CStandard       string       `json:"cStandard" yaml:"cStandard"`
	GnuEx           bool         `json:"gnuEx" yaml:"gnuEx"`
	Optimization    string       `json:"optimization" yaml:"optimization"`
	Wall            bool         `json:"wall" yaml:"wall"`
	Wextra          bool         `json:"wextra" yaml:"wextra"`
	Werror          bool         `json:"werror" yaml:"werror"`
	FexecCharsetGbk bool         `json:"fexecCharsetGbk" yaml:"fexecCharsetGbk"`
	StaticStd       bool         `json:"staticStd" yaml:"staticStd"`
	CustomOptions   []string     `json:"customOptions" yaml:"customOptions"`
	DbgStyle        DebugStyle   `json:"dbgStyle" yaml:"dbgStyle"`
	NonASCIICheck   bool         `json:"nonAsciiCheck" yaml:"nonAsciiCheck"`
	InstL10n        bool         `json:"instL10n" yaml:"instL10n"`
	OfflineExt      bool         `json:"offlineExt" yaml:"offlineExt"`
	UninstExt       bool         `json:"uninstExt" yaml:"uninstExt"`
	SetEnv          bool         `json:"setEnv" yaml:"setEnv"`
	GenTest         TestFileMode `json:"genTest" yaml:"genTest"`
	GenShortcut     bool         `json:"genShortcut" yaml:"genShortcut"`
	OpenVscode      bool         `json:"openVscode" yaml:"openVscode"`
	SendAnalytics   bool         `json:"sendAnalytics" yaml:"sendAnalytics"`
}

// Default is the profile a fresh session starts from.
func Default() Profile {
	return Profile{
		Language:      Cpp,
		CustomOptions: []string{},
		DbgStyle:      DebugInternal,
		GenTest:       TestFileAuto,
		SetEnv:        true,
		OpenVscode:    true,
		SendAnalytics: true,
	}
}

// Newbie turns on the helpers recommended for first-time users. The GBK
// charset flag is only set on hosts whose console uses GBK.
func Newbie(gbk bool) Profile {
	p := Default()
	p.Wall = true
	p.Wextra = true
	p.FexecCharsetGbk = gbk
	p.DbgStyle = DebugExternal
	p.NonASCIICheck = true
	p.InstL10n = true
	p.OfflineExt = true
	p.UninstExt = true
	p.GenShortcut = true
	return p
}

// Standard returns the explicit standard for the selected language, or ""
// for automatic selection.
func (p Profile) Standard() string {
	if p.Language == C {
		return p.CStandard
	}
	return p.CppStandard
}
