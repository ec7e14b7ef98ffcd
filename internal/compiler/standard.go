package compiler

import (
	"slices"
	"strings"

	"github.com/hashicorp/go-version"
)

// Standards is the newest C++ and C standard a compiler release supports.
type Standards struct {
	Cpp string `json:"cpp"`
	C   string `json:"c"`
}

// Standard identifiers accepted as explicit choices.
var (
	CppStandards = []string{"c++98", "c++03", "c++11", "c++14", "c++17", "c++20", "c++23"}
	CStandards   = []string{"c89", "c99", "c11", "c18"}
)

var fallbackStandards = Standards{Cpp: "c++14", C: "c11"}

// SelectStandards maps a GCC version to the newest standards it is known to
// support. Empty or unparsable versions get C++14/C11.
func SelectStandards(ver string) Standards {
	v, err := version.NewVersion(strings.TrimSpace(ver))
	if err != nil {
		return fallbackStandards
	}
	seg := v.Segments()
	major, minor := seg[0], 0
	if len(seg) > 1 {
		minor = seg[1]
	}
	switch {
	case major < 4, major == 4 && minor <= 7:
		return Standards{Cpp: "c++98", C: "c99"}
	case major == 4:
		return Standards{Cpp: "c++11", C: "c11"}
	case major <= 7:
		return Standards{Cpp: "c++14", C: "c11"}
	case major <= 9:
		return Standards{Cpp: "c++17", C: "c18"}
	case major == 10:
		return Standards{Cpp: "c++20", C: "c18"}
	default:
		return Standards{Cpp: "c++23", C: "c18"}
	}
}

// ValidStandard reports whether std names a known standard for the language,
// GNU dialects included.
func ValidStandard(cpp bool, std string) bool {
	list := CStandards
	if cpp {
		list = CppStandards
	}
	std = strings.ToLower(strings.TrimSpace(std))
	if rest, ok := strings.CutPrefix(std, "gnu"); ok {
		std = "c" + rest
	}
	return slices.Contains(list, std)
}
