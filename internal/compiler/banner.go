package compiler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-version"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// ErrNotCompiler is returned when banner text does not come from a GCC driver.
var ErrNotCompiler = errors.New("not a gcc compiler banner")

// Info describes one compiler installation. Path is the installation
// directory, without the trailing bin segment.
//
// JSON names follow the environment report consumed by the web front end.
type Info struct {
	Path          string `json:"Path"`
	VersionNumber string `json:"VersionNumber"`
	PackageString string `json:"PackageString"`
	Not64Bit      bool   `json:"Not64Bit"`
}

// Matches the first banner line, e.g.
//
//	g++.exe (x86_64-posix-seh-rev0, Built by MinGW-W64 project) 8.1.0
//	x86_64-w64-mingw32-g++ (GCC) 10-win32 20210110
var bannerRe = regexp.MustCompile(`(?i)^\S*?(?:g\+\+|gcc|c\+\+|cc)(?:-\d+(?:\.\d+)*)?(?:\.exe)?\s+\((.*)\)\s+(\d+(?:\.\d+){0,2})`)

var arch32Re = regexp.MustCompile(`(?i)\b(?:i[3-6]86|32-?bit)\b`)

// NewInfo parses banner and records path as the installation directory.
func NewInfo(path, banner string) (Info, error) {
	info, err := ParseBanner(banner)
	if err != nil {
		return Info{}, err
	}
	info.Path = path
	return info, nil
}

// ParseBanner extracts version, package string and bitness from the output
// of `g++ --version`. The returned Info has no Path.
func ParseBanner(text string) (Info, error) {
	line := firstLine(text)
	m := bannerRe.FindStringSubmatch(line)
	if m == nil {
		return Info{}, fmt.Errorf("%w: %q", ErrNotCompiler, line)
	}
	ver, err := normalizeVersion(m[2])
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotCompiler, err)
	}
	return Info{
		VersionNumber: ver,
		PackageString: strings.TrimSpace(m[1]),
		Not64Bit:      arch32Re.MatchString(text),
	}, nil
}

// DecodeOutput turns raw process output into text. Localized MinGW builds
// print in the active code page, so output that is not UTF-8 is read as GBK.
func DecodeOutput(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	if b, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw); err == nil {
		return string(b)
	}
	return string(raw)
}

func firstLine(text string) string {
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(strings.TrimPrefix(ln, "\ufeff"))
		if ln != "" {
			return ln
		}
	}
	return ""
}

// normalizeVersion pads missing components with zeros: "10" -> "10.0.0".
func normalizeVersion(s string) (string, error) {
	v, err := version.NewVersion(s)
	if err != nil {
		return "", err
	}
	seg := v.Segments()
	for len(seg) < 3 {
		seg = append(seg, 0)
	}
	return fmt.Sprintf("%d.%d.%d", seg[0], seg[1], seg[2]), nil
}
