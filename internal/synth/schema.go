package synth

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// Schema identifies a field layout of the synthesized options document.
type Schema int

const (
	// SchemaV300 covers 3.0.0 through 3.0.2.
	SchemaV300 Schema = iota
	// SchemaV310 covers 3.1.0 and later.
	SchemaV310
)

// Latest is used when the caller does not declare a known version.
const Latest = SchemaV310

var v300Range = version.MustConstraints(version.NewConstraint(">= 3.0.0, <= 3.0.2"))

// ParseSchema maps a declared backend version to a layout. Empty,
// malformed and unknown versions select Latest.
func ParseSchema(s string) Schema {
	v, err := version.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return Latest
	}
	if v300Range.Check(v.Core()) {
		return SchemaV300
	}
	return Latest
}

func (s Schema) String() string {
	switch s {
	case SchemaV300:
		return "3.0.0"
	default:
		return "3.1.0"
	}
}
