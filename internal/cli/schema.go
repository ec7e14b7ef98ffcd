package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"vscch/internal/profile"
	"vscch/internal/synth"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:       "schema [profile|options-3.0.0|options-3.1.0]",
	Short:     "Print the JSON Schema of the profile or an options document",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"profile", "options-3.0.0", "options-3.1.0"},
	RunE: func(cmd *cobra.Command, args []string) error {
		which := "profile"
		if len(args) == 1 {
			which = args[0]
		}
		sch, err := schemaFor(which)
		if err != nil {
			return err
		}
		b, err := marshalSchema(sch)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func schemaFor(which string) (*jsonschema.Schema, error) {
	r := jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	switch {
	case which == "profile":
		sch := r.Reflect(&profile.Profile{})
		sch.Title = "vscch profile"
		return sch, nil
	case strings.HasPrefix(which, "options-"):
		s := synth.ParseSchema(strings.TrimPrefix(which, "options-"))
		var sch *jsonschema.Schema
		if s == synth.SchemaV300 {
			sch = r.Reflect(&synth.OptionsV300{})
		} else {
			sch = r.Reflect(&synth.OptionsV310{})
		}
		sch.Title = "vscch options " + s.String()
		return sch, nil
	}
	return nil, fmt.Errorf("unknown schema %q", which)
}

// marshalSchema indents the schema to JSON bytes.
func marshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}
