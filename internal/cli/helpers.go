package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalID reads an int flag that filters by id. Unset means no filter.
func OptionalID(cmd *cobra.Command, name string) (*int, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil, &UsageError{Err: err}
	}
	if v <= 0 {
		return nil, &UsageError{Err: fmt.Errorf("--%s must be a positive id, got %d", name, v)}
	}
	return &v, nil
}

// Formatter builds the OutputFormatter from the --json and --quiet flags
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}
