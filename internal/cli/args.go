package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireSourceDir validates that exactly one source_dir argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireSourceDir(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <source_dir>

Usage: %s <source_dir>

Example:
  %s ./raw_data -d payroll`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
