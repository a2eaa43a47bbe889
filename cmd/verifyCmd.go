package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// verifyCmd validates the inputs of a run offline: manifest parsing, base
// directory containment, and bundle construction. No network calls are
// made.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate inputs and bundle construction without submitting",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildRunConfig()
		if err != nil {
			return fmt.Errorf("invalid inputs: %w", err)
		}
		b, err := buildBundle(cfg)
		if err != nil {
			return fmt.Errorf("invalid inputs: %w", err)
		}
		if _, err := renderCompanionScript(b); err != nil {
			return fmt.Errorf("invalid inputs: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Bundle OK (%d files, run %s)\n", len(b.Entries), b.RunFile)
		return nil
	},
}
