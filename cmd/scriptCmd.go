package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// scriptCmd renders the companion script for the given inputs and prints it
// to stdout without touching the network. Useful for inspecting exactly
// what would be uploaded and for validating the code-generation boundary.
var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the generated companion script without submitting",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildRunConfig()
		if err != nil {
			return err
		}
		b, err := buildBundle(cfg)
		if err != nil {
			return err
		}
		script, err := renderCompanionScript(b)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(os.Stdout, script)
		return nil
	},
}
