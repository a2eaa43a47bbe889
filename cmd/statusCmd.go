package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// statusCmd performs a single status query for an existing job and prints
// the broker's status string to stdout.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the current status of a submitted job",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgJobID == "" {
			return errors.New("--job is required (job identifier)")
		}
		cfg, err := buildClientConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfgLogLevel)
		defer func() { _ = log.Sync() }()

		session := loadSessionConfig(log, cfg.ConfigPath)
		token := session.Token
		if token != "" && tokenExpired(token) {
			token = ""
		}
		broker := newBrokerFunc(cfg.BrokerURL, session.Username, token)
		if err := broker.Authenticate(cmd.Context()); err != nil {
			return err
		}
		status, err := broker.JobStatus(cmd.Context(), cfgJobID)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(os.Stdout, status)
		return nil
	},
}
