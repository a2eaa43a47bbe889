package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// fetchCmd retrieves the outputs of an already-terminated job into the
// current working directory and echoes the captured sidecars. The temporary
// directory name printed during submission must be supplied, since it is
// the archive namespace.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Retrieve the outputs of a finished job",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgJobID == "" {
			return errors.New("--job is required (job identifier)")
		}
		if cfgTmpDir == "" {
			return errors.New("--tmpdir is required (archive namespace reported at submission)")
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
		if _, err := fetchOutputs(cmd.Context(), log, broker, cfgJobID, cfgTmpDir); err != nil {
			return err
		}
		emitCapturedOutput(log, cfgTmpDir)
		return nil
	},
}
