package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCmd runs the full job lifecycle: bundle the executable and auxiliary
// files into a companion script, submit it to the broker, poll until the job
// terminates, retrieve the output archive into the working directory, and
// echo the captured remote stdout/stderr. The flow is strictly sequential;
// the only suspension points are the poll sleep and blocking network calls.
var rootCmd = &cobra.Command{
	Use:   "cypress-nmpi",
	Short: "Run a local executable on NMPI neuromorphic hardware",
	Long: "Uploads an executable plus auxiliary files to the NMPI job broker, waits for the remote run to finish, " +
		"and retrieves all generated files into the current directory, just as if the executable had been run locally.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildRunConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfgLogLevel)
		defer func() { _ = log.Sync() }()

		// Bundle first: an input path escaping the base directory must fail
		// before any network interaction.
		b, err := buildBundle(cfg)
		if err != nil {
			return err
		}
		script, err := renderCompanionScript(b)
		if err != nil {
			return err
		}
		log.Info("bundled payload",
			zap.String("tmp_dir", b.TmpDir),
			zap.Int("files", len(b.Entries)),
			zap.Strings("args", b.RunArgs))

		session := loadSessionConfig(log, cfg.ConfigPath)

		ctx := cmd.Context()
		jobID, broker, err := submitJob(ctx, log, cfg, &session, script)
		if err != nil {
			return err
		}

		status, err := waitForJob(ctx, log, broker, jobID)
		if err != nil {
			return err
		}

		outputs, err := fetchOutputs(ctx, log, broker, jobID, b.TmpDir)
		if err != nil {
			return err
		}
		emitCapturedOutput(log, b.TmpDir)

		if cfg.ReportPath != "" {
			if err := writeRunReport(cfg.ReportPath, newRunReport(cfg, b, jobID, status, outputs)); err != nil {
				log.Warn("failed to write run report", zap.String("path", cfg.ReportPath), zap.Error(err))
			}
		}

		if status != jobStatusFinished {
			return errRemoteJobFailed
		}
		return nil
	},
}
