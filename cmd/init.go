package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// init configures the root command's persistent flags, binds them to
// environment variables via Viper, and registers all subcommands. This
// wiring keeps one configuration surface across the root run and the
// script/verify/status/fetch subcommands and makes environment overrides
// predictable for operators.
func init() {
	// Persistent flags (inherited by subcommands like `script` and `fetch`)
	rootCmd.PersistentFlags().StringVarP(&cfgExecutable, "executable", "e", "", "File to be executed on the NMPI")
	rootCmd.PersistentFlags().StringVarP(&cfgPlatform, "platform", "p", "", "Target platform (e.g. NM-PM1, NM-MC1, Spikey, ESS)")
	rootCmd.PersistentFlags().StringArrayVarP(&cfgFiles, "files", "f", nil, "Additional file to be uploaded to the NMPI (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&cfgBase, "base", "b", "", "Base directory determining where files are extracted on the NMPI (default: current directory)")
	rootCmd.PersistentFlags().StringArrayVarP(&cfgArgs, "args", "a", nil, "Argument passed to the executable (repeatable)")
	rootCmd.PersistentFlags().IntVarP(&cfgWafer, "wafer", "w", 0, "Wafer module for reservation (0 means unset)")
	rootCmd.PersistentFlags().StringVar(&cfgBrokerURL, "broker-url", "", "NMPI broker endpoint (or set CYPRESS_NMPI_BROKER_URL)")
	rootCmd.PersistentFlags().StringVarP(&cfgManifest, "manifest", "m", "", "Path to YAML job manifest supplying flag defaults")
	rootCmd.PersistentFlags().StringVar(&cfgConfigPath, "config", "", "Path to session config file (default: ~/.nmpi_config)")
	rootCmd.PersistentFlags().StringVar(&cfgReportPath, "report", "", "Write a YAML run report to this path")
	rootCmd.PersistentFlags().StringVar(&cfgLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfgJobID, "job", "", "Existing job identifier (status/fetch subcommands)")
	rootCmd.PersistentFlags().StringVar(&cfgTmpDir, "tmpdir", "", "Archive namespace of an existing job (fetch subcommand)")

	// Bind env with Viper
	_ = viper.BindPFlag("executable", rootCmd.PersistentFlags().Lookup("executable"))
	_ = viper.BindPFlag("platform", rootCmd.PersistentFlags().Lookup("platform"))
	_ = viper.BindPFlag("base", rootCmd.PersistentFlags().Lookup("base"))
	_ = viper.BindPFlag("wafer", rootCmd.PersistentFlags().Lookup("wafer"))
	_ = viper.BindPFlag("broker-url", rootCmd.PersistentFlags().Lookup("broker-url"))
	_ = viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("report", rootCmd.PersistentFlags().Lookup("report"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("job", rootCmd.PersistentFlags().Lookup("job"))
	_ = viper.BindPFlag("tmpdir", rootCmd.PersistentFlags().Lookup("tmpdir"))

	viper.SetEnvPrefix("CYPRESS_NMPI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Pull in environment overrides on init
	cobra.OnInitialize(func() {
		if v := viper.GetString("executable"); v != "" {
			cfgExecutable = v
		}
		if v := viper.GetString("platform"); v != "" {
			cfgPlatform = v
		}
		if v := viper.GetString("base"); v != "" {
			cfgBase = v
		}
		if v := viper.GetString("wafer"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				cfgWafer = n
			}
		}
		if v := viper.GetString("broker-url"); v != "" {
			cfgBrokerURL = v
		}
		if v := viper.GetString("manifest"); v != "" {
			cfgManifest = v
		}
		if v := viper.GetString("config"); v != "" {
			cfgConfigPath = v
		}
		if v := viper.GetString("report"); v != "" {
			cfgReportPath = v
		}
		if v := viper.GetString("log-level"); v != "" {
			cfgLogLevel = v
		}
		if v := viper.GetString("job"); v != "" {
			cfgJobID = v
		}
		if v := viper.GetString("tmpdir"); v != "" {
			cfgTmpDir = v
		}
	})

	// Add subcommands
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(fetchCmd)
}
