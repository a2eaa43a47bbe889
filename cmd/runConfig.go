package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultBrokerURL points at the public NMPI queue endpoint. Override with
// --broker-url or CYPRESS_NMPI_BROKER_URL for private deployments and tests.
const defaultBrokerURL = "https://nmpi.hbpneuromorphic.eu"

// runConfig carries all inputs of a single invocation. It is built once from
// flags (plus optional manifest defaults) and passed by value into each
// component entry point; no component reads flag globals directly.
type runConfig struct {
	Name        string
	Description string
	Executable  string
	Platform    string
	Files       []string
	Base        string
	Args        []string
	Wafer       int
	BrokerURL   string
	ConfigPath  string
	ReportPath  string
}

// buildClientConfig assembles the broker-facing subset of the configuration
// (endpoint and session file), used by subcommands that operate on an
// existing job without bundling anything.
func buildClientConfig() (runConfig, error) {
	cfg := runConfig{
		BrokerURL:  cfgBrokerURL,
		ConfigPath: cfgConfigPath,
		ReportPath: cfgReportPath,
	}
	if cfg.BrokerURL == "" {
		cfg.BrokerURL = defaultBrokerURL
	}
	cfg.BrokerURL = strings.TrimRight(cfg.BrokerURL, "/")

	if cfg.ConfigPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.ConfigPath = filepath.Join(home, ".nmpi_config")
	}
	return cfg, nil
}

// buildRunConfig assembles the effective configuration from CLI flags and,
// when --manifest is given, from manifest defaults (flags take precedence).
// It validates required inputs and normalizes the base directory to an
// absolute path so relative-path computation is stable.
func buildRunConfig() (runConfig, error) {
	cfg, err := buildClientConfig()
	if err != nil {
		return cfg, err
	}
	cfg.Executable = cfgExecutable
	cfg.Platform = cfgPlatform
	cfg.Files = cfgFiles
	cfg.Base = cfgBase
	cfg.Args = cfgArgs
	cfg.Wafer = cfgWafer

	if cfgManifest != "" {
		mf, err := loadManifest(cfgManifest)
		if err != nil {
			return cfg, fmt.Errorf("failed to read manifest: %w", err)
		}
		cfg.Name = mf.Name
		cfg.Description = mf.Description
		if cfg.Executable == "" {
			cfg.Executable = mf.Executable
		}
		if cfg.Platform == "" {
			cfg.Platform = mf.Platform
		}
		if cfg.Base == "" {
			cfg.Base = mf.Base
		}
		if len(cfg.Files) == 0 {
			cfg.Files = mf.Files
		}
		if len(cfg.Args) == 0 {
			cfg.Args = mf.Args
		}
		if cfg.Wafer == 0 {
			cfg.Wafer = mf.Wafer
		}
	}

	// Remaining basic validation after applying manifest defaults
	if cfg.Executable == "" {
		return cfg, errors.New("--executable is required (file to run on the NMPI)")
	}
	if cfg.Platform == "" {
		return cfg, errors.New("--platform is required (e.g. NM-PM1, NM-MC1, Spikey, ESS)")
	}

	if cfg.Base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return cfg, fmt.Errorf("resolve working directory: %w", err)
		}
		cfg.Base = wd
	}
	abs, err := filepath.Abs(cfg.Base)
	if err != nil {
		return cfg, fmt.Errorf("resolve base directory: %w", err)
	}
	cfg.Base = abs
	return cfg, nil
}
