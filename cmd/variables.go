package cmd

import (
	"errors"
	"time"
)

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.1.0"

// errPathEscapesBase signals that an input file resolves outside the declared
// base directory. Raised before any network interaction.
var errPathEscapesBase = errors.New("base directory must be a parent directory of all specified files")

// errAuthenticationFailed signals that the broker rejected our credentials.
// A cached token gets one forced re-authentication; a second failure is fatal.
var errAuthenticationFailed = errors.New("broker authentication failed")

// errRemoteJobFailed signals that the job reached the terminal error state.
var errRemoteJobFailed = errors.New("remote job finished with error status")

var (
	// Global configuration populated by flags and/or environment variables.
	// These are declared here so they are visible across subcommands.
	cfgExecutable string
	cfgPlatform   string
	cfgFiles      []string
	cfgBase       string
	cfgArgs       []string
	cfgWafer      int
	cfgBrokerURL  string
	cfgManifest   string
	cfgConfigPath string
	cfgReportPath string
	cfgLogLevel   string
	cfgJobID      string
	cfgTmpDir     string
)

// Allow tests to stub broker construction, prompting, and the poll interval
var (
	newBrokerFunc    = newHTTPBroker
	promptFunc       = promptLine
	promptSecretFunc = promptLine
	pollInterval     = time.Second
)
