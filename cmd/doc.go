// Package cmd implements the cypress-nmpi command-line interface.
//
// The package organizes all CLI subcommands (the root lifecycle run, script,
// verify, status, fetch) and the underlying helpers for payload bundling,
// companion-script generation, the NMPI broker HTTP client, fixed-interval
// job polling, and result archive retrieval.
//
// New contributors should start by reading rootCmd.go to see how cobra is
// wired, bundle.go and companionScript.go for how local files are packaged
// into the uploaded script, httpBroker.go for the broker protocol, and
// fetchOutputs.go for how results land back in the working directory.
package cmd
