package cmd

import (
	"errors"
	"fmt"
	"os"
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errRemoteJobFailed) {
			// The job itself failed remotely; captured stderr/stdout were
			// already echoed, so exit 1 without a second error line.
			exitFunc(1)
			return
		}
		_, _ = fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
		return
	}
}
