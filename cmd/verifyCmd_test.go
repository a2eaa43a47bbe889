package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify_ReportsBundle(t *testing.T) {
	resetConfig()
	tmp := t.TempDir()
	proj := filepath.Join(tmp, "proj")
	exe := writeTempMode(t, proj, "run.sh", "#!/bin/sh\n", 0o755)
	data := writeTemp(t, proj, "data.txt", "payload\n")

	rootCmd.SetArgs([]string{"verify",
		"--executable", exe,
		"--files", data,
		"--base", proj,
		"--platform", "NM-PM1",
	})
	out := captureFd(t, &os.Stdout, func() {
		require.NoError(t, rootCmd.Execute())
	})
	require.Equal(t, "Bundle OK (2 files, run run.sh)\n", out)
}

func TestVerify_RejectsEscapingPath(t *testing.T) {
	resetConfig()
	tmp := t.TempDir()
	outside := writeTemp(t, tmp, "outside.txt", "x")
	proj := filepath.Join(tmp, "proj")
	exe := writeTempMode(t, proj, "run.sh", "#!/bin/sh\n", 0o755)

	rootCmd.SetArgs([]string{"verify",
		"--executable", exe,
		"--files", outside,
		"--base", proj,
		"--platform", "NM-PM1",
	})
	err := rootCmd.Execute()
	require.Error(t, err)
	require.ErrorIs(t, err, errPathEscapesBase)
	require.Contains(t, err.Error(), "invalid inputs")
}

func TestVerify_ManifestDrivenRun(t *testing.T) {
	resetConfig()
	tmp := t.TempDir()
	proj := filepath.Join(tmp, "proj")
	writeTempMode(t, proj, "run.sh", "#!/bin/sh\n", 0o755)
	writeTemp(t, proj, "data.txt", "payload\n")
	mf := writeTemp(t, tmp, "job.yaml", fmt.Sprintf(`name: demo
description: demo run
executable: %s
platform: NM-PM1
base: %s
files:
  - %s
`, filepath.Join(proj, "run.sh"), proj, filepath.Join(proj, "data.txt")))

	rootCmd.SetArgs([]string{"verify", "--manifest", mf})
	out := captureFd(t, &os.Stdout, func() {
		require.NoError(t, rootCmd.Execute())
	})
	require.Equal(t, "Bundle OK (2 files, run run.sh)\n", out)
}
