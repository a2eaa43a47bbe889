package cmd

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// captureFd redirects the given standard stream for the duration of fn and
// returns everything written to it.
func captureFd(t *testing.T, std **os.File, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := *std
	*std = w
	defer func() { *std = orig }()

	fn()
	require.NoError(t, w.Close())
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestEmitCapturedOutput_EchoesSidecars(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	writeTemp(t, tmp, "cypress_emit0001.stdout", "remote stdout line\n")
	writeTemp(t, tmp, "cypress_emit0001.stderr", "remote stderr line\n")

	var errText string
	outText := captureFd(t, &os.Stdout, func() {
		errText = captureFd(t, &os.Stderr, func() {
			emitCapturedOutput(zap.NewNop(), "cypress_emit0001")
		})
	})
	require.Equal(t, "remote stdout line\n", outText)
	require.Equal(t, "remote stderr line\n", errText)
}

func TestEmitCapturedOutput_MissingAndEmptySidecarsSilent(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	// stdout sidecar absent, stderr sidecar empty.
	writeTemp(t, tmp, "cypress_emit0002.stderr", "")

	var errText string
	outText := captureFd(t, &os.Stdout, func() {
		errText = captureFd(t, &os.Stderr, func() {
			emitCapturedOutput(zap.NewNop(), "cypress_emit0002")
		})
	})
	require.Empty(t, outText)
	require.Empty(t, errText)
}
