package cmd

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// emitCapturedOutput echoes the remote sidecar files retrieved with the
// result archive: first the captured stderr to local stderr, then the
// captured stdout to local stdout, each announced with an info line naming
// the sidecar file. Missing or empty sidecars produce no output.
func emitCapturedOutput(log *zap.Logger, tmpDir string) {
	emitSidecar(log, "response stderr", tmpDir+".stderr", os.Stderr)
	emitSidecar(log, "response stdout", tmpDir+".stdout", os.Stdout)
}

func emitSidecar(log *zap.Logger, label, path string, dst io.Writer) {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()
	log.Info(label, zap.String("file", path))
	_, _ = io.Copy(dst, f)
}
