package cmd

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// fetchOutputs locates the job's result archive among its output
// descriptors, downloads it, extracts the entries belonging to the job's
// namespace, and relocates every extracted non-directory entry into the
// current working directory. Individual relocation failures are logged at
// debug and skipped; the archive and the extraction directory are removed
// afterwards. A job without a matching archive descriptor yields a warning,
// not an error. Returns the names of the relocated files.
func fetchOutputs(ctx context.Context, log *zap.Logger, broker brokerClient, jobID, tmpDir string) ([]string, error) {
	job, err := broker.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	archiveName := tmpDir + ".tar.bz2"
	for _, item := range job.OutputData {
		u, err := url.Parse(item.URL)
		if err != nil {
			log.Debug("skipping unparseable output url", zap.String("url", item.URL), zap.Error(err))
			continue
		}
		if !strings.Contains(u.Path, archiveName) {
			continue
		}

		log.Info("downloading result", zap.String("url", item.URL))
		if err := broker.Download(ctx, item.URL, archiveName); err != nil {
			return nil, err
		}

		log.Info("extracting data", zap.String("archive", archiveName))
		if err := extractArchive(log, archiveName, tmpDir, "."); err != nil {
			return nil, err
		}
		_ = os.Remove(archiveName)

		outputs := relocateOutputs(log, tmpDir)
		_ = os.RemoveAll(tmpDir)

		log.Info("done")
		return outputs, nil
	}

	log.Warn("no result archive found among job outputs",
		zap.String("job_id", jobID), zap.String("archive", archiveName))
	return nil, nil
}

// relocateOutputs copies every non-directory entry of the extraction
// directory into the current working directory, returning the names that
// were copied. Failures (for example dangling symlinks pointing at remote
// paths) are skipped silently beyond a debug line; this is deliberate
// best-effort behavior.
func relocateOutputs(log *zap.Logger, tmpDir string) []string {
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		log.Debug("cannot list extraction directory", zap.String("dir", tmpDir), zap.Error(err))
		return nil
	}
	var copied []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(tmpDir, entry.Name())
		if err := copyFile(src, entry.Name()); err != nil {
			log.Debug("skipping output file", zap.String("file", src), zap.Error(err))
			continue
		}
		copied = append(copied, entry.Name())
	}
	return copied
}

// copyFile copies src to dest following symlinks, preserving the source's
// permission bits.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
