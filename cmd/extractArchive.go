package cmd

import (
	"archive/tar"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// extractArchive unpacks a tar.bz2 archive into destDir, extracting only
// entries whose name starts with prefix. Entries outside the namespace, and
// entries whose cleaned path would land outside destDir, are ignored.
// Symlink entries are recreated best-effort; their targets typically point
// at remote paths that do not exist locally.
func extractArchive(log *zap.Logger, archivePath, prefix, destDir string) error {
	destDir, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	tr := tar.NewReader(bzip2.NewReader(f))
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}
		if !strings.HasPrefix(hdr.Name, prefix) {
			log.Debug("skipping archive entry outside namespace", zap.String("name", hdr.Name))
			continue
		}
		target := filepath.Join(destDir, filepath.FromSlash(hdr.Name))
		if !strings.HasPrefix(filepath.Clean(target)+string(filepath.Separator),
			filepath.Clean(destDir)+string(filepath.Separator)) {
			log.Debug("skipping archive entry escaping destination", zap.String("name", hdr.Name))
			continue
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, hdr.FileInfo().Mode().Perm()); err != nil {
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err == nil {
				_ = os.Symlink(hdr.Linkname, target)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, hdr.FileInfo().Mode().Perm())
			if err != nil {
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				_ = out.Close()
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
		default:
			log.Debug("skipping unsupported archive entry type",
				zap.String("name", hdr.Name), zap.Uint8("type", hdr.Typeflag))
		}
	}
}
