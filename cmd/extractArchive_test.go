package cmd

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type archiveEntry struct {
	name     string
	mode     int64
	typeflag byte
	linkname string
	body     string
}

// makeTestArchive writes a tar.bz2 file from the given entries and returns
// its path.
func makeTestArchive(t *testing.T, entries []archiveEntry) string {
	t.Helper()
	var buf bytes.Buffer
	zw, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	require.NoError(t, err)
	tw := tar.NewWriter(zw)
	for _, e := range entries {
		hdr := &tar.Header{
			Name:     e.name,
			Mode:     e.mode,
			Typeflag: e.typeflag,
			Linkname: e.linkname,
			Size:     int64(len(e.body)),
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if e.typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "result.tar.bz2")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestExtractArchive_PrefixFiltering(t *testing.T) {
	archive := makeTestArchive(t, []archiveEntry{
		{name: "cypress_abc12345", mode: 0o755, typeflag: tar.TypeDir},
		{name: "cypress_abc12345/out.txt", mode: 0o644, typeflag: tar.TypeReg, body: "result\n"},
		{name: "cypress_abc12345.stdout", mode: 0o644, typeflag: tar.TypeReg, body: "hello\n"},
		{name: "stray/outside.txt", mode: 0o644, typeflag: tar.TypeReg, body: "ignored\n"},
	})

	dest := t.TempDir()
	require.NoError(t, extractArchive(zap.NewNop(), archive, "cypress_abc12345", dest))

	b, err := os.ReadFile(filepath.Join(dest, "cypress_abc12345", "out.txt"))
	require.NoError(t, err)
	require.Equal(t, "result\n", string(b))

	b, err = os.ReadFile(filepath.Join(dest, "cypress_abc12345.stdout"))
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(b))

	_, err = os.Stat(filepath.Join(dest, "stray"))
	require.True(t, os.IsNotExist(err))
}

func TestExtractArchive_PreservesModes(t *testing.T) {
	archive := makeTestArchive(t, []archiveEntry{
		{name: "job_x/run.sh", mode: 0o755, typeflag: tar.TypeReg, body: "#!/bin/sh\n"},
	})

	dest := t.TempDir()
	require.NoError(t, extractArchive(zap.NewNop(), archive, "job_x", dest))

	info, err := os.Stat(filepath.Join(dest, "job_x", "run.sh"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestExtractArchive_NestedDirectories(t *testing.T) {
	archive := makeTestArchive(t, []archiveEntry{
		{name: "job_x/a/b/c.txt", mode: 0o644, typeflag: tar.TypeReg, body: "deep\n"},
	})

	dest := t.TempDir()
	require.NoError(t, extractArchive(zap.NewNop(), archive, "job_x", dest))

	b, err := os.ReadFile(filepath.Join(dest, "job_x", "a", "b", "c.txt"))
	require.NoError(t, err)
	require.Equal(t, "deep\n", string(b))
}

func TestExtractArchive_EscapingEntrySkipped(t *testing.T) {
	archive := makeTestArchive(t, []archiveEntry{
		{name: "job_x/../../evil.txt", mode: 0o644, typeflag: tar.TypeReg, body: "nope\n"},
		{name: "job_x/good.txt", mode: 0o644, typeflag: tar.TypeReg, body: "ok\n"},
	})

	dest := t.TempDir()
	require.NoError(t, extractArchive(zap.NewNop(), archive, "job_x", dest))

	_, err := os.Stat(filepath.Join(dest, "..", "evil.txt"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dest, "evil.txt"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dest, "job_x", "good.txt"))
	require.NoError(t, err)
}

func TestExtractArchive_SymlinkBestEffort(t *testing.T) {
	archive := makeTestArchive(t, []archiveEntry{
		{name: "job_x/link", typeflag: tar.TypeSymlink, linkname: "/remote/only/path"},
		{name: "job_x/real.txt", mode: 0o644, typeflag: tar.TypeReg, body: "x"},
	})

	dest := t.TempDir()
	require.NoError(t, extractArchive(zap.NewNop(), archive, "job_x", dest))

	target, err := os.Readlink(filepath.Join(dest, "job_x", "link"))
	require.NoError(t, err)
	require.Equal(t, "/remote/only/path", target)
}

func TestExtractArchive_MissingFile(t *testing.T) {
	err := extractArchive(zap.NewNop(), filepath.Join(t.TempDir(), "absent.tar.bz2"), "x", t.TempDir())
	require.Error(t, err)
}
