package cmd

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// bundle is the fully assembled payload for one job: the temporary directory
// name used as the archive namespace, the ordered bundle manifest, and the
// run invocation (executable plus rewritten arguments).
type bundle struct {
	TmpDir  string
	Entries []bundleEntry
	RunFile string
	RunArgs []string
}

// buildBundle packages the executable and auxiliary files into a bundle.
// Every input path is checked against the base directory before any file is
// read, so a path escaping the base fails fast with no I/O performed and no
// network interaction attempted.
func buildBundle(cfg runConfig) (*bundle, error) {
	inputs := make([]string, 0, len(cfg.Files)+1)
	inputs = append(inputs, cfg.Files...)
	inputs = append(inputs, cfg.Executable)

	rels := make([]string, len(inputs))
	for i, p := range inputs {
		rel, err := archiveRelPath(p, cfg.Base)
		if err != nil {
			return nil, err
		}
		rels[i] = rel
	}

	b := &bundle{TmpDir: newTmpDirName()}
	for i, p := range inputs {
		entry, ok, err := readBundleEntry(p, rels[i])
		if err != nil {
			return nil, err
		}
		if !ok {
			// Not a regular file; produces no extraction instruction.
			continue
		}
		b.Entries = append(b.Entries, entry)
	}

	// The run invocation always references the executable's relative path,
	// whether or not it produced an instruction above.
	b.RunFile = rels[len(rels)-1]
	b.RunArgs = rewriteArgs(cfg.Args, cfg.Base)
	return b, nil
}

// archiveRelPath computes the slash-separated archive path of p relative to
// base, rejecting paths that resolve outside the base directory.
func archiveRelPath(p, base string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", p, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", errPathEscapesBase, p)
	}
	return filepath.ToSlash(rel), nil
}

// readBundleEntry reads one input file and encodes it as a manifest entry.
// Inputs that are not regular files are skipped, matching the behavior of
// local execution where such paths simply never materialize remotely.
func readBundleEntry(path, archivePath string) (bundleEntry, bool, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return bundleEntry{}, false, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return bundleEntry{}, false, fmt.Errorf("read %s: %w", path, err)
	}
	var buf bytes.Buffer
	zw, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return bundleEntry{}, false, fmt.Errorf("bzip2 %s: %w", path, err)
	}
	if _, err := zw.Write(raw); err != nil {
		return bundleEntry{}, false, fmt.Errorf("bzip2 %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return bundleEntry{}, false, fmt.Errorf("bzip2 %s: %w", path, err)
	}
	return bundleEntry{
		ArchivePath: archivePath,
		Mode:        info.Mode().Perm(),
		Payload:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, true, nil
}

// rewriteArgs maps arguments that name existing regular files to their
// base-relative form; everything else passes through unchanged.
func rewriteArgs(args []string, base string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if info, err := os.Stat(a); err == nil && info.Mode().IsRegular() {
			if abs, err := filepath.Abs(a); err == nil {
				if rel, err := filepath.Rel(base, abs); err == nil {
					out = append(out, filepath.ToSlash(rel))
					continue
				}
			}
		}
		out = append(out, a)
	}
	return out
}
