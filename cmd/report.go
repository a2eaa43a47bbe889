package cmd

import (
	"bufio"
	"bytes"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// runReport is the optional YAML summary of one lifecycle run, written when
// --report is set. It records what was bundled, where it ran, and which
// output files were retrieved.
type runReport struct {
	Name        string   `yaml:"name,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Generated   string   `yaml:"generated"`
	Platform    string   `yaml:"platform"`
	JobID       string   `yaml:"job_id"`
	Status      string   `yaml:"status"`
	TmpDir      string   `yaml:"tmp_dir"`
	Bundle      []string `yaml:"bundle"`
	Outputs     []string `yaml:"outputs,omitempty"`
}

// newRunReport constructs a report seeded with manifest metadata (when a
// manifest was used) and the run's results.
func newRunReport(cfg runConfig, b *bundle, jobID, status string, outputs []string) *runReport {
	r := &runReport{
		Name:        cfg.Name,
		Description: cfg.Description,
		Generated:   time.Now().Format(time.RFC3339),
		Platform:    cfg.Platform,
		JobID:       jobID,
		Status:      status,
		TmpDir:      b.TmpDir,
		Outputs:     outputs,
	}
	for _, e := range b.Entries {
		r.Bundle = append(r.Bundle, e.ArchivePath)
	}
	return r
}

// writeRunReport serializes the report to YAML with indentation and writes
// it to path.
func writeRunReport(path string, r *runReport) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		_ = enc.Close()
		return err
	}
	_ = enc.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if _, err := bw.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
