package cmd

import (
	"errors"
	"os"
)

// loadManifest reads and validates the YAML manifest, ensuring the presence
// of required top-level fields (name, description). Executable/platform are
// validated by buildRunConfig after flag precedence is applied, because a
// manifest may intentionally leave them to the command line.
func loadManifest(path string) (*manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mf := &manifest{}
	if err := yamlUnmarshal(b, mf); err != nil {
		return nil, err
	}
	if mf.Name == "" {
		return nil, errors.New("manifest.name is required")
	}
	if mf.Description == "" {
		return nil, errors.New("manifest.description is required")
	}
	return mf, nil
}
