package cmd

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlUnmarshalImpl is separated for clarity/testability
func yamlUnmarshalImpl(b []byte, out any) error {
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	return nil
}

// UnmarshalYAML supports both "executable" and "exe" keys for flexibility
func (m *manifest) UnmarshalYAML(value *yaml.Node) error {
	var aux struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Executable  string   `yaml:"executable"`
		Exe         string   `yaml:"exe"`
		Platform    string   `yaml:"platform"`
		Base        string   `yaml:"base"`
		Files       []string `yaml:"files"`
		Args        []string `yaml:"args"`
		Wafer       int      `yaml:"wafer"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	m.Name = aux.Name
	m.Description = aux.Description
	m.Executable = aux.Executable
	if m.Executable == "" {
		m.Executable = aux.Exe
	}
	m.Platform = aux.Platform
	m.Base = aux.Base
	m.Files = aux.Files
	m.Args = aux.Args
	m.Wafer = aux.Wafer
	return nil
}
