package cmd

// manifest models the YAML schema consumed by cypress-nmpi. It captures job
// metadata plus the same inputs the CLI flags provide (executable, platform,
// auxiliary files, arguments, wafer reservation). CLI flags take precedence
// over these defaults when set.
type manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Executable  string   `yaml:"executable"`
	Platform    string   `yaml:"platform"`
	Base        string   `yaml:"base,omitempty"`
	Files       []string `yaml:"files,omitempty"`
	Args        []string `yaml:"args,omitempty"`
	Wafer       int      `yaml:"wafer,omitempty"`
}
