package types

// Issue represents a lint finding on one logical line.
type Issue struct {
	Rule     string // registry name of the rule, e.g. "assert-is-none"
	Code     string // stable code prefix, e.g. "H203"
	Filename string
	Line     int    // 1-based physical line where the logical line starts
	Column   int    // byte offset within the logical line, as the rule reports it
	Message  string // begins with Code
}

// ConfigRule holds the per-rule switches read from the configuration file.
type ConfigRule struct {
	// Enabled overrides the rule's default state when present.
	Enabled *bool `yaml:"enabled"`

	// Methods and Args parameterize the assert-is-none rule: the method
	// names to look for and how many leading positional arguments to check.
	Methods []string `yaml:"methods,omitempty"`
	Args    int      `yaml:"args,omitempty"`
}
