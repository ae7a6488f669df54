package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either a bare pattern string or a mapping.
func (s *PatternSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Pattern = value.Value
		s.UnlessFollowedBy = ""
		return nil
	}
	type plain PatternSpec
	return value.Decode((*plain)(s))
}

// Load reads a YAML rule file on top of the built-in tables. A table present
// in the file replaces the built-in one; absent tables keep their defaults.
// An empty path returns the defaults.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML rule data on top of the built-in tables.
func Parse(data []byte) (*Set, error) {
	file := DefaultFile()
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rule file: %w", err)
	}
	return Compile(file)
}
