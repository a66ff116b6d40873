package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrFormatNotFound = errors.New("format config file not found")
	ErrFormatParsing  = errors.New("format config parsing failed")
)

// CommandBinding binds a command key from the catalog to a comment pattern.
type CommandBinding struct {
	Key     string
	Pattern string
}

// CommandBindings is an ordered command mapping. Order matters: commands are
// evaluated in the order they are written in the file.
type CommandBindings []CommandBinding

// UnmarshalYAML decodes a mapping node while keeping its key order.
func (b *CommandBindings) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: commands must be a mapping of key to pattern", node.Line)
	}

	seen := make(map[string]struct{}, len(node.Content)/2)
	bindings := make(CommandBindings, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: pattern for command %q must be a string", value.Line, key.Value)
		}
		if _, dup := seen[key.Value]; dup {
			return fmt.Errorf("line %d: command %q is defined twice", key.Line, key.Value)
		}
		seen[key.Value] = struct{}{}
		bindings = append(bindings, CommandBinding{Key: key.Value, Pattern: value.Value})
	}

	*b = bindings
	return nil
}

// Format lists the configured commands and CI backends.
type Format struct {
	Commands CommandBindings `yaml:"commands"`
	CI       []string        `yaml:"CI"`
}

// FormatConfig represents the structure of the format.yml file.
type FormatConfig struct {
	Format Format `yaml:"format"`
}

// DefaultFormatConfig returns a config with no commands and no CI backends.
func DefaultFormatConfig() *FormatConfig {
	return &FormatConfig{
		Format: Format{
			Commands: CommandBindings{},
			CI:       []string{},
		},
	}
}

// LoadFormatConfig loads and parses the format file. A missing file yields the
// default config together with ErrFormatNotFound so callers can decide whether
// running without commands is acceptable.
func LoadFormatConfig(path string) (*FormatConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		if isNotExist(err) {
			return DefaultFormatConfig(), ErrFormatNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return ParseFormatConfig(data)
}

// ParseFormatConfig parses format YAML.
func ParseFormatConfig(data []byte) (*FormatConfig, error) {
	cfg := DefaultFormatConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormatParsing, err)
	}
	return cfg, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
