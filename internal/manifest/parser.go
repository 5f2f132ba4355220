package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse unmarshals project.yaml content and applies defaults.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project config: %w", err)
	}
	p.ApplyDefaults()
	return &p, nil
}

// ParseFile reads and parses the project config at path.
func ParseFile(path string) (*Project, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
