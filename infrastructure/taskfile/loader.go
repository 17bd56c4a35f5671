package taskfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ee-export/domain/export"

	"gopkg.in/yaml.v3"
)

// Stdin is the path that selects standard input
const Stdin = "-"

// Load reads a legacy task parameter file. Files ending in .yaml or .yml are
// decoded as YAML; everything else, including stdin, as JSON.
func Load(path string, stdin io.Reader) (*export.LegacyParams, error) {
	var (
		data []byte
		err  error
	)
	if path == Stdin {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	}

	params, err := export.ParseLegacyParamsJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse task file: %w", err)
	}
	return params, nil
}

// ParseYAML decodes a YAML task document
func ParseYAML(data []byte) (*export.LegacyParams, error) {
	var bag map[string]any
	if err := yaml.Unmarshal(data, &bag); err != nil {
		return nil, fmt.Errorf("failed to parse task file: %w", err)
	}
	if bag == nil {
		return nil, fmt.Errorf("failed to parse task file: document is empty")
	}
	return export.NewLegacyParams(bag), nil
}
