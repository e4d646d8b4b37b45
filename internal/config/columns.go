package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"
	"gopkg.in/yaml.v3"
)

// LoadColumns reads header overrides from a YAML file. Fields left out of the
// file keep the season export defaults. An empty path returns the defaults.
func LoadColumns(path string) (sheet.Columns, error) {
	defaults := sheet.DefaultColumns()
	path = strings.TrimSpace(path)
	if path == "" {
		return defaults, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return sheet.Columns{}, fmt.Errorf("read columns file: %w", err)
	}

	var override sheet.Columns
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&override); err != nil {
		return sheet.Columns{}, fmt.Errorf("decode columns file %s: %w", path, err)
	}

	columns := override.Merge(defaults)
	if err := validator.New().Struct(columns); err != nil {
		return sheet.Columns{}, fmt.Errorf("validate columns file %s: %w", path, err)
	}
	return columns, nil
}
