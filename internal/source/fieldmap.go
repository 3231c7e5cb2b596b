package source

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxMoveFields is the number of move columns a row can carry.
const MaxMoveFields = 4

// FieldMap names the source columns holding each entry attribute.
type FieldMap struct {
	Name           string   `yaml:"name"`
	Usage          string   `yaml:"usage"`
	SecondaryUsage string   `yaml:"secondary_usage"`
	Moves          []string `yaml:"moves"`
	Ability        string   `yaml:"ability"`
	Choices        string   `yaml:"choices"`
	HeldItem       string   `yaml:"held_item"`
}

// DefaultFieldMap returns the column names produced by the checklist
// spreadsheet export. The name column is headed "Fire" and the usage column
// "Level 80" because the export took the first sheet's header row.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		Name:           "Fire",
		Usage:          "Level 80",
		SecondaryUsage: "Secondary Usage",
		Moves:          []string{"Moves", "__2", "__3", "__4"},
		Ability:        "Ability",
		Choices:        "Choices",
		HeldItem:       "held_item",
	}
}

// LoadFieldMap reads a YAML mapping file. Keys missing from the file keep
// their default column names. An empty path returns the defaults.
func LoadFieldMap(path string) (FieldMap, error) {
	fm := DefaultFieldMap()
	if strings.TrimSpace(path) == "" {
		return fm, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fm, fmt.Errorf("failed to read field map: %w", err)
	}
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return fm, fmt.Errorf("failed to parse field map %s: %w", path, err)
	}
	if err := fm.Validate(); err != nil {
		return fm, fmt.Errorf("invalid field map %s: %w", path, err)
	}
	return fm, nil
}

// Validate checks that the required columns are named.
func (fm FieldMap) Validate() error {
	if strings.TrimSpace(fm.Name) == "" {
		return fmt.Errorf("name column is required")
	}
	if strings.TrimSpace(fm.Usage) == "" {
		return fmt.Errorf("usage column is required")
	}
	if len(fm.Moves) > MaxMoveFields {
		return fmt.Errorf("at most %d move columns are supported, got %d", MaxMoveFields, len(fm.Moves))
	}
	return nil
}
