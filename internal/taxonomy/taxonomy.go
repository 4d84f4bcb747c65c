// Package taxonomy holds the marker categories a classifier is built from.
package taxonomy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mikey/markerscan/internal/core"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidCategory is returned when a category violates the taxonomy rules
	ErrInvalidCategory = errors.New("invalid category")
	// ErrUnknownCategory is returned when an override names a category that does not exist
	ErrUnknownCategory = errors.New("unknown category")
)

// File is the on-disk shape of a taxonomy definition
type File struct {
	Categories []core.Category `yaml:"categories" toml:"categories"`
}

// Validate checks names, weights and pattern lists. Pattern syntax is
// checked when the classifier compiles them.
func Validate(cats []core.Category) error {
	if len(cats) == 0 {
		return fmt.Errorf("%w: taxonomy has no categories", ErrInvalidCategory)
	}
	seen := make(map[string]struct{}, len(cats))
	for i, c := range cats {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: category %d has no name", ErrInvalidCategory, i)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidCategory, c.Name)
		}
		seen[c.Name] = struct{}{}
		if !(c.Weight > 0) {
			return fmt.Errorf("%w: category %q has non-positive weight %v", ErrInvalidCategory, c.Name, c.Weight)
		}
		if len(c.Patterns) == 0 {
			return fmt.Errorf("%w: category %q has no patterns", ErrInvalidCategory, c.Name)
		}
	}
	return nil
}

// LoadFile reads a taxonomy from a YAML or TOML file, chosen by extension
func LoadFile(path string) ([]core.Category, error) {
	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse taxonomy YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return nil, fmt.Errorf("failed to parse taxonomy TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported taxonomy file type: %s", path)
	}

	if err := Validate(f.Categories); err != nil {
		return nil, err
	}
	return f.Categories, nil
}

// ApplyWeights returns a copy of cats with the given weights replaced
func ApplyWeights(cats []core.Category, overrides map[string]float64) ([]core.Category, error) {
	out := make([]core.Category, len(cats))
	copy(out, cats)

	index := make(map[string]int, len(out))
	for i, c := range out {
		index[strings.ToUpper(c.Name)] = i
	}
	for name, weight := range overrides {
		i, ok := index[strings.ToUpper(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
		out[i].Weight = weight
	}

	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}
