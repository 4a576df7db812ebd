// Package model loads equation model files and checks their expressions
// for dimensional consistency.
package model

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/dimcheck/pkg/check"
	"github.com/leapstack-labs/dimcheck/pkg/units"
	"gopkg.in/yaml.v3"
)

// Equation is one named expression with an optional expected result.
type Equation struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`

	// Unit is the expected result unit expression. Empty means the
	// inferred dimension is reported but not enforced.
	Unit string `yaml:"unit"`

	// Boolean marks the expression as expected to be boolean-typed.
	Boolean bool `yaml:"boolean"`
}

// Variable is a per-file quantity declaration. It overlays the project
// table for this file only.
type Variable struct {
	Unit     string  `yaml:"unit"`
	Boolean  bool    `yaml:"boolean"`
	Constant bool    `yaml:"constant"`
	Scalar   bool    `yaml:"scalar"`
	Value    float64 `yaml:"value"`
}

// Model is one equation file.
type Model struct {
	Name      string              `yaml:"name"`
	Variables map[string]Variable `yaml:"variables"`
	Equations []Equation          `yaml:"equations"`

	// Path is the file the model was loaded from.
	Path string `yaml:"-"`
}

// Load reads and validates a model file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(m.Equations) == 0 {
		return nil, fmt.Errorf("%s: model declares no equations", path)
	}
	for i, eq := range m.Equations {
		if eq.Name == "" {
			return nil, fmt.Errorf("%s: equation %d has no name", path, i+1)
		}
		if eq.Expr == "" {
			return nil, fmt.Errorf("%s: equation %q has no expression", path, eq.Name)
		}
	}

	m.Path = path
	return &m, nil
}

// Discover returns the model files under dir, sorted by path.
func Discover(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Table overlays the model's own variable declarations on the project
// table.
func (m *Model) Table(base check.Table) (check.Table, error) {
	overlay := check.Table{}
	for name, v := range m.Variables {
		dim := units.Dimensionless
		if v.Unit != "" {
			parsed, err := units.Parse(v.Unit)
			if err != nil {
				return nil, fmt.Errorf("%s: variable %q: %w", m.Path, name, err)
			}
			dim = parsed
		}
		overlay[name] = &check.Variable{
			Dimensions: dim,
			IsBoolean:  v.Boolean,
			Constant:   v.Constant,
			Scalar:     v.Scalar,
			Value:      v.Value,
		}
	}
	return base.Merge(overlay), nil
}
