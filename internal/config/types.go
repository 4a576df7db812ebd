// Package config provides shared configuration types for dimcheck.
// This package is decoupled from CLI concerns so other tools can load a
// project's variable and function declarations directly.
package config

import (
	"fmt"

	"github.com/leapstack-labs/dimcheck/internal/starlark"
	"github.com/leapstack-labs/dimcheck/pkg/check"
	"github.com/leapstack-labs/dimcheck/pkg/units"
)

// VariableConfig declares one model quantity.
type VariableConfig struct {
	// Unit is parsed from a unit expression string, e.g. "volt" or
	// "m * s**-2". Absent means dimensionless.
	Unit units.Dimension `koanf:"unit"`

	Boolean  bool    `koanf:"boolean"`
	Constant bool    `koanf:"constant"`
	Scalar   bool    `koanf:"scalar"`
	Value    float64 `koanf:"value"`
}

// ReturnConfig declares how a function's result dimension is derived.
// Exactly one of Unit, Boolean, or Rule must be set.
type ReturnConfig struct {
	Unit    string `koanf:"unit"`    // fixed result unit expression
	Boolean bool   `koanf:"boolean"` // boolean (dimensionless) result
	Rule    string `koanf:"rule"`    // Starlark expression over "args"
}

// FunctionConfig declares one callable's dimensional contract.
type FunctionConfig struct {
	// Args lists the expected argument units in call order. Each entry
	// is a unit expression, or the sentinel "any" or "boolean".
	Args []string `koanf:"args"`

	Returns ReturnConfig `koanf:"returns"`

	// Boolean marks the function as boolean-valued for type inference.
	Boolean bool `koanf:"boolean"`
}

// Config is the loaded project configuration.
type Config struct {
	ModelsDir  string `koanf:"models_dir"`
	Output     string `koanf:"output"`
	Verbose    bool   `koanf:"verbose"`
	NoBuiltins bool   `koanf:"no_builtins"`

	Variables map[string]VariableConfig `koanf:"variables"`
	Functions map[string]FunctionConfig `koanf:"functions"`

	// ProjectRoot is the directory all relative paths resolve against.
	// It is derived at load time, never read from the file.
	ProjectRoot string `koanf:"-"`
}

// Validate checks settings that have a closed set of values.
func (c *Config) Validate() error {
	switch c.Output {
	case "auto", "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid output format %q (must be auto, text, or json)", c.Output)
	}
}

// Table builds the checker's variable table from the declarations,
// overlaid on the builtin function registry unless disabled.
func (c *Config) Table() (check.Table, error) {
	table := check.Table{}
	if !c.NoBuiltins {
		table = check.DefaultFunctions()
	}

	for name, v := range c.Variables {
		table[name] = &check.Variable{
			Dimensions: v.Unit,
			IsBoolean:  v.Boolean,
			Constant:   v.Constant,
			Scalar:     v.Scalar,
			Value:      v.Value,
		}
	}

	for name, f := range c.Functions {
		fn, err := buildFunction(name, f)
		if err != nil {
			return nil, err
		}
		table[name] = fn
	}

	return table, nil
}

func buildFunction(name string, f FunctionConfig) (*check.Function, error) {
	args := make([]check.ArgSpec, len(f.Args))
	for i, spec := range f.Args {
		switch spec {
		case "any":
			args[i] = check.AnyArg()
		case "boolean":
			args[i] = check.BooleanArg()
		default:
			dim, err := units.Parse(spec)
			if err != nil {
				return nil, fmt.Errorf("function %q argument %d: %w", name, i+1, err)
			}
			args[i] = check.DimArg(dim)
		}
	}

	ret, err := buildReturn(name, f.Returns)
	if err != nil {
		return nil, err
	}

	return &check.Function{
		Args:           args,
		Return:         ret,
		ReturnsBoolean: f.Boolean || f.Returns.Boolean,
	}, nil
}

func buildReturn(name string, r ReturnConfig) (*check.ReturnRule, error) {
	set := 0
	if r.Unit != "" {
		set++
	}
	if r.Boolean {
		set++
	}
	if r.Rule != "" {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("function %q: exactly one of returns.unit, returns.boolean, returns.rule must be set", name)
	}

	switch {
	case r.Boolean:
		return check.BooleanReturn(), nil

	case r.Unit != "":
		dim, err := units.Parse(r.Unit)
		if err != nil {
			return nil, fmt.Errorf("function %q return unit: %w", name, err)
		}
		return check.FixedReturn(dim), nil

	default:
		rule, err := starlark.NewRule(name, r.Rule)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", name, err)
		}
		return check.ComputedReturn(rule.Compute), nil
	}
}
