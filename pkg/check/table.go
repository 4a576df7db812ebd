package check

import "github.com/leapstack-labs/dimcheck/pkg/units"

// Entry is a variable-table entry. An identifier resolves to exactly one
// of Variable or Function; absence from the table is the third case.
type Entry interface {
	entry()
}

// Variable describes a named model quantity.
type Variable struct {
	Dimensions units.Dimension
	IsBoolean  bool
	Constant   bool // value known at definition time
	Scalar     bool // not an array
	Value      float64
}

func (*Variable) entry() {}

// GetValue returns the variable's current value. It is only meaningful
// for constant scalar variables, which is the only case the constant
// evaluator consults.
func (v *Variable) GetValue() float64 {
	return v.Value
}

// ArgKind tags an expected-argument entry.
type ArgKind int

// Argument sentinel kinds.
const (
	ArgDim     ArgKind = iota // argument must match Dimensions exactly
	ArgAny                    // any dimension accepted
	ArgBoolean                // argument must be boolean-typed
)

// ArgSpec is one entry in a function's expected-argument list.
type ArgSpec struct {
	Kind       ArgKind
	Dimensions units.Dimension // meaningful for ArgDim
}

// AnyArg accepts any dimension.
func AnyArg() ArgSpec {
	return ArgSpec{Kind: ArgAny}
}

// BooleanArg requires a boolean-typed argument.
func BooleanArg() ArgSpec {
	return ArgSpec{Kind: ArgBoolean}
}

// DimArg requires an argument with exactly the given dimension.
func DimArg(d units.Dimension) ArgSpec {
	return ArgSpec{Kind: ArgDim, Dimensions: d}
}

// ReturnKind tags a function's return-dimension rule.
type ReturnKind int

// Return rule kinds.
const (
	ReturnFixed    ReturnKind = iota // always the same dimension
	ReturnBoolean                    // boolean result, dimensionless
	ReturnComputed                   // derived from the argument dimensions
)

// ReturnRule describes how a function's result dimension is determined.
type ReturnRule struct {
	Kind       ReturnKind
	Dimensions units.Dimension // meaningful for ReturnFixed
	Compute    func(args []units.Dimension) (units.Dimension, error)
}

// FixedReturn always returns the given dimension.
func FixedReturn(d units.Dimension) *ReturnRule {
	return &ReturnRule{Kind: ReturnFixed, Dimensions: d}
}

// BooleanReturn marks a boolean (dimensionless) result.
func BooleanReturn() *ReturnRule {
	return &ReturnRule{Kind: ReturnBoolean}
}

// ComputedReturn derives the result dimension from the argument
// dimensions, in call order.
func ComputedReturn(fn func(args []units.Dimension) (units.Dimension, error)) *ReturnRule {
	return &ReturnRule{Kind: ReturnComputed, Compute: fn}
}

// Function describes a callable's dimensional contract. Args and Return
// may be nil for functions registered without unit information; calling
// such a function is a configuration error.
type Function struct {
	Args           []ArgSpec
	Return         *ReturnRule
	ReturnsBoolean bool
}

func (*Function) entry() {}

// Table maps identifier names to their descriptors. The checker only
// reads it; callers own its lifecycle and synchronization.
type Table map[string]Entry

// Merge returns a new table containing t's entries overlaid with other's.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	for name, e := range t {
		out[name] = e
	}
	for name, e := range other {
		out[name] = e
	}
	return out
}
