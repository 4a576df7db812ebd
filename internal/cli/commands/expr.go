package commands

import (
	"encoding/json"
	"fmt"

	"github.com/leapstack-labs/dimcheck/internal/cli/output"
	"github.com/leapstack-labs/dimcheck/pkg/check"
	"github.com/leapstack-labs/dimcheck/pkg/units"
	"github.com/spf13/cobra"
)

// exprResult is the JSON shape of an expr invocation.
type exprResult struct {
	Expr      string `json:"expr"`
	Dimension string `json:"dimension"`
	Boolean   bool   `json:"boolean"`
}

// NewExprCommand creates the expr command.
func NewExprCommand() *cobra.Command {
	var expectedUnit string

	cmd := &cobra.Command{
		Use:   "expr <expression>",
		Short: "Check a single expression",
		Long: `Expr determines the physical dimension and boolean type of one
expression against the project's declared variables and functions.

With --unit, the inferred dimension is additionally compared against
the given unit expression.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			expr := args[0]
			dim, err := check.ParseExpressionDimensions(expr, cmdCtx.Table)
			if err != nil {
				return err
			}
			isBool, err := check.IsBooleanExpression(expr, cmdCtx.Table)
			if err != nil {
				return err
			}

			if expectedUnit != "" {
				want, err := units.Parse(expectedUnit)
				if err != nil {
					return err
				}
				if !dim.Equal(want) {
					return fmt.Errorf("expression has dimension (%s), but should be (%s)", dim, want)
				}
			}

			r := cmdCtx.Renderer
			if r.Mode() == output.ModeJSON {
				enc := json.NewEncoder(r.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(exprResult{Expr: expr, Dimension: dim.String(), Boolean: isBool})
			}

			styles := r.Styles()
			r.Printf("%s %s\n", styles.Header.Render("dimension:"), dim)
			r.Printf("%s %t\n", styles.Header.Render("boolean:"), isBool)
			return nil
		},
	}

	cmd.Flags().StringVarP(&expectedUnit, "unit", "u", "", "Expected unit expression, e.g. \"volt / second\"")

	return cmd
}
