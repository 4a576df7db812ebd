package commands

import (
	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/dimcheck/internal/cli/output"
	"github.com/leapstack-labs/dimcheck/pkg/units"
	"github.com/spf13/cobra"
)

// NewUnitsCommand creates the units command.
func NewUnitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "units [expressions...]",
		Short: "List known units or resolve unit expressions",
		Long: `Without arguments, units lists every registered unit name with its
dimension. With arguments, each one is evaluated as a unit expression
and its dimension printed, e.g. "dimcheck units 'volt / second'".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer

			if len(args) > 0 {
				return resolveUnits(r, args)
			}
			return listUnits(r)
		},
	}
}

func resolveUnits(r *output.Renderer, exprs []string) error {
	resolved := make(map[string]string, len(exprs))
	for _, expr := range exprs {
		dim, err := units.Parse(expr)
		if err != nil {
			return err
		}
		resolved[expr] = dim.String()
	}

	if r.Mode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(resolved)
	}

	for _, expr := range exprs {
		r.Printf("%s = %s\n", expr, resolved[expr])
	}
	return nil
}

func listUnits(r *output.Renderer) error {
	names := units.Names()

	if r.Mode() == output.ModeJSON {
		listing := make(map[string]string, len(names))
		for _, name := range names {
			d, _ := units.Lookup(name)
			listing[name] = d.String()
		}
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	}

	t := r.NewTable()
	t.AppendHeader(table.Row{"unit", "dimension"})
	for _, name := range names {
		d, _ := units.Lookup(name)
		t.AppendRow(table.Row{name, d.String()})
	}
	t.Render()
	return nil
}
