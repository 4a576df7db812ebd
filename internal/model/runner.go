package model

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/dimcheck/pkg/check"
	"github.com/leapstack-labs/dimcheck/pkg/units"
	"golang.org/x/sync/errgroup"
)

// FileResult holds the outcome of checking one model file.
type FileResult struct {
	Path        string       `json:"path"`
	Model       string       `json:"model"`
	Checked     int          `json:"checked"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	LoadError   string       `json:"load_error,omitempty"`
}

// ErrorCount returns the number of error-severity diagnostics.
func (r *FileResult) ErrorCount() int {
	if r.LoadError != "" {
		return 1
	}
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// RunResult aggregates one run over a set of model files.
type RunResult struct {
	ID       uuid.UUID     `json:"id"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Files    []FileResult  `json:"files"`
}

// ErrorCount returns the total number of errors across all files.
func (r *RunResult) ErrorCount() int {
	n := 0
	for i := range r.Files {
		n += r.Files[i].ErrorCount()
	}
	return n
}

// Runner checks model files against a project variable table.
type Runner struct {
	table       check.Table
	concurrency int
}

// NewRunner creates a runner. A non-positive concurrency defaults to
// the number of CPUs.
func NewRunner(table check.Table, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Runner{table: table, concurrency: concurrency}
}

// Run checks every file, in parallel, and aggregates the findings.
// Diagnostics do not abort the run; only context cancellation does.
func (r *Runner) Run(ctx context.Context, paths []string) (*RunResult, error) {
	result := &RunResult{
		ID:      uuid.New(),
		Started: time.Now(),
		Files:   make([]FileResult, len(paths)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result.Files[i] = r.checkFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(result.Started)
	return result, nil
}

func (r *Runner) checkFile(path string) FileResult {
	m, err := Load(path)
	if err != nil {
		return FileResult{Path: path, LoadError: err.Error()}
	}

	table, err := m.Table(r.table)
	if err != nil {
		return FileResult{Path: path, Model: m.Name, LoadError: err.Error()}
	}

	res := FileResult{Path: path, Model: m.Name}
	for _, eq := range m.Equations {
		res.Checked++
		res.Diagnostics = append(res.Diagnostics, checkEquation(m, eq, table)...)
	}
	return res
}

// checkEquation validates a single equation against the table and
// its declared expectations.
func checkEquation(m *Model, eq Equation, table check.Table) []Diagnostic {
	diag := func(sev Severity, msg string) Diagnostic {
		return Diagnostic{
			File:     m.Path,
			Model:    m.Name,
			Equation: eq.Name,
			Severity: sev,
			Message:  msg,
		}
	}

	if eq.Boolean {
		isBool, err := check.IsBooleanExpression(eq.Expr, table)
		if err != nil {
			return []Diagnostic{diag(SeverityError, err.Error())}
		}
		if !isBool {
			return []Diagnostic{diag(SeverityError,
				fmt.Sprintf("expression %q is not boolean", eq.Expr))}
		}
		// Boolean type inference does not touch comparison operands, so
		// a dimension pass is still needed to catch `v > I` with v in
		// volt and I in amp. The resulting dimension is irrelevant.
		if _, err := check.ParseExpressionDimensions(eq.Expr, table); err != nil {
			return []Diagnostic{diag(SeverityError, err.Error())}
		}
		return nil
	}

	dim, err := check.ParseExpressionDimensions(eq.Expr, table)
	if err != nil {
		return []Diagnostic{diag(SeverityError, err.Error())}
	}

	if eq.Unit == "" {
		return []Diagnostic{diag(SeverityInfo,
			fmt.Sprintf("inferred dimension (%s)", dim))}
	}

	want, err := units.Parse(eq.Unit)
	if err != nil {
		return []Diagnostic{diag(SeverityError,
			fmt.Sprintf("expected unit %q: %s", eq.Unit, err))}
	}
	if !dim.Equal(want) {
		return []Diagnostic{diag(SeverityError,
			fmt.Sprintf("expression has dimension (%s), but should be (%s)", dim, want))}
	}
	return nil
}
