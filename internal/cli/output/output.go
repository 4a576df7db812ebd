// Package output provides rendering helpers for CLI commands: output
// modes, terminal-aware styling, and table formatting.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto Mode = "auto"
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

// Styles holds the lipgloss styles used across commands. When styling
// is disabled (non-TTY output), every style is a no-op.
type Styles struct {
	Header  lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles creates the style set. Styling is applied only when enabled.
func NewStyles(enabled bool) *Styles {
	if !enabled {
		plain := lipgloss.NewStyle()
		return &Styles{Header: plain, Error: plain, Info: plain, Success: plain, Muted: plain}
	}
	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:   lipgloss.NewStyle().Faint(true),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer. ModeAuto resolves to text; styles are
// enabled only when the output is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" || mode == ModeAuto {
		mode = ModeText
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: NewStyles(isTerminal(out)),
	}
}

// isTerminal reports whether the writer is a TTY.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Mode returns the active output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Writer returns the output writer, for direct encoding (e.g. JSON).
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Styles returns the active style set.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Errorf writes formatted output to the error writer.
func (r *Renderer) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.errOut, format, a...)
}

// NewTable creates a table writer with the house style, rendering to
// the renderer's output.
func (r *Renderer) NewTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	return t
}
