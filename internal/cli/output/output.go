// Package output renders CLI results and diagnostics, with styling
// that degrades to plain text outside a terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Mode selects how output is styled.
type Mode string

const (
	// ModeAuto styles output only when stdout is a terminal.
	ModeAuto Mode = "auto"
	// ModePlain disables styling.
	ModePlain Mode = "plain"
	// ModeColor forces styling.
	ModeColor Mode = "color"
)

// Styles holds the lipgloss styles the renderer uses.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns the standard style set.
func DefaultStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer writes styled output to stdout/stderr writers.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	styles *Styles
	color  bool
}

// NewRenderer creates a renderer for the given mode.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	color := false
	switch mode {
	case ModeColor:
		color = true
	case ModePlain:
		color = false
	default:
		color = term.IsTerminal(int(os.Stdout.Fd()))
	}
	return &Renderer{out: out, errOut: errOut, styles: DefaultStyles(), color: color}
}

// Out returns the renderer's stdout writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Printf writes unstyled output.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Successf writes a success-styled line.
func (r *Renderer) Successf(format string, args ...any) {
	fmt.Fprintln(r.out, r.render(r.styles.Success, fmt.Sprintf(format, args...)))
}

// Dimf writes a dimmed line.
func (r *Renderer) Dimf(format string, args ...any) {
	fmt.Fprintln(r.out, r.render(r.styles.Dim, fmt.Sprintf(format, args...)))
}

// Error writes an error-styled report to stderr.
func (r *Renderer) Error(err error) {
	fmt.Fprintf(r.errOut, "%s %v\n", r.render(r.styles.Error, "Error:"), err)
}

func (r *Renderer) render(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}
