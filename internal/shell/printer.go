package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer renders user-facing output. Core logic talks to this interface so
// terminal capabilities stay a presentation concern.
type Printer interface {
	Title(text string)
	Success(text string)
	Error(text string)
	Warn(text string)
	Println(text string)
	Printf(format string, args ...any)
}

const titleWidth = 50

// StylePrinter renders styled output with lipgloss.
type StylePrinter struct {
	w io.Writer

	title   lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
}

// NewPrinter builds a StylePrinter writing to w. With noColor set, all
// styling is dropped and output is plain text.
func NewPrinter(w io.Writer, noColor bool) *StylePrinter {
	p := &StylePrinter{w: w}
	if noColor {
		p.title = lipgloss.NewStyle()
		p.success = lipgloss.NewStyle()
		p.err = lipgloss.NewStyle()
		p.warn = lipgloss.NewStyle()
		return p
	}

	p.title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))  // bright cyan
	p.success = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")) // bright green
	p.err = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))      // bright red
	p.warn = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))    // bright yellow
	return p
}

// Title prints a banner: a rule, the centered text, another rule.
func (p *StylePrinter) Title(text string) {
	rule := strings.Repeat("=", titleWidth)
	banner := rule + "\n" + center(text, titleWidth) + "\n" + rule
	fmt.Fprintln(p.w, "\n"+p.title.Render(banner))
}

// Success prints a highlighted confirmation line.
func (p *StylePrinter) Success(text string) {
	fmt.Fprintln(p.w, p.success.Render(text))
}

// Error prints a highlighted error line.
func (p *StylePrinter) Error(text string) {
	fmt.Fprintln(p.w, p.err.Render(text))
}

// Warn prints a highlighted warning line.
func (p *StylePrinter) Warn(text string) {
	fmt.Fprintln(p.w, p.warn.Render(text))
}

// Println prints an unstyled line.
func (p *StylePrinter) Println(text string) {
	fmt.Fprintln(p.w, text)
}

// Printf prints unstyled formatted text.
func (p *StylePrinter) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
