package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// RuleWidth is the width of horizontal rules in banners and summaries.
const RuleWidth = 60

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/help text color
	Good    lipgloss.Color
	Bad     lipgloss.Color
	Warn    lipgloss.Color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Good:    lipgloss.Color("#3fb950"),
	Bad:     lipgloss.Color("#f85149"),
	Warn:    lipgloss.Color("#d29922"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Rule  lipgloss.Style
	Help  lipgloss.Style
	Good  lipgloss.Style
	Bad   lipgloss.Style
	Warn  lipgloss.Style
}

// NewStyles creates styles from a theme using renderer r.
func NewStyles(r *lipgloss.Renderer, t Theme) Styles {
	return Styles{
		Title: r.NewStyle().Bold(true).Foreground(t.Primary),
		Label: r.NewStyle().Bold(true).Foreground(t.Primary),
		Rule:  r.NewStyle().Foreground(t.Primary),
		Help:  r.NewStyle().Foreground(t.Dim),
		Good:  r.NewStyle().Bold(true).Foreground(t.Good),
		Bad:   r.NewStyle().Bold(true).Foreground(t.Bad),
		Warn:  r.NewStyle().Foreground(t.Warn),
	}
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes human-readable status lines. Styling is applied only when
// the destination is a color-capable terminal.
type Printer struct {
	w      io.Writer
	color  bool
	styles Styles
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		color:  ColorEnabled(w),
		styles: NewStyles(lipgloss.NewRenderer(w), DefaultTheme),
	}
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Printf writes a formatted fragment without a trailing newline.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Println writes a formatted line.
func (p *Printer) Println(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Blank writes an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Rule writes a horizontal rule.
func (p *Printer) Rule() {
	fmt.Fprintln(p.w, p.render(p.styles.Rule, strings.Repeat("=", RuleWidth)))
}

// Banner writes a title framed by rules.
func (p *Printer) Banner(title string) {
	p.Rule()
	fmt.Fprintln(p.w, p.render(p.styles.Title, title))
	p.Rule()
}

// Stage writes "[tag] message" with the tag styled by kind.
func (p *Printer) Stage(tag string, format string, args ...any) {
	style := p.styles.Label
	switch tag {
	case "error", "failed":
		style = p.styles.Bad
	case "done":
		style = p.styles.Good
	}
	fmt.Fprintf(p.w, "%s %s\n", p.render(style, "["+tag+"]"), fmt.Sprintf(format, args...))
}

// Field writes an indented "Label: value" line.
func (p *Printer) Field(label string, value any) {
	fmt.Fprintf(p.w, "  %s %v\n", p.render(p.styles.Help, label+":"), value)
}

// Good renders text in the success style.
func (p *Printer) Good(text string) string {
	return p.render(p.styles.Good, text)
}

// Bad renders text in the failure style.
func (p *Printer) Bad(text string) string {
	return p.render(p.styles.Bad, text)
}

// Success prints a success message with checkmark
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.render(p.styles.Good, "✓"), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.w, "ℹ %s\n", fmt.Sprintf(format, args...))
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.render(p.styles.Warn, "⚠"), fmt.Sprintf(format, args...))
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
