// Package diag turns parser errors into serializable diagnostics and renders
// them for terminals.
package diag

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/raymyers/golite/pkg/parser"
	"github.com/samber/lo"
)

// Diagnostic is one parse problem in wire form
type Diagnostic struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Message  string   `json:"message" yaml:"message"`
	Expected []string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual   string   `json:"actual,omitempty" yaml:"actual,omitempty"`
	Line     int      `json:"line" yaml:"line"`
	Column   int      `json:"column" yaml:"column"`
}

var kindNames = []struct {
	err  error
	name string
}{
	{parser.ErrUnterminated, "unterminated"},
	{parser.ErrInvalidType, "invalid_type"},
	{parser.ErrRecursionLimit, "recursion_limit"},
	{parser.ErrTooManyErrors, "too_many_errors"},
	{parser.ErrUnexpectedToken, "unexpected_token"},
}

// KindName returns the wire name of a parser error kind
func KindName(err error) string {
	for _, k := range kindNames {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "error"
}

// FromSyntaxError converts a single parser diagnostic
func FromSyntaxError(se *parser.SyntaxError) Diagnostic {
	return Diagnostic{
		Kind:     KindName(se),
		Message:  se.Msg,
		Expected: se.Expected,
		Actual:   se.Actual,
		Line:     se.Pos.Line,
		Column:   se.Pos.Column,
	}
}

// FromError flattens the error returned by parser.Parse. Errors that did not
// come from the parser become a single positionless diagnostic.
func FromError(err error) []Diagnostic {
	if err == nil {
		return nil
	}
	var list parser.ErrorList
	if errors.As(err, &list) {
		return lo.Map(list, func(se *parser.SyntaxError, _ int) Diagnostic {
			return FromSyntaxError(se)
		})
	}
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		return []Diagnostic{FromSyntaxError(se)}
	}
	return []Diagnostic{{Kind: "error", Message: err.Error()}}
}

// Sort orders diagnostics by position, keeping discovery order for ties
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
}

// Summary counts diagnostics per kind
func Summary(diags []Diagnostic) map[string]int {
	return lo.CountValuesBy(diags, func(d Diagnostic) string { return d.Kind })
}

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
	colorCaret = lipgloss.Color("#F59E0B")
)

// Renderer writes diagnostics in the file:line:col form compilers use,
// followed by the offending source line and a caret when Source is set.
type Renderer struct {
	Filename string
	Source   string
	Color    bool

	errStyle   lipgloss.Style
	posStyle   lipgloss.Style
	caretStyle lipgloss.Style
}

// NewRenderer creates a renderer for diagnostics of one file
func NewRenderer(filename, source string, color bool) *Renderer {
	r := &Renderer{Filename: filename, Source: source, Color: color}
	if color {
		r.errStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
		r.posStyle = lipgloss.NewStyle().Foreground(colorMuted)
		r.caretStyle = lipgloss.NewStyle().Foreground(colorCaret).Bold(true)
	}
	return r
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return s.Render(text)
}

// Render writes every diagnostic to w
func (r *Renderer) Render(w io.Writer, diags []Diagnostic) error {
	var lines []string
	if r.Source != "" {
		lines = strings.Split(r.Source, "\n")
	}
	name := r.Filename
	if name == "" {
		name = "<input>"
	}

	for _, d := range diags {
		pos := fmt.Sprintf("%s:%d:%d:", name, d.Line, d.Column)
		if _, err := fmt.Fprintf(w, "%s %s %s\n",
			r.style(r.posStyle, pos), r.style(r.errStyle, "error:"), d.Message); err != nil {
			return err
		}
		if d.Line < 1 || d.Line > len(lines) {
			continue
		}
		src := strings.TrimRight(lines[d.Line-1], "\r")
		if _, err := fmt.Fprintf(w, "  %s\n  %s%s\n",
			src, caretPad(src, d.Column), r.style(r.caretStyle, "^")); err != nil {
			return err
		}
	}
	return nil
}

// caretPad returns the indentation that puts a caret under column col,
// keeping tabs so the caret lines up with the source line.
func caretPad(src string, col int) string {
	var sb strings.Builder
	for i := 0; i < col-1; i++ {
		if i < len(src) && src[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// Error returns a one-line description of d
func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", d.Line, d.Column, d.Message)
}
