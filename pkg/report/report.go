// Package report renders check results for a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"minic/pkg/compiler"
	"minic/pkg/sources"
	"minic/pkg/utils"
)

// SuccessMessage is printed for every file that checks cleanly.
const SuccessMessage = "Parsing completed successfully! No Syntax Error"

// Colors
var (
	colorError  = lipgloss.Color("#EF4444")
	colorOK     = lipgloss.Color("#10B981")
	colorAccent = lipgloss.Color("#F59E0B")
	colorName   = lipgloss.Color("#7C3AED")
	colorMuted  = lipgloss.Color("#6B7280")
)

type styles struct {
	path    lipgloss.Style
	kind    lipgloss.Style
	message lipgloss.Style
	gutter  lipgloss.Style
	ok      lipgloss.Style
	header  lipgloss.Style
	name    lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		path:    r.NewStyle().Bold(true).Underline(true),
		kind:    r.NewStyle().Bold(true).Foreground(colorError),
		message: r.NewStyle().Foreground(colorError),
		gutter:  r.NewStyle().Foreground(colorMuted),
		ok:      r.NewStyle().Bold(true).Foreground(colorOK),
		header:  r.NewStyle().Bold(true),
		name:    r.NewStyle().Foreground(colorName),
		value:   r.NewStyle().Foreground(colorAccent),
		muted:   r.NewStyle().Foreground(colorMuted),
	}
}

// Profile maps a --color mode to a terminal colour profile for w.
// "auto" follows the terminal and the NO_COLOR / CLICOLOR_FORCE conventions.
func Profile(mode string, w io.Writer) termenv.Profile {
	switch mode {
	case "never":
		return termenv.Ascii
	case "always":
		return termenv.TrueColor
	default:
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

// Printer writes diagnostics, symbol tables and token listings to one writer.
type Printer struct {
	w      io.Writer
	styles styles
}

// NewPrinter creates a Printer for w; mode is "auto", "always" or "never".
func NewPrinter(w io.Writer, mode string) *Printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(Profile(mode, w))
	return &Printer{w: w, styles: newStyles(r)}
}

// File prints a header naming f.
func (p *Printer) File(f *sources.File) {
	fmt.Fprintln(p.w, p.styles.path.Render(utils.DisplayPath(f.Path)))
}

// Reporter returns a compiler.Reporter that prints diagnostics for f,
// quoting the offending source line when it is available. f may be nil.
func (p *Printer) Reporter(f *sources.File) compiler.Reporter {
	return compiler.ReporterFunc(func(message string, line int) {
		p.Diagnostic(f, message, line)
	})
}

// Diagnostic prints "<Kind>: <message> on line <N>" followed by the source line.
func (p *Printer) Diagnostic(f *sources.File, message string, line int) {
	kind, text, found := strings.Cut(message, ": ")
	if found {
		fmt.Fprintf(p.w, "%s%s\n",
			p.styles.kind.Render(kind+":"),
			p.styles.message.Render(fmt.Sprintf(" %s on line %d", text, line)))
	} else {
		fmt.Fprintln(p.w, p.styles.message.Render(fmt.Sprintf("%s on line %d", message, line)))
	}

	if f == nil {
		return
	}
	if src := f.Line(line); src != "" {
		fmt.Fprintf(p.w, "%s %s\n", p.styles.gutter.Render(fmt.Sprintf("%5d |>", line)), src)
	}
}

// Success prints SuccessMessage.
func (p *Printer) Success() {
	fmt.Fprintln(p.w, p.styles.ok.Render(SuccessMessage))
}

// Result prints the symbol table of res and the values of its return statements.
func (p *Printer) Result(res *compiler.Result) {
	p.Symbols(res.Symbols)
	if len(res.Returns) == 0 {
		return
	}
	vals := make([]string, len(res.Returns))
	for i, v := range res.Returns {
		vals[i] = v.String()
	}
	fmt.Fprintf(p.w, "%s %s\n", p.styles.header.Render("Returns:"), p.styles.value.Render(strings.Join(vals, ", ")))
}

// Symbols prints the table in name order, one symbol per line.
func (p *Printer) Symbols(st *compiler.SymbolTable) {
	if st.Len() == 0 {
		fmt.Fprintf(p.w, "%s %s\n", p.styles.header.Render("Symbols:"), p.styles.muted.Render("(empty)"))
		return
	}
	fmt.Fprintln(p.w, p.styles.header.Render("Symbols:"))
	for _, name := range st.Names() {
		sym, _ := st.Lookup(name)
		typ := sym.Type.Describe()
		fmt.Fprintf(p.w, "  %s%s  %s%s  = %s  %s\n",
			p.styles.name.Render(name), pad(name, 20),
			typ, pad(typ, 6),
			p.styles.value.Render(sym.Value.String()),
			p.styles.muted.Render(fmt.Sprintf("line %d", sym.Line)))
	}
}

// Tokens prints one token per line: line number, kind and lexeme.
func (p *Printer) Tokens(tokens []compiler.Token) {
	for _, tok := range tokens {
		kind := tok.Type.String()
		fmt.Fprintf(p.w, "%s  %s%s %s\n",
			p.styles.gutter.Render(fmt.Sprintf("%5d", tok.Line)),
			p.styles.name.Render(kind), pad(kind, 12),
			tok.Lexeme)
	}
}

func pad(s string, width int) string {
	if n := width - len(s); n > 0 {
		return strings.Repeat(" ", n)
	}
	return ""
}
