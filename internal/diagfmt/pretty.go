package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"monoforce/internal/diag"
	"monoforce/internal/fix"
	"monoforce/internal/source"
)

const tabWidth = 4

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := printer{w: w, fs: fs, opts: opts}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		p.diagnostic(&d)
	}
}

type printer struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *printer) paint(s string, attrs ...color.Attribute) string {
	if !p.opts.Color {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func (p *printer) sevAttrs(sev diag.Severity) []color.Attribute {
	switch sev {
	case diag.SevError:
		return []color.Attribute{color.FgRed, color.Bold}
	case diag.SevWarning:
		return []color.Attribute{color.FgYellow, color.Bold}
	default:
		return []color.Attribute{color.FgCyan, color.Bold}
	}
}

func (p *printer) location(sp source.Span) string {
	f := p.fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := p.fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(formatPath(p.opts.PathMode), p.fs.BaseDir()), start.Line, start.Col)
}

func (p *printer) diagnostic(d *diag.Diagnostic) {
	sev := p.sevAttrs(d.Severity)
	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		p.paint(p.location(d.Primary), color.Bold),
		p.paint(d.Severity.String(), sev...),
		p.paint(d.Code.ID(), sev...),
		d.Message)
	p.snippet(d.Primary, sev)

	if p.opts.ShowNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			fmt.Fprintf(p.w, "  %s %s: %s\n", p.paint("note:", color.FgBlue, color.Bold), p.location(n.Span), n.Msg)
		}
	}
	if p.opts.ShowFixes {
		for i, f := range d.Fixes {
			p.fix(d, i, f)
		}
	}
}

func (p *printer) fix(d *diag.Diagnostic, idx int, f diag.Fix) {
	fmt.Fprintf(p.w, "  %s %s (id=%s)\n",
		p.paint(fmt.Sprintf("fix #%d:", idx+1), color.FgGreen, color.Bold), f.Title, fix.FixID(d, idx))
	for _, e := range f.Edits {
		start, end := p.fs.Resolve(e.Span)
		fmt.Fprintf(p.w, "    edit %d:%d-%d:%d apply=%q\n", start.Line, start.Col, end.Line, end.Col, e.NewText)
		if !p.opts.ShowPreview {
			continue
		}
		preview, err := buildFixEditPreview(p.fs, e)
		if err != nil {
			continue
		}
		fmt.Fprintln(p.w, "    preview:")
		for _, l := range preview.before {
			fmt.Fprintf(p.w, "      %s\n", p.paint("- "+l, color.FgRed))
		}
		for _, l := range preview.after {
			fmt.Fprintf(p.w, "      %s\n", p.paint("+ "+l, color.FgGreen))
		}
	}
}

// snippet печатает строку с подчёркиванием и opts.Context строк вокруг.
func (p *printer) snippet(sp source.Span, sev []color.Attribute) {
	f := p.fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := p.fs.Resolve(sp)
	ctx := uint32(max(p.opts.Context, 0))
	lines, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := min(start.Line+ctx, lines)
	gutter := len(fmt.Sprint(last))

	for n := first; n <= last; n++ {
		line := f.GetLine(n)
		fmt.Fprintf(p.w, "%*d | %s\n", gutter, n, p.clip(expandTabs(line)))
		if n != start.Line {
			continue
		}
		from := min(int(start.Col-1), len(line))
		to := len(line)
		if end.Line == start.Line {
			to = min(int(end.Col-1), len(line))
		}
		pad := runewidth.StringWidth(expandTabs(line[:from]))
		width := max(runewidth.StringWidth(expandTabs(line[from:to])), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(p.w, "%*s | %s%s\n", gutter, "", strings.Repeat(" ", pad), p.paint(marker, sev...))
	}
}

func (p *printer) clip(s string) string {
	if p.opts.Width == 0 {
		return s
	}
	return runewidth.Truncate(s, int(p.opts.Width), "…")
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
