// Package expand applies the forced-instantiation transforms to whole
// source files.
package expand

import (
	"monoforce/internal/diag"
	"monoforce/internal/fix"
	"monoforce/internal/lexer"
	"monoforce/internal/mono"
	"monoforce/internal/parser"
	"monoforce/internal/source"
)

type Options struct {
	Attributes []string // пусто: parser.DefaultNames
	PathMacros []string
	Mono       mono.Options
}

// Result describes one expanded file.
type Result struct {
	// Output is the expanded source. It is nil when any error was reported:
	// a file with errors produces diagnostics only.
	Output []byte
	// Decls counts emitted declarations.
	Decls int
	// Sites counts recognised attributes and macro calls.
	Sites int
}

// Changed reports whether the expansion differs from the input.
func (r Result) Changed() bool { return r.Decls > 0 }

// File expands every recognised attribute and path macro in f. Diagnostics
// go to rep.
func File(f *source.File, opts Options, rep diag.Reporter) Result {
	e := &expander{
		file: f,
		opts: opts,
		rep:  &tracker{next: diag.NewDedupReporter(rep)},
	}
	return e.run()
}

type expander struct {
	file  *source.File
	opts  Options
	rep   *tracker
	edits []diag.FixEdit
	res   Result
}

func (e *expander) run() Result {
	toks := lexer.New(e.file, lexer.Options{Reporter: e.rep}).All()
	scanned := parser.Scan(e.file, toks, parser.Options{
		Attributes: e.opts.Attributes,
		PathMacros: e.opts.PathMacros,
		Reporter:   e.rep,
	})

	for i := range scanned.Items {
		e.expandItem(&scanned.Items[i])
	}
	for i := range scanned.Macros {
		e.expandMacro(&scanned.Macros[i])
	}

	if e.rep.errors > 0 {
		return Result{Sites: e.res.Sites}
	}
	out, err := fix.ApplyEdits(e.file.Content, e.edits)
	if err != nil {
		// правки строятся здесь же и не должны пересекаться
		diag.ReportError(e.rep, diag.IOWriteFileError, source.Span{File: e.file.ID}, "internal error: "+err.Error()).Emit()
		return Result{Sites: e.res.Sites}
	}
	e.res.Output = out
	return e.res
}

// tracker считает ошибки, проходящие через репортер.
type tracker struct {
	next   diag.Reporter
	errors int
}

func (t *tracker) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	if sev == diag.SevError {
		t.errors++
	}
	if t.next != nil {
		t.next.Report(code, sev, primary, msg, notes, fixes)
	}
}
