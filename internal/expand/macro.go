package expand

import (
	"monoforce/internal/diag"
	"monoforce/internal/mono"
	"monoforce/internal/parser"
)

// expandMacro replaces a `mono!(path);` invocation with its declaration.
func (e *expander) expandMacro(m *parser.MacroCall) {
	e.res.Sites++
	switch {
	case m.InAssoc:
		diag.ReportError(e.rep, diag.MonoAssociatedFn, m.Span,
			"`"+m.Path+"!` cannot expand inside an impl or trait block").
			WithNote(m.Span, "move the invocation next to the impl block").
			Emit()
		return
	case !m.ItemPosition:
		diag.ReportError(e.rep, diag.SynUnexpectedToken, m.Span,
			"`"+m.Path+"!` expands to an item and must be used in item or statement position").Emit()
		return
	}

	decl, err := mono.ExpandPath(m.Args)
	if err != nil {
		e.reportMono(diag.SevError, err, nil)
		return
	}
	e.edits = append(e.edits, diag.FixEdit{Span: m.Span, NewText: decl})
	e.res.Decls++
}
