package expand

import (
	"errors"

	"monoforce/internal/diag"
	"monoforce/internal/fix"
	"monoforce/internal/mono"
	"monoforce/internal/parser"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

// reportMono converts a transform error into a diagnostic. attr is nil for
// path macros.
func (e *expander) reportMono(sev diag.Severity, err error, attr *parser.Attr) {
	var (
		perr   *mono.ParseError
		inc    *mono.IncompleteInstantiationError
		km     *mono.KindMismatchError
		dup    *mono.DuplicateSubstError
		unused *mono.UnusedSubstError
	)
	switch {
	case errors.As(err, &perr):
		diag.NewReportBuilder(e.rep, sev, perr.Code, perr.Span, perr.Error()).Emit()

	case errors.As(err, &inc):
		b := diag.NewReportBuilder(e.rep, sev, diag.MonoIncompleteInstantiation, inc.Span, inc.Error()).
			WithNote(inc.Param.Span, "`"+inc.Param.Name+"` declared here")
		if attr != nil {
			b = b.WithNote(attr.Span, "add `"+inc.Param.Name+" = <concrete>` to this attribute")
		}
		b.Emit()

	case errors.As(err, &km):
		diag.NewReportBuilder(e.rep, sev, diag.MonoKindMismatch, km.Subst.Value.Span, km.Error()).
			WithNote(km.Param.Span, km.Param.Kind.String()+" parameter declared here").
			Emit()

	case errors.As(err, &dup):
		b := diag.NewReportBuilder(e.rep, sev, diag.MonoDuplicateSubst, dup.Subst.Span, dup.Error()).
			WithNote(dup.First.Span, "first bound here")
		if sev == diag.SevWarning {
			b = b.WithNote(dup.Subst.Span, "this binding is ignored")
		}
		if attr != nil {
			f := fix.DeleteSpan("remove the duplicate binding", entrySpan(attr.Args, dup.Subst))
			b = b.WithFix(f.Title, f.Edits...)
		}
		b.Emit()

	case errors.As(err, &unused):
		b := diag.NewReportBuilder(e.rep, sev, diag.MonoUnusedSubst, unused.Subst.Span, unused.Error())
		if attr != nil {
			f := fix.DeleteSpan("remove the unused binding", entrySpan(attr.Args, unused.Subst))
			b = b.WithFix(f.Title, f.Edits...)
		}
		b.Emit()

	default:
		diag.NewReportBuilder(e.rep, sev, diag.UnknownCode, source.Span{File: e.file.ID}, err.Error()).Emit()
	}
}

// entrySpan covers one `name = value` entry together with its separating
// comma.
func entrySpan(args []token.Token, entry mono.Subst) source.Span {
	sp := entry.Span
	first, last := -1, -1
	for i, t := range args {
		if t.Span.Start == sp.Start {
			first = i
		}
		if t.Span.End == sp.End && t.Kind != token.EOF {
			last = i
		}
	}
	if first < 0 || last < 0 {
		return sp
	}
	// T = u8, <entry>, U = i8  ->  удаляем "<entry>, "
	if last+1 < len(args) && args[last+1].Kind == token.Comma {
		end := args[last+1].Span.End
		if nxt := args[last+2]; nxt.Kind != token.EOF {
			end = nxt.Span.Start
		}
		return source.Span{File: sp.File, Start: sp.Start, End: end}
	}
	// последний элемент: удаляем предшествующую запятую
	if first > 0 && args[first-1].Kind == token.Comma {
		return source.Span{File: sp.File, Start: args[first-1].Span.Start, End: sp.End}
	}
	return sp
}
