package expand

import (
	"bytes"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"monoforce/internal/diag"
	"monoforce/internal/mono"
	"monoforce/internal/parser"
	"monoforce/internal/source"
)

// expandItem emits one declaration per recognised attribute in front of the
// item and deletes the consumed attributes. Nothing else in the item changes.
func (e *expander) expandItem(item *parser.FnItem) {
	e.res.Sites += len(item.Attrs)
	if item.InAssoc {
		first := item.Attrs[0]
		diag.ReportError(e.rep, diag.MonoAssociatedFn, first.Span,
			"`#["+first.Path+"]` cannot be applied to a fn inside an impl or trait block").
			WithNote(item.Sig.NameSpan, "use the path form instead: `mono!(<Type as Trait>::"+item.Sig.Name+"::<...>);` next to the impl").
			Emit()
		return
	}

	decls := make([]string, 0, len(item.Attrs))
	for i := range item.Attrs {
		attr := &item.Attrs[i]
		if attr.EqForm {
			diag.ReportError(e.rep, diag.SynUnexpectedToken, attr.Span,
				"expected `#["+attr.Path+"(T = Type, ...)]`, found `=` form").Emit()
			continue
		}
		subst, err := mono.ParseArgs(attr.Args)
		if err != nil {
			e.reportMono(diag.SevError, err, attr)
			continue
		}
		exp, err := mono.ExpandAttr(item.Sig, subst, e.opts.Mono)
		if err != nil {
			e.reportMono(diag.SevError, err, attr)
			continue
		}
		for _, w := range exp.Warnings {
			e.reportMono(diag.SevWarning, w, attr)
		}
		decls = append(decls, exp.Decl)
	}
	if len(decls) != len(item.Attrs) {
		return
	}

	e.edits = append(e.edits, e.insertDecls(item.Start, decls))
	for _, attr := range item.Attrs {
		e.edits = append(e.edits, e.removeAttr(attr.Span))
	}
	e.res.Decls += len(decls)
}

// insertDecls ставит объявления перед item: на отдельных строках с тем же
// отступом, либо в той же строке, если перед item на строке есть код.
func (e *expander) insertDecls(at uint32, decls []string) diag.FixEdit {
	content := e.file.Content
	ls := lineStart(content, at)
	indent := content[ls:at]
	if isBlank(indent) {
		var sb strings.Builder
		for _, d := range decls {
			sb.Write(indent)
			sb.WriteString(d)
			sb.WriteString(e.file.Newline())
		}
		return diag.FixEdit{Span: source.Span{File: e.file.ID, Start: ls, End: ls}, NewText: sb.String()}
	}
	return diag.FixEdit{
		Span:    source.Span{File: e.file.ID, Start: at, End: at},
		NewText: strings.Join(decls, " ") + " ",
	}
}

// removeAttr удаляет атрибут; если он один на строке: вместе со строкой.
func (e *expander) removeAttr(sp source.Span) diag.FixEdit {
	content := e.file.Content
	ls := lineStart(content, sp.Start)
	le := lineEnd(content, sp.End)
	if isBlank(content[ls:sp.Start]) && isBlank(bytes.TrimSuffix(content[sp.End:le], []byte{'\r'})) {
		if le < u32(len(content)) {
			le++ // '\n'
		}
		return diag.FixEdit{Span: source.Span{File: sp.File, Start: ls, End: le}}
	}
	end := sp.End
	for end < le && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return diag.FixEdit{Span: source.Span{File: sp.File, Start: sp.Start, End: end}}
}

func lineStart(content []byte, off uint32) uint32 {
	i := bytes.LastIndexByte(content[:off], '\n')
	return u32(i + 1)
}

func lineEnd(content []byte, off uint32) uint32 {
	i := bytes.IndexByte(content[off:], '\n')
	if i < 0 {
		return u32(len(content))
	}
	return off + u32(i)
}

func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}
