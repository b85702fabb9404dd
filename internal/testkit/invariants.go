// Package testkit holds structural checks shared by the parser tests and
// the fuzz harnesses.
package testkit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"monoforce/internal/diag"
	"monoforce/internal/expand"
	"monoforce/internal/parser"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

// CheckScanInvariants runs span invariants on a scan of sf:
// 1) every attribute, signature and macro span is non-empty, points at sf
// and lies within its content
// 2) an item's attributes are ordered, disjoint and precede its signature,
// and Start is at or before the first of them
// 3) items and macros are in source order
// 4) argument token lists end with EOF
func CheckScanInvariants(scan parser.File, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inFile := func(what string, sp source.Span) error {
		switch {
		case sp.File != sf.ID:
			return fmt.Errorf("%s span points to file %d, want %d", what, sp.File, sf.ID)
		case sp.End <= sp.Start:
			return fmt.Errorf("%s span is empty: %v", what, sp)
		case sp.End > size:
			return fmt.Errorf("%s span beyond content: %d > %d", what, sp.End, size)
		}
		return nil
	}

	var prevStart uint32
	for i, item := range scan.Items {
		if len(item.Attrs) == 0 {
			return fmt.Errorf("item %d (%s) has no attributes", i, item.Sig.Name)
		}
		if i > 0 && item.Start < prevStart {
			return fmt.Errorf("item %d out of order: %d < %d", i, item.Start, prevStart)
		}
		prevStart = item.Start
		if err := inFile("signature", item.Sig.Span); err != nil {
			return err
		}
		if item.Start > item.Attrs[0].Span.Start {
			return fmt.Errorf("item %d starts at %d, after its first attribute at %d", i, item.Start, item.Attrs[0].Span.Start)
		}
		var prevEnd uint32
		for j, attr := range item.Attrs {
			if err := inFile("attribute", attr.Span); err != nil {
				return err
			}
			if j > 0 && attr.Span.Start < prevEnd {
				return fmt.Errorf("item %d: attribute %d overlaps the previous one", i, j)
			}
			prevEnd = attr.Span.End
			if attr.Span.End > item.Sig.Span.Start {
				return fmt.Errorf("item %d: attribute %d ends after the signature starts", i, j)
			}
			if !attr.EqForm {
				if err := endsWithEOF(attr.Args); err != nil {
					return fmt.Errorf("item %d attribute %d: %w", i, j, err)
				}
			}
		}
	}

	prevStart = 0
	for i, m := range scan.Macros {
		if err := inFile("macro", m.Span); err != nil {
			return err
		}
		if i > 0 && m.Span.Start < prevStart {
			return fmt.Errorf("macro %d out of order", i)
		}
		prevStart = m.Span.Start
		if !m.Span.Contains(m.ArgsSpan) {
			return fmt.Errorf("macro %d: args %v outside call %v", i, m.ArgsSpan, m.Span)
		}
		if err := endsWithEOF(m.Args); err != nil {
			return fmt.Errorf("macro %d: %w", i, err)
		}
	}
	return nil
}

func endsWithEOF(toks []token.Token) error {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		return fmt.Errorf("argument tokens are not EOF-terminated")
	}
	return nil
}

// CheckExpandInvariants relates an expansion result to its diagnostics and
// input: output exists exactly when no error was reported, every
// declaration comes from a site, and a file without sites is unchanged.
func CheckExpandInvariants(res expand.Result, bag *diag.Bag, input []byte) error {
	hasErrors := bag.HasErrors()
	switch {
	case hasErrors && res.Output != nil:
		return fmt.Errorf("output produced despite %d error(s)", bag.Count(diag.SevError))
	case !hasErrors && res.Output == nil:
		return fmt.Errorf("no output and no errors")
	case res.Decls > res.Sites:
		return fmt.Errorf("%d declarations from %d sites", res.Decls, res.Sites)
	case res.Output != nil && res.Sites == 0 && !bytes.Equal(res.Output, input):
		return fmt.Errorf("file without sites was changed")
	}
	return nil
}
