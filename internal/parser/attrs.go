package parser

import (
	"strings"

	"monoforce/internal/diag"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

// scanAttributed reads a run of outer attributes and, if any of them is
// recognised, the fn item they are attached to.
func (s *scanner) scanAttributed() {
	first := s.peek()
	var found []Attr
	for s.at(token.Pound) && s.peekN(1).Kind == token.LBracket {
		attr, ok := s.parseAttr()
		if !ok {
			return
		}
		if _, hit := s.attrs[attr.Path]; hit {
			found = append(found, attr)
		}
	}
	s.itemHead = true
	if len(found) == 0 {
		return
	}

	save := s.pos
	item, ok := s.parseFnHeader(found)
	s.pos = save
	if !ok {
		return
	}
	item.Start = itemStart(first)
	item.InAssoc = s.inAssoc()
	s.out.Items = append(s.out.Items, item)
}

// parseAttr parses `#[path]`, `#[path(...)]` or `#[path = ...]`.
func (s *scanner) parseAttr() (Attr, bool) {
	hash := s.next()
	s.next() // '['

	var segs []string
	s.eat(token.ColonColon)
	for {
		seg := s.peek()
		if seg.Kind != token.Ident && !seg.IsKeyword() {
			s.report(diag.SynExpectPath, seg.Span, "expected attribute path").Emit()
			s.recoverAttr()
			return Attr{}, false
		}
		s.next()
		segs = append(segs, token.IdentKey(seg.Text))
		if !s.at(token.ColonColon) {
			break
		}
		s.next()
	}
	attr := Attr{Path: strings.Join(segs, "::")}

	switch s.peek().Kind {
	case token.LParen, token.LBracket, token.LBrace:
		open := s.pos
		closeIdx := s.skipGroup()
		if s.toks[closeIdx].Kind == token.EOF {
			return Attr{}, false
		}
		attr.Args = s.innerTokens(open, closeIdx)
	case token.Eq:
		attr.EqForm = true
		for !s.at(token.RBracket) && !s.at(token.EOF) {
			if k := s.peek().Kind; k == token.LParen || k == token.LBracket || k == token.LBrace {
				s.skipGroup()
				continue
			}
			s.next()
		}
	default:
		sp := s.peek().Span
		attr.Args = []token.Token{{Kind: token.EOF, Span: source.Span{File: sp.File, Start: sp.Start, End: sp.Start}}}
	}

	closeTok := s.peek()
	if closeTok.Kind != token.RBracket {
		s.report(diag.SynUnclosedDelimiter, closeTok.Span, "expected `]` closing the attribute").
			WithNote(hash.Span, "attribute starts here").
			Emit()
		s.recoverAttr()
		return Attr{}, false
	}
	s.next()
	attr.Span = hash.Span.Cover(closeTok.Span)
	return attr, true
}

// recoverAttr skips to the next ']' on the current nesting level.
func (s *scanner) recoverAttr() {
	for !s.at(token.EOF) {
		switch s.peek().Kind {
		case token.RBracket:
			s.next()
			return
		case token.LParen, token.LBracket, token.LBrace:
			s.skipGroup()
		default:
			s.next()
		}
	}
}

// itemStart: начало item вместе с предшествующими outer doc-комментариями.
// Inner doc (//!, /*!) относится к объемлющему модулю и остаётся на месте.
func itemStart(first token.Token) uint32 {
	start := first.Span.Start
walk:
	for i := len(first.Leading) - 1; i >= 0; i-- {
		tr := first.Leading[i]
		switch {
		case tr.Kind == token.TriviaSpace || tr.Kind == token.TriviaNewline:
		case isOuterDoc(tr):
			start = tr.Span.Start
		default:
			break walk
		}
	}
	return start
}

func isOuterDoc(tr token.Trivia) bool {
	switch tr.Kind {
	case token.TriviaDocLine:
		return !strings.HasPrefix(tr.Text, "//!")
	case token.TriviaDocBlock:
		return !strings.HasPrefix(tr.Text, "/*!")
	default:
		return false
	}
}
