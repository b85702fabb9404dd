package parser

import (
	"strings"

	"monoforce/internal/token"
)

// scanMacro recognises `path!(...)`, `path![...]`, `path!{...}` and
// `macro_rules! name {...}` at the current position. Recognised path macros
// are recorded; every other macro body is skipped. Returns false, without
// moving, when the tokens are not a macro invocation.
func (s *scanner) scanMacro() bool {
	start := s.pos
	head := s.itemHead

	i := start
	if s.toks[i].Kind == token.ColonColon {
		i++
	}
	var segs []string
	for {
		seg := s.toks[i]
		if !seg.IsPathSegment() {
			return false
		}
		segs = append(segs, token.IdentKey(seg.Text))
		i++
		if s.toks[i].Kind != token.ColonColon {
			break
		}
		i++
	}
	if s.toks[i].Kind != token.Bang {
		return false
	}
	path := strings.Join(segs, "::")

	s.pos = i + 1
	// macro_rules! name { ... }
	if path == "macro_rules" && s.at(token.Ident) {
		s.next()
	}
	if !isOpenDelim(s.peek().Kind) {
		s.pos = start
		return false
	}

	open := s.pos
	closeIdx := s.skipGroup()
	// m! { ... } в позиции item не требует ';'
	s.itemHead = head && s.toks[open].Kind == token.LBrace
	if s.toks[closeIdx].Kind == token.EOF {
		return true
	}
	if _, ok := s.macros[path]; !ok || path == "macro_rules" {
		return true
	}

	end := s.toks[closeIdx].Span
	if s.at(token.Semicolon) {
		end = s.next().Span
		s.itemHead = true
	}
	s.out.Macros = append(s.out.Macros, MacroCall{
		Path:         path,
		Span:         s.toks[start].Span.Cover(end),
		Args:         s.innerTokens(open, closeIdx),
		ArgsSpan:     s.toks[open].Span.Cover(s.toks[closeIdx].Span),
		InAssoc:      s.inAssoc(),
		ItemPosition: head,
	})
	return true
}

func isOpenDelim(k token.Kind) bool {
	return k == token.LParen || k == token.LBracket || k == token.LBrace
}
