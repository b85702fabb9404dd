package parser

import (
	"monoforce/internal/diag"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

type scanner struct {
	file     *source.File
	toks     []token.Token
	pos      int
	opts     Options
	attrs    map[string]struct{}
	macros   map[string]struct{}
	blocks   []bool // true: тело impl/trait
	pending  bool   // видели impl/trait, ждём его '{'
	itemHead bool   // текущий токен может начинать item
	out      File
}

// Scan walks toks (as produced by lexer.All for f) and collects forced
// instantiation sites. Syntax problems are reported through opts.Reporter;
// the offending site is left out of the result.
func Scan(f *source.File, toks []token.Token, opts Options) File {
	if n := len(toks); n == 0 || toks[n-1].Kind != token.EOF {
		var end uint32
		if n > 0 {
			end = toks[n-1].Span.End
		}
		toks = append(toks[:n:n], token.Token{Kind: token.EOF, Span: source.Span{File: f.ID, Start: end, End: end}})
	}
	s := &scanner{
		file:     f,
		toks:     toks,
		opts:     opts,
		attrs:    nameSet(opts.Attributes),
		macros:   nameSet(opts.PathMacros),
		itemHead: true,
	}
	s.run()
	return s.out
}

func (s *scanner) peek() token.Token { return s.toks[s.pos] }

func (s *scanner) peekN(n int) token.Token {
	if s.pos+n >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[s.pos+n]
}

func (s *scanner) at(k token.Kind) bool { return s.peek().Kind == k }

func (s *scanner) next() token.Token {
	t := s.toks[s.pos]
	if t.Kind != token.EOF {
		s.pos++
	}
	return t
}

func (s *scanner) eat(k token.Kind) bool {
	if s.at(k) {
		s.next()
		return true
	}
	return false
}

func (s *scanner) prevKind() token.Kind {
	if s.pos == 0 {
		return token.Invalid
	}
	return s.toks[s.pos-1].Kind
}

func (s *scanner) inAssoc() bool {
	return len(s.blocks) > 0 && s.blocks[len(s.blocks)-1]
}

func (s *scanner) run() {
	for !s.at(token.EOF) {
		tok := s.peek()
		switch {
		case tok.Kind == token.Pound && s.peekN(1).Kind == token.Bang && s.peekN(2).Kind == token.LBracket:
			// #![inner]: пропускаем целиком
			s.next()
			s.next()
			s.skipGroup()

		case tok.Kind == token.Pound && s.peekN(1).Kind == token.LBracket:
			s.scanAttributed()

		case tok.Kind == token.LBrace:
			assoc := s.pending && s.prevKind() != token.Lt && s.prevKind() != token.Comma
			if assoc {
				s.pending = false
			}
			s.blocks = append(s.blocks, assoc)
			s.next()
			s.itemHead = true

		case tok.Kind == token.RBrace:
			if len(s.blocks) > 0 {
				s.blocks = s.blocks[:len(s.blocks)-1]
			}
			s.next()
			s.itemHead = true

		case tok.Kind == token.Semicolon:
			s.pending = false
			s.next()
			s.itemHead = true

		case (tok.Kind == token.KwImpl || tok.Kind == token.KwTrait) && s.itemHead:
			s.pending = true
			s.next()
			s.itemHead = false

		case s.startsPath() && s.scanMacro():
			// scanMacro сама продвинула позицию

		case s.itemHead && isItemModifier(tok):
			s.next()
			if tok.Kind == token.KwPub && s.at(token.LParen) {
				s.skipGroup() // pub(crate)
			}

		default:
			s.next()
			s.itemHead = false
		}
	}
}

// isItemModifier: токены, после которых ещё может идти impl/trait/fn.
func isItemModifier(t token.Token) bool {
	switch t.Kind {
	case token.KwPub, token.KwUnsafe, token.KwExtern, token.KwConst, token.KwAsync:
		return true
	case token.StringLit: // extern "C"
		return true
	case token.Ident:
		return t.Text == "auto" || t.Text == "default" || t.Text == "safe"
	default:
		return false
	}
}

// startsPath reports whether the current token begins a path rather than
// continuing one.
func (s *scanner) startsPath() bool {
	tok := s.peek()
	if !tok.IsPathSegment() && !(tok.Kind == token.ColonColon && s.peekN(1).IsPathSegment()) {
		return false
	}
	prev := s.prevKind()
	return prev != token.ColonColon && prev != token.Ident
}

// skipGroup consumes a balanced group starting at the current opener and
// returns the index of its closing token. An unclosed group is reported and
// the scan jumps to EOF.
func (s *scanner) skipGroup() int {
	open := s.peek()
	var stack []token.Kind
	for {
		tok := s.peek()
		switch tok.Kind {
		case token.LParen:
			stack = append(stack, token.RParen)
		case token.LBracket:
			stack = append(stack, token.RBracket)
		case token.LBrace:
			stack = append(stack, token.RBrace)
		case token.RParen, token.RBracket, token.RBrace:
			if len(stack) == 0 || stack[len(stack)-1] != tok.Kind {
				s.report(diag.SynUnclosedDelimiter, tok.Span, "mismatched closing delimiter `"+tok.Text+"`").
					WithNote(open.Span, "group opened here").
					Emit()
				s.pos = len(s.toks) - 1
				return s.pos
			}
			stack = stack[:len(stack)-1]
		case token.EOF:
			s.report(diag.SynUnclosedDelimiter, open.Span, "unclosed delimiter `"+open.Text+"`").Emit()
			return s.pos
		}
		idx := s.pos
		s.next()
		if len(stack) == 0 {
			return idx
		}
	}
}

// innerTokens copies toks (from, to) exclusive and terminates them with an
// EOF placed at the closing delimiter.
func (s *scanner) innerTokens(from, to int) []token.Token {
	out := make([]token.Token, 0, to-from)
	out = append(out, s.toks[from+1:to]...)
	closeSpan := s.toks[to].Span
	return append(out, token.Token{
		Kind: token.EOF,
		Span: source.Span{File: closeSpan.File, Start: closeSpan.Start, End: closeSpan.Start},
	})
}
