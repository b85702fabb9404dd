package mono

import (
	"monoforce/internal/diag"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

// stream is a cursor over an EOF-terminated token slice.
type stream struct {
	toks []token.Token
	pos  int
}

func newStream(toks []token.Token) *stream {
	if n := len(toks); n == 0 || toks[n-1].Kind != token.EOF {
		var sp source.Span
		if n > 0 {
			last := toks[n-1].Span
			sp = source.Span{File: last.File, Start: last.End, End: last.End}
		}
		toks = append(toks[:n:n], token.Token{Kind: token.EOF, Span: sp})
	}
	return &stream{toks: toks}
}

func (s *stream) peek() token.Token { return s.toks[s.pos] }

func (s *stream) peekN(n int) token.Token {
	if s.pos+n >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[s.pos+n]
}

func (s *stream) at(k token.Kind) bool { return s.peek().Kind == k }

func (s *stream) next() token.Token {
	t := s.toks[s.pos]
	if t.Kind != token.EOF {
		s.pos++
	}
	return t
}

func (s *stream) eat(k token.Kind) bool {
	if s.at(k) {
		s.next()
		return true
	}
	return false
}

// expect съедает токен k или возвращает ParseError на текущем токене.
func (s *stream) expect(k token.Kind, code diag.Code, expected string) (token.Token, error) {
	if s.at(k) {
		return s.next(), nil
	}
	return token.Token{}, s.errorf(code, expected)
}

func (s *stream) errorf(code diag.Code, expected string) *ParseError {
	tok := s.peek()
	return &ParseError{Code: code, Span: tok.Span, Found: describe(tok), Expected: expected}
}

// consumed returns tokens in [from, pos).
func (s *stream) consumed(from int) []token.Token {
	return s.toks[from:s.pos]
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Invalid:
		return "invalid token `" + tok.Text + "`"
	default:
		return "`" + tok.Text + "`"
	}
}
