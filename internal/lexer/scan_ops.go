package lexer

import (
	"fmt"

	"monoforce/internal/diag"
	"monoforce/internal/token"
)

// Склеиваем только то, что нужно сканеру элементов: '::', '->', '=>', '..'.
// Всё остальное: односимвольные токены, чтобы '>>' закрывал два уровня дженериков.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try2(':', ':'):
		return emit(token.ColonColon)
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('=', '>'):
		return emit(token.FatArrow)
	case lx.try2('.', '.'):
		return emit(token.DotDot)
	}

	if k, ok := singlePunct[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}

	r, _ := lx.peekRune()
	lx.bumpRune()
	if lx.cursor.Mark() == start {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

var singlePunct = map[byte]token.Kind{
	'#': token.Pound,
	'!': token.Bang,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Eq,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'.': token.Dot,
	'&': token.Amp,
	'*': token.Star,
	'+': token.Plus,
	'-': token.Minus,
	'/': token.Slash,
	'%': token.Percent,
	'^': token.Caret,
	'|': token.Pipe,
	'?': token.Question,
	'@': token.At,
	'$': token.Dollar,
	'~': token.Tilde,
	'_': token.Underscore,
}
