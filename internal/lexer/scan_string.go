package lexer

import (
	"monoforce/internal/diag"
	"monoforce/internal/token"
)

// scanString ожидает курсор на открывающей '"'. Строки Rust могут быть многострочными.
func (lx *Lexer) scanString(start Mark) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '\\':
			// escape не валидируем, только пропускаем экранированный байт
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanQuote разбирает то, что начинается с одинарной кавычки: либо lifetime ('a, 'static, '_),
// либо символьный литерал ('x', '\n', '\u{1F600}').
func (lx *Lexer) scanQuote() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\''

	if lx.cursor.Peek() == '\\' {
		lx.cursor.Reset(start)
		return lx.scanCharLit(start)
	}

	r, sz := lx.peekRune()
	if sz == 0 || r == '\n' {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	// 'x': ровно одна руна и закрывающая кавычка
	if lx.cursor.PeekAt(uint32(sz)) == '\'' { //nolint:gosec // rune size <= 4
		lx.cursor.Reset(start)
		return lx.scanCharLit(start)
	}
	if !isIdentStartRune(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	lx.bumpRune()
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Lifetime, Span: sp, Text: lx.text(sp)}
}

// scanCharLit ожидает курсор на открывающей кавычке (префикс b уже съеден).
func (lx *Lexer) scanCharLit(start Mark) token.Token {
	lx.cursor.Bump() // '\''
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == '\'' {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
