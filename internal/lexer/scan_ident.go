package lexer

import (
	"monoforce/internal/diag"
	"monoforce/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Также распознаёт префиксы литералов: b'x', b"..", c"..", r"..", r#".."#, br"..", cr"..",
// и сырые идентификаторы r#ident. Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	if tok, ok := lx.scanPrefixedLiteral(start); ok {
		return tok
	}

	raw := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == 'r' && b1 == '#' && isIdentStartByte(lx.cursor.PeekAt(2)) {
		lx.cursor.Bump()
		lx.cursor.Bump()
		raw = true
	}

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		// не идентификатор: пусть разберётся сканер операторов
		lx.cursor.Reset(start)
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) || lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if !raw {
		if k, ok := token.LookupKeyword(text); ok {
			return token.Token{Kind: k, Span: sp, Text: text}
		}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanPrefixedLiteral handles string and char literals that start with a
// letter prefix. Returns false (cursor untouched) for ordinary identifiers.
func (lx *Lexer) scanPrefixedLiteral(start Mark) (token.Token, bool) {
	b0 := lx.cursor.Peek()
	if b0 != 'b' && b0 != 'r' && b0 != 'c' {
		return token.Token{}, false
	}
	b1 := lx.cursor.PeekAt(1)

	switch {
	case b0 == 'b' && b1 == '\'':
		lx.cursor.Bump()
		return lx.scanCharLit(start), true
	case (b0 == 'b' || b0 == 'c') && b1 == '"':
		lx.cursor.Bump()
		return lx.scanString(start), true
	case b0 == 'r' && (b1 == '"' || (b1 == '#' && lx.rawQuoteAhead(1))):
		lx.cursor.Bump()
		return lx.scanRawString(start), true
	case (b0 == 'b' || b0 == 'c') && b1 == 'r':
		b2 := lx.cursor.PeekAt(2)
		if b2 == '"' || (b2 == '#' && lx.rawQuoteAhead(2)) {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.scanRawString(start), true
		}
	}
	return token.Token{}, false
}

// rawQuoteAhead reports whether the bytes at offset n are #...#".
func (lx *Lexer) rawQuoteAhead(n uint32) bool {
	for lx.cursor.PeekAt(n) == '#' {
		n++
	}
	return lx.cursor.PeekAt(n) == '"'
}

// scanRawString expects the cursor on the first '#' or '"' after the r prefix.
func (lx *Lexer) scanRawString(start Mark) token.Token {
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
