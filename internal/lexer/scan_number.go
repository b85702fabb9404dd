package lexer

import (
	"monoforce/internal/diag"
	"monoforce/internal/token"
)

// Поддержка: 123, 1_000, 0b1010, 0o17, 0xFF, 1.0, 1., 1e-3, 2.5E+10 и суффиксы (u8, f32, usize).
// `1..2` и `1.max(2)` не считаются float: точка остаётся отдельным токеном.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.eatDigits(isHex) {
				return lx.badNumber(start, "expected hex digits after '0x'")
			}
			return lx.finishNumber(start, kind)
		case 'b', 'B', 'o', 'O':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.eatDigits(isDec) {
				return lx.badNumber(start, "expected digits after radix prefix")
			}
			return lx.finishNumber(start, kind)
		}
	}

	lx.eatDigits(isDec)

	if lx.cursor.Peek() == '.' {
		next := lx.cursor.PeekAt(1)
		if next != '.' && !isIdentStartByte(next) && next < utf8RuneSelf {
			lx.cursor.Bump()
			kind = token.FloatLit
			lx.eatDigits(isDec)
		}
	}

	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		n1 := lx.cursor.PeekAt(1)
		n2 := lx.cursor.PeekAt(2)
		if isDec(n1) || ((n1 == '+' || n1 == '-') && isDec(n2)) {
			lx.cursor.Bump()
			if n1 == '+' || n1 == '-' {
				lx.cursor.Bump()
			}
			lx.eatDigits(isDec)
			kind = token.FloatLit
		}
	}

	return lx.finishNumber(start, kind)
}

func (lx *Lexer) eatDigits(pred func(byte) bool) bool {
	seen := false
	for {
		b := lx.cursor.Peek()
		switch {
		case b == '_':
			lx.cursor.Bump()
		case pred(b) && !lx.cursor.EOF():
			lx.cursor.Bump()
			seen = true
		default:
			return seen
		}
	}
}

// finishNumber съедает суффикс типа (u8, i64, f32, usize).
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
