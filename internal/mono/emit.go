package mono

import (
	"strings"

	"monoforce/internal/token"
)

const (
	declPrefix = "pub const _: *const () = (&"
	declSuffix = ") as *const _ as _;"
)

// EmitRefCast builds the forcing declaration for callee instantiated with
// args. With no args the reference carries no turbofish. The result is a
// pure function of its inputs.
func EmitRefCast(callee string, args []TypeOrLifetime) string {
	var sb strings.Builder
	sb.Grow(len(declPrefix) + len(callee) + len(declSuffix) + 8*len(args))
	sb.WriteString(declPrefix)
	sb.WriteString(callee)
	if len(args) > 0 {
		sb.WriteString("::<")
		for i, a := range args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte('>')
	}
	sb.WriteString(declSuffix)
	return sb.String()
}

// Render places decls in front of item, one per line, in order. item is
// copied verbatim.
func Render(item string, decls ...string) string {
	var sb strings.Builder
	for _, d := range decls {
		sb.WriteString(d)
		sb.WriteByte('\n')
	}
	sb.WriteString(item)
	return sb.String()
}

// joinTokens re-spells tokens with canonical spacing: a single space between
// word-like tokens, after `,` and `;`, around `=`, `+`, `->` and `as`, and
// after `mut`, `const`, `dyn`, `impl` or a lifetime.
func joinTokens(toks []token.Token) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 && needSpace(toks[i-1], t) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func needSpace(prev, cur token.Token) bool {
	switch cur.Kind {
	case token.RParen, token.RBracket, token.RBrace, token.Gt, token.Comma, token.Semicolon:
		return false
	case token.Eq, token.Plus, token.Arrow, token.KwAs:
		return true
	}
	switch prev.Kind {
	case token.Comma, token.Semicolon, token.Eq, token.Plus, token.Arrow,
		token.Lifetime, token.KwMut, token.KwConst, token.KwDyn, token.KwImpl, token.KwAs:
		return true
	}
	return wordLike(prev) && wordLike(cur)
}

func wordLike(t token.Token) bool {
	switch t.Kind {
	case token.Ident, token.Lifetime, token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.Underscore:
		return true
	}
	return t.IsKeyword()
}
