package token

import (
	"monoforce/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, char or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFn && t.Kind <= KwFalse
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsLifetime reports whether the token is a lifetime such as 'a.
func (t Token) IsLifetime() bool { return t.Kind == Lifetime }

// IsPathSegment reports whether the token may start a path segment:
// identifiers plus the path keywords crate/self/Self/super.
func (t Token) IsPathSegment() bool {
	switch t.Kind {
	case Ident, KwCrate, KwSelfValue, KwSelfType, KwSuper:
		return true
	default:
		return false
	}
}

// HasLeadingNewline reports whether a line break precedes the token.
func (t Token) HasLeadingNewline() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
	}
	return false
}
