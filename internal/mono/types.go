package mono

import (
	"strings"

	"monoforce/internal/source"
	"monoforce/internal/token"
)

// ArgKind tags a TypeOrLifetime.
type ArgKind uint8

const (
	ArgType ArgKind = iota
	ArgLifetime
)

func (k ArgKind) String() string {
	if k == ArgLifetime {
		return "lifetime"
	}
	return "type"
}

// TypeOrLifetime is one side of a substitution: a type identifier (`i32`,
// `String`, `r#Foo`) or a lifetime (`'static`).
type TypeOrLifetime struct {
	Kind ArgKind
	Name string // как в исходнике, для лайфтаймов вместе с '
	Span source.Span
}

// String returns the spelling used in emitted code.
func (a TypeOrLifetime) String() string {
	switch a.Kind {
	case ArgLifetime:
		if strings.HasPrefix(a.Name, "'") {
			return a.Name
		}
		return "'" + a.Name
	default:
		return a.Name
	}
}

// Key is the comparison key of the name: lifetimes drop the sigil, raw
// identifiers drop r#, everything is NFC-normalised.
func (a TypeOrLifetime) Key() string {
	return token.IdentKey(strings.TrimPrefix(a.Name, "'"))
}

// Subst is one `name = value` entry of an attribute argument list.
type Subst struct {
	Name  TypeOrLifetime
	Value TypeOrLifetime
	Span  source.Span // от имени до значения включительно
}

// SubstList keeps entries in the order they were written. Duplicates are
// kept; they are resolved while matching.
type SubstList []Subst

// ParamKind tags a generic parameter of a fn.
type ParamKind uint8

const (
	ParamType ParamKind = iota
	ParamLifetime
	ParamConst
)

func (k ParamKind) String() string {
	switch k {
	case ParamLifetime:
		return "lifetime"
	case ParamConst:
		return "const"
	default:
		return "type"
	}
}

// GenericParam is one declared generic parameter, in declaration order.
type GenericParam struct {
	Kind ParamKind
	Name string // `T`, `'a`, `N`
	Span source.Span
}

// Key mirrors TypeOrLifetime.Key.
func (p GenericParam) Key() string {
	return token.IdentKey(strings.TrimPrefix(p.Name, "'"))
}

// FnSig is the part of a fn item the attribute transform looks at.
type FnSig struct {
	Name     string
	NameSpan source.Span
	Generics []GenericParam
	// Span covers the signature from the first qualifier to the end of the
	// return type or where clause.
	Span source.Span
}

// Path is a validated, whitespace-normalised path expression.
type Path struct {
	Text string
	Span source.Span
}
