package parser

import (
	"monoforce/internal/mono"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

// Attr is one recognised outer attribute, `#[mono(...)]`.
type Attr struct {
	Path string      // нормализованный путь: "mono", "mono_macro::mono"
	Span source.Span // от '#' до ']'
	// Args are the tokens between the delimiters, terminated by EOF.
	// A bare `#[mono]` has only the EOF token.
	Args []token.Token
	// EqForm marks the `#[mono = ...]` spelling, which carries no argument list.
	EqForm bool
}

// FnItem is a fn item with at least one recognised attribute.
type FnItem struct {
	Sig   mono.FnSig
	Attrs []Attr // только распознанные атрибуты, в порядке исходника
	// Start is where the item begins, including leading doc comments.
	Start uint32
	// InAssoc is set for fns declared directly inside an impl or trait body.
	InAssoc bool
}

// MacroCall is one invocation of a recognised path macro.
type MacroCall struct {
	Path string
	// Span runs from the first path token to the closing delimiter, or to
	// the `;` that follows it.
	Span source.Span
	Args []token.Token // EOF-terminated
	// ArgsSpan covers the delimiters.
	ArgsSpan source.Span
	InAssoc  bool
	// ItemPosition is false when the call sits inside an expression.
	ItemPosition bool
}

// File is everything Scan found in one source file, in source order.
type File struct {
	Items  []FnItem
	Macros []MacroCall
}
