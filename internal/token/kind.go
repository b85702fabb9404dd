package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (including raw `r#ident`).
	Ident
	// Lifetime represents a lifetime or label such as `'a` or `'static`.
	Lifetime

	IntLit
	FloatLit
	StringLit // "..", b"..", r#".."#, c".."
	CharLit   // 'x', b'x'

	KwFn
	KwPub
	KwConst
	KwAsync
	KwUnsafe
	KwExtern
	KwAs
	KwImpl
	KwTrait
	KwDyn
	KwMut
	KwWhere
	KwCrate
	KwSelfValue // self
	KwSelfType  // Self
	KwSuper
	KwFor
	KwStatic
	KwStruct
	KwEnum
	KwType
	KwMod
	KwUse
	KwLet
	KwTrue
	KwFalse

	Pound      // #
	Bang       // !
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	LBrace     // {
	RBrace     // }
	Lt         // <
	Gt         // >
	Eq         // =
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Dot        // .
	DotDot     // ..
	Arrow      // ->
	FatArrow   // =>
	Amp        // &
	Star       // *
	Plus       // +
	Minus      // -
	Slash      // /
	Percent    // %
	Caret      // ^
	Pipe       // |
	Question   // ?
	At         // @
	Dollar     // $
	Tilde      // ~
	Underscore // _
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	Lifetime:    "Lifetime",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	CharLit:     "CharLit",
	KwFn:        "KwFn",
	KwPub:       "KwPub",
	KwConst:     "KwConst",
	KwAsync:     "KwAsync",
	KwUnsafe:    "KwUnsafe",
	KwExtern:    "KwExtern",
	KwAs:        "KwAs",
	KwImpl:      "KwImpl",
	KwTrait:     "KwTrait",
	KwDyn:       "KwDyn",
	KwMut:       "KwMut",
	KwWhere:     "KwWhere",
	KwCrate:     "KwCrate",
	KwSelfValue: "KwSelfValue",
	KwSelfType:  "KwSelfType",
	KwSuper:     "KwSuper",
	KwFor:       "KwFor",
	KwStatic:    "KwStatic",
	KwStruct:    "KwStruct",
	KwEnum:      "KwEnum",
	KwType:      "KwType",
	KwMod:       "KwMod",
	KwUse:       "KwUse",
	KwLet:       "KwLet",
	KwTrue:      "KwTrue",
	KwFalse:     "KwFalse",
	Pound:       "Pound",
	Bang:        "Bang",
	LParen:      "LParen",
	RParen:      "RParen",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	Lt:          "Lt",
	Gt:          "Gt",
	Eq:          "Eq",
	Comma:       "Comma",
	Semicolon:   "Semicolon",
	Colon:       "Colon",
	ColonColon:  "ColonColon",
	Dot:         "Dot",
	DotDot:      "DotDot",
	Arrow:       "Arrow",
	FatArrow:    "FatArrow",
	Amp:         "Amp",
	Star:        "Star",
	Plus:        "Plus",
	Minus:       "Minus",
	Slash:       "Slash",
	Percent:     "Percent",
	Caret:       "Caret",
	Pipe:        "Pipe",
	Question:    "Question",
	At:          "At",
	Dollar:      "Dollar",
	Tilde:       "Tilde",
	Underscore:  "Underscore",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
