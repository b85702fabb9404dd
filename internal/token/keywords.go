package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"pub":    KwPub,
	"const":  KwConst,
	"async":  KwAsync,
	"unsafe": KwUnsafe,
	"extern": KwExtern,
	"as":     KwAs,
	"impl":   KwImpl,
	"trait":  KwTrait,
	"dyn":    KwDyn,
	"mut":    KwMut,
	"where":  KwWhere,
	"crate":  KwCrate,
	"self":   KwSelfValue,
	"Self":   KwSelfType,
	"super":  KwSuper,
	"for":    KwFor,
	"static": KwStatic,
	"struct": KwStruct,
	"enum":   KwEnum,
	"type":   KwType,
	"mod":    KwMod,
	"use":    KwUse,
	"let":    KwLet,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
