package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"let":      KwLet,
	"const":    KwConst,
	"mut":      KwMut,
	"pub":      KwPub,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"trait":    KwTrait,
	"impl":     KwImpl,
	"unsafe":   KwUnsafe,
	"match":    KwMatch,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"loop":     KwLoop,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"use":      KwUse,
	"mod":      KwMod,
	"as":       KwAs,
	"type":     KwType,
	"where":    KwWhere,
	"self":     KwSelf,
	"Self":     KwSelfType,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword returns the keyword kind for an identifier spelling.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
