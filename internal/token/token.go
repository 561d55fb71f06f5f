package token

import (
	"klarlint/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsComment reports whether the token is any comment kind.
func (t Token) IsComment() bool {
	switch t.Kind {
	case Comment, DocComment, SafetyComment:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwLet, KwConst, KwMut, KwPub, KwStruct, KwEnum, KwTrait, KwImpl,
		KwUnsafe, KwMatch, KwIf, KwElse, KwWhile, KwFor, KwIn, KwLoop, KwBreak,
		KwContinue, KwReturn, KwUse, KwMod, KwAs, KwType, KwWhere, KwSelf,
		KwSelfType, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// StartsItem reports whether the token can begin a top-level
// declaration. The parser's resynchronization stops at these.
func (t Token) StartsItem() bool {
	switch t.Kind {
	case KwFn, KwStruct, KwEnum, KwTrait, KwImpl, KwConst, KwPub, KwUse, KwMod, KwType:
		return true
	default:
		return false
	}
}
