package decl

import (
	"klarlint/internal/source"
)

// ID identifies a declaration inside one File's arena. 1-based, 0 = none.
type ID uint32

// NoID is the absent-declaration sentinel.
const NoID ID = 0

// IsValid reports whether the ID refers to a declaration.
func (id ID) IsValid() bool { return id != NoID }

// Kind tags the declaration variants.
type Kind uint8

const (
	KindModule Kind = iota
	KindStruct
	KindEnum
	KindTrait
	KindImpl
	KindFunction
	KindConst
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindTrait:
		return "trait"
	case KindImpl:
		return "impl"
	case KindFunction:
		return "function"
	case KindConst:
		return "const"
	}
	return "decl(?)"
}

// PassingMode describes how a parameter is handed to a function.
type PassingMode uint8

const (
	// Owned means the value is moved into the callee.
	Owned PassingMode = iota
	// Borrowed is a shared '&' reference.
	Borrowed
	// BorrowedMut is an exclusive '&mut' reference.
	BorrowedMut
)

func (m PassingMode) String() string {
	switch m {
	case Owned:
		return "owned"
	case Borrowed:
		return "borrowed"
	case BorrowedMut:
		return "borrowed-mut"
	}
	return "mode(?)"
}

// Param is one function parameter. Type is a string-normalized shape
// ("&T", "&mut T", "?T", "Result[T, E]") — enough for heuristic rules,
// no type resolution happens.
type Param struct {
	Name string
	Type string
	Mode PassingMode
	Span source.Span
}

// Field is one struct field.
type Field struct {
	Name     string
	Type     string
	IsPublic bool
	Span     source.Span
}

// Variant is one enum variant.
type Variant struct {
	Name string
	Span source.Span
}

// Decl is the tagged declaration variant. Exactly the fields for its
// Kind are populated; Parent is an arena index, never a pointer.
type Decl struct {
	Kind     Kind
	Name     string
	Span     source.Span
	Parent   ID
	IsPublic bool

	// Doc is the contiguous '///' block immediately preceding the
	// declaration, raw text, empty when absent.
	Doc    string
	HasDoc bool

	// Generics holds opaque generic parameter / bound strings.
	Generics []string

	// KindStruct
	Fields []Field

	// KindEnum
	Variants []Variant

	// KindTrait, KindImpl: method declarations (children by index)
	Methods []ID

	// KindImpl
	TargetType string
	TraitName  string // empty for inherent impls

	// KindFunction
	Params      []Param
	HasReceiver bool
	Receiver    PassingMode // valid when HasReceiver
	ReturnType  string      // empty when the function returns nothing
	BodySpan    source.Span // opaque byte span; rules re-scan its tokens

	// KindConst
	ConstType string
	InitLit   string // literal initializer text when trivially known
}
