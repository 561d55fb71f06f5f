package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Unknown marks a byte sequence the lexer did not recognize.
	// The lexer never fails; it is the parser's call whether an
	// Unknown token is fatal.
	Unknown Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwUnsafe represents the 'unsafe' keyword.
	KwUnsafe // unsafe
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwLoop represents the 'loop' keyword.
	KwLoop // loop
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwUse represents the 'use' keyword.
	KwUse // use
	// KwMod represents the 'mod' keyword.
	KwMod // mod
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwType represents the 'type' keyword.
	KwType // type
	// KwWhere represents the 'where' keyword.
	KwWhere // where
	// KwSelf represents the 'self' receiver keyword.
	KwSelf // self
	// KwSelfType represents the 'Self' type keyword.
	KwSelfType // Self
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token.
	StringLit

	// Comment represents an ordinary line or block comment.
	Comment
	// DocComment represents a '///' documentation comment line.
	DocComment
	// SafetyComment represents a comment whose body starts with the
	// 'SAFETY:' marker justifying an adjacent unsafe region.
	SafetyComment

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Assign represents the assign operator token.
	Assign // =
	// EqEq represents the equality operator token.
	EqEq // ==
	// Bang represents the bang operator token.
	Bang // !
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// Amp represents the ampersand operator token.
	Amp // &
	// AmpAmp represents the logical-and operator token.
	AmpAmp // &&
	// Pipe represents the pipe operator token.
	Pipe // |
	// PipePipe represents the logical-or operator token.
	PipePipe // ||
	// Caret represents the caret operator token.
	Caret // ^
	// Question represents the question operator token.
	Question // ?
	// Colon represents the colon operator token.
	Colon // :
	// ColonColon represents the path separator token.
	ColonColon // ::
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .
	// DotDot represents the range token.
	DotDot // ..
	// Arrow represents the return-type arrow token.
	Arrow // ->
	// FatArrow represents the match-arm arrow token.
	FatArrow // =>
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// At represents the at token.
	At // @
	// Underscore represents the discard token.
	Underscore // _
)

var kindNames = map[Kind]string{
	Unknown:       "Unknown",
	EOF:           "EOF",
	Ident:         "Ident",
	KwFn:          "fn",
	KwLet:         "let",
	KwConst:       "const",
	KwMut:         "mut",
	KwPub:         "pub",
	KwStruct:      "struct",
	KwEnum:        "enum",
	KwTrait:       "trait",
	KwImpl:        "impl",
	KwUnsafe:      "unsafe",
	KwMatch:       "match",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwFor:         "for",
	KwIn:          "in",
	KwLoop:        "loop",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwReturn:      "return",
	KwUse:         "use",
	KwMod:         "mod",
	KwAs:          "as",
	KwType:        "type",
	KwWhere:       "where",
	KwSelf:        "self",
	KwSelfType:    "Self",
	KwTrue:        "true",
	KwFalse:       "false",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	Comment:       "Comment",
	DocComment:    "DocComment",
	SafetyComment: "SafetyComment",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Amp:           "&",
	AmpAmp:        "&&",
	Pipe:          "|",
	PipePipe:      "||",
	Caret:         "^",
	Question:      "?",
	Colon:         ":",
	ColonColon:    "::",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	DotDot:        "..",
	Arrow:         "->",
	FatArrow:      "=>",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	At:            "@",
	Underscore:    "_",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}
