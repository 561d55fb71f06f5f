// Package lexer turns Klar source text into a token stream. The lexer
// is total: it never fails, and byte sequences it does not recognize
// come out as token.Unknown so the parser decides what is fatal.
package lexer

import (
	"klarlint/internal/source"
	"klarlint/internal/token"
)

// Lexer scans one file. It is restartable: SetOffset moves the scan
// position to any byte offset, so consumers may re-scan a sub-span
// without re-lexing the whole file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	look   *token.Token // one-token lookahead buffer
}

// New creates a lexer over the given file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// SetOffset repositions the scan at an arbitrary byte offset and drops
// any buffered lookahead.
func (lx *Lexer) SetOffset(off uint32) {
	lx.cursor.Off = off
	lx.look = nil
}

// Next returns the next token. Comments are returned as tokens, not
// skipped. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipWhitespace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '/' && lx.atComment():
		return lx.scanComment()
	case ch == '_':
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '_' && isIdentContinueByte(b1) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanOperatorOrPunct()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			lx.cursor.Bump()
			continue
		}
		break
	}
}

func (lx *Lexer) atComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '/' && (b1 == '/' || b1 == '*')
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// Tokenize scans the whole file into a slice, EOF token included.
func Tokenize(file *source.File) []token.Token {
	lx := New(file)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
