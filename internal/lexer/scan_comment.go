package lexer

import (
	"strings"

	"klarlint/internal/token"
)

// scanComment scans '//', '///' and '/* ... */' comments as tokens.
// Classification:
//   - a body starting with "SAFETY:" -> SafetyComment (checked first,
//     the unsafe audit depends on it)
//   - '///'                          -> DocComment
//   - everything else               -> Comment
//
// Block comments support nesting; an unterminated one is cut at EOF.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // first '/'
	kind := token.Comment

	switch lx.cursor.Peek() {
	case '/':
		lx.cursor.Bump()
		if lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			kind = token.DocComment
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
	case '*':
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if isSafetyComment(text) {
		kind = token.SafetyComment
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

// isSafetyComment reports whether a raw comment's body begins with the
// SAFETY: marker.
func isSafetyComment(raw string) bool {
	body := raw
	switch {
	case strings.HasPrefix(body, "///"):
		body = body[3:]
	case strings.HasPrefix(body, "//"):
		body = body[2:]
	case strings.HasPrefix(body, "/*"):
		body = strings.TrimPrefix(body, "/*")
		body = strings.TrimSuffix(body, "*/")
	}
	return strings.HasPrefix(strings.TrimSpace(body), "SAFETY:")
}
