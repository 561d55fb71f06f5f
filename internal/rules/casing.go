package rules

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// segmentIdent splits an identifier into logical words, on underscores
// and on letter-case transitions: "getUserName" -> [get User Name],
// "HTTPServer" -> [HTTP Server], "MAX_SIZE" -> [MAX SIZE].
func segmentIdent(name string) []string {
	var segs []string
	for _, chunk := range strings.Split(name, "_") {
		if chunk == "" {
			continue
		}
		segs = append(segs, splitCaseTransitions(chunk)...)
	}
	return segs
}

func splitCaseTransitions(chunk string) []string {
	var out []string
	runes := []rune(chunk)
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		// lower|digit -> Upper starts a new word
		if isUpper(cur) && !isUpper(prev) {
			out = append(out, string(runes[start:i]))
			start = i
			continue
		}
		// UPPER-run followed by Upper+lower: "HTTPServer" splits
		// before 'S'
		if i+1 < len(runes) && isUpper(prev) && isUpper(cur) && isLower(runes[i+1]) {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	out = append(out, string(runes[start:]))
	return out
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

// toSnake renders segments as snake_case.
func toSnake(segs []string) string {
	lower := make([]string, len(segs))
	for i, s := range segs {
		lower[i] = strings.ToLower(s)
	}
	return strings.Join(lower, "_")
}

// toUpperSnake renders segments as UPPER_SNAKE_CASE.
func toUpperSnake(segs []string) string {
	upper := make([]string, len(segs))
	for i, s := range segs {
		upper[i] = strings.ToUpper(s)
	}
	return strings.Join(upper, "_")
}

// toPascal renders segments as PascalCase.
func toPascal(segs []string) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(titleCaser.String(strings.ToLower(s)))
	}
	return b.String()
}

// isPascalName accepts PascalCase including acronym runs (HTTPServer):
// leading upper-case letter, no underscores.
func isPascalName(name string) bool {
	if name == "" || !isUpper(rune(name[0])) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}

// isSnakeName accepts snake_case: lower-case letters, digits, and
// underscores only.
func isSnakeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if isUpper(r) {
			return false
		}
	}
	return true
}

// isUpperSnakeName accepts UPPER_SNAKE_CASE.
func isUpperSnakeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if isLower(r) {
			return false
		}
	}
	return true
}
