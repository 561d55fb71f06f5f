package rules

import (
	"fmt"
	"strings"

	"klarlint/internal/report"
	"klarlint/internal/token"
)

// secretPatterns are matched case-insensitively as substrings of
// identifiers and string literals inside logging-call arguments.
var secretPatterns = []string{
	"password",
	"token",
	"secret",
	"api_key",
	"private_key",
	"credential",
}

// logReceivers are identifiers treated as logging facades.
var logReceivers = map[string]bool{
	"log":     true,
	"logger":  true,
	"logging": true,
}

// logMethods are the facade methods treated as log emission.
var logMethods = map[string]bool{
	"error": true,
	"warn":  true,
	"info":  true,
	"debug": true,
	"trace": true,
	"log":   true,
}

// logFuncs are bare functions treated as log emission.
var logFuncs = map[string]bool{
	"print":    true,
	"println":  true,
	"eprintln": true,
}

// SecretLeak flags logging-call arguments that mention secret
// material, regardless of any other context. Part of the security
// rule subset.
type SecretLeak struct{}

func (SecretLeak) ID() string { return IDSecretLeak }

func (SecretLeak) Describe() string {
	return "secret-looking identifiers or literals passed to logging calls"
}

func (s SecretLeak) Check(ctx *Context) []report.Finding {
	var out []report.Finding
	toks := significant(ctx.Tokens)

	for i := 0; i < len(toks); i++ {
		open, ok := logCallOpen(toks, i)
		if !ok {
			continue
		}
		out = append(out, s.scanArgs(ctx, toks, open)...)
		i = open
	}
	return out
}

// logCallOpen reports whether a logging call starts at toks[i] and
// returns the index of its '('.
func logCallOpen(toks []token.Token, i int) (int, bool) {
	t := toks[i]
	if t.Kind != token.Ident {
		return 0, false
	}
	// log.error( … facade form
	if logReceivers[strings.ToLower(t.Text)] &&
		i+3 < len(toks) &&
		(toks[i+1].Kind == token.Dot || toks[i+1].Kind == token.ColonColon) &&
		toks[i+2].Kind == token.Ident && logMethods[strings.ToLower(toks[i+2].Text)] &&
		toks[i+3].Kind == token.LParen {
		return i + 3, true
	}
	// println( … bare form
	if logFuncs[t.Text] && i+1 < len(toks) && toks[i+1].Kind == token.LParen {
		return i + 1, true
	}
	return 0, false
}

// scanArgs inspects the identifiers and string literals inside the
// call's argument list. Every matching argument gets its own finding.
func (SecretLeak) scanArgs(ctx *Context, toks []token.Token, open int) []report.Finding {
	var out []report.Finding
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return out
			}
		case token.Ident, token.StringLit:
			if pat, hit := matchSecret(toks[i].Text); hit {
				out = append(out, ctx.NewFinding(IDSecretLeak, report.SevCritical, toks[i].Span,
					fmt.Sprintf("logging call argument mentions %q; secrets must never reach logs", pat)))
			}
		}
	}
	return out
}

func matchSecret(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, pat := range secretPatterns {
		if strings.Contains(lower, pat) {
			return pat, true
		}
	}
	return "", false
}

func significant(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.IsComment() || t.Kind == token.EOF {
			continue
		}
		out = append(out, t)
	}
	return out
}
