package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"klarlint/internal/source"
)

// PrettyOpts controls the human-readable renderer.
type PrettyOpts struct {
	Color bool
	// FileSet provides source lines for context/caret output.
	// Optional; without it only the one-line form is printed.
	FileSet *source.FileSet
}

var (
	critColor   = color.New(color.FgRed, color.Bold)
	highColor   = color.New(color.FgRed)
	medColor    = color.New(color.FgYellow)
	lowColor    = color.New(color.FgCyan)
	suggColor   = color.New(color.FgWhite, color.Faint)
	fileColor   = color.New(color.Bold)
	stateColor  = color.New(color.Faint)
	passColor   = color.New(color.FgGreen, color.Bold)
	failColor   = color.New(color.FgRed, color.Bold)
	warnColor   = color.New(color.FgYellow, color.Bold)
)

func severityLabel(s Severity, colored bool) string {
	label := s.String()
	if !colored {
		return label
	}
	switch s {
	case SevCritical:
		return critColor.Sprint(label)
	case SevHigh:
		return highColor.Sprint(label)
	case SevMedium:
		return medColor.Sprint(label)
	case SevLow:
		return lowColor.Sprint(label)
	default:
		return suggColor.Sprint(label)
	}
}

// WritePretty renders the report grouped by file, each file prefixed
// with its analysis state, followed by the run summary.
func WritePretty(w io.Writer, rep *Report, opts PrettyOpts) {
	byFile := make(map[string][]Finding, len(rep.Files))
	for _, f := range rep.Findings {
		byFile[f.File] = append(byFile[f.File], f)
	}

	for _, fs := range rep.Files {
		header := fs.Path
		if opts.Color {
			header = fileColor.Sprint(header)
		}
		state := fs.State.String()
		switch fs.State {
		case FilePartial:
			state = fmt.Sprintf("%s, resynchronized at line %d", state, fs.ResyncLine)
		case FileSkipped:
			if fs.Reason != "" {
				state = fmt.Sprintf("%s: %s", state, fs.Reason)
			}
		}
		if opts.Color {
			state = stateColor.Sprint(state)
		}
		fmt.Fprintf(w, "%s (%s)\n", header, state)

		for _, f := range byFile[fs.Path] {
			fmt.Fprintf(w, "  %d:%d  %s  %s  %s\n",
				f.Line, f.Column, severityLabel(f.Severity, opts.Color), f.Rule, f.Message)
			writeContext(w, f, opts)
			if f.SuggestedFix != "" {
				for _, line := range strings.Split(strings.TrimRight(f.SuggestedFix, "\n"), "\n") {
					fmt.Fprintf(w, "      fix: %s\n", line)
				}
			}
		}
		fmt.Fprintln(w)
	}

	writeSummary(w, rep, opts)
}

// writeContext prints the offending source line with a caret under the
// finding's span when the file is available.
func writeContext(w io.Writer, f Finding, opts PrettyOpts) {
	if opts.FileSet == nil {
		return
	}
	file, ok := opts.FileSet.GetByPath(f.File)
	if !ok {
		return
	}
	line := file.GetLine(f.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "      | %s\n", line)

	if f.Column == 0 || int(f.Column) > len(line)+1 {
		return
	}
	// visual width of everything before the caret column
	prefix := line[:f.Column-1]
	pad := strings.Repeat(" ", runewidth.StringWidth(strings.ReplaceAll(prefix, "\t", "    ")))
	width := int(f.Span.Len())
	if width < 1 {
		width = 1
	}
	if rem := len(line) - int(f.Column) + 1; width > rem && rem > 0 {
		width = rem
	}
	caret := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "      | %s%s\n", pad, caret)
}

func writeSummary(w io.Writer, rep *Report, opts PrettyOpts) {
	s := rep.Summary
	fmt.Fprintf(w, "summary: %d critical, %d high, %d medium, %d low, %d suggestion\n",
		s.Critical, s.High, s.Medium, s.Low, s.Suggestion)
	fmt.Fprintf(w, "doc coverage: %.1f%%\n", s.DocCoverageRatio*100)

	status := string(s.Status)
	if opts.Color {
		switch s.Status {
		case StatusPass:
			status = passColor.Sprint(status)
		case StatusPassWithWarnings:
			status = warnColor.Sprint(status)
		case StatusFail:
			status = failColor.Sprint(status)
		}
	}
	fmt.Fprintf(w, "status: %s\n", status)
}
