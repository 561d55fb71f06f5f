// Package report aggregates per-file findings into one deterministic
// analysis report and renders it for machines (JSON) and humans
// (grouped text). The aggregator is the only place ordering is
// established; rules and workers may run in any order.
package report

import (
	"sort"
)

// FileState says how far a file's analysis got.
type FileState uint8

const (
	// FileFull means the file was fully analyzed.
	FileFull FileState = iota
	// FilePartial means the parser had to resynchronize; findings
	// cover the well-formed portions.
	FilePartial
	// FileSkipped means the file could not be analyzed at all
	// (typically an I/O error).
	FileSkipped
)

func (s FileState) String() string {
	switch s {
	case FileFull:
		return "analyzed"
	case FilePartial:
		return "partially analyzed"
	case FileSkipped:
		return "skipped"
	}
	return "state(?)"
}

// MarshalText implements encoding.TextMarshaler.
func (s FileState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FileResult is one file's contribution to the report.
type FileResult struct {
	Path     string
	State    FileState
	// ResyncLine is the first line the parser resynchronized at,
	// 0 when the file parsed cleanly.
	ResyncLine uint32
	// Reason explains a skip (I/O error text).
	Reason   string
	Findings []Finding
	// Doc-coverage inputs, counted over public declarations.
	DocPublic     int
	DocDocumented int
}

// Status is the overall verdict of a run.
type Status string

const (
	StatusPass             Status = "pass"
	StatusPassWithWarnings Status = "pass-with-warnings"
	StatusFail             Status = "fail"
)

// Summary holds per-severity counts and the coverage ratio.
type Summary struct {
	Critical         int     `json:"critical"`
	High             int     `json:"high"`
	Medium           int     `json:"medium"`
	Low              int     `json:"low"`
	Suggestion       int     `json:"suggestion"`
	DocCoverageRatio float64 `json:"doc_coverage_ratio"`
	Status           Status  `json:"status"`
}

// FileStatus is the per-file analysis state in the final report.
type FileStatus struct {
	Path       string    `json:"path"`
	State      FileState `json:"state"`
	ResyncLine uint32    `json:"resync_line,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

// Report is the aggregated result of one run. Pure function of the
// input file set, file contents, and enabled rules.
type Report struct {
	Findings []Finding    `json:"findings"`
	Summary  Summary      `json:"summary"`
	Files    []FileStatus `json:"files"`
}

// Aggregate merges per-file results into one report. Findings below
// minSeverity are dropped. Sorting by (file, line, column, rule) makes
// the output independent of file-processing and rule-execution order.
func Aggregate(results []FileResult, minSeverity Severity) *Report {
	rep := &Report{
		Findings: make([]Finding, 0, 64),
		Files:    make([]FileStatus, 0, len(results)),
	}

	docPublic, docDocumented := 0, 0
	for _, res := range results {
		for _, f := range res.Findings {
			if f.Severity < minSeverity {
				continue
			}
			rep.Findings = append(rep.Findings, f)
		}
		docPublic += res.DocPublic
		docDocumented += res.DocDocumented
		rep.Files = append(rep.Files, FileStatus{
			Path:       res.Path,
			State:      res.State,
			ResyncLine: res.ResyncLine,
			Reason:     res.Reason,
		})
	}

	sort.SliceStable(rep.Findings, func(i, j int) bool {
		return rep.Findings[i].Less(rep.Findings[j])
	})
	sort.SliceStable(rep.Files, func(i, j int) bool {
		return rep.Files[i].Path < rep.Files[j].Path
	})

	for _, f := range rep.Findings {
		switch f.Severity {
		case SevCritical:
			rep.Summary.Critical++
		case SevHigh:
			rep.Summary.High++
		case SevMedium:
			rep.Summary.Medium++
		case SevLow:
			rep.Summary.Low++
		case SevSuggestion:
			rep.Summary.Suggestion++
		}
	}

	// Zero public declarations counts as fully documented.
	if docPublic == 0 {
		rep.Summary.DocCoverageRatio = 1.0
	} else {
		rep.Summary.DocCoverageRatio = float64(docDocumented) / float64(docPublic)
	}

	switch {
	case rep.Summary.Critical > 0 || rep.Summary.High > 0:
		rep.Summary.Status = StatusFail
	case len(rep.Findings) > 0:
		rep.Summary.Status = StatusPassWithWarnings
	default:
		rep.Summary.Status = StatusPass
	}

	return rep
}
