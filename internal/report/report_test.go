package report

import (
	"math"
	"reflect"
	"testing"
)

func finding(rule string, sev Severity, file string, line, col uint32) Finding {
	return Finding{Rule: rule, Severity: sev, File: file, Line: line, Column: col}
}

func TestAggregate_DeterministicOrder(t *testing.T) {
	a := FileResult{Path: "a.klar", State: FileFull, Findings: []Finding{
		finding("naming", SevLow, "a.klar", 10, 5),
		finding("ownership", SevCritical, "a.klar", 3, 1),
	}}
	b := FileResult{Path: "b.klar", State: FileFull, Findings: []Finding{
		finding("doc-coverage", SevLow, "b.klar", 1, 1),
	}}

	first := Aggregate([]FileResult{a, b}, SevSuggestion)
	second := Aggregate([]FileResult{b, a}, SevSuggestion)

	if !reflect.DeepEqual(first.Findings, second.Findings) {
		t.Errorf("findings depend on input order:\n%v\nvs\n%v", first.Findings, second.Findings)
	}
	if !reflect.DeepEqual(first.Files, second.Files) {
		t.Errorf("file statuses depend on input order")
	}

	want := []Finding{
		finding("ownership", SevCritical, "a.klar", 3, 1),
		finding("naming", SevLow, "a.klar", 10, 5),
		finding("doc-coverage", SevLow, "b.klar", 1, 1),
	}
	if !reflect.DeepEqual(first.Findings, want) {
		t.Errorf("sorted findings = %v, want %v", first.Findings, want)
	}
}

func TestAggregate_SeverityFloor(t *testing.T) {
	res := FileResult{Path: "a.klar", State: FileFull, Findings: []Finding{
		finding("naming", SevSuggestion, "a.klar", 1, 1),
		finding("naming", SevLow, "a.klar", 2, 1),
		finding("error-handling", SevHigh, "a.klar", 3, 1),
	}}

	rep := Aggregate([]FileResult{res}, SevMedium)
	if len(rep.Findings) != 1 {
		t.Fatalf("findings below the floor must be dropped, got %v", rep.Findings)
	}
	if rep.Findings[0].Severity != SevHigh {
		t.Errorf("kept severity = %v", rep.Findings[0].Severity)
	}
	if rep.Summary.Low != 0 || rep.Summary.Suggestion != 0 {
		t.Errorf("summary must only count kept findings: %+v", rep.Summary)
	}
}

func TestAggregate_Status(t *testing.T) {
	tests := []struct {
		name     string
		findings []Finding
		want     Status
	}{
		{"clean", nil, StatusPass},
		{"warnings only", []Finding{finding("naming", SevMedium, "a.klar", 1, 1)}, StatusPassWithWarnings},
		{"high fails", []Finding{finding("error-handling", SevHigh, "a.klar", 1, 1)}, StatusFail},
		{"critical fails", []Finding{finding("unsafe-audit", SevCritical, "a.klar", 1, 1)}, StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := Aggregate([]FileResult{{Path: "a.klar", Findings: tt.findings}}, SevSuggestion)
			if rep.Summary.Status != tt.want {
				t.Errorf("status = %q, want %q", rep.Summary.Status, tt.want)
			}
		})
	}
}

func TestAggregate_DocCoverageRatio(t *testing.T) {
	rep := Aggregate([]FileResult{
		{Path: "a.klar", DocPublic: 3, DocDocumented: 1},
		{Path: "b.klar", DocPublic: 1, DocDocumented: 1},
	}, SevSuggestion)

	if math.Abs(rep.Summary.DocCoverageRatio-0.5) > 1e-9 {
		t.Errorf("ratio = %v, want 0.5", rep.Summary.DocCoverageRatio)
	}
}

func TestAggregate_NoPublicDeclsIsFullyDocumented(t *testing.T) {
	rep := Aggregate([]FileResult{{Path: "a.klar"}}, SevSuggestion)
	if rep.Summary.DocCoverageRatio != 1.0 {
		t.Errorf("ratio = %v, want 1.0", rep.Summary.DocCoverageRatio)
	}
	if rep.Summary.Status != StatusPass {
		t.Errorf("status = %q", rep.Summary.Status)
	}
}

func TestAggregate_FileStatuses(t *testing.T) {
	rep := Aggregate([]FileResult{
		{Path: "z.klar", State: FileSkipped, Reason: "permission denied"},
		{Path: "a.klar", State: FilePartial, ResyncLine: 7},
	}, SevSuggestion)

	if len(rep.Files) != 2 || rep.Files[0].Path != "a.klar" {
		t.Fatalf("file statuses must sort by path, got %v", rep.Files)
	}
	if rep.Files[0].State != FilePartial || rep.Files[0].ResyncLine != 7 {
		t.Errorf("partial status = %+v", rep.Files[0])
	}
	if rep.Files[1].State != FileSkipped || rep.Files[1].Reason != "permission denied" {
		t.Errorf("skipped status = %+v", rep.Files[1])
	}
}

func TestFinding_Less(t *testing.T) {
	base := finding("naming", SevLow, "b.klar", 5, 5)
	tests := []struct {
		name  string
		other Finding
		want  bool
	}{
		{"earlier file", finding("naming", SevLow, "c.klar", 1, 1), true},
		{"earlier line", finding("naming", SevLow, "b.klar", 6, 1), true},
		{"earlier column", finding("naming", SevLow, "b.klar", 5, 6), true},
		{"rule breaks ties", finding("ownership", SevLow, "b.klar", 5, 5), true},
		{"equal", base, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Less(tt.other); got != tt.want {
				t.Errorf("Less = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverity_ParseRoundTrip(t *testing.T) {
	for _, sev := range []Severity{SevSuggestion, SevLow, SevMedium, SevHigh, SevCritical} {
		parsed, err := ParseSeverity(sev.String())
		if err != nil {
			t.Fatalf("ParseSeverity(%q): %v", sev, err)
		}
		if parsed != sev {
			t.Errorf("round trip %v -> %v", sev, parsed)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("unknown severity must error")
	}
}
