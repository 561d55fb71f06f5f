package driver

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"klarlint/internal/report"
	"klarlint/internal/rules"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const cleanSource = `/// Opens the widget.
pub fn open_widget() {
}
`

const brokenSource = `pub struct Broken {
    name: String
`

func TestListFiles_ExtensionsAndExcludes(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.klar", cleanSource)
	c := writeFile(t, dir, filepath.Join("sub", "c.klar"), cleanSource)
	writeFile(t, dir, "notes.txt", "not source")
	writeFile(t, dir, filepath.Join("vendor", "dep.klar"), cleanSource)
	writeFile(t, dir, filepath.Join("target", "out.klar"), cleanSource)

	files, err := ListFiles(dir, []string{".klar"}, []string{"vendor", "target"})
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := []string{a, c}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestListFiles_GlobExclude(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "main.klar", cleanSource)
	writeFile(t, dir, "main_gen.klar", cleanSource)

	files, err := ListFiles(dir, []string{".klar"}, []string{"*_gen.klar"})
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 || files[0] != keep {
		t.Errorf("files = %v, want only %s", files, keep)
	}
}

func TestAnalyze_CleanFilePasses(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.klar", cleanSource)

	_, rep, err := Analyze(context.Background(), dir, []string{path}, Options{Rules: rules.All()})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(rep.Findings) != 0 {
		t.Errorf("findings = %v", rep.Findings)
	}
	if rep.Summary.Status != report.StatusPass {
		t.Errorf("status = %q", rep.Summary.Status)
	}
	if rep.Summary.DocCoverageRatio != 1.0 {
		t.Errorf("doc coverage = %v", rep.Summary.DocCoverageRatio)
	}
}

func TestAnalyze_BrokenFileIsPartial(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.klar", brokenSource)

	_, rep, err := Analyze(context.Background(), dir, []string{path}, Options{Rules: rules.All()})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(rep.Files) != 1 || rep.Files[0].State != report.FilePartial {
		t.Fatalf("files = %+v, want one partial entry", rep.Files)
	}
	if rep.Files[0].ResyncLine == 0 {
		t.Error("partial file must record the resync line")
	}
	found := false
	for _, f := range rep.Findings {
		if f.Rule == report.RuleParseError && f.Severity == report.SevHigh {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a parse-error finding, got %v", rep.Findings)
	}
	if rep.Summary.Status != report.StatusFail {
		t.Errorf("status = %q", rep.Summary.Status)
	}
}

func TestAnalyze_MissingFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.klar", cleanSource)
	missing := filepath.Join(dir, "missing.klar")

	_, rep, err := Analyze(context.Background(), dir, []string{good, missing}, Options{Rules: rules.All()})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	var skipped *report.FileStatus
	for i := range rep.Files {
		if rep.Files[i].Path == missing {
			skipped = &rep.Files[i]
		}
	}
	if skipped == nil || skipped.State != report.FileSkipped || skipped.Reason == "" {
		t.Fatalf("missing file status = %+v", skipped)
	}
	found := false
	for _, f := range rep.Findings {
		if f.Rule == report.RuleIOError && f.File == missing && f.Line == 1 && f.Column == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an io-error finding for %s, got %v", missing, rep.Findings)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.klar", "pub fn doThing() {\n}\n"),
		writeFile(t, dir, "b.klar", brokenSource),
		writeFile(t, dir, "c.klar", cleanSource),
	}

	_, first, err := Analyze(context.Background(), dir, files, Options{Rules: rules.All(), Jobs: 4})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	_, second, err := Analyze(context.Background(), dir, files, Options{Rules: rules.All(), Jobs: 1})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reports differ across job counts:\n%+v\nvs\n%+v", first, second)
	}
}

func TestAnalyze_CacheHitsOnSecondRun(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("klarlint-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.klar", cleanSource),
		writeFile(t, dir, "b.klar", brokenSource),
	}

	var mu sync.Mutex
	var cached int
	opts := Options{
		Rules: rules.All(),
		Cache: cache,
		Progress: func(ev Event) {
			mu.Lock()
			if ev.Cached {
				cached++
			}
			mu.Unlock()
		},
	}

	_, first, err := Analyze(context.Background(), dir, files, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if cached != 0 {
		t.Fatalf("first run saw %d cache hits", cached)
	}

	_, second, err := Analyze(context.Background(), dir, files, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if cached != len(files) {
		t.Errorf("second run cache hits = %d, want %d", cached, len(files))
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached report differs from fresh report")
	}
}

func TestDiskCache_FingerprintIsolatesRuleSets(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("klarlint-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	content := Digest{1, 2, 3}
	full := ruleFingerprint(rules.All())
	security := ruleFingerprint(rules.Security())

	res := report.FileResult{Path: "x.klar", State: report.FileFull, DocPublic: 2, DocDocumented: 1}
	if err := cache.Store(content, full, res); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, hit := cache.Lookup(content, full)
	if !hit {
		t.Fatal("expected a hit for the stored fingerprint")
	}
	if got.Path != res.Path || got.DocPublic != 2 || got.DocDocumented != 1 {
		t.Errorf("roundtrip = %+v", got)
	}
	if _, hit := cache.Lookup(content, security); hit {
		t.Error("a different rule selection must miss")
	}
	if _, hit := cache.Lookup(Digest{9}, full); hit {
		t.Error("different content must miss")
	}
}

func TestDiskCache_DropAll(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("klarlint-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	content := Digest{7}
	fp := ruleFingerprint(rules.All())
	if err := cache.Store(content, fp, report.FileResult{Path: "x.klar"}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, hit := cache.Lookup(content, fp); hit {
		t.Error("cache must miss after DropAll")
	}
}
