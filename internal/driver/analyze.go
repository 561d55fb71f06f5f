// Package driver orchestrates analysis runs: file discovery, the
// parallel per-file pipeline (lex, parse, rules), the result cache,
// and watch mode. Workers never share mutable state; each writes into
// its own slot of the results slice and the aggregator establishes
// ordering afterwards.
package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"klarlint/internal/lexer"
	"klarlint/internal/parser"
	"klarlint/internal/report"
	"klarlint/internal/rules"
	"klarlint/internal/source"
)

// Event is one progress notification, emitted once per completed file.
type Event struct {
	Path     string
	Total    int
	State    report.FileState
	Findings int
	Cached   bool
}

// Options configures a run.
type Options struct {
	// Jobs caps the worker pool; 0 means GOMAXPROCS.
	Jobs int
	// Rules is the enabled rule set.
	Rules []rules.Rule
	// MinSeverity drops findings below it during aggregation.
	MinSeverity report.Severity
	// Cache, when non-nil, short-circuits files whose content and rule
	// set were seen before.
	Cache *DiskCache
	// Progress, when non-nil, is called from worker goroutines as each
	// file finishes. It must be safe for concurrent use.
	Progress func(Event)
}

// Analyze runs the full pipeline over files and aggregates the report.
// Cancellation is all-or-nothing: on context error no report is
// returned. The returned FileSet backs source-context rendering.
func Analyze(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, *report.Report, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, report.Aggregate(nil, opts.MinSeverity), nil
	}

	// Load sequentially: FileSet mutation is not thread-safe, and the
	// parallel phase below only reads it.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	fingerprint := ruleFingerprint(opts.Rules)

	// Each goroutine owns exactly one index, so no mutex is needed.
	results := make([]report.FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				results[i] = skippedResult(path, loadErr)
				emit(opts, Event{Path: path, Total: len(files), State: report.FileSkipped})
				return nil
			}

			file := fileSet.Get(fileIDs[path])

			if opts.Cache != nil {
				if res, hit := opts.Cache.Lookup(file.Hash, fingerprint); hit {
					results[i] = res
					emit(opts, Event{Path: path, Total: len(files), State: res.State, Findings: len(res.Findings), Cached: true})
					return nil
				}
			}

			res := analyzeFile(fileSet, file, opts.Rules)
			results[i] = res
			if opts.Cache != nil {
				// Best effort; a write failure never fails the run.
				_ = opts.Cache.Store(file.Hash, fingerprint, res)
			}
			emit(opts, Event{Path: path, Total: len(files), State: res.State, Findings: len(res.Findings)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, nil, err
	}
	return fileSet, report.Aggregate(results, opts.MinSeverity), nil
}

// analyzeFile runs lex, parse, and rules over one loaded file.
func analyzeFile(fileSet *source.FileSet, file *source.File, rs []rules.Rule) report.FileResult {
	tokens := lexer.Tokenize(file)
	parsed := parser.ParseFile(fileSet, file, tokens)

	res := report.FileResult{
		Path:  file.Path,
		State: report.FileFull,
	}
	if parsed.Resynced || len(parsed.Errors) > 0 {
		res.State = report.FilePartial
	}
	if parsed.Resynced {
		res.ResyncLine = fileSet.Position(file.ID, parsed.ResyncSpan.Start).Line
	}

	// Syntax errors surface as findings so the report stays the single
	// channel for everything a run discovered.
	for _, perr := range parsed.Errors {
		pos := fileSet.Position(file.ID, perr.Span.Start)
		res.Findings = append(res.Findings, report.Finding{
			Rule:     report.RuleParseError,
			Severity: report.SevHigh,
			File:     file.Path,
			Line:     pos.Line,
			Column:   pos.Col,
			Message:  perr.Msg,
			Span:     perr.Span,
		})
	}

	rctx := &rules.Context{
		FileSet: fileSet,
		File:    file,
		Tokens:  tokens,
		Decls:   parsed.Decls,
	}
	res.Findings = append(res.Findings, rules.Run(rctx, rs)...)
	res.DocDocumented, res.DocPublic = rules.Stats(parsed.Decls)
	return res
}

func skippedResult(path string, loadErr error) report.FileResult {
	return report.FileResult{
		Path:   path,
		State:  report.FileSkipped,
		Reason: loadErr.Error(),
		Findings: []report.Finding{{
			Rule:     report.RuleIOError,
			Severity: report.SevHigh,
			File:     path,
			Line:     1,
			Column:   1,
			Message:  "failed to read file: " + loadErr.Error(),
		}},
	}
}

func emit(opts Options, ev Event) {
	if opts.Progress != nil {
		opts.Progress(ev)
	}
}
