package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"klarlint/internal/config"
	"klarlint/internal/driver"
	"klarlint/internal/report"
	"klarlint/internal/rules"
	"klarlint/internal/source"
	"klarlint/internal/ui"
)

var (
	analyzeRules       string
	analyzeFormat      string
	analyzeSeverityMin string
	analyzeExclude     []string
	analyzeJobs        int
	analyzeUI          bool
	analyzeWatch       bool
	analyzeCache       bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRules, "rules", "full", "rule set to run (full|security)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "output format (text|json)")
	analyzeCmd.Flags().StringVar(&analyzeSeverityMin, "severity-min", "suggestion", "drop findings below this severity (critical|high|medium|low|suggestion)")
	analyzeCmd.Flags().StringSliceVar(&analyzeExclude, "exclude", nil, "directory names or glob patterns to skip")
	analyzeCmd.Flags().IntVar(&analyzeJobs, "jobs", 0, "number of parallel workers (0 = all CPUs)")
	analyzeCmd.Flags().BoolVar(&analyzeUI, "ui", false, "interactive progress display")
	analyzeCmd.Flags().BoolVar(&analyzeWatch, "watch", false, "re-run analysis when files change")
	analyzeCmd.Flags().BoolVar(&analyzeCache, "cache", false, "reuse results for unchanged files")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] [path]",
	Short: "Analyze a Klar source tree or file",
	Long:  `Analyze lexes, parses, and checks every Klar file under the given directory (or the single given file), then prints one aggregated report`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot analyze %q: %w", target, err)
	}

	// A file argument bypasses discovery entirely.
	dir := target
	var explicit []string
	if !info.IsDir() {
		dir = filepath.Dir(target)
		explicit = []string{target}
	}

	cfg, err := config.Discover(dir)
	if err != nil {
		return err
	}

	minSev, err := report.ParseSeverity(analyzeSeverityMin)
	if err != nil {
		return err
	}

	var ruleSet []rules.Rule
	switch analyzeRules {
	case "full":
		ruleSet = rules.All()
	case "security":
		ruleSet = rules.Security()
	default:
		return fmt.Errorf("unknown rule set %q (want full or security)", analyzeRules)
	}
	ruleSet = rules.Select(ruleSet, cfg.Rules)

	excludes := append(append([]string{}, cfg.Analyze.Exclude...), analyzeExclude...)

	jobs := analyzeJobs
	if jobs <= 0 {
		jobs = cfg.Analyze.Jobs
	}

	var cache *driver.DiskCache
	if analyzeCache {
		cache, err = driver.OpenDiskCache("klarlint")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}

	opts := driver.Options{
		Jobs:        jobs,
		Rules:       ruleSet,
		MinSeverity: minSev,
		Cache:       cache,
	}

	if analyzeWatch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err := driver.Watch(ctx, dir, cfg.Analyze.Extensions, excludes,
			func(runCtx context.Context) error {
				_, runErr := analyzeOnce(runCtx, cmd, dir, explicit, cfg, excludes, opts)
				return runErr
			},
			func(watchErr error) {
				fmt.Fprintln(os.Stderr, "error:", watchErr)
			})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	rep, err := analyzeOnce(cmd.Context(), cmd, dir, explicit, cfg, excludes, opts)
	if err != nil {
		return err
	}
	// Any finding surviving the severity floor fails the run; the
	// report's status string stays independent of the exit code.
	if len(rep.Findings) > 0 {
		return errAnalysisFailed
	}
	return nil
}

// analyzeOnce runs one full analysis pass and renders the report.
func analyzeOnce(ctx context.Context, cmd *cobra.Command, dir string, explicit []string, cfg *config.Config, excludes []string, opts driver.Options) (*report.Report, error) {
	files := explicit
	if files == nil {
		var err error
		files, err = driver.ListFiles(dir, cfg.Analyze.Extensions, excludes)
		if err != nil {
			return nil, err
		}
	}

	fileSet, rep, err := runPipeline(ctx, dir, files, opts)
	if err != nil {
		return nil, err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	switch analyzeFormat {
	case "json":
		if err := report.WriteJSON(os.Stdout, rep); err != nil {
			return nil, err
		}
	case "text":
		if !quiet {
			report.WritePretty(os.Stdout, rep, report.PrettyOpts{
				Color:   useColor(cmd, os.Stdout),
				FileSet: fileSet,
			})
		}
	default:
		return nil, fmt.Errorf("unknown format %q (want text or json)", analyzeFormat)
	}
	return rep, nil
}

type analyzeOutcome struct {
	fileSet *source.FileSet
	rep     *report.Report
	err     error
}

// runPipeline dispatches to the plain or interactive runner.
func runPipeline(ctx context.Context, dir string, files []string, opts driver.Options) (*source.FileSet, *report.Report, error) {
	if !analyzeUI || analyzeWatch || !isTerminal(os.Stderr) {
		return driver.Analyze(ctx, dir, files, opts)
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(ev driver.Event) { events <- ev }
		fs, rep, err := driver.Analyze(ctx, dir, files, optsCopy)
		outcomeCh <- analyzeOutcome{fileSet: fs, rep: rep, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("analyzing "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.rep, uiErr
	}
	return outcome.fileSet, outcome.rep, outcome.err
}
