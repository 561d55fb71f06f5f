package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"klarlint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "klarlint",
	Short:        "Klar source standards analyzer",
	Long:         `klarlint checks Klar source trees against naming, ownership, API shape, error-handling, and security standards`,
	SilenceUsage: true,
	// Errors are printed by main so the failing-analysis sentinel can
	// map to its own exit code without extra output.
	SilenceErrors: true,
}

// errAnalysisFailed distinguishes "findings at or above the severity
// threshold" from invocation errors. Exit codes: 0 clean, 1 findings
// present, 2 usage or I/O problems.
var errAnalysisFailed = errors.New("analysis failed")

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
}

func main() {
	rootCmd.Version = version.Version

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errAnalysisFailed) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
