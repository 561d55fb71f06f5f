package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"klarlint/internal/driver"
	"klarlint/internal/dump"
)

var parseFormat string

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "pretty", "output format (pretty|json)")
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.klar",
	Short: "Parse a Klar source file and print its declarations",
	Long:  `Parse runs the structural parser over one file and prints the declaration tree, recovered syntax errors included`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	fileSet, file, result, err := driver.ParsePath(args[0])
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	for _, perr := range result.Errors {
		pos := fileSet.Position(file.ID, perr.Span.Start)
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", file.Path, pos.Line, pos.Col, perr.Msg)
	}
	if result.Resynced {
		pos := fileSet.Position(file.ID, result.ResyncSpan.Start)
		fmt.Fprintf(os.Stderr, "%s: parser resynchronized at line %d\n", file.Path, pos.Line)
	}

	switch parseFormat {
	case "pretty":
		return dump.DeclsPretty(os.Stdout, result.Decls, fileSet)
	case "json":
		return dump.DeclsJSON(os.Stdout, result.Decls)
	default:
		return fmt.Errorf("unknown format: %s", parseFormat)
	}
}
