package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"klarlint/internal/driver"
	"klarlint/internal/dump"
)

var tokenizeFormat string

func init() {
	tokenizeCmd.Flags().StringVar(&tokenizeFormat, "format", "pretty", "output format (pretty|json)")
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.klar",
	Short: "Tokenize a Klar source file",
	Long:  `Tokenize breaks down a Klar source file into its constituent tokens, comments included`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	fileSet, _, tokens, err := driver.TokenizeFile(args[0])
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	switch tokenizeFormat {
	case "pretty":
		return dump.TokensPretty(os.Stdout, tokens, fileSet)
	case "json":
		return dump.TokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", tokenizeFormat)
	}
}
