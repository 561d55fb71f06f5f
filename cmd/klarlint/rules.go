package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"klarlint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered rules",
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	idColor := color.New(color.Bold)
	tagColor := color.New(color.FgYellow)

	// The color package autodetects TTYs; only explicit flags override.
	switch colorFlag, _ := cmd.Root().PersistentFlags().GetString("color"); colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}

	for _, r := range rules.All() {
		id := r.ID()
		line := idColor.Sprintf("%-16s", id)
		if rules.IsSecurity(id) {
			line += tagColor.Sprint("[security] ")
		}
		fmt.Fprintf(out, "%s %s\n", line, r.Describe())
	}
	return nil
}
