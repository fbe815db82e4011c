package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tideflow/internal/format"
	"github.com/balkashynov/tideflow/internal/parser"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [title]...",
	Short: "Show how titles would be classified",
	Long: `Classify one or more task titles without saving anything. Each argument
is one title; with no arguments titles are read from stdin, one per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		titles := args
		if len(titles) == 0 {
			text, err := readDump("")
			if err != nil {
				return err
			}
			titles = parser.SplitLines(text)
		}

		// Keyword overrides from config still apply
		if err := initApp(); err != nil {
			return err
		}
		defer closeApp()

		results := current.deps.Classifier.AnalyzeBulk(titles)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		fmt.Printf("%-40s %-7s %-9s %-10s %s\n", "TITLE", "ENERGY", "DURATION", "PRIORITY", "WHY")
		fmt.Println(strings.Repeat("-", 90))
		for _, r := range results {
			fmt.Printf("%-40s %-7s %-9s %-10s %s\n",
				truncate(r.Title, 38),
				r.Energy,
				format.Duration(r.EstimatedDurationMinutes),
				r.Priority,
				r.Reasoning)
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().Bool("json", false, "JSON output")
}
