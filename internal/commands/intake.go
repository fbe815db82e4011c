package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tideflow/internal/format"
	"github.com/balkashynov/tideflow/internal/tui"
	"github.com/balkashynov/tideflow/internal/workflow"
)

var intakeCmd = &cobra.Command{
	Use:   "intake [task] [task]...",
	Short: "Brain dump tasks and plan a day",
	Long: `Dump everything on your mind, one task per line. Each line is classified
by energy and given a duration estimate, then you review the list before it
is saved to the day.

Modes:
  Interactive: tideflow intake (textarea, then review)
  Direct:      tideflow intake --no-ui < dump.txt
               tideflow intake --no-ui --file dump.txt --dry-run

Inline overrides:
  +high|+medium|+low  - Energy (also +h/+m/+l, +3/+2/+1)
  ~25m, ~1h, ~45      - Planned duration`,
	Args: cobra.ArbitraryArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		day, err := resolveDate(cmd)
		if err != nil {
			return err
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		file, _ := cmd.Flags().GetString("file")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		text := strings.Join(args, "\n")
		if file != "" || (noUI && len(args) == 0) {
			text, err = readDump(file)
			if err != nil {
				return err
			}
		}

		in := workflow.NewIntake(current.deps)

		if !noUI && !dryRun {
			_, err := tui.RunIntakeTUI(in, day, text)
			return err
		}

		candidates := in.Analyze(text)
		if len(candidates) == 0 {
			fmt.Println("Nothing to plan. Write one task per line.")
			return nil
		}
		printCandidates(candidates)

		if dryRun {
			fmt.Println("\nDry run, nothing saved.")
			return nil
		}

		created, err := in.Confirm(day)
		if err != nil {
			return fmt.Errorf("failed to save tasks: %w", err)
		}
		fmt.Printf("\n✅ Added %d tasks to %s\n", len(created), format.LongDate(day))
		return nil
	}),
}

// readDump reads the brain dump from a file, or stdin when path is empty
func readDump(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read tasks: %w", err)
	}
	return string(data), nil
}

func printCandidates(candidates []workflow.Candidate) {
	fmt.Printf("%-40s %-7s %-9s %-10s %s\n", "TITLE", "ENERGY", "DURATION", "PRIORITY", "WHY")
	fmt.Println(strings.Repeat("-", 90))

	total := 0
	for _, c := range candidates {
		total += c.EstimatedDurationMinutes
		fmt.Printf("%-40s %-7s %-9s %-10s %s\n",
			truncate(c.Title, 38),
			c.Energy,
			format.Duration(c.EstimatedDurationMinutes),
			c.Priority,
			c.Reasoning)
		for _, e := range c.Errors {
			fmt.Printf("  ⚠️  %s\n", e)
		}
	}
	fmt.Printf("\n%d tasks, %s planned\n", len(candidates), format.Duration(total))
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func init() {
	intakeCmd.Flags().StringP("date", "d", "", "Day to plan: today, tomorrow, friday, 3 days, yyyy-mm-dd")
	intakeCmd.Flags().Bool("no-ui", false, "Read tasks from --file or stdin and save without the TUI")
	intakeCmd.Flags().StringP("file", "f", "", "Read the brain dump from a file")
	intakeCmd.Flags().Bool("dry-run", false, "Show the classification without saving")
}
