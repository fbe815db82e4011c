package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tideflow/internal/format"
	"github.com/balkashynov/tideflow/internal/models"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List a day's tasks",
	Long:    "List the tasks planned for a day (today by default), or every day with --all",
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		asJSON, _ := cmd.Flags().GetBool("json")

		buckets := models.DayBuckets{}
		var days []string

		if all {
			snapshot, err := current.store.Snapshot()
			if err != nil {
				return fmt.Errorf("failed to fetch tasks: %w", err)
			}
			buckets = snapshot
			days, err = current.store.Dates()
			if err != nil {
				return fmt.Errorf("failed to fetch days: %w", err)
			}
		} else {
			day, err := resolveDate(cmd)
			if err != nil {
				return err
			}
			tasks, err := current.store.Get(day)
			if err != nil {
				return fmt.Errorf("failed to fetch tasks: %w", err)
			}
			buckets[day] = tasks
			days = []string{day}
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(buckets)
		}

		empty := true
		for _, day := range days {
			if len(buckets[day]) > 0 {
				empty = false
				printDay(day, buckets[day])
			}
		}
		if empty {
			fmt.Println("No tasks found. Use 'tideflow intake' to plan your day.")
		}
		return nil
	}),
}

func printDay(day string, tasks []models.Task) {
	done, planned := 0, 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
		if !t.IsRescheduled() {
			planned += t.DurationMinutes
		}
	}

	fmt.Printf("\n%s · %d/%d done · %s planned\n", format.LongDate(day), done, len(tasks), format.Duration(planned))
	fmt.Printf("%-9s %-6s %-8s %-40s %-9s %s\n", "ID", "STATUS", "ENERGY", "TITLE", "DURATION", "NOTES")
	fmt.Println(strings.Repeat("-", 90))

	for _, t := range tasks {
		status := "todo"
		duration := format.Duration(t.DurationMinutes)
		switch {
		case t.Completed:
			status = "done"
			duration = format.Duration(t.FocusMinutes())
		case t.IsRescheduled():
			status = "moved"
		}

		notes := t.Notes
		if t.IsRescheduled() {
			notes = strings.TrimSpace("→ " + format.ShortDate(t.RescheduledTo) + " " + notes)
		}

		fmt.Printf("%-9s %-6s %s %-6s %-40s %-9s %s\n",
			shortID(t.ID),
			status,
			energyIcon(t.Energy),
			t.Energy,
			truncate(t.Title, 38),
			duration,
			notes)
	}
}

func init() {
	listCmd.Flags().StringP("date", "d", "", "Day to show: today, tomorrow, friday, yyyy-mm-dd")
	listCmd.Flags().BoolP("all", "a", false, "Show every day")
	listCmd.Flags().Bool("json", false, "JSON output")
}
