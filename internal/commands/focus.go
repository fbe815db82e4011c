package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tideflow/internal/format"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/parser"
	"github.com/balkashynov/tideflow/internal/tui"
	"github.com/balkashynov/tideflow/internal/workflow"
)

var nextCmd = &cobra.Command{
	Use:     "next",
	Aliases: []string{"focus"},
	Short:   "Work on the next task",
	Long: `Pick the next pending task, preferring the energy you have right now, and
start a focus timer. Use --no-ui to just print it.

Examples:
  tideflow next               # Focus timer, high energy first
  tideflow next --energy low  # Start with something light
  tideflow next --no-ui`,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		day, err := resolveDate(cmd)
		if err != nil {
			return err
		}

		energy := models.EnergyHigh
		if flagEnergy, _ := cmd.Flags().GetString("energy"); flagEnergy != "" {
			energy, err = parser.ParseEnergy(flagEnergy)
			if err != nil {
				return err
			}
		}

		focus := workflow.NewFocus(current.deps)

		if noUI, _ := cmd.Flags().GetBool("no-ui"); !noUI {
			return tui.RunFocusTUI(focus, day, energy, current.cfg.UI.ReduceMotion)
		}

		task, ok, err := focus.Current(day, energy)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("🌊 Nothing left for %s\n", format.LongDate(day))
			return nil
		}
		fmt.Printf("Next up %s: %s\n", shortID(task.ID), task.Title)
		fmt.Printf("  Energy: %s\n", task.Energy)
		fmt.Printf("  Planned: %s\n", format.Duration(task.DurationMinutes))
		return nil
	}),
}

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		focus := workflow.NewFocus(current.deps)
		task, err := focus.Find(args[0])
		if err != nil {
			return err
		}

		actual, _ := cmd.Flags().GetInt("actual")
		note, _ := cmd.Flags().GetString("note")

		task, err = focus.Complete(task.ScheduledDate, task.ID, note, actual)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Marked task %s as done: %s\n", shortID(task.ID), task.Title)
		fmt.Printf("Focus time: %s (planned %s)\n", format.Duration(task.FocusMinutes()), format.Duration(task.DurationMinutes))
		return nil
	}),
}

var skipCmd = &cobra.Command{
	Use:   "skip [task-id]",
	Short: "Send a task to the back of its day",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		focus := workflow.NewFocus(current.deps)
		task, err := focus.Find(args[0])
		if err != nil {
			return err
		}
		if err := focus.Skip(task.ScheduledDate, task.ID); err != nil {
			return err
		}
		fmt.Printf("⏭  Skipped %s: %s\n", shortID(task.ID), task.Title)
		return nil
	}),
}

var rescheduleCmd = &cobra.Command{
	Use:     "reschedule [task-id] [when]",
	Aliases: []string{"mv"},
	Short:   "Move a pending task to another day",
	Long: `Move a pending task to another day. The original row stays on its day,
marked as moved, and a fresh copy is added to the end of the target day.

Examples:
  tideflow reschedule 3f2a tomorrow
  tideflow reschedule 3f2a friday --note "waiting on data"
  tideflow reschedule 3f2a 2024-03-01 --from 2024-02-28`,
	Args: cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		focus := workflow.NewFocus(current.deps)

		task, err := focus.Find(args[0])
		if err != nil {
			return err
		}

		from := task.ScheduledDate
		if flagFrom, _ := cmd.Flags().GetString("from"); flagFrom != "" {
			from, err = parser.ParseDate(flagFrom, current.deps.Now())
			if err != nil {
				return err
			}
		}

		to, err := parser.ParseDate(args[1], current.deps.Now())
		if err != nil {
			return err
		}

		note, _ := cmd.Flags().GetString("note")
		successor, err := focus.Reschedule(task.ID, from, to, note)
		if err != nil {
			return err
		}

		fmt.Printf("↪ Moved %s to %s (new id %s)\n", successor.Title, format.LongDate(to), shortID(successor.ID))
		return nil
	}),
}

func init() {
	nextCmd.Flags().StringP("date", "d", "", "Day to work on (default today)")
	nextCmd.Flags().StringP("energy", "e", "", "Energy you have right now: high, medium, low")
	nextCmd.Flags().Bool("no-ui", false, "Print the next task without the timer")

	doneCmd.Flags().IntP("actual", "a", 0, "Actual minutes spent (default: planned)")
	doneCmd.Flags().StringP("note", "n", "", "Reflection notes")

	rescheduleCmd.Flags().String("from", "", "Day the task is on (default: the day it was found on)")
	rescheduleCmd.Flags().StringP("note", "n", "", "Why it moved")
}
