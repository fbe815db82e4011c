package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tideflow/internal/format"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/parser"
	"github.com/balkashynov/tideflow/internal/workflow"
)

var addCmd = &cobra.Command{
	Use:   "add [task description]",
	Short: "Add a single task to a day",
	Long: `Add one task without going through intake. Energy and duration are
estimated from the title unless given inline or as flags.

Examples:
  tideflow add "Reply to emails"
  tideflow add "Prepare board deck +high ~90m" --date tomorrow
  tideflow add "Call the bank" --energy low --duration 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		day, err := resolveDate(cmd)
		if err != nil {
			return err
		}

		parsed := parser.ParseLine(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
		}

		energy := parsed.Energy
		if flagEnergy, _ := cmd.Flags().GetString("energy"); flagEnergy != "" {
			energy, err = parser.ParseEnergy(flagEnergy)
			if err != nil {
				return err
			}
		}

		duration := parsed.Duration
		if flagDuration, _ := cmd.Flags().GetInt("duration"); flagDuration > 0 {
			duration = flagDuration
		}

		task, err := workflow.NewFocus(current.deps).QuickAdd(day, parsed.Title, energy, duration)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("Created task %s: %s\n", shortID(task.ID), task.Title)
		fmt.Printf("  Day: %s\n", format.LongDate(task.ScheduledDate))
		fmt.Printf("  Energy: %s\n", task.Energy)
		fmt.Printf("  Duration: %s\n", format.Duration(task.DurationMinutes))
		return nil
	}),
}

// shortID is the prefix shown in listings; any unique prefix works as an id
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// energyIcon marks energy in plain text listings
func energyIcon(e models.Energy) string {
	switch e {
	case models.EnergyHigh:
		return "▲"
	case models.EnergyMedium:
		return "◆"
	case models.EnergyLow:
		return "▼"
	}
	return " "
}

func init() {
	addCmd.Flags().StringP("date", "d", "", "Day: today, tomorrow, friday, 3 days, yyyy-mm-dd")
	addCmd.Flags().StringP("energy", "e", "", "Energy: high, medium, low or 3/2/1")
	addCmd.Flags().IntP("duration", "m", 0, "Planned duration in minutes")
}
