package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tideflow/internal/tui"
	"github.com/balkashynov/tideflow/internal/workflow"
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Review the day and get suggestions",
	Long: `Show what got done, what moved, planned versus actual focus time, and
suggestions drawn from the last few days of history.`,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		day, err := resolveDate(cmd)
		if err != nil {
			return err
		}

		days, _ := cmd.Flags().GetInt("days")
		if days <= 0 {
			days = current.cfg.Insights.Days
		}

		panel, err := workflow.NewReflection(current.deps).Build(day, days)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(panel)
		}

		fmt.Println(tui.RenderReflection(panel))
		return nil
	}),
}

func init() {
	reflectCmd.Flags().StringP("date", "d", "", "Day to reflect on (default today)")
	reflectCmd.Flags().Int("days", 0, "Days of history for insights (default from config)")
	reflectCmd.Flags().Bool("json", false, "JSON output")
}
