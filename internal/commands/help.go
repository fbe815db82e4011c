package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show help for tideflow",
	Long:  `Display an overview of every tideflow command, or the help of one command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			target, _, err := rootCmd.Find(args)
			if err != nil || target == rootCmd {
				return fmt.Errorf("unknown command %q", args[0])
			}
			return target.Help()
		}
		showCustomHelp()
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tideflow %s (commit %s, built %s)\n", version, commit, date)
	},
}

func showCustomHelp() {
	fmt.Print(`
 ▀█▀ █ █▀▄ █▀▀ █▀▀ █   █▀█ █ █ █
  █  █ █▄▀ ██▄ █▀  █▄▄ █▄█ ▀▄▀▄▀

tideflow - energy-aware daily planner

COMMANDS:

  intake [task]...        Brain dump, classify and plan a day
    -d, --date            Day to plan (today, tomorrow, friday, 3 days, yyyy-mm-dd)
    -f, --file            Read the dump from a file
    --no-ui               Read from --file or stdin and save directly
    --dry-run             Show the classification, save nothing

    Inline syntax:
      +high|+medium|+low  Set energy (+h/+m/+l, +3/+2/+1)
      ~25m, ~1h           Set planned duration

    Example:
      tideflow intake "Prepare board deck +high ~90m" "Reply to Sam"

  add <task>              Add one task, energy estimated from the title
    -e, --energy          high|medium|low
    -m, --duration        Planned minutes

  classify [title]...     Show energy, priority and duration estimates
    --json                JSON output

  ls                      List a day's tasks
    -d, --date            Day to show
    -a, --all             Every day
    --json                JSON output

  next                    Focus timer on the next task
    -e, --energy          Energy you have right now
    --no-ui               Just print the next task

    Timer keys:
      c             Complete (records elapsed minutes)
      k             Skip to the back of the queue
      e             Switch preferred energy
      q             Quit

  done <id>               Mark a task as completed
    -a, --actual          Actual minutes spent
    -n, --note            Reflection notes
  skip <id>               Send a task to the back of its day
  reschedule <id> <when>  Move a pending task to another day
    --from                Day the task is on
    -n, --note            Why it moved

  reflect                 Review the day with insights and suggestions
    --days                Days of history to analyze
    --json                JSON output

  export [file]           Write every day as JSON
  import [file]           Replace days from a JSON export

  version                 Print version information
  help [command]          Show this help

Ids can be shortened to any unique prefix, as shown by 'tideflow ls'.
Settings live in ~/.tideflow/config.yaml and TIDEFLOW_* variables.

`)
}
