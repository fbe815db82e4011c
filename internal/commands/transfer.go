package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tideflow/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export every day as JSON",
	Long:  "Write all day buckets as a JSON object keyed by yyyy-mm-dd, to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		var w io.Writer = os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		if err := store.Export(current.store, w); err != nil {
			return err
		}
		if len(args) == 1 {
			fmt.Printf("Exported tasks to %s\n", args[0])
		}
		return nil
	}),
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import days from a JSON export",
	Long: `Read a JSON export and replace each day it contains. Days not in the file
are left untouched. Reads stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		var r io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		n, err := store.Import(current.store, r)
		if err != nil {
			return err
		}
		current.log.Infow("tasks imported", "tasks", n)
		fmt.Printf("Imported %d tasks\n", n)
		return nil
	}),
}
