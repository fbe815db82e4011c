package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/tideflow/internal/analyzer"
	"github.com/balkashynov/tideflow/internal/config"
	"github.com/balkashynov/tideflow/internal/db"
	"github.com/balkashynov/tideflow/internal/logging"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/parser"
	"github.com/balkashynov/tideflow/internal/store"
	"github.com/balkashynov/tideflow/internal/workflow"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// dataDir is the --data-dir flag
var dataDir string

// app is the state shared by commands for one invocation
type app struct {
	cfg   config.Config
	log   *zap.SugaredLogger
	store store.Store
	deps  workflow.Deps
}

var current *app

// clock is the time source for every command
var clock = time.Now

var rootCmd = &cobra.Command{
	Use:   "tideflow",
	Short: "An energy-aware daily planner",
	Long: `tideflow turns a brain dump into a day plan sorted by the mental energy
each task demands, walks you through it one task at a time, and reflects on
how the day went.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// initApp loads config, logging and storage once per invocation
func initApp() error {
	if current != nil {
		return nil
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg)
	if err != nil {
		return err
	}

	var s store.Store
	switch cfg.Storage {
	case config.StorageMemory:
		s = store.NewMemory(nil)
	default:
		sqlStore, err := db.Open(cfg.DBPath, log, nil)
		if err != nil {
			return err
		}
		s = sqlStore
	}

	current = &app{
		cfg:   cfg,
		log:   log,
		store: s,
		deps: workflow.Deps{
			Store:      s,
			Classifier: newClassifier(cfg.Classifier.Keywords),
			Log:        log,
			Now:        clock,
			NewID:      store.NewID,
		},
	}
	log.Debugw("tideflow started", "storage", cfg.Storage, "data_dir", cfg.DataDir)
	return nil
}

// closeApp releases storage and flushes the logger
func closeApp() {
	if current == nil {
		return
	}
	if err := current.store.Close(); err != nil {
		current.log.Warnw("failed to close store", "error", err)
	}
	_ = current.log.Sync()
	current = nil
}

// withApp wraps a command function to set up the app first
func withApp(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := initApp(); err != nil {
			return err
		}
		defer closeApp()
		return fn(cmd, args)
	}
}

func newClassifier(k config.Keywords) *analyzer.Classifier {
	return analyzer.New(
		analyzer.WithEnergyKeywords(models.EnergyHigh, k.High),
		analyzer.WithEnergyKeywords(models.EnergyMedium, k.Medium),
		analyzer.WithEnergyKeywords(models.EnergyLow, k.Low),
		analyzer.WithPriorityKeywords(k.Urgent, k.Important),
	)
}

// resolveDate reads the --date flag, defaulting to today
func resolveDate(cmd *cobra.Command) (string, error) {
	raw, _ := cmd.Flags().GetString("date")
	if raw == "" {
		return models.DateKey(current.deps.Now()), nil
	}
	return parser.ParseDate(raw, current.deps.Now())
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.tideflow)")

	rootCmd.AddCommand(intakeCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(rescheduleCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
