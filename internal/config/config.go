package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/balkashynov/tideflow/internal/insights"
)

const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds all settings, from config.yaml and TIDEFLOW_* variables
type Config struct {
	DataDir string `mapstructure:"data_dir"`
	Storage string `mapstructure:"storage"`
	DBPath  string `mapstructure:"db_path"`

	Log struct {
		Level   string `mapstructure:"level"`
		Console bool   `mapstructure:"console"`
	} `mapstructure:"log"`

	Insights struct {
		Days int `mapstructure:"days"`
	} `mapstructure:"insights"`

	Classifier struct {
		Keywords Keywords `mapstructure:"keywords"`
	} `mapstructure:"classifier"`

	UI struct {
		ReduceMotion bool `mapstructure:"reduce_motion"`
	} `mapstructure:"ui"`
}

// Keywords overrides classifier keyword sets; empty lists keep the defaults
type Keywords struct {
	High      []string `mapstructure:"high"`
	Medium    []string `mapstructure:"medium"`
	Low       []string `mapstructure:"low"`
	Urgent    []string `mapstructure:"urgent"`
	Important []string `mapstructure:"important"`
}

// DefaultDataDir returns ~/.tideflow
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".tideflow"), nil
}

// Load reads config.yaml from dir (the default data dir when empty) and
// applies environment overrides. A missing file is not an error.
func Load(dir string) (Config, error) {
	var cfg Config

	if dir == "" {
		d, err := DefaultDataDir()
		if err != nil {
			return cfg, fmt.Errorf("failed to resolve data directory: %w", err)
		}
		dir = d
	}

	v := viper.New()
	v.SetDefault("data_dir", dir)
	v.SetDefault("storage", StorageSQLite)
	v.SetDefault("db_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", false)
	v.SetDefault("insights.days", insights.DefaultDays)
	v.SetDefault("ui.reduce_motion", false)
	for _, key := range []string{"high", "medium", "low", "urgent", "important"} {
		v.SetDefault("classifier.keywords."+key, []string{})
	}

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TIDEFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ui.reduce_motion", "TIDEFLOW_UI_REDUCE_MOTION", "TIDEFLOW_REDUCE_MOTION"); err != nil {
		return cfg, fmt.Errorf("failed to bind environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "tideflow.db")
	}
	if cfg.Insights.Days <= 0 {
		cfg.Insights.Days = insights.DefaultDays
	}

	return cfg, cfg.Validate()
}

// Validate rejects unknown storage backends and log levels
func (c Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("invalid storage %q, use %s or %s", c.Storage, StorageSQLite, StorageMemory)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// LogDir is where rotated log files go
func (c Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}
