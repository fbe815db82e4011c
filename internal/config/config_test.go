package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("data dir = %q, want %q", cfg.DataDir, dir)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("storage = %q", cfg.Storage)
	}
	if cfg.DBPath != filepath.Join(dir, "tideflow.db") {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.Log.Level != "info" || cfg.Log.Console {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Insights.Days != 7 {
		t.Errorf("days = %d", cfg.Insights.Days)
	}
	if len(cfg.Classifier.Keywords.High) != 0 {
		t.Errorf("unexpected keyword override: %v", cfg.Classifier.Keywords.High)
	}
	if cfg.UI.ReduceMotion {
		t.Error("motion should be on by default")
	}
	if cfg.LogDir() != filepath.Join(dir, "logs") {
		t.Errorf("log dir = %q", cfg.LogDir())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `storage: memory
log:
  level: debug
insights:
  days: 14
classifier:
  keywords:
    high:
      - deploy
      - migrate
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	t.Setenv("TIDEFLOW_LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Storage != StorageMemory {
		t.Errorf("storage = %q", cfg.Storage)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("env should win, level = %q", cfg.Log.Level)
	}
	if cfg.Insights.Days != 14 {
		t.Errorf("days = %d", cfg.Insights.Days)
	}
	if want := []string{"deploy", "migrate"}; !reflect.DeepEqual(cfg.Classifier.Keywords.High, want) {
		t.Errorf("high keywords = %v, want %v", cfg.Classifier.Keywords.High, want)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TIDEFLOW_STORAGE", "postgres")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for unknown storage")
	}

	t.Setenv("TIDEFLOW_STORAGE", "memory")
	t.Setenv("TIDEFLOW_LOG_LEVEL", "loud")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage: [unclosed"), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadReduceMotion(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ui:\n  reduce_motion: true\n"), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.UI.ReduceMotion {
		t.Error("reduce_motion from config.yaml ignored")
	}

	for _, env := range []string{"TIDEFLOW_UI_REDUCE_MOTION", "TIDEFLOW_REDUCE_MOTION"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, "1")
			cfg, err := Load(t.TempDir())
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if !cfg.UI.ReduceMotion {
				t.Errorf("%s not applied", env)
			}
		})
	}
}
