package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/balkashynov/tideflow/internal/config"
	"github.com/balkashynov/tideflow/internal/db"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/store"
	"github.com/balkashynov/tideflow/internal/workflow"
)

func TestMain(m *testing.M) {
	clock = func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC) }
	os.Exit(m.Run())
}

// execute runs one invocation with flags back at their defaults
func execute(t *testing.T, dir string, args ...string) error {
	t.Helper()
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	rootCmd.SetArgs(append([]string{"--data-dir", dir}, args...))
	err := Execute()
	if current != nil {
		t.Fatal("app state leaked past the command")
	}
	return err
}

func run(t *testing.T, dir string, args ...string) {
	t.Helper()
	if err := execute(t, dir, args...); err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
}

func bucket(t *testing.T, dir, day string) []models.Task {
	t.Helper()
	s, err := db.Open(filepath.Join(dir, "tideflow.db"), nil, nil)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer s.Close()
	tasks, err := s.Get(day)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	return tasks
}

func TestNewClassifierUsesConfigKeywords(t *testing.T) {
	c := newClassifier(config.Keywords{High: []string{"deploy"}, Urgent: []string{"p0"}})

	got := c.Classify("deploy p0 fix")
	if got.Energy != models.EnergyHigh || got.Priority != models.PriorityUrgent {
		t.Fatalf("unexpected classification: %+v", got)
	}
	// untouched sets keep their defaults
	if e := c.Classify("reply to emails").Energy; e != models.EnergyLow {
		t.Fatalf("energy = %s, want low", e)
	}
}

func TestTruncateAndShortID(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a much longer title", 10); got != "a much ..." {
		t.Errorf("truncate = %q", got)
	}
	if got := shortID("0f8fad5b-d9cb-469f-a165-70867728950e"); got != "0f8fad5b" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}

func TestCommandsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	run(t, dir, "add", "Lead budget meeting", "--date", "2024-01-15")
	run(t, dir, "add", "Reply to emails ~10m", "--date", "2024-01-15")
	run(t, dir, "intake", "--no-ui", "--date", "2024-01-15", "--file", writeDump(t, dir, "Write quarterly report\nclean desk +high\n"))

	tasks := bucket(t, dir, "2024-01-15")
	if len(tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(tasks))
	}
	if tasks[0].Energy != models.EnergyHigh || tasks[0].DurationMinutes != 60 {
		t.Errorf("quick add classification lost: %+v", tasks[0])
	}
	if tasks[1].DurationMinutes != 10 {
		t.Errorf("inline duration ignored: %+v", tasks[1])
	}
	if tasks[3].Title != "clean desk" || tasks[3].Energy != models.EnergyHigh {
		t.Errorf("inline energy ignored: %+v", tasks[3])
	}

	run(t, dir, "done", shortID(tasks[0].ID), "--actual", "50", "--note", "went long")
	run(t, dir, "reschedule", tasks[2].ID, "2024-01-16", "--note", "waiting on numbers")
	run(t, dir, "skip", tasks[1].ID)

	tasks = bucket(t, dir, "2024-01-15")
	if !tasks[0].Completed || *tasks[0].ActualDurationMinutes != 50 || tasks[0].Notes != "went long" {
		t.Errorf("done not recorded: %+v", tasks[0])
	}
	if tasks[3].Title != "Reply to emails" {
		t.Errorf("skip did not move the task to the back: %+v", tasks)
	}
	moved := bucket(t, dir, "2024-01-16")
	if len(moved) != 1 || moved[0].Title != "Write quarterly report" || !moved[0].IsPending() {
		t.Fatalf("successor missing: %+v", moved)
	}

	run(t, dir, "reflect", "--date", "2024-01-15", "--json")
	run(t, dir, "ls", "--all")

	exported := filepath.Join(dir, "export.json")
	run(t, dir, "export", exported)

	other := t.TempDir()
	run(t, other, "import", exported)
	if got := bucket(t, other, "2024-01-15"); len(got) != 4 || got[0].ID != tasks[0].ID {
		t.Fatalf("import lost tasks: %+v", got)
	}
}

func TestCommandsMemoryStorage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TIDEFLOW_STORAGE", config.StorageMemory)

	run(t, dir, "add", "Reply to emails", "--date", "2024-01-15")

	if _, err := os.Stat(filepath.Join(dir, "tideflow.db")); !os.IsNotExist(err) {
		t.Fatalf("memory storage should not create a database file, stat err = %v", err)
	}
}

func TestCommandsReturnErrors(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "add", "Prepare pitch", "--date", "2024-01-15")
	id := bucket(t, dir, "2024-01-15")[0].ID

	badImport := writeDump(t, dir, `{"2024-01-15":[{"id":"n","title":"Negative","energy":"low","durationMinutes":20,"completed":true,"actualDurationMinutes":-30}]}`)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown task", []string{"done", "does-not-exist"}, store.ErrTaskNotFound},
		{"past day", []string{"reschedule", id, "2020-01-01"}, workflow.ErrPastDate},
		{"invalid import", []string{"import", badImport}, store.ErrInvalidTask},
		{"bad energy", []string{"add", "Call the bank", "--energy", "huge"}, nil},
		{"bad date", []string{"ls", "--date", "someday"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, dir, tt.args...)
			if err == nil {
				t.Fatalf("%v should fail", tt.args)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("%v: got %v, want %v", tt.args, err, tt.want)
			}
		})
	}

	// failures leave the data alone
	tasks := bucket(t, dir, "2024-01-15")
	if len(tasks) != 1 || !tasks[0].IsPending() {
		t.Fatalf("failed commands changed the day: %+v", tasks)
	}
}

func writeDump(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, "dump.txt")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}
