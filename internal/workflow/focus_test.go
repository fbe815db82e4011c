package workflow

import (
	"errors"
	"testing"

	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/store"
)

func seedDay(t *testing.T, deps Deps, date string, tasks ...models.Task) {
	t.Helper()
	if err := deps.Store.Put(date, tasks); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func task(id, title string, energy models.Energy, duration int) models.Task {
	return models.Task{ID: id, Title: title, Energy: energy, DurationMinutes: duration}
}

func TestFocusCurrent(t *testing.T) {
	deps := newDeps(t)
	done := task("a", "done already", models.EnergyHigh, 40)
	done.Completed = true
	seedDay(t, deps, "2024-01-15",
		done,
		task("b", "Reply to emails", models.EnergyLow, 20),
		task("c", "Lead budget meeting", models.EnergyHigh, 60),
	)
	f := NewFocus(deps)

	tests := []struct {
		energy models.Energy
		want   string
	}{
		{models.EnergyHigh, "c"},
		{models.EnergyLow, "b"},
		// nothing medium is pending, so fall back to the first pending task
		{models.EnergyMedium, "b"},
	}
	for _, tt := range tests {
		got, ok, err := f.Current("2024-01-15", tt.energy)
		if err != nil {
			t.Fatalf("current failed: %v", err)
		}
		if !ok || got.ID != tt.want {
			t.Errorf("Current(%s) = %q (ok=%v), want %q", tt.energy, got.ID, ok, tt.want)
		}
	}

	if _, ok, err := f.Current("2024-01-16", models.EnergyHigh); err != nil || ok {
		t.Errorf("expected no task on an empty day, got ok=%v err=%v", ok, err)
	}
}

func TestFocusToday(t *testing.T) {
	if got := NewFocus(newDeps(t)).Today(); got != "2024-01-15" {
		t.Fatalf("Today() = %q", got)
	}
}

func TestFocusComplete(t *testing.T) {
	deps := newDeps(t)
	seedDay(t, deps, "2024-01-15",
		task("a", "Write quarterly report", models.EnergyMedium, 40),
		task("b", "Reply to emails", models.EnergyLow, 20),
	)
	f := NewFocus(deps)

	got, err := f.Complete("2024-01-15", "a", "  shipped v1  ", 55)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !got.Completed || got.CompletedAt == nil || !got.CompletedAt.Equal(fixedNow) {
		t.Fatalf("not completed: %+v", got)
	}
	if got.ActualDurationMinutes == nil || *got.ActualDurationMinutes != 55 || got.Notes != "shipped v1" {
		t.Fatalf("unexpected fields: %+v", got)
	}

	// zero actual falls back to the plan
	got, err = f.Complete("2024-01-15", "b", "", 0)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if *got.ActualDurationMinutes != 20 {
		t.Errorf("actual = %d, want 20", *got.ActualDurationMinutes)
	}

	n, err := f.CompletedCount("2024-01-15")
	if err != nil || n != 2 {
		t.Fatalf("CompletedCount = %d, %v", n, err)
	}

	if _, err := f.Complete("2024-01-15", "a", "", 0); !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("expected ErrAlreadyCompleted, got %v", err)
	}
	if _, err := f.Complete("2024-01-15", "zzz", "", 0); !errors.Is(err, store.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestFocusSkip(t *testing.T) {
	deps := newDeps(t)
	seedDay(t, deps, "2024-01-15",
		task("a", "one", models.EnergyHigh, 40),
		task("b", "two", models.EnergyHigh, 40),
		task("c", "three", models.EnergyLow, 20),
	)
	f := NewFocus(deps)

	if err := f.Skip("2024-01-15", "a"); err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	bucket, _ := deps.Store.Get("2024-01-15")
	var order []string
	for _, tk := range bucket {
		order = append(order, tk.ID)
	}
	if len(order) != 3 || order[0] != "b" || order[1] != "c" || order[2] != "a" {
		t.Fatalf("order after skip = %v", order)
	}

	next, _, _ := f.Current("2024-01-15", models.EnergyHigh)
	if next.ID != "b" {
		t.Errorf("next high task = %q, want b", next.ID)
	}

	if err := f.Skip("2024-01-15", "zzz"); !errors.Is(err, store.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestFocusQuickAdd(t *testing.T) {
	deps := newDeps(t)
	f := NewFocus(deps)

	got, err := f.QuickAdd("2024-01-15", "  Lead budget meeting ", "", 0)
	if err != nil {
		t.Fatalf("quick add failed: %v", err)
	}
	if got.Title != "Lead budget meeting" || got.Energy != models.EnergyHigh || got.DurationMinutes != 60 {
		t.Fatalf("unexpected task: %+v", got)
	}

	got, err = f.QuickAdd("2024-01-15", "Lead budget meeting", models.EnergyLow, 0)
	if err != nil {
		t.Fatalf("quick add failed: %v", err)
	}
	if got.Energy != models.EnergyLow || got.DurationMinutes != 20 {
		t.Fatalf("explicit energy ignored: %+v", got)
	}

	got, err = f.QuickAdd("2024-01-15", "Reply to emails", "", 5)
	if err != nil {
		t.Fatalf("quick add failed: %v", err)
	}
	if got.DurationMinutes != 5 {
		t.Fatalf("explicit duration ignored: %+v", got)
	}

	bucket, _ := deps.Store.Get("2024-01-15")
	if len(bucket) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(bucket))
	}

	if _, err := f.QuickAdd("2024-01-15", "   ", "", 0); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := f.QuickAdd("2024-01-15", "x", models.Energy("huge"), 0); err == nil {
		t.Error("expected error for unknown energy")
	}
}

func TestFocusRescheduleRoundTrip(t *testing.T) {
	deps := newDeps(t)
	seedDay(t, deps, "2024-01-15",
		task("a", "Prepare pitch", models.EnergyHigh, 40),
		task("b", "Reply to emails", models.EnergyLow, 20),
	)
	f := NewFocus(deps)

	successor, err := f.Reschedule("a", "2024-01-15", "2024-01-16", " not ready ")
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if successor.ID != "moved-1" || successor.ScheduledDate != "2024-01-16" {
		t.Fatalf("unexpected successor: %+v", successor)
	}

	source, _ := deps.Store.Get("2024-01-15")
	if source[0].RescheduledTo != "2024-01-16" || source[0].Notes != "not ready" {
		t.Fatalf("source not tagged: %+v", source[0])
	}

	// the tagged row disappears from the focus queue and cannot be completed
	queue, _ := f.Queue("2024-01-15")
	if len(queue) != 1 || queue[0].ID != "b" {
		t.Fatalf("queue = %+v", queue)
	}
	if cur, _, _ := f.Current("2024-01-15", models.EnergyHigh); cur.ID != "b" {
		t.Errorf("current = %q, want b", cur.ID)
	}
	if _, err := f.Complete("2024-01-15", "a", "", 0); !errors.Is(err, ErrRescheduled) {
		t.Errorf("expected ErrRescheduled, got %v", err)
	}

	target, _ := deps.Store.Get("2024-01-16")
	if len(target) != 1 || target[0].ID != successor.ID || !target[0].IsPending() {
		t.Fatalf("target = %+v", target)
	}
}

func TestFocusRescheduleRejectsPastDays(t *testing.T) {
	deps := newDeps(t)
	seedDay(t, deps, "2024-01-12", task("late", "Send invoice", models.EnergyLow, 10))
	seedDay(t, deps, "2024-01-15", task("a", "Prepare pitch", models.EnergyHigh, 40))
	f := NewFocus(deps)

	for _, to := range []string{"2024-01-14", "2020-01-01"} {
		if _, err := f.Reschedule("a", "2024-01-15", to, ""); !errors.Is(err, ErrPastDate) {
			t.Errorf("reschedule to %s: expected ErrPastDate, got %v", to, err)
		}
	}
	if _, err := f.Reschedule("a", "2024-01-15", "next week", ""); !errors.Is(err, store.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if source, _ := deps.Store.Get("2024-01-15"); !source[0].IsPending() {
		t.Fatalf("rejected move tagged the task: %+v", source[0])
	}

	// an overdue task can still be pulled forward to today
	if _, err := f.Reschedule("late", "2024-01-12", "2024-01-15", ""); err != nil {
		t.Fatalf("moving to today failed: %v", err)
	}
}

func TestFocusFind(t *testing.T) {
	deps := newDeps(t)
	seedDay(t, deps, "2024-01-15", task("abc123", "one", models.EnergyLow, 20), task("abd456", "two", models.EnergyLow, 20))
	seedDay(t, deps, "2024-01-16", task("ab", "three", models.EnergyLow, 20))
	f := NewFocus(deps)

	tests := []struct {
		query   string
		want    string
		wantErr error
	}{
		{"abc", "abc123", nil},
		{"abd456", "abd456", nil},
		// exact match beats prefix ambiguity
		{"ab", "ab", nil},
		{"a", "", ErrAmbiguousID},
		{"zz", "", store.ErrTaskNotFound},
		{"  ", "", store.ErrTaskNotFound},
	}
	for _, tt := range tests {
		got, err := f.Find(tt.query)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Find(%q) error = %v, want %v", tt.query, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got.ID != tt.want {
			t.Errorf("Find(%q) = %q, %v; want %q", tt.query, got.ID, err, tt.want)
		}
	}
}
