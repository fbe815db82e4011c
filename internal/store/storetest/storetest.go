// Package storetest holds behaviour checks shared by every Store implementation.
package storetest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/store"
)

// Factory builds an empty store that generates ids with idFunc
type Factory func(t *testing.T, idFunc store.IDFunc) store.Store

// SequentialIDs returns an IDFunc yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) store.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTask(id, title string, energy models.Energy, duration int) models.Task {
	return models.Task{ID: id, Title: title, Energy: energy, DurationMinutes: duration}
}

// Run exercises the Store contract
func Run(t *testing.T, factory Factory) {
	t.Run("GetMissingBucket", func(t *testing.T) {
		s := factory(t, SequentialIDs("new"))
		tasks, err := s.Get("2024-01-15")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if len(tasks) != 0 {
			t.Fatalf("expected empty bucket, got %d tasks", len(tasks))
		}
	})

	t.Run("InvalidDate", func(t *testing.T) {
		s := factory(t, SequentialIDs("new"))
		if _, err := s.Get("15/01/2024"); !errors.Is(err, store.ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
		if err := s.Put("2024-13-01", nil); !errors.Is(err, store.ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("PutPreservesOrder", func(t *testing.T) {
		s := factory(t, SequentialIDs("new"))
		in := []models.Task{
			newTask("c", "third", models.EnergyLow, 20),
			newTask("a", "first", models.EnergyHigh, 40),
			newTask("b", "second", models.EnergyMedium, 40),
		}
		if err := s.Put("2024-01-15", in); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		got, err := s.Get("2024-01-15")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(got))
		}
		for i, want := range []string{"c", "a", "b"} {
			if got[i].ID != want {
				t.Errorf("position %d = %s, want %s", i, got[i].ID, want)
			}
			if got[i].ScheduledDate != "2024-01-15" {
				t.Errorf("scheduled date not stamped: %q", got[i].ScheduledDate)
			}
		}

		// replacing keeps only the new list
		if err := s.Put("2024-01-15", in[1:2]); err != nil {
			t.Fatalf("replace failed: %v", err)
		}
		got, _ = s.Get("2024-01-15")
		if len(got) != 1 || got[0].ID != "a" {
			t.Fatalf("unexpected bucket after replace: %+v", got)
		}
	})

	t.Run("PutEmptyDropsDay", func(t *testing.T) {
		s := factory(t, SequentialIDs("new"))
		if err := s.Put("2024-01-15", []models.Task{newTask("a", "one", models.EnergyLow, 20)}); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if err := s.Put("2024-01-15", nil); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		dates, err := s.Dates()
		if err != nil {
			t.Fatalf("dates failed: %v", err)
		}
		if len(dates) != 0 {
			t.Fatalf("expected no dates, got %v", dates)
		}
		// the id is free again
		if err := s.Put("2024-01-16", []models.Task{newTask("a", "one", models.EnergyLow, 20)}); err != nil {
			t.Fatalf("expected id to be reusable: %v", err)
		}
	})

	t.Run("PutRoundTripsFields", func(t *testing.T) {
		s := factory(t, SequentialIDs("new"))
		actual := 35
		tk := newTask("x", "Write report", models.EnergyMedium, 40)
		tk.Completed = true
		tk.Notes = "went fine"
		tk.ActualDurationMinutes = &actual
		if err := s.Put("2024-01-15", []models.Task{tk}); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		got, _ := s.Get("2024-01-15")
		if len(got) != 1 {
			t.Fatalf("expected 1 task, got %d", len(got))
		}
		g := got[0]
		if !g.Completed || g.Notes != "went fine" || g.ActualDurationMinutes == nil || *g.ActualDurationMinutes != 35 {
			t.Fatalf("fields lost: %+v", g)
		}
		if g.Title != "Write report" || g.Energy != models.EnergyMedium || g.DurationMinutes != 40 {
			t.Fatalf("fields lost: %+v", g)
		}
	})

	t.Run("PutRejectsDuplicateIDs", func(t *testing.T) {
		s := factory(t, SequentialIDs("new"))
		dup := []models.Task{newTask("a", "one", models.EnergyLow, 20), newTask("a", "two", models.EnergyLow, 20)}
		if err := s.Put("2024-01-15", dup); !errors.Is(err, store.ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}

		if err := s.Put("2024-01-15", dup[:1]); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if err := s.Put("2024-01-16", dup[1:]); !errors.Is(err, store.ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID across buckets, got %v", err)
		}
	})

	t.Run("PutAllReplacesListedDays", func(t *testing.T) {
		s := factory(t, SequentialIDs("new"))
		if err := s.Put("2024-01-15", []models.Task{newTask("a", "one", models.EnergyLow, 20)}); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if err := s.Put("2024-01-16", []models.Task{newTask("b", "two", models.EnergyHigh, 40)}); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if err := s.Put("2024-01-17", []models.Task{newTask("c", "three", models.EnergyMedium, 30)}); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		// a moves from the 15th to the 18th, the 16th is emptied, the 17th is untouched
		err := s.PutAll(models.DayBuckets{
			"2024-01-15": {newTask("d", "four", models.EnergyLow, 10)},
			"2024-01-16": nil,
			"2024-01-18": {newTask("a", "one", models.EnergyLow, 20), newTask("e", "five", models.EnergyHigh, 50)},
		})
		if err != nil {
			t.Fatalf("put all failed: %v", err)
		}

		dates, _ := s.Dates()
		if want := []string{"2024-01-15", "2024-01-17", "2024-01-18"}; fmt.Sprint(dates) != fmt.Sprint(want) {
			t.Fatalf("dates = %v, want %v", dates, want)
		}
		moved, _ := s.Get("2024-01-18")
		if len(moved) != 2 || moved[0].ID != "a" || moved[1].ID != "e" || moved[0].ScheduledDate != "2024-01-18" {
			t.Fatalf("unexpected bucket: %+v", moved)
		}
		kept, _ := s.Get("2024-01-17")
		if len(kept) != 1 || kept[0].ID != "c" {
			t.Fatalf("unlisted day changed: %+v", kept)
		}
	})

	t.Run("PutAllIsAtomic", func(t *testing.T) {
		s := factory(t, SequentialIDs("new"))
		if err := s.Put("2024-01-20", []models.Task{newTask("x", "owned", models.EnergyLow, 20)}); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		err := s.PutAll(models.DayBuckets{
			"2024-01-05": {newTask("y", "new", models.EnergyLow, 20)},
			"2024-01-10": {newTask("x", "owned", models.EnergyLow, 20)},
		})
		if !errors.Is(err, store.ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}

		err = s.PutAll(models.DayBuckets{
			"2024-01-05": {newTask("z", "twice", models.EnergyLow, 20)},
			"2024-01-06": {newTask("z", "twice", models.EnergyLow, 20)},
		})
		if !errors.Is(err, store.ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID across listed days, got %v", err)
		}

		dates, _ := s.Dates()
		if len(dates) != 1 || dates[0] != "2024-01-20" {
			t.Fatalf("failed put all changed the store: %v", dates)
		}
	})

	t.Run("ReadsAreCopies", func(t *testing.T) {
		s := factory(t, SequentialIDs("new"))
		if err := s.Put("2024-01-15", []models.Task{newTask("a", "one", models.EnergyLow, 20)}); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		got, _ := s.Get("2024-01-15")
		got[0].Title = "mutated"
		snap, _ := s.Snapshot()
		snap["2024-01-15"][0].Completed = true

		again, _ := s.Get("2024-01-15")
		if again[0].Title != "one" || again[0].Completed {
			t.Fatalf("store leaked internal state: %+v", again[0])
		}
	})

	t.Run("MoveRoundTrip", func(t *testing.T) {
		s := factory(t, SequentialIDs("moved"))
		original := newTask("a", "Prepare pitch", models.EnergyHigh, 40)
		original.Notes = "bring slides"
		other := newTask("b", "Reply to emails", models.EnergyLow, 20)
		if err := s.Put("2024-01-15", []models.Task{original, other}); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if err := s.Put("2024-01-16", []models.Task{newTask("c", "existing", models.EnergyLow, 20)}); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		successor, err := s.Move("a", "2024-01-15", "2024-01-16", "")
		if err != nil {
			t.Fatalf("move failed: %v", err)
		}
		if successor.ID == "a" || successor.ID == "" {
			t.Fatalf("successor needs a fresh id, got %q", successor.ID)
		}
		if successor.ScheduledDate != "2024-01-16" || successor.RescheduledTo != "" || successor.Notes != "" {
			t.Fatalf("unexpected successor: %+v", successor)
		}
		if successor.Title != original.Title || successor.Energy != original.Energy || successor.DurationMinutes != 40 {
			t.Fatalf("successor lost fields: %+v", successor)
		}

		target, _ := s.Get("2024-01-16")
		if len(target) != 2 || target[1].ID != successor.ID {
			t.Fatalf("successor not appended to target: %+v", target)
		}

		source, _ := s.Get("2024-01-15")
		if len(source) != 2 {
			t.Fatalf("source row was removed: %+v", source)
		}
		if source[0].ID != "a" || source[0].RescheduledTo != "2024-01-16" || source[0].Notes != "bring slides" {
			t.Fatalf("source row not tagged: %+v", source[0])
		}
	})

	t.Run("MoveOverridesNotes", func(t *testing.T) {
		s := factory(t, SequentialIDs("moved"))
		tk := newTask("a", "Prepare pitch", models.EnergyHigh, 40)
		tk.Notes = "old"
		if err := s.Put("2024-01-15", []models.Task{tk}); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if _, err := s.Move("a", "2024-01-15", "2024-01-20", "blocked on data"); err != nil {
			t.Fatalf("move failed: %v", err)
		}
		source, _ := s.Get("2024-01-15")
		if source[0].Notes != "blocked on data" {
			t.Fatalf("notes = %q", source[0].Notes)
		}
		dates, _ := s.Dates()
		if len(dates) != 2 || dates[0] != "2024-01-15" || dates[1] != "2024-01-20" {
			t.Fatalf("dates = %v", dates)
		}
	})

	t.Run("MoveErrors", func(t *testing.T) {
		s := factory(t, SequentialIDs("moved"))
		pending := newTask("a", "pending", models.EnergyLow, 20)
		finished := newTask("b", "finished", models.EnergyLow, 20)
		finished.Completed = true
		if err := s.Put("2024-01-15", []models.Task{pending, finished}); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		if _, err := s.Move("zzz", "2024-01-15", "2024-01-16", ""); !errors.Is(err, store.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
		if _, err := s.Move("a", "2024-01-14", "2024-01-16", ""); !errors.Is(err, store.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound for wrong source day, got %v", err)
		}
		if _, err := s.Move("a", "2024-01-15", "2024-01-15", ""); !errors.Is(err, store.ErrSameDate) {
			t.Errorf("expected ErrSameDate, got %v", err)
		}
		if _, err := s.Move("b", "2024-01-15", "2024-01-16", ""); !errors.Is(err, store.ErrNotMovable) {
			t.Errorf("expected ErrNotMovable, got %v", err)
		}
		if _, err := s.Move("a", "2024-01-15", "soon", ""); !errors.Is(err, store.ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}

		if _, err := s.Move("a", "2024-01-15", "2024-01-16", ""); err != nil {
			t.Fatalf("move failed: %v", err)
		}
		if _, err := s.Move("a", "2024-01-15", "2024-01-17", ""); !errors.Is(err, store.ErrNotMovable) {
			t.Errorf("expected ErrNotMovable for rescheduled row, got %v", err)
		}
	})
}
