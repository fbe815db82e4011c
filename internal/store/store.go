package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/balkashynov/tideflow/internal/models"
)

var (
	ErrInvalidDate  = errors.New("invalid date, use YYYY-MM-DD")
	ErrTaskNotFound = errors.New("task not found")
	ErrDuplicateID  = errors.New("duplicate task id")
	ErrSameDate     = errors.New("task is already scheduled on that date")
	ErrNotMovable   = errors.New("only pending tasks can be rescheduled")
	ErrInvalidTask  = errors.New("invalid task")
)

// Store owns the day buckets. Callers never hold on to the slices it
// returns; every read is a copy.
type Store interface {
	// Get returns the bucket for date, empty when nothing is scheduled
	Get(date string) ([]models.Task, error)
	// Put replaces the bucket for date
	Put(date string, tasks []models.Task) error
	// PutAll replaces every listed bucket at once, or none of them
	PutAll(buckets models.DayBuckets) error
	// Move reschedules a pending task and returns the successor row
	Move(taskID, fromDate, toDate, notes string) (models.Task, error)
	// Dates lists every bucket key in ascending order
	Dates() ([]string, error)
	// Snapshot deep-copies every bucket
	Snapshot() (models.DayBuckets, error)
	Close() error
}

// IDFunc generates task ids
type IDFunc func() string

// NewID is the default IDFunc
func NewID() string {
	return uuid.NewString()
}

// CheckDate validates a bucket key
func CheckDate(date string) error {
	if !models.ValidDateKey(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// PrepareBucket copies tasks for storage under date, stamping scheduledDate
// and position. Ids must be unique within the bucket.
func PrepareBucket(date string, tasks []models.Task) ([]models.Task, error) {
	if err := CheckDate(date); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(tasks))
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("task %q has no id", t.Title)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = true

		c := t.Clone()
		c.ScheduledDate = date
		c.Position = i
		out[i] = c
	}
	return out, nil
}

// PrepareBuckets runs PrepareBucket over every day. An id may appear in
// only one of the listed days.
func PrepareBuckets(buckets models.DayBuckets) (models.DayBuckets, error) {
	out := make(models.DayBuckets, len(buckets))
	seen := map[string]string{}
	for date, tasks := range buckets {
		prepared, err := PrepareBucket(date, tasks)
		if err != nil {
			return nil, err
		}
		for _, t := range prepared {
			if other, ok := seen[t.ID]; ok {
				return nil, fmt.Errorf("%w: %s is listed on %s and %s", ErrDuplicateID, t.ID, other, date)
			}
			seen[t.ID] = date
		}
		out[date] = prepared
	}
	return out, nil
}

// ValidateTask checks a task read from outside the app before it is
// stored under date
func ValidateTask(date string, t models.Task) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w %q on %s: %s", ErrInvalidTask, t.ID, date, fmt.Sprintf(format, args...))
	}
	switch {
	case strings.TrimSpace(t.ID) == "":
		return fmt.Errorf("%w on %s: missing id", ErrInvalidTask, date)
	case strings.TrimSpace(t.Title) == "":
		return fail("missing title")
	case !t.Energy.Valid():
		return fail("unknown energy %q", t.Energy)
	case t.DurationMinutes <= 0:
		return fail("duration must be positive, got %d", t.DurationMinutes)
	case t.ActualDurationMinutes != nil && *t.ActualDurationMinutes <= 0:
		return fail("actual duration must be positive, got %d", *t.ActualDurationMinutes)
	case t.ScheduledDate != "" && t.ScheduledDate != date:
		return fail("scheduled on %s", t.ScheduledDate)
	case t.RescheduledTo != "" && (!models.ValidDateKey(t.RescheduledTo) || t.RescheduledTo == date):
		return fail("bad reschedule target %q", t.RescheduledTo)
	}
	return nil
}

// Reschedule computes both halves of a move: the source row tagged with
// rescheduledTo, and a fresh successor for the target day.
func Reschedule(src models.Task, toDate, notes, newID string) (models.Task, models.Task, error) {
	if err := CheckDate(toDate); err != nil {
		return models.Task{}, models.Task{}, err
	}
	if src.ScheduledDate == toDate {
		return models.Task{}, models.Task{}, ErrSameDate
	}
	if !src.IsPending() {
		return models.Task{}, models.Task{}, fmt.Errorf("%w: %s", ErrNotMovable, src.ID)
	}

	tagged := src.Clone()
	tagged.RescheduledTo = toDate
	if notes != "" {
		tagged.Notes = notes
	}

	successor := src.Clone()
	successor.ID = newID
	successor.ScheduledDate = toDate
	successor.Notes = ""
	successor.RescheduledTo = ""

	return tagged, successor, nil
}
