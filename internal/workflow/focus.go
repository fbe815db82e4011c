package workflow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/balkashynov/tideflow/internal/analyzer"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/store"
)

// Focus walks the user through one task at a time
type Focus struct {
	deps Deps
}

// NewFocus creates the focus workflow
func NewFocus(deps Deps) *Focus {
	return &Focus{deps: deps.withDefaults()}
}

// Today returns today's bucket key
func (f *Focus) Today() string {
	return models.DateKey(f.deps.Now())
}

// Current picks the next task: the first pending one matching energy,
// otherwise the first pending one of any energy.
func (f *Focus) Current(date string, energy models.Energy) (models.Task, bool, error) {
	tasks, err := f.deps.Store.Get(date)
	if err != nil {
		return models.Task{}, false, err
	}

	for _, t := range tasks {
		if t.IsPending() && t.Energy == energy {
			return t, true, nil
		}
	}
	for _, t := range tasks {
		if t.IsPending() {
			return t, true, nil
		}
	}
	return models.Task{}, false, nil
}

// Queue returns the day's tasks without the rows that moved elsewhere
func (f *Focus) Queue(date string) ([]models.Task, error) {
	tasks, err := f.deps.Store.Get(date)
	if err != nil {
		return nil, err
	}
	queue := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsRescheduled() {
			queue = append(queue, t)
		}
	}
	return queue, nil
}

// CompletedCount returns how many tasks are done on date
func (f *Focus) CompletedCount(date string) (int, error) {
	tasks, err := f.deps.Store.Get(date)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n, nil
}

// Complete marks a task done. Notes replace existing notes only when
// non-empty; actualMinutes <= 0 records the planned duration.
func (f *Focus) Complete(date, taskID, notes string, actualMinutes int) (models.Task, error) {
	tasks, err := f.deps.Store.Get(date)
	if err != nil {
		return models.Task{}, err
	}

	i := indexOf(tasks, taskID)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: %s on %s", store.ErrTaskNotFound, taskID, date)
	}

	t := tasks[i]
	if t.Completed {
		return models.Task{}, fmt.Errorf("%w: %s", ErrAlreadyCompleted, t.Title)
	}
	if t.IsRescheduled() {
		return models.Task{}, fmt.Errorf("%w: %s", ErrRescheduled, t.RescheduledTo)
	}

	now := f.deps.Now()
	actual := t.DurationMinutes
	if actualMinutes > 0 {
		actual = actualMinutes
	}
	t.Completed = true
	t.CompletedAt = &now
	t.ActualDurationMinutes = &actual
	if notes = strings.TrimSpace(notes); notes != "" {
		t.Notes = notes
	}
	tasks[i] = t

	if err := f.deps.Store.Put(date, tasks); err != nil {
		return models.Task{}, fmt.Errorf("failed to save task: %w", err)
	}

	f.deps.Log.Infow("task completed", "task", t.ID, "date", date, "planned", t.DurationMinutes, "actual", actual)
	return t, nil
}

// Skip sends a task to the back of its day's queue
func (f *Focus) Skip(date, taskID string) error {
	tasks, err := f.deps.Store.Get(date)
	if err != nil {
		return err
	}

	i := indexOf(tasks, taskID)
	if i < 0 {
		return fmt.Errorf("%w: %s on %s", store.ErrTaskNotFound, taskID, date)
	}

	skipped := tasks[i]
	reordered := append(append(tasks[:i:i], tasks[i+1:]...), skipped)
	if err := f.deps.Store.Put(date, reordered); err != nil {
		return fmt.Errorf("failed to save queue: %w", err)
	}

	f.deps.Log.Debugw("task skipped", "task", taskID, "date", date)
	return nil
}

// QuickAdd appends a single task. An empty energy or a non-positive
// duration is filled in by the classifier.
func (f *Focus) QuickAdd(date, title string, energy models.Energy, duration int) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrEmptyTitle
	}
	if energy != "" && !energy.Valid() {
		return models.Task{}, fmt.Errorf("invalid energy %q", energy)
	}

	if energy == "" {
		energy = f.deps.Classifier.Classify(title).Energy
	}
	if duration <= 0 {
		duration = analyzer.EstimateDuration(title, energy)
	}

	tasks, err := f.deps.Store.Get(date)
	if err != nil {
		return models.Task{}, err
	}

	t := models.Task{
		ID:              f.deps.NewID(),
		Title:           title,
		Energy:          energy,
		DurationMinutes: duration,
		ScheduledDate:   date,
	}
	if err := f.deps.Store.Put(date, append(tasks, t)); err != nil {
		return models.Task{}, fmt.Errorf("failed to save task: %w", err)
	}

	f.deps.Log.Infow("task added", "task", t.ID, "date", date, "energy", t.Energy)
	return t, nil
}

// Reschedule moves a pending task to today or a later day
func (f *Focus) Reschedule(taskID, fromDate, toDate, notes string) (models.Task, error) {
	if err := store.CheckDate(toDate); err != nil {
		return models.Task{}, err
	}
	if today := f.Today(); toDate < today {
		return models.Task{}, fmt.Errorf("%w: %s is before %s", ErrPastDate, toDate, today)
	}
	successor, err := f.deps.Store.Move(taskID, fromDate, toDate, strings.TrimSpace(notes))
	if err != nil {
		return models.Task{}, err
	}
	return successor, nil
}

// Find locates a task anywhere in the store by id or unique id prefix
func (f *Focus) Find(idOrPrefix string) (models.Task, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return models.Task{}, store.ErrTaskNotFound
	}

	buckets, err := f.deps.Store.Snapshot()
	if err != nil {
		return models.Task{}, err
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var matches []models.Task
	for _, date := range dates {
		for _, t := range buckets[date] {
			if t.ID == idOrPrefix {
				return t, nil
			}
			if strings.HasPrefix(t.ID, idOrPrefix) {
				matches = append(matches, t)
			}
		}
	}

	switch len(matches) {
	case 0:
		return models.Task{}, fmt.Errorf("%w: %s", store.ErrTaskNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousID, idOrPrefix)
	}
}

func indexOf(tasks []models.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
