package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/balkashynov/tideflow/internal/models"
)

// Memory is a volatile Store
type Memory struct {
	mu      sync.RWMutex
	buckets models.DayBuckets
	owner   map[string]string // task id -> date
	newID   IDFunc
}

// NewMemory creates an empty in-memory store. A nil idFunc uses NewID.
func NewMemory(idFunc IDFunc) *Memory {
	if idFunc == nil {
		idFunc = NewID
	}
	return &Memory{
		buckets: models.DayBuckets{},
		owner:   map[string]string{},
		newID:   idFunc,
	}
}

func (m *Memory) Get(date string) ([]models.Task, error) {
	if err := CheckDate(date); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.DayBuckets{date: m.buckets[date]}.Clone()[date], nil
}

// Put replaces the bucket. An empty list drops the day entirely.
func (m *Memory) Put(date string, tasks []models.Task) error {
	prepared, err := PrepareBucket(date, tasks)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range prepared {
		if owner, ok := m.owner[t.ID]; ok && owner != date {
			return fmt.Errorf("%w: %s already scheduled on %s", ErrDuplicateID, t.ID, owner)
		}
	}

	for _, t := range m.buckets[date] {
		delete(m.owner, t.ID)
	}
	if len(prepared) == 0 {
		delete(m.buckets, date)
		return nil
	}
	for _, t := range prepared {
		m.owner[t.ID] = date
	}
	m.buckets[date] = prepared
	return nil
}

// PutAll replaces the listed buckets under one lock. Ids owned by a listed
// day may move to another listed day.
func (m *Memory) PutAll(buckets models.DayBuckets) error {
	prepared, err := PrepareBuckets(buckets)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for date, tasks := range prepared {
		for _, t := range tasks {
			owner, ok := m.owner[t.ID]
			if !ok || owner == date {
				continue
			}
			if _, replaced := prepared[owner]; !replaced {
				return fmt.Errorf("%w: %s already scheduled on %s", ErrDuplicateID, t.ID, owner)
			}
		}
	}

	for date := range prepared {
		for _, t := range m.buckets[date] {
			delete(m.owner, t.ID)
		}
		delete(m.buckets, date)
	}
	for date, tasks := range prepared {
		if len(tasks) == 0 {
			continue
		}
		for _, t := range tasks {
			m.owner[t.ID] = date
		}
		m.buckets[date] = tasks
	}
	return nil
}

func (m *Memory) Move(taskID, fromDate, toDate, notes string) (models.Task, error) {
	if err := CheckDate(fromDate); err != nil {
		return models.Task{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.buckets[fromDate]
	idx := -1
	for i, t := range from {
		if t.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Task{}, fmt.Errorf("%w: %s on %s", ErrTaskNotFound, taskID, fromDate)
	}

	newID := m.newID()
	if _, taken := m.owner[newID]; taken {
		return models.Task{}, fmt.Errorf("%w: %s", ErrDuplicateID, newID)
	}

	tagged, successor, err := Reschedule(from[idx], toDate, notes, newID)
	if err != nil {
		return models.Task{}, err
	}

	from[idx] = tagged
	successor.Position = len(m.buckets[toDate])
	m.buckets[toDate] = append(m.buckets[toDate], successor)
	m.owner[successor.ID] = toDate

	return successor.Clone(), nil
}

func (m *Memory) Dates() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dates := make([]string, 0, len(m.buckets))
	for date := range m.buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates, nil
}

func (m *Memory) Snapshot() (models.DayBuckets, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buckets.Clone(), nil
}

func (m *Memory) Close() error {
	return nil
}
