package models

import (
	"time"
)

// Energy is the mental energy a task demands
type Energy string

const (
	EnergyHigh   Energy = "high"
	EnergyMedium Energy = "medium"
	EnergyLow    Energy = "low"
)

// Energies lists every energy level in scan order. Aggregations that pick a
// "best" level walk this slice and keep the first maximum.
var Energies = []Energy{EnergyHigh, EnergyMedium, EnergyLow}

// Valid reports whether e is one of the known levels
func (e Energy) Valid() bool {
	switch e {
	case EnergyHigh, EnergyMedium, EnergyLow:
		return true
	}
	return false
}

// Priority is derived from the title at classification time and never stored
type Priority string

const (
	PriorityUrgent    Priority = "urgent"
	PriorityImportant Priority = "important"
	PriorityNormal    Priority = "normal"
)

// Task represents one entry in a day bucket
type Task struct {
	ID                    string     `gorm:"primaryKey" json:"id"`
	Title                 string     `gorm:"not null" json:"title"`
	Energy                Energy     `gorm:"not null" json:"energy"`
	DurationMinutes       int        `gorm:"not null" json:"durationMinutes"`
	Completed             bool       `gorm:"default:false" json:"completed"`
	CompletedAt           *time.Time `json:"completedAt,omitempty"`
	ScheduledDate         string     `gorm:"index;not null" json:"scheduledDate"`
	Notes                 string     `json:"notes,omitempty"`
	ActualDurationMinutes *int       `json:"actualDurationMinutes,omitempty"`
	RescheduledTo         string     `json:"rescheduledTo,omitempty"`

	// Position keeps insertion order inside a bucket
	Position int `gorm:"not null;default:0" json:"-"`
}

// IsRescheduled reports whether the task was moved to another day
func (t Task) IsRescheduled() bool {
	return t.RescheduledTo != ""
}

// IsPending reports whether the task still waits to be worked on
func (t Task) IsPending() bool {
	return !t.Completed && !t.IsRescheduled()
}

// FocusMinutes returns the actual duration, falling back to the planned one
func (t Task) FocusMinutes() int {
	if t.ActualDurationMinutes != nil {
		return *t.ActualDurationMinutes
	}
	return t.DurationMinutes
}

// Clone returns a copy that shares no pointers with t
func (t Task) Clone() Task {
	c := t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	if t.ActualDurationMinutes != nil {
		m := *t.ActualDurationMinutes
		c.ActualDurationMinutes = &m
	}
	return c
}

// DayBuckets maps a YYYY-MM-DD date key to that day's ordered tasks
type DayBuckets map[string][]Task

// Clone deep-copies every bucket
func (b DayBuckets) Clone() DayBuckets {
	out := make(DayBuckets, len(b))
	for date, tasks := range b {
		copied := make([]Task, len(tasks))
		for i, t := range tasks {
			copied[i] = t.Clone()
		}
		out[date] = copied
	}
	return out
}

// DateLayout is the format of every bucket key
const DateLayout = "2006-01-02"

// DateKey formats t as a bucket key
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDateKey reports whether s is a well-formed YYYY-MM-DD key
func ValidDateKey(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
