// Package workflow drives the user-facing flows over an injected store:
// brain-dump intake, one-task-at-a-time focus, and daily reflection.
package workflow

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/tideflow/internal/analyzer"
	"github.com/balkashynov/tideflow/internal/logging"
	"github.com/balkashynov/tideflow/internal/store"
)

var (
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrAlreadyCompleted = errors.New("task is already completed")
	ErrRescheduled      = errors.New("task was rescheduled to another day")
	ErrAmbiguousID      = errors.New("task id prefix matches more than one task")
	ErrUnknownCandidate = errors.New("no such task in the review list")
	ErrPastDate         = errors.New("cannot reschedule to a day in the past")
)

// Deps are the collaborators shared by every workflow
type Deps struct {
	Store      store.Store
	Classifier *analyzer.Classifier
	Log        *zap.SugaredLogger
	Now        func() time.Time
	NewID      store.IDFunc
}

func (d Deps) withDefaults() Deps {
	if d.Classifier == nil {
		d.Classifier = analyzer.New()
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = store.NewID
	}
	return d
}
