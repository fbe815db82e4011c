package workflow

import (
	"fmt"
	"strings"

	"github.com/balkashynov/tideflow/internal/analyzer"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/parser"
)

// ReasonManual replaces the classifier's reasoning when the user set the energy
const ReasonManual = "Energy set manually"

// Candidate is an analyzed line waiting for review
type Candidate struct {
	ID string `json:"id"`
	analyzer.Analysis
	Errors []string `json:"errors,omitempty"`
}

// CandidatePatch edits a candidate during review; nil fields stay unchanged
type CandidatePatch struct {
	Title    *string
	Energy   *models.Energy
	Duration *int
}

// Intake turns a brain dump into tasks for one day
type Intake struct {
	deps       Deps
	candidates []Candidate
}

// NewIntake creates an empty review session
func NewIntake(deps Deps) *Intake {
	return &Intake{deps: deps.withDefaults()}
}

// Analyze splits raw text into lines and classifies each one. It replaces
// any previous review list.
func (in *Intake) Analyze(raw string) []Candidate {
	lines := parser.SplitLines(raw)
	in.candidates = make([]Candidate, 0, len(lines))

	for _, line := range lines {
		parsed := parser.ParseLine(line)
		title := parsed.Title
		if title == "" {
			title = line
		}

		c := Candidate{
			ID:       in.deps.NewID(),
			Analysis: analyzer.Analysis{Title: title, Classification: in.deps.Classifier.Classify(title)},
			Errors:   parsed.Errors,
		}
		if parsed.Energy != "" {
			c.Energy = parsed.Energy
			c.EstimatedDurationMinutes = analyzer.EstimateDuration(title, parsed.Energy)
			c.Reasoning = ReasonManual
		}
		if parsed.Duration > 0 {
			c.EstimatedDurationMinutes = parsed.Duration
		}
		in.candidates = append(in.candidates, c)
	}

	in.deps.Log.Debugw("brain dump analyzed", "lines", len(in.candidates))
	return in.Candidates()
}

// Candidates returns a copy of the review list
func (in *Intake) Candidates() []Candidate {
	return append([]Candidate(nil), in.candidates...)
}

// Update edits one candidate
func (in *Intake) Update(id string, patch CandidatePatch) (Candidate, error) {
	i := in.index(id)
	if i < 0 {
		return Candidate{}, fmt.Errorf("%w: %s", ErrUnknownCandidate, id)
	}

	c := in.candidates[i]
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return Candidate{}, ErrEmptyTitle
		}
		c.Title = title
	}
	if patch.Energy != nil {
		if !patch.Energy.Valid() {
			return Candidate{}, fmt.Errorf("invalid energy %q", *patch.Energy)
		}
		c.Energy = *patch.Energy
		c.Reasoning = ReasonManual
	}
	if patch.Duration != nil {
		if *patch.Duration <= 0 {
			return Candidate{}, fmt.Errorf("duration must be positive, got %d", *patch.Duration)
		}
		c.EstimatedDurationMinutes = *patch.Duration
	}

	in.candidates[i] = c
	return c, nil
}

// Remove drops a candidate before confirmation
func (in *Intake) Remove(id string) error {
	i := in.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCandidate, id)
	}
	in.candidates = append(in.candidates[:i], in.candidates[i+1:]...)
	return nil
}

// Confirm appends every remaining candidate to the bucket for date and
// clears the review list. Nothing is written when the list is empty.
func (in *Intake) Confirm(date string) ([]models.Task, error) {
	if len(in.candidates) == 0 {
		return []models.Task{}, nil
	}

	existing, err := in.deps.Store.Get(date)
	if err != nil {
		return nil, err
	}

	created := make([]models.Task, 0, len(in.candidates))
	for _, c := range in.candidates {
		created = append(created, models.Task{
			ID:              in.deps.NewID(),
			Title:           c.Title,
			Energy:          c.Energy,
			DurationMinutes: c.EstimatedDurationMinutes,
			ScheduledDate:   date,
		})
	}

	if err := in.deps.Store.Put(date, append(existing, created...)); err != nil {
		return nil, fmt.Errorf("failed to save tasks: %w", err)
	}

	in.deps.Log.Infow("intake confirmed", "date", date, "tasks", len(created))
	in.candidates = nil
	return created, nil
}

func (in *Intake) index(id string) int {
	for i, c := range in.candidates {
		if c.ID == id {
			return i
		}
	}
	return -1
}
