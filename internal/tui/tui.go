package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/tideflow/internal/format"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/workflow"
)

// RunIntakeTUI starts the brain dump and review flow for date
func RunIntakeTUI(intake *workflow.Intake, date, prefill string) ([]models.Task, error) {
	model := NewIntakeModel(intake, date, prefill)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(IntakeModel)
	if !ok {
		return nil, nil
	}
	if m.Cancelled() {
		fmt.Println("❌ Intake cancelled, nothing saved.")
		return nil, nil
	}
	if m.Err() != nil {
		return nil, m.Err()
	}

	total := 0
	for _, t := range m.Created() {
		total += t.DurationMinutes
	}
	fmt.Printf("✅ Added %d tasks to %s (%s planned)\n", len(m.Created()), format.LongDate(date), format.Duration(total))
	return m.Created(), nil
}

// RunFocusTUI starts focus mode for date
func RunFocusTUI(focus *workflow.Focus, date string, energy models.Energy, reduceMotion bool) error {
	model := NewFocusModel(focus, date, energy, FocusOptions{Now: time.Now, ReduceMotion: reduceMotion})

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(FocusModel)
	if !ok {
		return nil
	}
	if m.err != nil {
		return m.err
	}

	minutes := 0
	for _, t := range m.finished {
		minutes += t.FocusMinutes()
	}
	fmt.Printf("🌊 Focus session over: %d done, %d skipped, %d moved, %s of focus\n", len(m.finished), m.skipped, m.moved, format.Duration(minutes))
	return nil
}
