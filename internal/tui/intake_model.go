package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tideflow/internal/format"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/workflow"
)

// Stage is the current screen of the intake flow
type Stage int

const (
	StageDump Stage = iota
	StageReview
	StageEditTitle
	StageDone
)

// durationStep is how much +/- changes a candidate's duration
const durationStep = 5

// IntakeModel is the brain dump and review TUI
type IntakeModel struct {
	stage  Stage
	width  int
	height int

	intake *workflow.Intake
	date   string

	dump      textarea.Model
	titleEdit textinput.Model

	candidates []workflow.Candidate
	selected   int

	// Results
	created   []models.Task
	cancelled bool
	err       error
}

// NewIntakeModel creates the intake flow for date. A non-empty prefill goes
// straight to review.
func NewIntakeModel(intake *workflow.Intake, date, prefill string) IntakeModel {
	ta := textarea.New()
	ta.Placeholder = "Dump everything on your mind, one task per line...\n  Prepare board deck +high ~90m\n  Reply to Sam"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(70)
	ta.SetHeight(12)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	ta.Focus()

	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 60
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	m := IntakeModel{
		stage:     StageDump,
		intake:    intake,
		date:      date,
		dump:      ta,
		titleEdit: ti,
	}
	if strings.TrimSpace(prefill) != "" {
		m.dump.SetValue(prefill)
		m.analyze()
	}
	return m
}

// Created returns the tasks written on confirm
func (m IntakeModel) Created() []models.Task { return m.created }

// Cancelled reports whether the user quit without saving
func (m IntakeModel) Cancelled() bool { return m.cancelled }

// Err returns the last error shown to the user
func (m IntakeModel) Err() error { return m.err }

// Init initializes the model
func (m IntakeModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m IntakeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 10 {
			m.dump.SetWidth(min(msg.Width-6, 100))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		switch m.stage {
		case StageDump:
			return m.updateDump(msg)
		case StageReview:
			return m.updateReview(msg)
		case StageEditTitle:
			return m.updateEditTitle(msg)
		}
	}

	var cmd tea.Cmd
	switch m.stage {
	case StageDump:
		m.dump, cmd = m.dump.Update(msg)
	case StageEditTitle:
		m.titleEdit, cmd = m.titleEdit.Update(msg)
	}
	return m, cmd
}

func (m IntakeModel) updateDump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cancelled = true
		return m, tea.Quit
	case "ctrl+d", "ctrl+s":
		m.analyze()
		if len(m.candidates) == 0 {
			m.err = fmt.Errorf("nothing to analyze yet")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.dump, cmd = m.dump.Update(msg)
	return m, cmd
}

func (m *IntakeModel) analyze() {
	m.candidates = m.intake.Analyze(m.dump.Value())
	m.selected = 0
	m.err = nil
	if len(m.candidates) > 0 {
		m.stage = StageReview
		m.dump.Blur()
	}
}

func (m IntakeModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.candidates) == 0 && msg.String() != "q" && msg.String() != "esc" && msg.String() != "b" {
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.cancelled = true
		return m, tea.Quit

	case "esc", "b":
		// back to the dump, keeping the text
		m.stage = StageDump
		m.err = nil
		return m, m.dump.Focus()

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.candidates)-1 {
			m.selected++
		}

	case "e", "tab":
		energy := nextEnergy(m.current().Energy)
		m.patch(workflow.CandidatePatch{Energy: &energy})

	case "+", "=":
		d := m.current().EstimatedDurationMinutes + durationStep
		m.patch(workflow.CandidatePatch{Duration: &d})
	case "-", "_":
		d := m.current().EstimatedDurationMinutes - durationStep
		if d >= 1 {
			m.patch(workflow.CandidatePatch{Duration: &d})
		}

	case "enter", "r":
		m.stage = StageEditTitle
		m.titleEdit.SetValue(m.current().Title)
		m.titleEdit.CursorEnd()
		return m, m.titleEdit.Focus()

	case "x", "delete", "backspace":
		if err := m.intake.Remove(m.current().ID); err != nil {
			m.err = err
			return m, nil
		}
		m.candidates = m.intake.Candidates()
		if m.selected >= len(m.candidates) && m.selected > 0 {
			m.selected--
		}

	case "ctrl+s", "y":
		created, err := m.intake.Confirm(m.date)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.created = created
		m.stage = StageDone
		return m, tea.Quit
	}
	return m, nil
}

func (m IntakeModel) updateEditTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stage = StageReview
		m.titleEdit.Blur()
		return m, nil
	case "enter":
		title := m.titleEdit.Value()
		m.patch(workflow.CandidatePatch{Title: &title})
		if m.err == nil {
			m.stage = StageReview
			m.titleEdit.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.titleEdit, cmd = m.titleEdit.Update(msg)
	return m, cmd
}

func (m *IntakeModel) current() workflow.Candidate {
	return m.candidates[m.selected]
}

func (m *IntakeModel) patch(p workflow.CandidatePatch) {
	updated, err := m.intake.Update(m.current().ID, p)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.candidates[m.selected] = updated
}

// View renders the current stage
func (m IntakeModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render("≋ tideflow · " + format.LongDate(m.date))
	b.WriteString(header + "\n\n")

	switch m.stage {
	case StageDump:
		b.WriteString(m.viewDump())
	case StageReview, StageEditTitle:
		b.WriteString(m.viewReview())
	case StageDone:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(fmt.Sprintf("Saved %d tasks", len(m.created))))
	}

	if m.err != nil {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("⚠️  "+m.err.Error()))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m IntakeModel) viewDump() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1).
		Render(m.dump.View())

	help := helpLine("ctrl+d analyze · esc cancel · +high/+low and ~25m set energy and duration inline")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true).Render("What's on your mind?"),
		"",
		box,
		"",
		help,
	)
}

func (m IntakeModel) viewReview() string {
	var rows []string
	total := 0
	for i, c := range m.candidates {
		total += c.EstimatedDurationMinutes
		rows = append(rows, m.renderCandidate(i, c))
	}
	if len(rows) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("Review list is empty. b to go back."))
	}

	summary := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Render(fmt.Sprintf("%d tasks · %s planned", len(m.candidates), format.Duration(total)))

	parts := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true).Render("Review your day"),
		summary,
		"",
		strings.Join(rows, "\n"),
		"",
	}

	if m.stage == StageEditTitle {
		parts = append(parts, "Title: "+m.titleEdit.View(), "", helpLine("enter save · esc cancel"))
	} else {
		parts = append(parts, helpLine("↑/↓ move · e energy · +/- duration · enter rename · x delete · y save · b back · q quit"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m IntakeModel) renderCandidate(i int, c workflow.Candidate) string {
	cursor := "  "
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	if i == m.selected {
		cursor = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render("❯ ")
		titleStyle = titleStyle.Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	}

	meta := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	line := fmt.Sprintf("%s%-44s %s  %s",
		cursor,
		titleStyle.Render(truncate(c.Title, 42)),
		energyBadge(c.Energy),
		meta.Render(format.Duration(c.EstimatedDurationMinutes)),
	)
	if c.Priority != models.PriorityNormal && c.Priority != "" {
		line += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(string(c.Priority))
	}
	if i == m.selected {
		line += "\n    " + meta.Italic(true).Render(c.Reasoning)
		for _, e := range c.Errors {
			line += "\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(e)
		}
	}
	return line
}

func helpLine(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).Render(text)
}
