package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tideflow/internal/format"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/parser"
	"github.com/balkashynov/tideflow/internal/workflow"
)

// FocusMode is what the focus screen is currently doing
type FocusMode int

const (
	ModeTimer FocusMode = iota
	ModeNotes
	ModeRescheduleDate
	ModeRescheduleReason
)

// defaultTarget is the timer target for tasks without a planned duration
const defaultTarget = 45

// TimerPreset is a selectable focus length
type TimerPreset struct {
	Minutes int
	Label   string
}

var timerPresets = []TimerPreset{
	{25, "Pomodoro sprint"},
	{45, "Creative block"},
	{52, "Optimal interval"},
	{90, "Deep work cycle"},
}

// FocusOptions tunes the focus screen
type FocusOptions struct {
	Now          func() time.Time
	ReduceMotion bool
}

// FocusModel shows one task at a time with a focus timer
type FocusModel struct {
	width  int
	height int

	focus  *workflow.Focus
	date   string
	energy models.Energy // preferred energy for the next pick
	now    func() time.Time
	mode   FocusMode

	// Current task
	task      models.Task
	hasTask   bool
	remaining int
	target    int    // minutes
	notes     string // saved with the completion

	// Timer. banked holds time from earlier runs, resumedAt the start of
	// the current one.
	started   bool
	running   bool
	startedAt time.Time
	resumedAt time.Time
	banked    time.Duration

	input        textinput.Model
	rescheduleTo string

	// Session results
	finished []models.Task
	skipped  int
	moved    int

	shimmer *Shimmer
	notice  string
	err     error
}

// timerTickMsg is sent every second to update the clock
type timerTickMsg struct{}

// NewFocusModel creates the focus view for date, preferring tasks of energy
func NewFocusModel(focus *workflow.Focus, date string, energy models.Energy, opts FocusOptions) FocusModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if !energy.Valid() {
		energy = models.EnergyHigh
	}

	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 60
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	m := FocusModel{
		focus:   focus,
		date:    date,
		energy:  energy,
		now:     opts.Now,
		input:   ti,
		shimmer: NewShimmer(DefaultShimmerConfig(opts.ReduceMotion)),
	}
	m.load()
	return m
}

// load picks the current task and resets the timer when it changed
func (m *FocusModel) load() {
	t, ok, err := m.focus.Current(m.date, m.energy)
	if err != nil {
		m.err = err
		return
	}
	if !ok || !m.hasTask || t.ID != m.task.ID {
		m.resetTimer(t)
	}
	m.task, m.hasTask = t, ok

	queue, err := m.focus.Queue(m.date)
	if err != nil {
		m.err = err
		return
	}
	m.remaining = 0
	for _, q := range queue {
		if q.IsPending() {
			m.remaining++
		}
	}
}

func (m *FocusModel) resetTimer(t models.Task) {
	m.started, m.running = false, false
	m.banked = 0
	m.notes = ""
	m.target = t.DurationMinutes
	if m.target <= 0 {
		m.target = defaultTarget
	}
	m.shimmer.Reset()
}

// elapsed is the focused time so far, without pauses
func (m FocusModel) elapsed() time.Duration {
	if m.running {
		return m.banked + m.now().Sub(m.resumedAt)
	}
	return m.banked
}

func (m *FocusModel) start() {
	now := m.now()
	m.started, m.running = true, true
	m.startedAt, m.resumedAt = now, now
}

func (m *FocusModel) togglePause() {
	if m.running {
		m.banked += m.now().Sub(m.resumedAt)
		m.running = false
		return
	}
	m.resumedAt = m.now()
	m.running = true
}

// nextPreset cycles the target through the presets
func nextPreset(target int) int {
	for _, p := range timerPresets {
		if p.Minutes > target {
			return p.Minutes
		}
	}
	return timerPresets[0].Minutes
}

func presetLabel(target int) string {
	for _, p := range timerPresets {
		if p.Minutes == target {
			return p.Label
		}
	}
	return "Planned length"
}

func tickTimer() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Init starts the clock and the title shimmer
func (m FocusModel) Init() tea.Cmd {
	return tea.Batch(tickTimer(), m.shimmer.Tick())
}

// Update handles messages
func (m FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return m, tickTimer()

	case shimmerTickMsg:
		m.shimmer.Advance(len([]rune(m.task.Title)))
		return m, m.shimmer.Tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeNotes:
			return m.updateNotes(msg)
		case ModeRescheduleDate, ModeRescheduleReason:
			return m.updateReschedule(msg)
		}
		return m.updateTimer(msg)
	}

	return m, nil
}

func (m FocusModel) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit

	case "e":
		m.energy = nextEnergy(m.energy)
		m.notice = fmt.Sprintf("Looking for %s energy tasks first", m.energy)
		m.load()
		return m, nil
	}

	if !m.hasTask {
		return m, nil
	}

	switch msg.String() {
	case " ", "p":
		if !m.started {
			m.start()
			m.notice = fmt.Sprintf("Focus started, target %d min", m.target)
		} else {
			m.togglePause()
			m.notice = "Paused"
			if m.running {
				m.notice = "Resumed"
			}
		}

	case "t":
		if !m.started {
			m.target = nextPreset(m.target)
		}

	case "n":
		m.mode = ModeNotes
		m.input.Placeholder = "Thoughts, blockers, progress..."
		m.input.SetValue(m.notes)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case "r":
		m.mode = ModeRescheduleDate
		m.input.Placeholder = "tomorrow, friday, 3 days, yyyy-mm-dd"
		m.input.SetValue("tomorrow")
		m.input.CursorEnd()
		return m, m.input.Focus()

	case "c", "enter":
		minutes := 0
		if m.started {
			minutes = actualMinutes(m.elapsed())
		}
		done, err := m.focus.Complete(m.date, m.task.ID, m.notes, minutes)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.finished = append(m.finished, done)
		m.notice = fmt.Sprintf("✅ %s done in %s", done.Title, format.Duration(done.FocusMinutes()))
		m.hasTask = false
		m.load()

	case "k", "s":
		if err := m.focus.Skip(m.date, m.task.ID); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.skipped++
		m.notice = fmt.Sprintf("⏭  Skipped %s", m.task.Title)
		m.hasTask = false
		m.load()
	}
	return m, nil
}

func (m FocusModel) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeTimer
		m.input.Blur()
		return m, nil
	case "enter":
		m.notes = strings.TrimSpace(m.input.Value())
		m.mode = ModeTimer
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m FocusModel) updateReschedule(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeTimer
		m.input.Blur()
		return m, nil

	case "enter":
		if m.mode == ModeRescheduleDate {
			to, err := parser.ParseDate(m.input.Value(), m.now())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.rescheduleTo = to
			m.mode = ModeRescheduleReason
			m.input.Placeholder = "Why are you rescheduling? (optional)"
			m.input.SetValue(m.notes)
			m.input.CursorEnd()
			return m, nil
		}

		title := m.task.Title
		successor, err := m.focus.Reschedule(m.task.ID, m.date, m.rescheduleTo, m.input.Value())
		m.mode = ModeTimer
		m.input.Blur()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.moved++
		m.notice = fmt.Sprintf("↪ Moved %s to %s", title, format.ShortDate(successor.ScheduledDate))
		m.hasTask = false
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// actualMinutes rounds focused time up to whole minutes. Zero means the
// timer never ran and the planned duration is recorded instead.
func actualMinutes(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(math.Ceil(elapsed.Minutes()))
}

// View renders the focus screen
func (m FocusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	if !m.hasTask {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderEmptyPanel(m.width, contentHeight), helpBar)
	}

	// Narrow view: just the clock
	if m.width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderClockPanel(m.width, contentHeight), helpBar)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderClockPanel(leftWidth, contentHeight),
		"  ",
		m.renderDetailsPanel(rightWidth, contentHeight),
	)
	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

func (m FocusModel) renderClockPanel(width, height int) string {
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	var parts []string
	parts = append(parts, center.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).Render("≋  FOCUS  ≋"))
	parts = append(parts, center.Render(m.shimmer.Render(truncate(m.task.Title, width-4))))
	parts = append(parts, center.Render(energyBadge(m.task.Energy)))

	if !m.started {
		parts = append(parts, center.Foreground(lipgloss.Color(ColorPrimaryText)).Render(
			fmt.Sprintf("Target %d min · %s", m.target, presetLabel(m.target))))
		parts = append(parts, center.Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Render(
			"t cycles 25 / 45 / 52 / 90 min · space starts the timer"))
	} else {
		elapsed := m.elapsed()
		var clock []string
		for _, line := range strings.Split(renderBigClock(elapsed), "\n") {
			clock = append(clock, center.Render(line))
		}
		parts = append(parts, strings.Join(clock, "\n"))
		parts = append(parts, center.Render(renderProgress(elapsed, m.target, width/2)))

		target := time.Duration(m.target) * time.Minute
		status := fmt.Sprintf("Target %d min", m.target)
		statusColor := ColorSecondaryText
		if elapsed > target {
			status = fmt.Sprintf("Overtime +%s", format.Clock(int((elapsed - target).Seconds())))
			statusColor = ColorWarning
		}
		if !m.running {
			status += " · paused"
		}
		parts = append(parts, center.Foreground(lipgloss.Color(statusColor)).Italic(true).Render(status))
	}

	switch m.mode {
	case ModeNotes:
		parts = append(parts, center.Render("Notes\n"+m.input.View()))
	case ModeRescheduleDate:
		parts = append(parts, center.Render("Move to\n"+m.input.View()))
	case ModeRescheduleReason:
		parts = append(parts, center.Render(fmt.Sprintf("Move to %s, reason\n%s", format.ShortDate(m.rescheduleTo), m.input.View())))
	}

	if m.notice != "" {
		parts = append(parts, center.Foreground(lipgloss.Color(ColorSuccess)).Render(m.notice))
	}
	if m.err != nil {
		parts = append(parts, center.Foreground(lipgloss.Color(ColorError)).Render("Error: "+m.err.Error()))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(parts, "\n\n"))
}

// renderProgress draws elapsed against the target, full once in overtime
func renderProgress(elapsed time.Duration, targetMinutes, width int) string {
	if width < 10 {
		width = 10
	}
	ratio := 1.0
	if targetMinutes > 0 {
		ratio = math.Min(elapsed.Minutes()/float64(targetMinutes), 1)
	}
	filled := int(ratio * float64(width))
	if filled < 0 {
		filled = 0
	}

	color := ColorAccentBright
	if elapsed > time.Duration(targetMinutes)*time.Minute {
		color = ColorWarning
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Render(strings.Repeat("─", width-filled))
}

func (m FocusModel) renderDetailsPanel(width, height int) string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
	row := func(name, v string) string {
		return label.Render(fmt.Sprintf("%-12s", name)) + value.Render(v)
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(energyColor(m.task.Energy))).
		Width(width-6).
		Padding(0, 1)

	started := "not yet"
	if m.started {
		started = m.startedAt.Format("15:04:05")
	}

	rows := []string{
		titleStyle.Render(m.task.Title),
		"",
		row("Day", format.LongDate(m.date)),
		row("Energy", string(m.task.Energy)),
		row("Planned", format.Duration(m.task.DurationMinutes)),
		row("Started", started),
		row("Up next", fmt.Sprintf("%d pending", m.remaining)),
		row("Finished", fmt.Sprintf("%d this session", len(m.finished))),
		row("Prefer", string(m.energy)),
	}
	if m.task.Notes != "" {
		rows = append(rows, "", label.Italic(true).Render(m.task.Notes))
	}
	if m.notes != "" {
		rows = append(rows, "", label.Render("Notes ")+value.Render(m.notes))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(2, 2).
		Render(strings.Join(rows, "\n"))
}

func (m FocusModel) renderEmptyPanel(width, height int) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true).Render("🌊 Nothing left to do today"),
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(
			fmt.Sprintf("%d finished this session · %d skipped · %d moved", len(m.finished), m.skipped, m.moved)),
	}
	if m.notice != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.notice))
	}
	if m.err != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("Error: "+m.err.Error()))
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(lines, "\n\n"))
}

func (m FocusModel) renderHelpBar() string {
	var helpText string
	switch {
	case m.mode == ModeNotes:
		helpText = "enter save notes · esc cancel"
	case m.mode == ModeRescheduleDate:
		helpText = "enter pick day · esc cancel"
	case m.mode == ModeRescheduleReason:
		helpText = "enter move task · esc cancel"
	case !m.hasTask:
		helpText = "e switch energy · q quit"
	case !m.started:
		helpText = "space start · t target · c complete · n notes · r reschedule · k skip · e energy · q quit"
	default:
		helpText = "space pause/resume · c complete · n notes · r reschedule · k skip · e energy · q quit"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(helpText)
}

// bigDigits are 5x5 glyphs for the clock
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock draws MM:SS, or HH:MM:SS past the hour
func renderBigClock(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	text := format.Clock(secs)
	if secs >= 3600 {
		text = fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	}

	var lines [5]strings.Builder
	for _, r := range text {
		glyph, ok := bigDigits[r]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i].WriteString(glyph[i])
			lines[i].WriteString(" ")
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	out := make([]string, len(lines))
	for i := range lines {
		out[i] = style.Render(lines[i].String())
	}
	return strings.Join(out, "\n")
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
