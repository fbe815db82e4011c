package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tideflow/internal/format"
	"github.com/balkashynov/tideflow/internal/insights"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/workflow"
)

// barWidth is the widest planned/actual bar in the timer table
const barWidth = 24

// RenderReflection draws the end-of-day panel as a static string
func RenderReflection(p workflow.Panel) string {
	section := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 2)

	var parts []string
	parts = append(parts, section.Render("≋ Reflection · "+format.LongDate(p.Date)))

	// Today at a glance
	rate := 0.0
	if p.Today.TotalTasks > 0 {
		rate = float64(p.Today.Completed) / float64(p.Today.TotalTasks)
	}
	stats := []string{
		fmt.Sprintf("Completed     %d of %d (%s)", p.Today.Completed, p.Today.TotalTasks, format.Percent(rate)),
		fmt.Sprintf("Rescheduled   %d", p.Today.Rescheduled),
		fmt.Sprintf("Focus time    %s", format.Hours(p.Today.TotalFocusMinutes)),
	}
	for _, e := range models.Energies {
		c := p.Today.ByEnergy[e]
		stats = append(stats, fmt.Sprintf("%-22s %d/%d", energyBadge(e), c.Completed, c.Total))
	}
	parts = append(parts, card.Render(strings.Join(stats, "\n")))

	if len(p.Completed) > 0 {
		var rows []string
		for _, t := range p.Completed {
			rows = append(rows, fmt.Sprintf("✅ %s %s", t.Title, muted.Render(format.Duration(t.FocusMinutes()))))
		}
		parts = append(parts, section.Render("Done"), strings.Join(rows, "\n"))
	}

	if len(p.Rescheduled) > 0 {
		var rows []string
		for _, t := range p.Rescheduled {
			row := fmt.Sprintf("↪ %s %s", t.Title, muted.Render("→ "+format.ShortDate(t.RescheduledTo)))
			if t.Notes != "" {
				row += "\n   " + muted.Italic(true).Render(t.Notes)
			}
			rows = append(rows, row)
		}
		parts = append(parts, section.Render("Moved"), strings.Join(rows, "\n"))
	}

	if len(p.Series) > 0 {
		parts = append(parts, section.Render("Planned vs actual"), renderSeries(p.Series))
	}

	if len(p.Report.Insights) > 0 {
		var rows []string
		for _, in := range p.Report.Insights {
			rows = append(rows, "💡 "+format.InsightMessage(in))
		}
		parts = append(parts, section.Render("Insights"), strings.Join(rows, "\n"))
	}

	if len(p.Report.Suggestions) > 0 {
		var rows []string
		for _, s := range p.Report.Suggestions {
			rows = append(rows, suggestionStyle(s.Type).Render(suggestionIcon(s.Type)+" "+format.SuggestionMessage(s)))
		}
		parts = append(parts, section.Render("Suggestions"), strings.Join(rows, "\n"))
	}

	if len(p.Report.Insights) == 0 && len(p.Report.Suggestions) == 0 {
		parts = append(parts, muted.Render("Not enough history yet. Keep going!"))
	}

	return strings.Join(parts, "\n\n")
}

func renderSeries(series []insights.TimerPoint) string {
	peak := 1
	for _, pt := range series {
		peak = max(peak, pt.PlannedMinutes, pt.ActualMinutes)
	}

	planned := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	actual := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	var rows []string
	for _, pt := range series {
		p := barLength(pt.PlannedMinutes, peak)
		a := barLength(pt.ActualMinutes, peak)
		rows = append(rows,
			fmt.Sprintf("%-4s %s %s", pt.Label, planned.Render(strings.Repeat("░", p)), format.Duration(pt.PlannedMinutes)),
			fmt.Sprintf("%-4s %s %s", "", actual.Render(strings.Repeat("█", a)), format.Duration(pt.ActualMinutes)),
		)
	}
	return strings.Join(rows, "\n")
}

// barLength scales minutes to the bar width, never below zero
func barLength(minutes, peak int) int {
	return min(max(minutes*barWidth/peak, 0), barWidth)
}

func suggestionIcon(t insights.SuggestionType) string {
	switch t {
	case insights.SuggestionWarning:
		return "⚠️ "
	case insights.SuggestionSuccess:
		return "🎉"
	}
	return "👉"
}

func suggestionStyle(t insights.SuggestionType) lipgloss.Style {
	switch t {
	case insights.SuggestionWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	case insights.SuggestionSuccess:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
}
