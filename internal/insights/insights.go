package insights

import (
	"github.com/balkashynov/tideflow/internal/models"
)

// InsightKind identifies an observation
type InsightKind string

const (
	InsightBestEnergy   InsightKind = "best-energy"
	InsightAvgCompleted InsightKind = "avg-completed"
)

// Insight is an observation about recent history. Value is a ratio for
// best-energy and tasks per day for avg-completed.
type Insight struct {
	Kind   InsightKind   `json:"kind"`
	Energy models.Energy `json:"energy,omitempty"`
	Value  float64       `json:"value"`
}

// SuggestionType is the tone of a suggestion
type SuggestionType string

const (
	SuggestionWarning SuggestionType = "warning"
	SuggestionTip     SuggestionType = "tip"
	SuggestionSuccess SuggestionType = "success"
)

// SuggestionKind identifies which rule produced a suggestion
type SuggestionKind string

const (
	SuggestReschedulePattern SuggestionKind = "reschedule-pattern"
	SuggestFocusTime         SuggestionKind = "focus-time"
	SuggestPrioritizeEnergy  SuggestionKind = "prioritize-energy"
	SuggestLowCompletion     SuggestionKind = "low-completion"
)

// Suggestion is an actionable recommendation with its raw number
type Suggestion struct {
	Type   SuggestionType `json:"type"`
	Kind   SuggestionKind `json:"kind"`
	Energy models.Energy  `json:"energy,omitempty"`
	Value  float64        `json:"value"`
}

// Report holds everything Generate derives
type Report struct {
	Insights    []Insight    `json:"insights"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Thresholds used by the suggestion rules
const (
	MinRescheduleCount = 1
	FocusTipMinutes    = 60
	SuccessRate        = 0.7
	LowCompletionRate  = 0.5
	LowCompletionTasks = 3
)

// Generate looks at the most recent days of history and derives insights
// and suggestions. days <= 0 means DefaultDays.
func Generate(buckets models.DayBuckets, days int) Report {
	report := Report{Insights: []Insight{}, Suggestions: []Suggestion{}}

	dates := recentDates(buckets, days)
	var all []models.Task
	var completedPerDay, focusPerDay int
	for _, date := range dates {
		tasks := buckets[date]
		all = append(all, tasks...)
		stats := ComputeDailyStats(tasks)
		completedPerDay += stats.Completed
		focusPerDay += stats.TotalFocusMinutes
	}

	totals := make(map[models.Energy]int, len(models.Energies))
	completed := make(map[models.Energy]int, len(models.Energies))
	rescheduled := make(map[models.Energy]int, len(models.Energies))
	completedAll := 0
	for _, t := range all {
		totals[t.Energy]++
		if t.Completed {
			completed[t.Energy]++
			completedAll++
		} else if t.IsRescheduled() {
			rescheduled[t.Energy]++
		}
	}

	bestEnergy, bestRate := models.Energies[0], -1.0
	for _, e := range models.Energies {
		if r := rate(completed[e], totals[e]); r > bestRate {
			bestEnergy, bestRate = e, r
		}
	}
	if bestRate > 0 {
		report.Insights = append(report.Insights, Insight{Kind: InsightBestEnergy, Energy: bestEnergy, Value: bestRate})
	}

	var avgCompleted, avgFocus float64
	if len(dates) > 0 {
		avgCompleted = float64(completedPerDay) / float64(len(dates))
		avgFocus = float64(focusPerDay) / float64(len(dates))
	}
	if avgCompleted > 0 {
		report.Insights = append(report.Insights, Insight{Kind: InsightAvgCompleted, Value: avgCompleted})
	}

	mostEnergy, mostCount := models.Energies[0], 0
	for _, e := range models.Energies {
		if rescheduled[e] > mostCount {
			mostEnergy, mostCount = e, rescheduled[e]
		}
	}
	if mostCount > MinRescheduleCount {
		report.Suggestions = append(report.Suggestions, Suggestion{
			Type:   SuggestionWarning,
			Kind:   SuggestReschedulePattern,
			Energy: mostEnergy,
			Value:  float64(mostCount),
		})
	}

	if avgFocus > 0 && avgFocus < FocusTipMinutes {
		report.Suggestions = append(report.Suggestions, Suggestion{Type: SuggestionTip, Kind: SuggestFocusTime, Value: avgFocus})
	}

	if bestRate > SuccessRate {
		report.Suggestions = append(report.Suggestions, Suggestion{
			Type:   SuggestionSuccess,
			Kind:   SuggestPrioritizeEnergy,
			Energy: bestEnergy,
			Value:  bestRate,
		})
	}

	overall := rate(completedAll, len(all))
	if overall < LowCompletionRate && len(all) > LowCompletionTasks {
		report.Suggestions = append(report.Suggestions, Suggestion{Type: SuggestionWarning, Kind: SuggestLowCompletion, Value: overall})
	}

	return report
}
