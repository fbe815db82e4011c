package workflow

import (
	"github.com/balkashynov/tideflow/internal/insights"
	"github.com/balkashynov/tideflow/internal/models"
)

// Panel is everything the reflection view shows
type Panel struct {
	Date        string                `json:"date"`
	Today       insights.DailyStats   `json:"today"`
	Completed   []models.Task         `json:"completed"`
	Rescheduled []models.Task         `json:"rescheduled"`
	Report      insights.Report       `json:"report"`
	Series      []insights.TimerPoint `json:"series"`
}

// Reflection reads the store and feeds the insight engine
type Reflection struct {
	deps Deps
}

// NewReflection creates the reflection workflow
func NewReflection(deps Deps) *Reflection {
	return &Reflection{deps: deps.withDefaults()}
}

// Build assembles the panel for date over the last days of history
func (r *Reflection) Build(date string, days int) (Panel, error) {
	buckets, err := r.deps.Store.Snapshot()
	if err != nil {
		return Panel{}, err
	}

	tasks := buckets[date]
	panel := Panel{
		Date:        date,
		Today:       insights.ComputeDailyStats(tasks),
		Completed:   []models.Task{},
		Rescheduled: []models.Task{},
		Report:      insights.Generate(buckets, days),
		Series:      insights.TimerSeries(buckets, days),
	}
	if panel.Today.Date == "" {
		panel.Today.Date = date
	}

	for _, t := range tasks {
		if t.Completed {
			panel.Completed = append(panel.Completed, t)
		} else if t.IsRescheduled() {
			panel.Rescheduled = append(panel.Rescheduled, t)
		}
	}

	r.deps.Log.Debugw("reflection built", "date", date, "days", days, "insights", len(panel.Report.Insights), "suggestions", len(panel.Report.Suggestions))
	return panel, nil
}
