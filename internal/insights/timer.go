package insights

import (
	"time"

	"github.com/balkashynov/tideflow/internal/models"
)

// TimerPoint is planned versus actual focus minutes for one day
type TimerPoint struct {
	DateKey        string `json:"dateKey"`
	Label          string `json:"date"`
	PlannedMinutes int    `json:"plannedMinutes"`
	ActualMinutes  int    `json:"actualMinutes"`
}

// TimerSeries returns one point per recent day, oldest first.
// Only completed tasks count.
func TimerSeries(buckets models.DayBuckets, days int) []TimerPoint {
	dates := recentDates(buckets, days)
	points := make([]TimerPoint, 0, len(dates))

	for _, date := range dates {
		point := TimerPoint{DateKey: date, Label: weekdayLabel(date)}
		for _, t := range buckets[date] {
			if !t.Completed {
				continue
			}
			point.PlannedMinutes += t.DurationMinutes
			point.ActualMinutes += t.FocusMinutes()
		}
		points = append(points, point)
	}
	return points
}

// weekdayLabel gives "Mon" for a valid key and the key itself otherwise
func weekdayLabel(date string) string {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Mon")
}
