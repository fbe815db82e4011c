package insights

import (
	"sort"

	"github.com/balkashynov/tideflow/internal/models"
)

// DefaultDays is the size of the recent-days window
const DefaultDays = 7

// EnergyCount is the total/completed split for one energy level
type EnergyCount struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// DailyStats is the derived summary of one day's tasks
type DailyStats struct {
	Date              string                        `json:"date"`
	TotalTasks        int                           `json:"totalTasks"`
	Completed         int                           `json:"completed"`
	Rescheduled       int                           `json:"rescheduled"`
	AvgDuration       float64                       `json:"avgDuration"`
	ByEnergy          map[models.Energy]EnergyCount `json:"byEnergy"`
	TotalFocusMinutes int                           `json:"totalFocusMinutes"`
}

// ComputeDailyStats aggregates a list of tasks, normally one day bucket
func ComputeDailyStats(tasks []models.Task) DailyStats {
	stats := DailyStats{
		TotalTasks: len(tasks),
		ByEnergy:   make(map[models.Energy]EnergyCount, len(models.Energies)),
	}
	for _, e := range models.Energies {
		stats.ByEnergy[e] = EnergyCount{}
	}
	if len(tasks) > 0 {
		stats.Date = tasks[0].ScheduledDate
	}

	for _, t := range tasks {
		count := stats.ByEnergy[t.Energy]
		count.Total++
		if t.Completed {
			count.Completed++
			stats.Completed++
			stats.TotalFocusMinutes += t.FocusMinutes()
		} else if t.IsRescheduled() {
			stats.Rescheduled++
		}
		stats.ByEnergy[t.Energy] = count
	}

	if stats.Completed > 0 {
		stats.AvgDuration = float64(stats.TotalFocusMinutes) / float64(stats.Completed)
	}
	return stats
}

// recentDates returns the last n date keys in ascending order
func recentDates(buckets models.DayBuckets, n int) []string {
	if n <= 0 {
		n = DefaultDays
	}
	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > n {
		dates = dates[len(dates)-n:]
	}
	return dates
}

// rate divides without producing NaN
func rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
