// Package format turns the numbers produced by the analyzer and insight
// engine into the strings shown to the user.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/balkashynov/tideflow/internal/insights"
	"github.com/balkashynov/tideflow/internal/models"
)

// Duration renders a planned duration in minutes
func Duration(mins int) string {
	switch {
	case mins < 60:
		return fmt.Sprintf("%d min", mins)
	case mins == 60:
		return "1 hour"
	case mins == 90:
		return "1.5 hours"
	case mins == 120:
		return "2 hours"
	default:
		return fmt.Sprintf("%dh %dm", mins/60, mins%60)
	}
}

// Percent renders a 0..1 ratio as a whole percentage
func Percent(ratio float64) string {
	return fmt.Sprintf("%d%%", roundHalfUp(ratio*100))
}

// Hours renders minutes as hours with one decimal
func Hours(mins int) string {
	return fmt.Sprintf("%.1fh", math.Round(float64(mins)/60*10)/10)
}

// Clock renders elapsed seconds as MM:SS
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// LongDate renders a bucket key like "Monday, January 15, 2024"
func LongDate(dateKey string) string {
	d, err := time.Parse(models.DateLayout, dateKey)
	if err != nil {
		return dateKey
	}
	return d.Format("Monday, January 2, 2006")
}

// ShortDate renders a bucket key like "Mon, Jan 15"
func ShortDate(dateKey string) string {
	d, err := time.Parse(models.DateLayout, dateKey)
	if err != nil {
		return dateKey
	}
	return d.Format("Mon, Jan 2")
}

// InsightMessage renders one observation
func InsightMessage(in insights.Insight) string {
	switch in.Kind {
	case insights.InsightBestEnergy:
		return fmt.Sprintf("You complete %s of %s energy tasks — your sweet spot!", Percent(in.Value), in.Energy)
	case insights.InsightAvgCompleted:
		return fmt.Sprintf("You average %.1f completed tasks per day", in.Value)
	}
	return string(in.Kind)
}

// SuggestionMessage renders one suggestion
func SuggestionMessage(s insights.Suggestion) string {
	switch s.Kind {
	case insights.SuggestReschedulePattern:
		return fmt.Sprintf("You often reschedule %s energy tasks. Consider scheduling fewer of these or breaking them down.", s.Energy)
	case insights.SuggestFocusTime:
		return fmt.Sprintf("Your average daily focus time is %d mins. Try adding one more 20-min task tomorrow.", roundHalfUp(s.Value))
	case insights.SuggestPrioritizeEnergy:
		return fmt.Sprintf("For tomorrow, prioritize %s energy tasks — you excel at these!", s.Energy)
	case insights.SuggestLowCompletion:
		return fmt.Sprintf("Your completion rate is %s. Try planning fewer tasks or extending time estimates.", Percent(s.Value))
	}
	return string(s.Kind)
}

// roundHalfUp rounds .5 towards +Inf, unlike math.Round which rounds away from zero
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
