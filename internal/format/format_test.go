package format

import (
	"testing"

	"github.com/balkashynov/tideflow/internal/insights"
	"github.com/balkashynov/tideflow/internal/models"
)

func TestDuration(t *testing.T) {
	tests := map[int]string{
		0:   "0 min",
		20:  "20 min",
		59:  "59 min",
		60:  "1 hour",
		75:  "1h 15m",
		90:  "1.5 hours",
		120: "2 hours",
		150: "2h 30m",
	}
	for in, want := range tests {
		if got := Duration(in); got != want {
			t.Errorf("Duration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestPercentAndHours(t *testing.T) {
	if got := Percent(2.0 / 3.0); got != "67%" {
		t.Errorf("Percent = %q", got)
	}
	if got := Percent(0); got != "0%" {
		t.Errorf("Percent = %q", got)
	}
	if got := Percent(1); got != "100%" {
		t.Errorf("Percent = %q", got)
	}
	if got := Hours(90); got != "1.5h" {
		t.Errorf("Hours = %q", got)
	}
	if got := Hours(100); got != "1.7h" {
		t.Errorf("Hours = %q", got)
	}
}

func TestClock(t *testing.T) {
	tests := map[int]string{0: "00:00", 59: "00:59", 61: "01:01", 3600: "60:00", -5: "00:00"}
	for in, want := range tests {
		if got := Clock(in); got != want {
			t.Errorf("Clock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestDates(t *testing.T) {
	if got := LongDate("2024-01-15"); got != "Monday, January 15, 2024" {
		t.Errorf("LongDate = %q", got)
	}
	if got := ShortDate("2024-01-15"); got != "Mon, Jan 15" {
		t.Errorf("ShortDate = %q", got)
	}
	if got := LongDate("not-a-date"); got != "not-a-date" {
		t.Errorf("LongDate = %q", got)
	}
}

func TestMessages(t *testing.T) {
	insightTests := []struct {
		in   insights.Insight
		want string
	}{
		{insights.Insight{Kind: insights.InsightBestEnergy, Energy: models.EnergyLow, Value: 0.8333}, "You complete 83% of low energy tasks — your sweet spot!"},
		{insights.Insight{Kind: insights.InsightAvgCompleted, Value: 7.0 / 3.0}, "You average 2.3 completed tasks per day"},
	}
	for _, tt := range insightTests {
		if got := InsightMessage(tt.in); got != tt.want {
			t.Errorf("InsightMessage = %q, want %q", got, tt.want)
		}
	}

	suggestionTests := []struct {
		in   insights.Suggestion
		want string
	}{
		{
			insights.Suggestion{Type: insights.SuggestionWarning, Kind: insights.SuggestReschedulePattern, Energy: models.EnergyHigh, Value: 3},
			"You often reschedule high energy tasks. Consider scheduling fewer of these or breaking them down.",
		},
		{
			insights.Suggestion{Type: insights.SuggestionTip, Kind: insights.SuggestFocusTime, Value: 44.5},
			"Your average daily focus time is 45 mins. Try adding one more 20-min task tomorrow.",
		},
		{
			insights.Suggestion{Type: insights.SuggestionSuccess, Kind: insights.SuggestPrioritizeEnergy, Energy: models.EnergyMedium, Value: 0.9},
			"For tomorrow, prioritize medium energy tasks — you excel at these!",
		},
		{
			insights.Suggestion{Type: insights.SuggestionWarning, Kind: insights.SuggestLowCompletion, Value: 0.25},
			"Your completion rate is 25%. Try planning fewer tasks or extending time estimates.",
		},
	}
	for _, tt := range suggestionTests {
		if got := SuggestionMessage(tt.in); got != tt.want {
			t.Errorf("SuggestionMessage = %q, want %q", got, tt.want)
		}
	}
}
