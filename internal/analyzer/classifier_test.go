package analyzer

import (
	"reflect"
	"testing"

	"github.com/balkashynov/tideflow/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		title     string
		energy    models.Energy
		priority  models.Priority
		duration  int
		reasoning string
	}{
		{"", models.EnergyLow, models.PriorityNormal, 20, ReasonShortTitle},
		{"Facilitate sprint planning session", models.EnergyHigh, models.PriorityNormal, 60, ReasonHighKeywords},
		{"Reply to emails", models.EnergyLow, models.PriorityNormal, 20, ReasonLowKeywords},
		{"URGENT: fix deadline issue today", models.EnergyHigh, models.PriorityUrgent, 40, ReasonHighKeywords},
		{"Write quarterly report", models.EnergyMedium, models.PriorityNormal, 40, ReasonMedKeywords},
		{"Lead budget meeting", models.EnergyHigh, models.PriorityNormal, 60, ReasonHighKeywords},
		{"Key account email", models.EnergyLow, models.PriorityImportant, 20, ReasonLowKeywords},
		// "plan" hits both high and medium; medium wins through its own branch
		{"Plan the offsite", models.EnergyMedium, models.PriorityNormal, 40, ReasonMedKeywords},
		// high == low with no medium hits resolves to low
		{"Resolve inbox", models.EnergyLow, models.PriorityNormal, 20, ReasonLowKeywords},
		{"one two three four five six seven eight nine", models.EnergyHigh, models.PriorityNormal, 40, ReasonLongTitle},
		{"walk the dog this afternoon", models.EnergyMedium, models.PriorityNormal, 40, ReasonMidTitle},
		{"walk the dog", models.EnergyLow, models.PriorityNormal, 20, ReasonShortTitle},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Classify(tt.title)
			if got.Energy != tt.energy {
				t.Errorf("energy = %s, want %s", got.Energy, tt.energy)
			}
			if got.Priority != tt.priority {
				t.Errorf("priority = %s, want %s", got.Priority, tt.priority)
			}
			if got.EstimatedDurationMinutes != tt.duration {
				t.Errorf("duration = %d, want %d", got.EstimatedDurationMinutes, tt.duration)
			}
			if got.Reasoning != tt.reasoning {
				t.Errorf("reasoning = %q, want %q", got.Reasoning, tt.reasoning)
			}
		})
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	if a, b := Classify("REPLY TO EMAILS"), Classify("reply to emails"); a != b {
		t.Fatalf("case changed result: %+v vs %+v", a, b)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	c := New()
	title := "Prepare stakeholder pitch asap"
	first := c.Classify(title)
	second := c.Classify(title)
	if first != second {
		t.Fatalf("repeated classification differs: %+v vs %+v", first, second)
	}
}

func TestWordCountFollowsWhitespaceSplit(t *testing.T) {
	tests := map[string]int{
		"":        1,
		" ":       2,
		"a b":     2,
		" a  b ":  4,
		"a\tb\nc": 3,
	}
	for in, want := range tests {
		if got := wordCount(in); got != want {
			t.Errorf("wordCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestAnalyzeBulkPreservesOrder(t *testing.T) {
	titles := []string{"Reply to emails", "Reply to emails", "Lead budget meeting", ""}
	got := AnalyzeBulk(titles)
	if len(got) != len(titles) {
		t.Fatalf("got %d results, want %d", len(got), len(titles))
	}
	for i, a := range got {
		if a.Title != titles[i] {
			t.Errorf("result %d title = %q, want %q", i, a.Title, titles[i])
		}
		if a.Classification != Classify(titles[i]) {
			t.Errorf("result %d differs from single classification", i)
		}
	}
	if len(AnalyzeBulk(nil)) != 0 {
		t.Error("expected no results for nil input")
	}
}

func TestCustomKeywords(t *testing.T) {
	c := New(
		WithEnergyKeywords(models.EnergyHigh, []string{" Deploy "}),
		WithEnergyKeywords(models.EnergyLow, nil),
		WithPriorityKeywords([]string{"p0"}, nil),
	)

	got := c.Classify("Deploy release P0")
	if got.Energy != models.EnergyHigh {
		t.Errorf("energy = %s, want high", got.Energy)
	}
	if got.Priority != models.PriorityUrgent {
		t.Errorf("priority = %s, want urgent", got.Priority)
	}

	// the default urgent list is replaced, so "today" no longer matters
	if p := c.Classify("email today").Priority; p != models.PriorityNormal {
		t.Errorf("priority = %s, want normal", p)
	}
	// important defaults are kept
	if p := c.Classify("important email").Priority; p != models.PriorityImportant {
		t.Errorf("priority = %s, want important", p)
	}
	// low defaults are kept when the override is empty
	if e := c.Classify("clean inbox").Energy; e != models.EnergyLow {
		t.Errorf("energy = %s, want low", e)
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	c := New()
	rules := c.Rules()
	rules[0].Keywords[0] = "mutated"
	if reflect.DeepEqual(rules, c.Rules()) {
		t.Fatal("Rules exposed internal state")
	}
	if DefaultHighKeywords[0] != "present" {
		t.Fatal("default keywords were mutated")
	}
}

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		title  string
		energy models.Energy
		want   int
	}{
		{"Team MEETING", models.EnergyHigh, 60},
		{"Pairing session", models.EnergyHigh, 60},
		{"Deep work", models.EnergyHigh, 40},
		{"Team meeting", models.EnergyMedium, 40},
		{"Team meeting", models.EnergyLow, 20},
	}
	for _, tt := range tests {
		if got := EstimateDuration(tt.title, tt.energy); got != tt.want {
			t.Errorf("EstimateDuration(%q, %s) = %d, want %d", tt.title, tt.energy, got, tt.want)
		}
	}
}
