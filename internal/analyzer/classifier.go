package analyzer

import (
	"regexp"
	"strings"

	"github.com/balkashynov/tideflow/internal/models"
)

// Reasoning strings attached to each energy decision
const (
	ReasonHighKeywords = "Requires deep focus and strategic thinking"
	ReasonLowKeywords  = "Routine task, minimal cognitive load"
	ReasonMedKeywords  = "Moderate focus needed"
	ReasonLongTitle    = "Complex task description suggests higher effort"
	ReasonMidTitle     = "Standard task complexity"
	ReasonShortTitle   = "Simple, straightforward task"
)

// Classification is the derived category of a task title
type Classification struct {
	Energy                   models.Energy   `json:"energy"`
	Priority                 models.Priority `json:"priority"`
	EstimatedDurationMinutes int             `json:"estimatedDurationMinutes"`
	Reasoning                string          `json:"reasoning"`
}

// Analysis pairs a title with its classification
type Analysis struct {
	Title string `json:"title"`
	Classification
}

// Rule maps a keyword set to the category it votes for
type Rule struct {
	Energy   models.Energy
	Keywords []string
}

// Classifier scores titles against an ordered rule table.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules     []Rule
	urgent    []string
	important []string
}

// Option customizes a Classifier
type Option func(*Classifier)

// WithEnergyKeywords replaces the keyword set for one energy level.
// An empty list keeps the default set.
func WithEnergyKeywords(energy models.Energy, keywords []string) Option {
	return func(c *Classifier) {
		normalized := normalizeKeywords(keywords)
		if len(normalized) == 0 {
			return
		}
		for i := range c.rules {
			if c.rules[i].Energy == energy {
				c.rules[i].Keywords = normalized
			}
		}
	}
}

// WithPriorityKeywords replaces the urgent and/or important sets.
// Empty lists keep the defaults.
func WithPriorityKeywords(urgent, important []string) Option {
	return func(c *Classifier) {
		if u := normalizeKeywords(urgent); len(u) > 0 {
			c.urgent = u
		}
		if i := normalizeKeywords(important); len(i) > 0 {
			c.important = i
		}
	}
}

// New creates a classifier with the default keyword tables
func New(opts ...Option) *Classifier {
	c := &Classifier{
		rules: []Rule{
			{Energy: models.EnergyHigh, Keywords: DefaultHighKeywords},
			{Energy: models.EnergyMedium, Keywords: DefaultMediumKeywords},
			{Energy: models.EnergyLow, Keywords: DefaultLowKeywords},
		},
		urgent:    DefaultUrgentKeywords,
		important: DefaultImportantKeywords,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = New()

// Classify runs the default classifier
func Classify(title string) Classification {
	return defaultClassifier.Classify(title)
}

// AnalyzeBulk runs the default classifier over every title
func AnalyzeBulk(titles []string) []Analysis {
	return defaultClassifier.AnalyzeBulk(titles)
}

// Rules returns a copy of the rule table
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Energy: r.Energy, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Classify derives energy, priority and a duration estimate from a title
func (c *Classifier) Classify(title string) Classification {
	lower := strings.ToLower(title)

	scores := make(map[models.Energy]int, len(c.rules))
	for _, rule := range c.rules {
		scores[rule.Energy] = countHits(lower, rule.Keywords)
	}

	energy, reasoning := decideEnergy(lower, scores[models.EnergyHigh], scores[models.EnergyMedium], scores[models.EnergyLow])

	return Classification{
		Energy:                   energy,
		Priority:                 c.priority(lower),
		EstimatedDurationMinutes: estimateDuration(lower, energy),
		Reasoning:                reasoning,
	}
}

// AnalyzeBulk classifies each title independently, preserving order
func (c *Classifier) AnalyzeBulk(titles []string) []Analysis {
	out := make([]Analysis, 0, len(titles))
	for _, title := range titles {
		out = append(out, Analysis{Title: title, Classification: c.Classify(title)})
	}
	return out
}

// decideEnergy applies the tie-break order: high must beat both others
// strictly, low wins ties against high, medium only wins by having any hit.
func decideEnergy(title string, high, medium, low int) (models.Energy, string) {
	switch {
	case high > medium && high > low:
		return models.EnergyHigh, ReasonHighKeywords
	case low > medium && low >= high:
		return models.EnergyLow, ReasonLowKeywords
	case medium > 0:
		return models.EnergyMedium, ReasonMedKeywords
	}

	words := wordCount(title)
	switch {
	case words > 8:
		return models.EnergyHigh, ReasonLongTitle
	case words > 4:
		return models.EnergyMedium, ReasonMidTitle
	default:
		return models.EnergyLow, ReasonShortTitle
	}
}

func (c *Classifier) priority(title string) models.Priority {
	if containsAny(title, c.urgent) {
		return models.PriorityUrgent
	}
	if containsAny(title, c.important) {
		return models.PriorityImportant
	}
	return models.PriorityNormal
}

// EstimateDuration returns the planned minutes for a title at a given energy
func EstimateDuration(title string, energy models.Energy) int {
	return estimateDuration(strings.ToLower(title), energy)
}

func estimateDuration(title string, energy models.Energy) int {
	switch energy {
	case models.EnergyHigh:
		if strings.Contains(title, "meeting") || strings.Contains(title, "session") {
			return 60
		}
		return 40
	case models.EnergyMedium:
		return 40
	default:
		return 20
	}
}

func countHits(title string, keywords []string) int {
	hits := 0
	for _, k := range keywords {
		if strings.Contains(title, k) {
			hits++
		}
	}
	return hits
}

func containsAny(title string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(title, k) {
			return true
		}
	}
	return false
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// wordCount splits on whitespace runs. Leading or trailing whitespace yields
// an empty field and the empty string counts as one word.
func wordCount(title string) int {
	return len(whitespaceRun.Split(title, -1))
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
