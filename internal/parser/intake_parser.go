package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/balkashynov/tideflow/internal/models"
)

// ParsedLine is one brain-dump line with its optional inline overrides
type ParsedLine struct {
	Title    string
	Energy   models.Energy // empty when not given
	Duration int           // 0 when not given
	Errors   []string
}

// SplitLines turns a multi-line brain dump into trimmed, non-empty lines
func SplitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

var (
	energyRegex   = regexp.MustCompile(`(?:^|\s)\+([a-zA-Z0-9]+)\b`)
	durationRegex = regexp.MustCompile(`(?:^|\s)~([0-9]+)(m|min|h)?\b`)
)

// ParseLine extracts inline overrides from a task line
// Syntax: "Prepare board deck +high ~90m"
//   +high|+medium|+low (or +h/+m/+l, +3/+2/+1) - energy
//   ~25m, ~1h, ~45                            - planned duration
func ParseLine(input string) ParsedLine {
	result := ParsedLine{Errors: []string{}}

	// Extract energy (+high, +3, +l, etc.)
	if matches := energyRegex.FindStringSubmatch(input); len(matches) > 1 {
		energy, err := ParseEnergy(matches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid energy '"+matches[1]+"'. Use: high, medium, low")
		} else {
			result.Energy = energy
		}
		input = energyRegex.ReplaceAllString(input, " ")
	}

	// Extract duration (~25m, ~1h)
	if matches := durationRegex.FindStringSubmatch(input); len(matches) > 1 {
		minutes, err := parseMinutes(matches[1], matches[2])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid duration '~"+matches[1]+matches[2]+"': "+err.Error())
		} else {
			result.Duration = minutes
		}
		input = durationRegex.ReplaceAllString(input, " ")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}

func parseMinutes(amount, unit string) (int, error) {
	n, err := strconv.Atoi(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid number")
	}
	if unit == "h" {
		n *= 60
	}
	if n < 1 || n > 480 {
		return 0, fmt.Errorf("duration must be between 1 minute and 8 hours")
	}
	return n, nil
}

// ParseEnergy converts user input to an energy level
func ParseEnergy(input string) (models.Energy, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "high", "h", "3":
		return models.EnergyHigh, nil
	case "medium", "med", "m", "2":
		return models.EnergyMedium, nil
	case "low", "l", "1":
		return models.EnergyLow, nil
	default:
		return "", fmt.Errorf("invalid energy %q, use high, medium or low", input)
	}
}
