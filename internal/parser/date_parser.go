package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/tideflow/internal/models"
)

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex  = regexp.MustCompile(`^(?:in\s+)?(\d+)\s*(d|day|days|w|week|weeks)$`)
)

// ParseDate resolves a day expression relative to now into a bucket key
// Supported formats:
// - today, tomorrow
// - weekday names (e.g., "friday", "fri") - next occurrence after today
// - X days / X weeks (e.g., "3 days", "in 2 weeks", "5d")
// - dd/mm/yyyy (e.g., "15/12/2024")
// - yyyy-mm-dd (e.g., "2024-12-15")
func ParseDate(input string, now time.Time) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", fmt.Errorf("empty date")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "today":
		return models.DateKey(today), nil
	case "tomorrow":
		return models.DateKey(today.AddDate(0, 0, 1)), nil
	}

	if models.ValidDateKey(input) {
		return input, nil
	}

	if key, err := parseSlashDate(input); err == nil {
		return key, nil
	}

	if key, err := parseRelativeDays(input, today); err == nil {
		return key, nil
	}

	if weekday, ok := parseWeekday(input); ok {
		ahead := (int(weekday) - int(today.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return models.DateKey(today.AddDate(0, 0, ahead)), nil
	}

	return "", fmt.Errorf("invalid date %q. Use: today, tomorrow, a weekday, X days, X weeks, dd/mm/yyyy or yyyy-mm-dd", input)
}

// parseSlashDate parses dd/mm/yyyy format
func parseSlashDate(input string) (string, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return "", fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return "", fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// Check if date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return "", fmt.Errorf("invalid date")
	}

	return models.DateKey(date), nil
}

// parseRelativeDays parses "3 days", "2 weeks", "5d"
func parseRelativeDays(input string, today time.Time) (string, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return "", fmt.Errorf("invalid relative format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return "", fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "w", "week", "weeks":
		if amount < 1 || amount > 52 { // Max 1 year in weeks
			return "", fmt.Errorf("weeks must be between 1 and 52")
		}
		amount *= 7
	default:
		if amount < 1 || amount > 365 { // Max 1 year in days
			return "", fmt.Errorf("days must be between 1 and 365")
		}
	}

	return models.DateKey(today.AddDate(0, 0, amount)), nil
}

func parseWeekday(input string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if input == name || input == name[:3] {
			return d, true
		}
	}
	return 0, false
}
