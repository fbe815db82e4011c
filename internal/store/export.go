package store

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/balkashynov/tideflow/internal/models"
)

// Export writes every bucket as a JSON object keyed by date
func Export(s Store, w io.Writer) error {
	buckets, err := s.Snapshot()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(buckets); err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	return nil
}

// Import reads a JSON export and replaces the matching buckets in one
// step. It returns the number of tasks written. Days absent from the input
// are left alone; on any error nothing is written.
func Import(s Store, r io.Reader) (int, error) {
	var buckets models.DayBuckets
	if err := json.NewDecoder(r).Decode(&buckets); err != nil {
		return 0, fmt.Errorf("failed to decode tasks: %w", err)
	}

	total := 0
	for _, date := range sortedKeys(buckets) {
		if err := CheckDate(date); err != nil {
			return 0, err
		}
		for _, t := range buckets[date] {
			if err := ValidateTask(date, t); err != nil {
				return 0, err
			}
		}
		total += len(buckets[date])
	}

	if err := s.PutAll(buckets); err != nil {
		return 0, fmt.Errorf("failed to import tasks: %w", err)
	}
	return total, nil
}

func sortedKeys(buckets models.DayBuckets) []string {
	keys := make([]string, 0, len(buckets))
	for date := range buckets {
		keys = append(keys, date)
	}
	sort.Strings(keys)
	return keys
}
