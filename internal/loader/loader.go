// Package loader reads the calendar JSON export and applies the pre-pipeline
// filters: category exclusions and the weeks-back window.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"tally/internal/domain"
)

// CalendarExport is the top-level structure of the calendar export file.
type CalendarExport struct {
	Events []domain.CalendarEvent `json:"events"`
}

// LoadCalendar reads calendar events from a JSON export file. Exports written
// on Windows often carry a UTF-8 BOM, which is stripped before decoding.
func LoadCalendar(path string) ([]domain.CalendarEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calendar export: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	var export CalendarExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parsing calendar export %s: %w", path, err)
	}
	return export.Events, nil
}

// FilterExcluded drops events whose raw category is in the exclusion set.
// The set is keyed by upper-cased raw category.
func FilterExcluded(events []domain.CalendarEvent, excluded map[string]bool) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, 0, len(events))
	for _, e := range events {
		if excluded[strings.ToUpper(e.Category)] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterByWeeks keeps events starting within the last weeksBack weeks of now.
func FilterByWeeks(events []domain.CalendarEvent, weeksBack int, now time.Time) []domain.CalendarEvent {
	cutoff := now.AddDate(0, 0, -7*weeksBack)
	out := make([]domain.CalendarEvent, 0, len(events))
	for _, e := range events {
		start, err := e.StartTime()
		if err != nil {
			continue
		}
		if !start.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// LoadAndFilter loads the export and applies the exclusion filter, plus the
// weeks-back filter when weeksBack > 0.
func LoadAndFilter(path string, excluded map[string]bool, weeksBack int, now time.Time) ([]domain.CalendarEvent, error) {
	events, err := LoadCalendar(path)
	if err != nil {
		return nil, err
	}
	events = FilterExcluded(events, excluded)
	if weeksBack > 0 {
		events = FilterByWeeks(events, weeksBack, now)
	}
	return events, nil
}
