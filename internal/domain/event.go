package domain

import (
	"fmt"
	"time"
)

// EventTimeLayout is the timestamp layout used by the calendar export.
// Exports sometimes append seconds; parsing truncates to this layout first.
const EventTimeLayout = "2006-01-02 15:04"

// CalendarEvent is a single event from the calendar export. Events are
// immutable once loaded; pipeline stages that need to adjust one produce a
// copy instead.
type CalendarEvent struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	Category        string `json:"category"`
	Title           string `json:"title"`
	Minutes         int    `json:"minutes"`
	AllDay          bool   `json:"all_day"`
	ExternalDomains string `json:"external_domains"`
}

// StartTime parses the event start timestamp.
func (e CalendarEvent) StartTime() (time.Time, error) {
	return parseEventTime(e.Start)
}

// EndTime parses the event end timestamp.
func (e CalendarEvent) EndTime() (time.Time, error) {
	return parseEventTime(e.End)
}

// StartDate returns the YYYY-MM-DD portion of the start timestamp.
func (e CalendarEvent) StartDate() string {
	if len(e.Start) < 10 {
		return e.Start
	}
	return e.Start[:10]
}

func parseEventTime(s string) (time.Time, error) {
	if len(s) > len(EventTimeLayout) {
		s = s[:len(EventTimeLayout)]
	}
	t, err := time.Parse(EventTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing event timestamp %q: %w", s, err)
	}
	return t, nil
}
