package pipeline

import (
	"fmt"
	"time"

	"tally/internal/domain"
)

const (
	// WorkDayStartHour and WorkDayEndHour bound the working window used for
	// splitting long events and finding empty calendar slots.
	WorkDayStartHour = 9
	WorkDayEndHour   = 17

	fullWorkDayMinutes = (WorkDayEndHour - WorkDayStartHour) * 60
)

// SplitLongAllDay expands all-day events longer than a full working day into
// one synthetic 09:00-17:00 event per weekday in their date range. Weekend
// days are dropped entirely. All other events pass through unchanged.
//
// The input slice is never mutated; derived events are copies.
func SplitLongAllDay(events []domain.CalendarEvent) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, 0, len(events))
	for _, e := range events {
		if !e.AllDay || e.Minutes <= fullWorkDayMinutes {
			out = append(out, e)
			continue
		}
		out = append(out, splitEvent(e)...)
	}
	return out
}

func splitEvent(e domain.CalendarEvent) []domain.CalendarEvent {
	start, err := e.StartTime()
	if err != nil {
		return []domain.CalendarEvent{e}
	}
	end, err := e.EndTime()
	if err != nil {
		return []domain.CalendarEvent{e}
	}

	first := truncateToDay(start)
	last := truncateToDay(end)
	// All-day exports end at midnight of the following day; that midnight
	// does not open a new day.
	if end.Equal(last) {
		last = last.AddDate(0, 0, -1)
	}

	var slices []domain.CalendarEvent
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		wd := day.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		slice := e
		slice.Start = fmt.Sprintf("%s %02d:00", day.Format(ISODate), WorkDayStartHour)
		slice.End = fmt.Sprintf("%s %02d:00", day.Format(ISODate), WorkDayEndHour)
		slice.Minutes = fullWorkDayMinutes
		slice.AllDay = false
		slices = append(slices, slice)
	}
	return slices
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
