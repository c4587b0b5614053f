package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/domain"
)

func TestSplitLongAllDayTenDaySpan(t *testing.T) {
	// Thu 2025-12-04 through Sat 2025-12-13: ten calendar days over two
	// weekends. Only the seven weekdays survive.
	events := []domain.CalendarEvent{{
		Start:    "2025-12-04 00:00",
		End:      "2025-12-14 00:00",
		Category: "Urlaub",
		Title:    "Vacation",
		Minutes:  14400,
		AllDay:   true,
	}}

	got := SplitLongAllDay(events)
	require.Len(t, got, 7)

	wantDates := []string{
		"2025-12-04", "2025-12-05",
		"2025-12-08", "2025-12-09", "2025-12-10", "2025-12-11", "2025-12-12",
	}
	for i, e := range got {
		assert.Equal(t, wantDates[i]+" 09:00", e.Start)
		assert.Equal(t, wantDates[i]+" 17:00", e.End)
		assert.Equal(t, 480, e.Minutes)
		assert.False(t, e.AllDay)
		assert.Equal(t, "Vacation", e.Title)
		assert.Equal(t, "Urlaub", e.Category)
	}

	// The input is untouched.
	assert.True(t, events[0].AllDay)
	assert.Equal(t, 14400, events[0].Minutes)
}

func TestSplitLongAllDayPassThrough(t *testing.T) {
	events := []domain.CalendarEvent{
		// Timed event, not all-day.
		{Start: "2025-12-08 09:00", End: "2025-12-08 10:00", Minutes: 60},
		// All-day but exactly one working day: kept as-is.
		{Start: "2025-12-08 00:00", End: "2025-12-09 00:00", Minutes: 480, AllDay: true},
	}

	got := SplitLongAllDay(events)
	require.Len(t, got, 2)
	assert.Equal(t, events[0], got[0])
	assert.Equal(t, events[1], got[1])
}

func TestSplitLongAllDayWeekendOnlySpan(t *testing.T) {
	// Sat through Sun: nothing survives the split.
	events := []domain.CalendarEvent{{
		Start:   "2025-12-06 00:00",
		End:     "2025-12-08 00:00",
		Minutes: 2880,
		AllDay:  true,
	}}

	assert.Empty(t, SplitLongAllDay(events))
}
