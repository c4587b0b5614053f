package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/domain"
)

const testWeek = "2025-12-07" // Sunday; weekdays are Dec 8-12

// busyWeekdays returns events fully occupying 9-17 on every weekday of testWeek.
func busyWeekdays() []domain.CalendarEvent {
	var events []domain.CalendarEvent
	for day := 8; day <= 12; day++ {
		events = append(events, domain.CalendarEvent{
			Start:   fmt.Sprintf("2025-12-%02d 09:00", day),
			End:     fmt.Sprintf("2025-12-%02d 17:00", day),
			Minutes: 480,
		})
	}
	return events
}

func TestFindEmptySlots(t *testing.T) {
	events := []domain.CalendarEvent{
		{Start: "2025-12-08 09:00", End: "2025-12-08 10:30", Minutes: 90},
		{Start: "2025-12-08 13:00", End: "2025-12-08 14:00", Minutes: 60},
		// Early event outside the window is clamped away.
		{Start: "2025-12-08 07:00", End: "2025-12-08 08:00", Minutes: 60},
		// Different date, ignored.
		{Start: "2025-12-09 09:00", End: "2025-12-09 17:00", Minutes: 480},
	}

	slots := FindEmptySlots(events, "2025-12-08")
	// 10:30 rounds the occupancy up through 11:00.
	require.Len(t, slots, 2)
	assert.Equal(t, HourRange{StartHour: 11, EndHour: 13}, slots[0])
	assert.Equal(t, HourRange{StartHour: 14, EndHour: 17}, slots[1])
	assert.Equal(t, 5, slots[0].Hours()+slots[1].Hours())
}

func TestFindEmptySlotsFreeDay(t *testing.T) {
	slots := FindEmptySlots(nil, "2025-12-08")
	require.Len(t, slots, 1)
	assert.Equal(t, HourRange{StartHour: 9, EndHour: 17}, slots[0])
}

func TestFillGapsExactness(t *testing.T) {
	// Monday is busy 9-12; the rest of the week is free. 3h tracked of 40.
	events := []domain.CalendarEvent{
		{Start: "2025-12-08 09:00", End: "2025-12-08 12:00", Minutes: 180},
	}
	data := []domain.TimeEntry{
		entry(testWeek, domain.CategoryInternalMeeting, "", 3),
	}
	table := AddWeekTotals(SortEntries(data), 40)

	filled, shortfalls := FillGaps(events, table, 40, nil)
	assert.Empty(t, shortfalls)

	var sum float64
	for _, e := range filled {
		if e.WeekBeginning == testWeek && !e.IsWeekTotal() {
			assert.GreaterOrEqual(t, e.Hours, 0.0)
			sum += e.Hours
		}
	}
	// 5 + 4*8 = 37 empty hours; gap is 37, so the week lands exactly on 40.
	assert.InDelta(t, 40.0, sum, 0.01)

	// The synthesized entry inherits the sole donor and is flagged.
	var autofilled []domain.TimeEntry
	for _, e := range filled {
		if e.IsAutofilled {
			autofilled = append(autofilled, e)
		}
	}
	require.Len(t, autofilled, 1)
	assert.Equal(t, domain.CategoryInternalMeeting, autofilled[0].Category)
	assert.True(t, autofilled[0].NeedsReview)
	assert.Equal(t, domain.StatusNew, autofilled[0].Status)
	assert.Equal(t, "Internal Meeting - autofilled work", autofilled[0].Comments)
}

func TestFillGapsLargestEntryCorrection(t *testing.T) {
	events := []domain.CalendarEvent{
		{Start: "2025-12-08 09:00", End: "2025-12-08 12:00", Minutes: 180},
	}
	data := []domain.TimeEntry{
		entry(testWeek, domain.CategoryInternalMeeting, "Acme", 1),
		entry(testWeek, domain.CategoryPrep, "Beta", 1),
		entry(testWeek, domain.CategoryInternalMeeting, "", 1),
		entry(testWeek, domain.CategoryCustomerDemo, "Acme", 32),
	}
	table := AddWeekTotals(SortEntries(data), 40)

	// Gap is 5h across three equal donors: each rounds to 1.5 leaving 0.5
	// drift, absorbed by the largest synthesized entry.
	filled, _ := FillGaps(events, table, 40, nil)

	var generated []domain.TimeEntry
	var sum float64
	for _, e := range filled {
		if e.IsAutofilled {
			generated = append(generated, e)
			sum = sum + e.Hours
		}
	}
	require.Len(t, generated, 3)
	assert.InDelta(t, 5.0, sum, 0.01)
	for _, e := range generated {
		assert.GreaterOrEqual(t, e.Hours, 0.0)
		assert.Equal(t, 0.0, e.Hours*2-float64(int(e.Hours*2)), "hours stay on the half-hour grid")
	}
}

func TestFillGapsSkipsTimeOffWeeks(t *testing.T) {
	data := []domain.TimeEntry{
		entry(testWeek, domain.CategoryTimeOff, "", 8),
		entry(testWeek, domain.CategoryInternalMeeting, "", 10),
	}
	table := AddWeekTotals(SortEntries(data), 40)

	filled, shortfalls := FillGaps(nil, table, 40, nil)
	assert.Equal(t, table, filled)
	assert.Empty(t, shortfalls)
}

func TestFillGapsReportsZeroEmptyWeeks(t *testing.T) {
	data := []domain.TimeEntry{
		entry(testWeek, domain.CategoryInternalMeeting, "", 30),
	}
	table := AddWeekTotals(SortEntries(data), 40)

	filled, shortfalls := FillGaps(busyWeekdays(), table, 40, nil)
	assert.Equal(t, table, filled, "a week without empty slots stays under target")
	require.Len(t, shortfalls, 1)
	assert.Equal(t, testWeek, shortfalls[0].Week)
	assert.Equal(t, 30.0, shortfalls[0].CurrentHours)
	assert.Equal(t, 40.0, shortfalls[0].TargetHours)
}

func TestFillGapsDonorFallback(t *testing.T) {
	// Only a never-autofill row exists, so the fallback preparation bucket
	// takes the whole gap and no customer-facing entry is fabricated.
	data := []domain.TimeEntry{
		entry(testWeek, domain.CategoryCustomerDemo, "Acme", 10),
	}
	table := AddWeekTotals(SortEntries(data), 40)

	filled, _ := FillGaps(nil, table, 40, nil)

	var generated []domain.TimeEntry
	for _, e := range filled {
		if e.IsAutofilled {
			generated = append(generated, e)
			assert.False(t, e.Category.NeverAutofill())
		}
	}
	require.Len(t, generated, 1)
	assert.Equal(t, domain.CategoryPrep, generated[0].Category)
	assert.Equal(t, 30.0, generated[0].Hours)
	assert.Empty(t, generated[0].Client)
}

func TestFillGapsClearsNoOpportunityFields(t *testing.T) {
	data := []domain.TimeEntry{
		// A donor key carrying a client that must not survive into a
		// no-opportunity synthesized entry.
		{WeekBeginning: testWeek, Category: domain.CategoryAdmin, Client: "Acme", OpportunityID: "OP-1", Hours: 4, Status: domain.StatusNew},
	}
	table := AddWeekTotals(SortEntries(data), 40)

	filled, _ := FillGaps(nil, table, 40, nil)
	for _, e := range filled {
		if e.IsAutofilled {
			assert.Empty(t, e.Client)
			assert.Empty(t, e.OpportunityID)
		}
	}
}

func TestFillGapsRebuildsWeekTotals(t *testing.T) {
	data := []domain.TimeEntry{
		entry(testWeek, domain.CategoryInternalMeeting, "", 3),
	}
	table := AddWeekTotals(SortEntries(data), 40)

	filled, _ := FillGaps(nil, table, 40, nil)

	var totals []domain.TimeEntry
	var dataSum float64
	for _, e := range filled {
		if e.IsWeekTotal() {
			totals = append(totals, e)
		} else {
			dataSum += e.Hours
		}
	}
	require.Len(t, totals, 1)
	assert.InDelta(t, dataSum, totals[0].Hours, 0.01)
	assert.Equal(t, "Total: 40h / 40h = 100%", totals[0].Comments)
}

func TestFillGapsUsesCommentGenerator(t *testing.T) {
	data := []domain.TimeEntry{
		entry(testWeek, domain.CategoryInternalMeeting, "", 3),
	}
	table := AddWeekTotals(SortEntries(data), 40)

	called := false
	filled, _ := FillGaps(nil, table, 40, func(cat domain.Category, client, weekContext string) string {
		called = true
		assert.Equal(t, domain.CategoryInternalMeeting, cat)
		return "Planning and coordination"
	})

	require.True(t, called)
	for _, e := range filled {
		if e.IsAutofilled {
			assert.Equal(t, "Planning and coordination", e.Comments)
		}
	}
}

func TestFillGapsLeavesFullWeeksAlone(t *testing.T) {
	data := []domain.TimeEntry{
		entry(testWeek, domain.CategoryInternalMeeting, "", 40),
	}
	table := AddWeekTotals(SortEntries(data), 40)

	filled, shortfalls := FillGaps(nil, table, 40, nil)
	assert.Equal(t, table, filled)
	assert.Empty(t, shortfalls)
}
