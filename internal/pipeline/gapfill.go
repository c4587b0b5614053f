package pipeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"tally/internal/domain"
)

// DefaultTargetHours is the weekly tracked-hours target.
const DefaultTargetHours = 40.0

// allocationEpsilon bounds the acceptable rounding drift before the
// largest-entry correction kicks in.
const allocationEpsilon = 0.01

// CommentFunc produces a comment for a synthesized entry. Returning an empty
// string makes the gap filler use its static fallback.
type CommentFunc func(category domain.Category, client, weekContext string) string

// WeekShortfall reports a week left under target because its calendar had no
// genuinely empty slots to fill.
type WeekShortfall struct {
	Week         string
	CurrentHours float64
	TargetHours  float64
}

// HourRange is a contiguous run of free whole hours within the working window.
type HourRange struct {
	StartHour int
	EndHour   int
}

// Hours returns the length of the range.
func (r HourRange) Hours() int {
	return r.EndHour - r.StartHour
}

// FindEmptySlots returns the contiguous unoccupied hour ranges within the
// 9:00-17:00 window for one date, computed against the given event list.
func FindEmptySlots(events []domain.CalendarEvent, date string) []HourRange {
	var occupied [24]bool
	for _, e := range events {
		if !strings.HasPrefix(e.Start, date) {
			continue
		}
		start, err := e.StartTime()
		if err != nil {
			continue
		}
		end, err := e.EndTime()
		if err != nil {
			continue
		}
		startHour := start.Hour()
		endHour := end.Hour()
		if end.Minute() > 0 {
			endHour++
		}
		if !strings.HasPrefix(e.End, date) {
			endHour = WorkDayEndHour
		}
		for h := max(startHour, WorkDayStartHour); h < min(endHour, WorkDayEndHour); h++ {
			occupied[h] = true
		}
	}

	var empty []HourRange
	slotStart := -1
	for h := WorkDayStartHour; h < WorkDayEndHour; h++ {
		if !occupied[h] {
			if slotStart < 0 {
				slotStart = h
			}
			continue
		}
		if slotStart >= 0 {
			empty = append(empty, HourRange{StartHour: slotStart, EndHour: h})
			slotStart = -1
		}
	}
	if slotStart >= 0 {
		empty = append(empty, HourRange{StartHour: slotStart, EndHour: WorkDayEndHour})
	}
	return empty
}

// donorKey identifies one distribution bucket for synthesized hours.
type donorKey struct {
	category      domain.Category
	client        string
	opportunityID string
}

// donorDistribution computes each eligible (category, client, opportunity)
// combination's share of the week's donor hours. Only autofill-eligible,
// non-autofilled data rows donate. Keys come back in first-seen order so the
// allocation below is deterministic. With no eligible donors the fallback is
// a single preparation bucket at 100%.
func donorDistribution(entries []domain.TimeEntry, week string) ([]donorKey, map[donorKey]float64) {
	var keys []donorKey
	hours := make(map[donorKey]float64)
	var total float64

	for _, e := range entries {
		if e.WeekBeginning != week || e.IsAutofilled || !e.Category.Autofillable() {
			continue
		}
		k := donorKey{category: e.Category, client: e.Client, opportunityID: e.OpportunityID}
		if _, seen := hours[k]; !seen {
			keys = append(keys, k)
		}
		hours[k] += e.Hours
		total += e.Hours
	}

	if total == 0 {
		fallback := donorKey{category: domain.CategoryPrep}
		return []donorKey{fallback}, map[donorKey]float64{fallback: 1}
	}

	shares := make(map[donorKey]float64, len(hours))
	for k, h := range hours {
		shares[k] = h / total
	}
	return keys, shares
}

// FillGaps synthesizes entries for weeks under the target, constrained by
// genuinely empty calendar time.
//
// The entries argument is the aggregated table (summary rows included); the
// events argument is the unresolved event list, consulted to find empty
// slots so already-busy days are never padded. Weeks containing a Time Off
// entry are left alone. Weeks with no empty slots stay under target and are
// returned as shortfalls for the status output. When anything was generated,
// the table is rebuilt: data rows plus new rows, re-sorted, summary rows
// recomputed from scratch.
func FillGaps(events []domain.CalendarEvent, entries []domain.TimeEntry, targetHours float64, comment CommentFunc) ([]domain.TimeEntry, []WeekShortfall) {
	var newEntries []domain.TimeEntry
	var shortfalls []WeekShortfall

	for _, week := range uniqueWeeks(entries) {
		if weekHasTimeOff(entries, week) {
			continue
		}

		current := weekDataHours(entries, week)
		if current >= targetHours {
			continue
		}

		empty := weekEmptyHours(events, week)
		if empty == 0 {
			shortfalls = append(shortfalls, WeekShortfall{
				Week:         week,
				CurrentHours: current,
				TargetHours:  targetHours,
			})
			continue
		}

		toFill := math.Min(empty, targetHours-current)
		if toFill <= 0 {
			continue
		}
		newEntries = append(newEntries, synthesizeWeek(entries, week, toFill, comment)...)
	}

	if len(newEntries) == 0 {
		return entries, shortfalls
	}

	merged := make([]domain.TimeEntry, 0, len(entries)+len(newEntries))
	for _, e := range entries {
		if !e.IsWeekTotal() {
			merged = append(merged, e)
		}
	}
	merged = append(merged, newEntries...)
	merged = SortEntries(merged)
	return AddWeekTotals(merged, targetHours), shortfalls
}

// synthesizeWeek allocates toFill hours across the week's donor distribution
// and corrects rounding drift on the largest generated entry so the
// synthesized total matches toFill exactly.
func synthesizeWeek(entries []domain.TimeEntry, week string, toFill float64, comment CommentFunc) []domain.TimeEntry {
	keys, shares := donorDistribution(entries, week)
	weekContext := weekCommentContext(entries, week)

	var generated []domain.TimeEntry
	var allocated float64

	for _, k := range keys {
		if k.category.NeverAutofill() {
			continue
		}
		hours := RoundHours(toFill * shares[k])
		if hours <= 0 {
			continue
		}

		client, oppID := k.client, k.opportunityID
		if k.category.NoOpportunity() {
			client, oppID = "", ""
		}

		text := ""
		if comment != nil {
			text = comment(k.category, client, weekContext)
		}
		if text == "" {
			text = fmt.Sprintf("%s - autofilled work", k.category)
		}

		generated = append(generated, domain.TimeEntry{
			WeekBeginning: week,
			Category:      k.category,
			Client:        client,
			Hours:         hours,
			OpportunityID: oppID,
			Comments:      text,
			NeedsReview:   true,
			IsAutofilled:  true,
			Status:        domain.StatusNew,
		})
		allocated += hours
	}

	if len(generated) > 0 && math.Abs(allocated-toFill) > allocationEpsilon {
		largest := 0
		for i, e := range generated {
			if e.Hours > generated[largest].Hours {
				largest = i
			}
		}
		corrected := RoundHours(generated[largest].Hours + (toFill - allocated))
		if corrected < 0 {
			corrected = 0
		}
		generated[largest].Hours = corrected
	}

	return generated
}

func weekHasTimeOff(entries []domain.TimeEntry, week string) bool {
	for _, e := range entries {
		if e.WeekBeginning == week && e.Category == domain.CategoryTimeOff {
			return true
		}
	}
	return false
}

func weekDataHours(entries []domain.TimeEntry, week string) float64 {
	var total float64
	for _, e := range entries {
		if e.WeekBeginning == week && !e.IsWeekTotal() {
			total += e.Hours
		}
	}
	return total
}

// weekEmptyHours sums empty working-window hours across the week's weekdays.
func weekEmptyHours(events []domain.CalendarEvent, week string) float64 {
	weekStart, err := time.Parse(ISODate, week)
	if err != nil {
		return 0
	}
	var total int
	for offset := 0; offset < 7; offset++ {
		day := weekStart.AddDate(0, 0, offset)
		wd := day.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for _, r := range FindEmptySlots(events, day.Format(ISODate)) {
			total += r.Hours()
		}
	}
	return float64(total)
}

// weekCommentContext summarizes a week's activity for comment generation.
func weekCommentContext(entries []domain.TimeEntry, week string) string {
	var comments []string
	for _, e := range entries {
		if e.WeekBeginning != week || e.IsWeekTotal() || e.Comments == "" {
			continue
		}
		comments = append(comments, e.Comments)
		if len(comments) == 3 {
			break
		}
	}
	if len(comments) == 0 {
		return "General work"
	}
	return strings.Join(comments, "; ")
}
