package pipeline

import (
	"fmt"
	"sort"

	"tally/internal/domain"
)

// SortEntries returns a new slice ordered by week, then category, then
// client. The sort is stable, so entries identical on all three keys keep
// their input order.
func SortEntries(entries []domain.TimeEntry) []domain.TimeEntry {
	out := make([]domain.TimeEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.WeekBeginning != b.WeekBeginning {
			return a.WeekBeginning < b.WeekBeginning
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Client < b.Client
	})
	return out
}

// AddWeekTotals appends one summary row per week, with hours equal to the
// sum of that week's data rows. Each source event stays its own row; the
// summary rows are the only synthetic output of this stage.
func AddWeekTotals(entries []domain.TimeEntry, targetHours float64) []domain.TimeEntry {
	weeks := uniqueWeeks(entries)

	out := make([]domain.TimeEntry, 0, len(entries)+len(weeks))
	for _, week := range weeks {
		var total float64
		for _, e := range entries {
			if e.WeekBeginning != week || e.IsWeekTotal() {
				continue
			}
			out = append(out, e)
			total += e.Hours
		}
		out = append(out, domain.TimeEntry{
			WeekBeginning: week,
			Category:      domain.WeekTotalCategory,
			Hours:         total,
			Comments:      WeekTotalComment(total, targetHours),
			Status:        domain.StatusWeekTotal,
		})
	}
	return out
}

// WeekTotalComment renders the summary comment, e.g.
// "Total: 38.5h / 40h = 96%". The percentage is rounded to an integer.
func WeekTotalComment(total, target float64) string {
	return fmt.Sprintf("Total: %sh / %sh = %.0f%%",
		domain.FormatHours(total), domain.FormatHours(target), total/target*100)
}

// uniqueWeeks returns the distinct week-beginning dates in appearance order.
func uniqueWeeks(entries []domain.TimeEntry) []string {
	seen := make(map[string]bool)
	var weeks []string
	for _, e := range entries {
		if seen[e.WeekBeginning] {
			continue
		}
		seen[e.WeekBeginning] = true
		weeks = append(weeks, e.WeekBeginning)
	}
	return weeks
}
