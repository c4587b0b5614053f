package pipeline

import (
	"time"

	"tally/internal/domain"
)

// CategoryLookup maps an event's raw category to a normalized category.
// Events without a mapping are excluded from the pipeline entirely.
type CategoryLookup func(domain.CalendarEvent) (domain.Category, bool)

// hourSlot is the unit of overlap contest: one wall-clock hour on one date.
type hourSlot struct {
	date string
	hour int
}

type slotCandidate struct {
	idx      int
	priority int
}

// ResolveOverlaps awards every contested hour slot to exactly one event.
//
// Each mapped event claims the whole-hour slots between its hour-truncated
// start and its end. Per slot, the candidate with the highest category
// priority wins; ties go to the event appearing first in the input. Every
// surviving event is re-emitted with minutes equal to 60 times the slots it
// won, which makes slot count the single source of truth for duration after
// resolution: an event contested on part of its span comes out truncated.
// Events that win nothing, including zero-duration events, are removed.
func ResolveOverlaps(events []domain.CalendarEvent, lookup CategoryLookup) []domain.CalendarEvent {
	slots := make(map[hourSlot][]slotCandidate)

	for idx, e := range events {
		cat, ok := lookup(e)
		if !ok {
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

		priority := cat.Priority()
		for cur := start.Truncate(time.Hour); cur.Before(end); cur = cur.Add(time.Hour) {
			slot := hourSlot{date: cur.Format(ISODate), hour: cur.Hour()}
			slots[slot] = append(slots[slot], slotCandidate{idx: idx, priority: priority})
		}
	}

	wins := make(map[int]int)
	for _, candidates := range slots {
		winner := candidates[0]
		for _, c := range candidates[1:] {
			if c.priority > winner.priority {
				winner = c
			}
		}
		wins[winner.idx]++
	}

	out := make([]domain.CalendarEvent, 0, len(events))
	for idx, e := range events {
		won := wins[idx]
		if won == 0 {
			continue
		}
		kept := e
		kept.Minutes = won * 60
		out = append(out, kept)
	}
	return out
}
