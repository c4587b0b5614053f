package testutil

import (
	"tally/internal/domain"
)

// CalendarEvent options
type EventOption func(*domain.CalendarEvent)

func WithAllDay() EventOption {
	return func(e *domain.CalendarEvent) {
		e.AllDay = true
	}
}

func WithMinutes(m int) EventOption {
	return func(e *domain.CalendarEvent) {
		e.Minutes = m
	}
}

func WithEnd(end string) EventOption {
	return func(e *domain.CalendarEvent) {
		e.End = end
	}
}

func WithExternalDomains(domains string) EventOption {
	return func(e *domain.CalendarEvent) {
		e.ExternalDomains = domains
	}
}

// NewTestEvent creates a one-hour calendar event starting at the given time.
func NewTestEvent(start, category, title string, opts ...EventOption) domain.CalendarEvent {
	e := domain.CalendarEvent{
		Start:    start,
		End:      start,
		Category: category,
		Title:    title,
		Minutes:  60,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// TimeEntry options
type EntryOption func(*domain.TimeEntry)

func WithClient(client string) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Client = client
	}
}

func WithOpportunityID(id string) EntryOption {
	return func(e *domain.TimeEntry) {
		e.OpportunityID = id
	}
}

func WithComments(c string) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Comments = c
	}
}

func WithStatus(s domain.EntryStatus) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Status = s
	}
}

func WithAutofilled() EntryOption {
	return func(e *domain.TimeEntry) {
		e.IsAutofilled = true
	}
}

// NewTestEntry creates a time entry for the given week with status NEW.
func NewTestEntry(week string, category domain.Category, hours float64, opts ...EntryOption) domain.TimeEntry {
	e := domain.TimeEntry{
		WeekBeginning: week,
		Category:      category,
		Hours:         hours,
		Status:        domain.StatusNew,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewWeekTotalEntry creates the summary row for a week.
func NewWeekTotalEntry(week string, total float64) domain.TimeEntry {
	return domain.TimeEntry{
		WeekBeginning: week,
		Category:      domain.WeekTotalCategory,
		Hours:         total,
		Status:        domain.StatusWeekTotal,
	}
}
