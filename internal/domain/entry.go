package domain

import (
	"fmt"
	"strings"
)

// EntryStatus tracks an entry through the preview/upload lifecycle.
type EntryStatus string

const (
	// StatusNew is the only status the pipeline itself produces.
	StatusNew EntryStatus = "NEW"
	// StatusWeekTotal marks per-week summary rows, which are never uploaded.
	StatusWeekTotal EntryStatus = "---"
	// StatusUploaded and StatusError are set by the upload step.
	StatusUploaded EntryStatus = "UPLOADED"
	StatusError    EntryStatus = "ERROR"
)

// TimeEntry is one row of the normalized timesheet table. Field order is the
// downstream contract: the columns below must be emitted exactly in this
// order for the spreadsheet and upload consumers.
type TimeEntry struct {
	WeekBeginning   string      // Sunday, YYYY-MM-DD
	Category        Category
	Client          string
	Hours           float64 // non-negative, multiple of 0.5
	OpportunityID   string
	Comments        string
	ExternalDomains string
	NeedsReview     bool
	IsAutofilled    bool
	Status          EntryStatus
}

// EntryColumns is the canonical column order of the TimeEntry table.
var EntryColumns = []string{
	"week_beginning",
	"category",
	"client",
	"hours",
	"opportunity_id",
	"comments",
	"external_domains",
	"needs_review",
	"is_autofilled",
	"status",
}

// IsWeekTotal reports whether the entry is a per-week summary row.
func (e TimeEntry) IsWeekTotal() bool {
	return e.Category == WeekTotalCategory
}

// Values returns the entry's fields as strings in contract column order.
func (e TimeEntry) Values() []string {
	return []string{
		e.WeekBeginning,
		string(e.Category),
		e.Client,
		FormatHours(e.Hours),
		e.OpportunityID,
		e.Comments,
		e.ExternalDomains,
		fmt.Sprintf("%t", e.NeedsReview),
		fmt.Sprintf("%t", e.IsAutofilled),
		string(e.Status),
	}
}

// FormatHours renders an hour value without a trailing ".0" on whole hours.
func FormatHours(h float64) string {
	s := fmt.Sprintf("%.1f", h)
	return strings.TrimSuffix(s, ".0")
}

// ProjectCode is one normalized row of the project/opportunity registry.
// CompanyLower and DescriptionLower are precomputed lookup keys.
type ProjectCode struct {
	Company          string
	Description      string
	Code             string
	CompanyLower     string
	DescriptionLower string
}
