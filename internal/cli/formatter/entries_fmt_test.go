package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tally/internal/domain"
	"tally/internal/pipeline"
	"tally/internal/report"
	"tally/internal/store"
	"tally/internal/testutil"
	"tally/internal/upload"
)

func TestFormatEntries(t *testing.T) {
	entries := []domain.TimeEntry{
		testutil.NewTestEntry("2025-12-07", domain.CategoryCustomerDemo, 2,
			testutil.WithClient("Michelin"), testutil.WithOpportunityID("OP-1001"),
			testutil.WithComments("Fleet demo")),
		testutil.NewTestEntry("2025-12-07", domain.CategoryPrep, 3, testutil.WithAutofilled()),
		testutil.NewWeekTotalEntry("2025-12-07", 5),
	}

	out := FormatEntries(entries)
	assert.Contains(t, out, "Michelin")
	assert.Contains(t, out, "OP-1001")
	assert.Contains(t, out, "Fleet demo")
	assert.Contains(t, out, ">>> WEEK TOTAL")
	assert.Contains(t, out, "* autofilled")
}

func TestFormatEntriesTruncatesLongComments(t *testing.T) {
	long := "a comment that is much longer than the display column allows for"
	entries := []domain.TimeEntry{
		testutil.NewTestEntry("2025-12-07", domain.CategoryAdmin, 1, testutil.WithComments(long)),
	}

	out := FormatEntries(entries)
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "...")
}

func TestFormatWeekSummaries(t *testing.T) {
	weeks := []store.WeekSummary{
		{Week: "2025-12-07", Rows: 8, Hours: 40, Uploaded: 8},
		{Week: "2025-12-14", Rows: 5, Hours: 32.5, New: 5},
		{Week: "2025-12-21", Rows: 4, Hours: 20, New: 3, Errors: 1},
	}

	out := FormatWeekSummaries(weeks, 40)
	assert.Contains(t, out, "2025-12-07")
	assert.Contains(t, out, "UPLOADED")
	assert.Contains(t, out, "32.5h")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "Total weeks: 3")
}

func TestFormatWeekSummariesEmpty(t *testing.T) {
	out := FormatWeekSummaries(nil, 40)
	assert.Contains(t, out, "Run preview first")
}

func TestFormatShortfalls(t *testing.T) {
	out := FormatShortfalls([]pipeline.WeekShortfall{
		{Week: "2025-12-07", CurrentHours: 36.5, TargetHours: 40},
	})
	assert.Contains(t, out, "2025-12-07")
	assert.Contains(t, out, "36.5h of 40h")

	assert.Empty(t, FormatShortfalls(nil))
}

func TestFormatWeekResult(t *testing.T) {
	r := &upload.WeekResult{
		Week:     "2025-12-07",
		Uploaded: 1,
		Failed:   1,
		Skipped:  2,
		Results: []upload.EntryResult{
			{Category: domain.CategoryCustomerDemo, Hours: 2},
			{Category: domain.CategoryPrep, Hours: 3, Err: assert.AnError},
		},
	}

	out := FormatWeekResult(r)
	assert.Contains(t, out, "2025-12-07")
	assert.Contains(t, out, "Customer - Demo/ Presentation: 2h")
	assert.Contains(t, out, "1 uploaded, 1 failed, 2 already uploaded")
}

func TestFormatWeeklyHours(t *testing.T) {
	rows := []report.WeeklyRow{
		{Week: "2025-12-07", Total: 10, Hours: map[string]float64{"Customer Demo": 6, "Admin": 4}},
		{Week: "TOTAL", Total: 10, Hours: map[string]float64{"Customer Demo": 6, "Admin": 4}},
	}

	out := FormatWeeklyHours(rows)
	assert.Contains(t, out, "WEEKLY HOURS")
	assert.Contains(t, out, "Customer Demo")
	assert.Contains(t, out, "2025-12-07")
	assert.Contains(t, out, "TOTAL")
}

func TestFormatOpportunities(t *testing.T) {
	opps := []report.Opportunity{
		{Code: "OP-1001", Company: "Michelin", Description: "Fleet rollout", Hours: 6, LastActivity: "2025-12-14"},
	}

	out := FormatOpportunities(opps)
	assert.Contains(t, out, "OP-1001")
	assert.Contains(t, out, "Michelin")
	assert.Contains(t, out, "TOTAL")

	assert.Contains(t, FormatOpportunities(nil), "No opportunity activity")
}

func TestRenderTableAlignment(t *testing.T) {
	out := RenderTable([]string{"A", "Long header"}, [][]string{{"x", "y"}, {"long cell", "z"}})
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "long cell")
}

func TestRenderProgressBounds(t *testing.T) {
	assert.Contains(t, RenderProgress(1.5, 10), "100%")
	assert.Contains(t, RenderProgress(-0.2, 10), "  0%")
	assert.Contains(t, RenderProgress(0.5, 10), " 50%")
}
