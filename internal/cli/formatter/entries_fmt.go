package formatter

import (
	"fmt"
	"strings"

	"tally/internal/domain"
	"tally/internal/pipeline"
	"tally/internal/store"
	"tally/internal/upload"
)

// FormatEntries renders the normalized entry table. Summary rows are dimmed
// and autofilled rows are marked.
func FormatEntries(entries []domain.TimeEntry) string {
	headers := []string{"Week", "Category", "Client", "Hours", "Opp ID", "Comments", "Status"}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		comments := e.Comments
		if len(comments) > 48 {
			comments = comments[:45] + "..."
		}

		if e.IsWeekTotal() {
			rows = append(rows, []string{
				Dim(e.WeekBeginning),
				Dim(string(e.Category)),
				"",
				Dim(domain.FormatHours(e.Hours)),
				"",
				Dim(comments),
				Dim(string(e.Status)),
			})
			continue
		}

		category := string(e.Category)
		if e.IsAutofilled {
			category = StyleBlue.Render(category + " *")
		}
		if e.NeedsReview {
			category = StyleYellow.Render(string(e.Category) + " ?")
		}

		rows = append(rows, []string{
			e.WeekBeginning,
			category,
			e.Client,
			domain.FormatHours(e.Hours),
			e.OpportunityID,
			comments,
			StatusIndicator(e.Status),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(Dim("* autofilled   ? opportunity needs review"))
	b.WriteString("\n")
	return b.String()
}

// FormatWeekSummaries renders the status view: one line per stored week
// with a progress bar against the weekly target.
func FormatWeekSummaries(weeks []store.WeekSummary, targetHours float64) string {
	if len(weeks) == 0 {
		return Dim("No entries stored. Run preview first.") + "\n"
	}
	if targetHours <= 0 {
		targetHours = pipeline.DefaultTargetHours
	}

	var b strings.Builder
	b.WriteString(Header("Weeks in preview"))
	b.WriteString("\n\n")

	for _, w := range weeks {
		status := StatusIndicator(domain.StatusNew)
		switch {
		case w.Errors > 0:
			status = StatusIndicator(domain.StatusError)
		case w.New == 0 && w.Uploaded > 0:
			status = StatusIndicator(domain.StatusUploaded)
		}

		b.WriteString(fmt.Sprintf("%s  %2d entries  %5sh  %s  %s\n",
			Bold(w.Week),
			w.Rows,
			domain.FormatHours(w.Hours),
			RenderProgress(w.Hours/targetHours, 20),
			status,
		))
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Total weeks: %d", len(weeks))))
	b.WriteString("\n")
	return b.String()
}

// FormatShortfalls lists the weeks that could not be filled to target.
func FormatShortfalls(shortfalls []pipeline.WeekShortfall) string {
	if len(shortfalls) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleYellow.Render("Weeks below target:"))
	b.WriteString("\n")
	for _, s := range shortfalls {
		b.WriteString(fmt.Sprintf("  %s  %sh of %sh\n",
			s.Week,
			domain.FormatHours(s.CurrentHours),
			domain.FormatHours(s.TargetHours),
		))
	}
	return b.String()
}

// FormatWeekResult renders the per-entry outcome of one uploaded week.
func FormatWeekResult(r *upload.WeekResult) string {
	var b strings.Builder
	b.WriteString(Bold(r.Week))
	b.WriteString("\n")

	for _, er := range r.Results {
		mark := StyleGreen.Render("✓")
		detail := ""
		if er.Err != nil {
			mark = StyleRed.Render("✗")
			detail = "  " + Dim(er.Err.Error())
		}
		b.WriteString(fmt.Sprintf("  %s %s: %sh%s\n",
			mark, er.Category, domain.FormatHours(er.Hours), detail))
	}

	summary := fmt.Sprintf("  %d uploaded, %d failed", r.Uploaded, r.Failed)
	if r.Skipped > 0 {
		summary += fmt.Sprintf(", %d already uploaded", r.Skipped)
	}
	b.WriteString(Dim(summary))
	b.WriteString("\n")
	return b.String()
}
