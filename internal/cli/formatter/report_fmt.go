package formatter

import (
	"strings"

	"tally/internal/domain"
	"tally/internal/report"
)

// FormatWeeklyHours renders the weekly hours pivot with its TOTAL row.
func FormatWeeklyHours(rows []report.WeeklyRow) string {
	headers := append([]string{"Week of", "Total Hours"}, report.ManagerCategories...)

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, 0, len(headers))
		week := r.Week
		total := domain.FormatHours(r.Total)
		if r.Week == "TOTAL" {
			week = Bold(week)
			total = Bold(total)
		}
		cells = append(cells, week, total)
		for _, bucket := range report.ManagerCategories {
			h := r.Hours[bucket]
			if h == 0 {
				cells = append(cells, Dim("-"))
				continue
			}
			cells = append(cells, domain.FormatHours(h))
		}
		table = append(table, cells)
	}

	var b strings.Builder
	b.WriteString(Header("Weekly hours"))
	b.WriteString("\n\n")
	b.WriteString(RenderTable(headers, table))
	return b.String()
}

// FormatOpportunities renders the opportunity activity table.
func FormatOpportunities(opps []report.Opportunity) string {
	var b strings.Builder
	b.WriteString(Header("Opportunities"))
	b.WriteString("\n\n")

	if len(opps) == 0 {
		b.WriteString(Dim("No opportunity activity in range."))
		b.WriteString("\n")
		return b.String()
	}

	headers := []string{"Opp ID", "Account", "Opportunity", "Hours", "Last Activity"}
	rows := make([][]string, 0, len(opps)+1)
	var total float64
	for _, o := range opps {
		total += o.Hours
		rows = append(rows, []string{
			o.Code,
			o.Company,
			o.Description,
			domain.FormatHours(o.Hours),
			o.LastActivity,
		})
	}
	rows = append(rows, []string{Bold("TOTAL"), "", "", Bold(domain.FormatHours(total)), ""})

	b.WriteString(RenderTable(headers, rows))
	return b.String()
}
