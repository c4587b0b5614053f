package report

import (
	"sort"
	"time"

	"tally/internal/domain"
	"tally/internal/pipeline"
)

// managerCategoryMap folds the detailed categories into the simplified
// buckets managers track.
var managerCategoryMap = map[domain.Category]string{
	domain.CategoryTravel:          "Travel",
	domain.CategoryPrep:            "Prep for Customer",
	domain.CategoryCustomerDemo:    "Customer Demo",
	domain.CategoryDiscovery:       "Customer Demo",
	domain.CategoryPOC:             "Customer Demo",
	domain.CategoryInternalMeeting: "Internal Meeting",
	domain.CategoryRFx:             "RFP/RFI/RFQ",
	domain.CategoryAdmin:           "Admin",
	domain.CategorySupport:         "Admin",
	domain.CategoryTraining:        "Training",
	domain.CategoryTimeOff:         "Time Off",
}

// ManagerCategories is the fixed bucket order of the weekly hours table.
var ManagerCategories = []string{
	"Travel",
	"Prep for Customer",
	"Customer Demo",
	"Internal Meeting",
	"RFP/RFI/RFQ",
	"Admin",
	"Training",
	"Time Off",
}

// WeeklyRow is one row of the weekly hours table. The final row uses
// Week == "TOTAL" and sums the whole table.
type WeeklyRow struct {
	Week  string
	Total float64
	Hours map[string]float64 // keyed by manager category
}

// Opportunity is one row of the opportunity activity table.
type Opportunity struct {
	Code         string
	Company      string
	Description  string
	Hours        float64
	LastActivity string // most recent week with hours
}

// LastWeeks returns the week-beginning dates of the last n weeks ending at
// the week containing now, oldest first.
func LastWeeks(n int, now time.Time) []string {
	current := now.AddDate(0, 0, -int(now.Weekday()))
	weeks := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		weeks = append(weeks, current.AddDate(0, 0, -7*i).Format(pipeline.ISODate))
	}
	return weeks
}

// WeeklyHours pivots entries into per-week hours by manager category for
// the last weeksBack weeks. Weeks without entries are omitted; a final
// TOTAL row sums every column.
func WeeklyHours(entries []domain.TimeEntry, weeksBack int, now time.Time) []WeeklyRow {
	inRange := make(map[string]bool)
	for _, w := range LastWeeks(weeksBack, now) {
		inRange[w] = true
	}

	byWeek := make(map[string]map[string]float64)
	for _, e := range entries {
		if e.IsWeekTotal() || !inRange[e.WeekBeginning] {
			continue
		}
		bucket, ok := managerCategoryMap[e.Category]
		if !ok {
			continue
		}
		if byWeek[e.WeekBeginning] == nil {
			byWeek[e.WeekBeginning] = make(map[string]float64)
		}
		byWeek[e.WeekBeginning][bucket] += e.Hours
	}

	weeks := make([]string, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)

	rows := make([]WeeklyRow, 0, len(weeks)+1)
	total := WeeklyRow{Week: "TOTAL", Hours: make(map[string]float64)}
	for _, w := range weeks {
		row := WeeklyRow{Week: w, Hours: byWeek[w]}
		for _, bucket := range ManagerCategories {
			row.Total += row.Hours[bucket]
			total.Hours[bucket] += row.Hours[bucket]
		}
		total.Total += row.Total
		rows = append(rows, row)
	}
	return append(rows, total)
}

// Opportunities aggregates hours per opportunity code over the last
// weeksBack weeks, joined against the registry, sorted by hours descending.
// Codes with no registry row still appear, with only the code filled in.
func Opportunities(entries []domain.TimeEntry, codes []domain.ProjectCode, weeksBack int, now time.Time) []Opportunity {
	inRange := make(map[string]bool)
	for _, w := range LastWeeks(weeksBack, now) {
		inRange[w] = true
	}

	type agg struct {
		hours    float64
		lastWeek string
	}
	byCode := make(map[string]*agg)
	for _, e := range entries {
		if e.IsWeekTotal() || e.OpportunityID == "" || !inRange[e.WeekBeginning] {
			continue
		}
		a := byCode[e.OpportunityID]
		if a == nil {
			a = &agg{}
			byCode[e.OpportunityID] = a
		}
		a.hours += e.Hours
		if e.WeekBeginning > a.lastWeek {
			a.lastWeek = e.WeekBeginning
		}
	}

	registry := make(map[string]domain.ProjectCode, len(codes))
	for _, c := range codes {
		registry[c.Code] = c
	}

	opps := make([]Opportunity, 0, len(byCode))
	for code, a := range byCode {
		if a.hours <= 0 {
			continue
		}
		opp := Opportunity{Code: code, Hours: a.hours, LastActivity: a.lastWeek}
		if pc, ok := registry[code]; ok {
			opp.Company = pc.Company
			opp.Description = pc.Description
		}
		opps = append(opps, opp)
	}

	sort.Slice(opps, func(i, j int) bool {
		if opps[i].Hours != opps[j].Hours {
			return opps[i].Hours > opps[j].Hours
		}
		return opps[i].Code < opps[j].Code
	})
	return opps
}
