package upload

import (
	"context"

	"tally/internal/domain"
)

// Poster posts one time entry to the downstream timesheet list.
type Poster interface {
	PostEntry(ctx context.Context, entry domain.TimeEntry) error
}

// categoryMap translates internal category names to the values the
// SharePoint list accepts; the Demo/Prep names use an en dash there.
var categoryMap = map[domain.Category]string{
	domain.CategoryPrep:         "Prep – Demo/ Presentation",
	domain.CategoryCustomerDemo: "Customer – Demo/ Presentation",
}

// listCategory returns the list's spelling of a category.
func listCategory(c domain.Category) string {
	if mapped, ok := categoryMap[c]; ok {
		return mapped
	}
	return string(c)
}
