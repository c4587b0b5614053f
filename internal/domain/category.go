package domain

// Category is a normalized timesheet category.
type Category string

const (
	CategoryCustomerDemo    Category = "Customer - Demo/ Presentation"
	CategoryDiscovery       Category = "Discovery"
	CategoryRFx             Category = "RFI/RFP/RFQ"
	CategoryPOC             Category = "POC"
	CategoryPrep            Category = "Prep - Demo/ Presentation"
	CategoryInternalMeeting Category = "Internal Meeting"
	CategoryTraining        Category = "Training"
	CategorySupport         Category = "Support"
	CategoryAdmin           Category = "Admin"
	CategoryTravel          Category = "Travel"
	CategoryTimeOff         Category = "Time Off"
)

// WeekTotalCategory is the sentinel category used for per-week summary rows.
// Summary rows never participate in gap filling or aggregate computations.
const WeekTotalCategory Category = ">>> WEEK TOTAL"

// categoryPriority ranks categories for hour-slot overlap contests.
// Higher wins. Categories absent from the table have priority 0.
var categoryPriority = map[Category]int{
	CategoryCustomerDemo:    100,
	CategoryDiscovery:       90,
	CategoryRFx:             85,
	CategoryPOC:             80,
	CategoryPrep:            70,
	CategoryInternalMeeting: 50,
	CategoryTraining:        40,
	CategorySupport:         30,
	CategoryAdmin:           20,
	CategoryTravel:          10,
	CategoryTimeOff:         5,
}

// Priority returns the overlap-contest priority for the category.
func (c Category) Priority() int {
	return categoryPriority[c]
}

// AutofillableCategories are the only categories eligible to donate their
// proportions to synthesized gap-fill entries.
var AutofillableCategories = map[Category]bool{
	CategoryPrep:            true,
	CategoryInternalMeeting: true,
	CategoryAdmin:           true,
	CategoryTraining:        true,
	CategorySupport:         true,
}

// NeverAutofillCategories must never receive synthesized hours. They require
// genuine client engagement that cannot be fabricated.
var NeverAutofillCategories = map[Category]bool{
	CategoryCustomerDemo: true,
	CategoryDiscovery:    true,
	CategoryPOC:          true,
	CategoryRFx:          true,
	CategoryTravel:       true,
	CategoryTimeOff:      true,
}

// NoOpportunityCategories never carry a client or opportunity identifier,
// regardless of what upstream detection produced.
var NoOpportunityCategories = map[Category]bool{
	CategoryTraining: true,
	CategoryAdmin:    true,
	CategorySupport:  true,
	CategoryTravel:   true,
	CategoryTimeOff:  true,
}

// Autofillable reports whether the category may donate to gap filling.
func (c Category) Autofillable() bool {
	return AutofillableCategories[c]
}

// NeverAutofill reports whether the category is barred from receiving
// synthesized hours.
func (c Category) NeverAutofill() bool {
	return NeverAutofillCategories[c]
}

// NoOpportunity reports whether the category must carry empty client and
// opportunity fields.
func (c Category) NoOpportunity() bool {
	return NoOpportunityCategories[c]
}
