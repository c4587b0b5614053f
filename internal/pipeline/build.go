package pipeline

import (
	"context"

	"tally/internal/config"
	"tally/internal/domain"
	"tally/internal/registry"
)

// ClientDetector attaches a client name to an event. Implementations must
// recover from their own failures and return an empty string instead of an
// error; detection is never pipeline-fatal.
type ClientDetector interface {
	DetectClient(ctx context.Context, title, externalDomains string) string
}

// CommentGenerator produces comments for synthesized entries, with the same
// never-fail contract as ClientDetector.
type CommentGenerator interface {
	AutofillComment(ctx context.Context, category domain.Category, client, weekContext string) string
}

// Pipeline turns a batch of calendar events into the normalized timesheet
// table. Each stage consumes its input collection and produces a new one;
// nothing is shared mutable state across stages.
type Pipeline struct {
	Mapping     *config.CategoryMapping
	Codes       []domain.ProjectCode
	Detector    ClientDetector
	Commenter   CommentGenerator
	TargetHours float64
}

// Result is the pipeline output: the final entry table (summary rows
// included) and the weeks that could not be filled to target.
type Result struct {
	Entries    []domain.TimeEntry
	Shortfalls []WeekShortfall
}

// Run executes the full pipeline: split, overlap resolution, entry building,
// aggregation, and gap filling.
func (p *Pipeline) Run(ctx context.Context, events []domain.CalendarEvent) (*Result, error) {
	target := p.TargetHours
	if target <= 0 {
		target = DefaultTargetHours
	}

	lookup := func(e domain.CalendarEvent) (domain.Category, bool) {
		return p.Mapping.Lookup(e.Category)
	}

	split := SplitLongAllDay(events)
	resolved := ResolveOverlaps(split, lookup)

	entries := make([]domain.TimeEntry, 0, len(resolved))
	for _, e := range resolved {
		cat, ok := lookup(e)
		if !ok {
			continue
		}
		entry, err := p.buildEntry(ctx, e, cat)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	aggregated := AddWeekTotals(SortEntries(entries), target)

	var commentFn CommentFunc
	if p.Commenter != nil {
		commentFn = func(cat domain.Category, client, weekContext string) string {
			return p.Commenter.AutofillComment(ctx, cat, client, weekContext)
		}
	}
	filled, shortfalls := FillGaps(split, aggregated, target, commentFn)

	return &Result{Entries: filled, Shortfalls: shortfalls}, nil
}

func (p *Pipeline) buildEntry(ctx context.Context, e domain.CalendarEvent, cat domain.Category) (domain.TimeEntry, error) {
	start, err := e.StartTime()
	if err != nil {
		return domain.TimeEntry{}, err
	}

	var client, oppID string
	var needsReview bool
	if !cat.NoOpportunity() {
		if p.Detector != nil {
			client = p.Detector.DetectClient(ctx, e.Title, e.ExternalDomains)
		}
		if p.Mapping.IsSales(cat) {
			oppID, needsReview = registry.MatchOpportunity(client, e.Title, p.Codes)
		}
	}

	return domain.TimeEntry{
		WeekBeginning:   WeekBeginning(start),
		Category:        cat,
		Client:          client,
		Hours:           RoundHours(float64(e.Minutes) / 60),
		OpportunityID:   oppID,
		Comments:        e.Title,
		ExternalDomains: e.ExternalDomains,
		NeedsReview:     needsReview,
		Status:          domain.StatusNew,
	}, nil
}
