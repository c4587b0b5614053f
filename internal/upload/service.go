package upload

import (
	"context"
	"fmt"

	"tally/internal/domain"
	"tally/internal/store"
)

// EntryResult is the outcome of posting one entry.
type EntryResult struct {
	Category domain.Category
	Hours    float64
	Err      error
}

// WeekResult collects the outcomes for one week.
type WeekResult struct {
	Week     string
	Results  []EntryResult
	Uploaded int
	Failed   int
	Skipped  int // already-uploaded rows left untouched
}

// Service posts stored entries week by week and records the outcome of each
// row back into the store.
type Service struct {
	store  *store.EntryStore
	poster Poster
}

// NewService creates an upload Service.
func NewService(entries *store.EntryStore, poster Poster) *Service {
	return &Service{store: entries, poster: poster}
}

// UploadWeek posts every pending entry of one week. Summary rows never
// leave the store, and rows already marked UPLOADED are not re-sent, so a
// failed week can be retried without duplicating items. A post failure
// marks the row ERROR and moves on to the next row.
func (s *Service) UploadWeek(ctx context.Context, week string) (*WeekResult, error) {
	entries, err := s.store.ListWeek(ctx, week)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries stored for week %s", week)
	}

	result := &WeekResult{Week: week}
	for _, e := range entries {
		if e.IsWeekTotal() {
			continue
		}
		if e.Status == domain.StatusUploaded {
			result.Skipped++
			continue
		}

		postErr := s.poster.PostEntry(ctx, e.TimeEntry)
		status := domain.StatusUploaded
		if postErr != nil {
			status = domain.StatusError
			result.Failed++
		} else {
			result.Uploaded++
		}
		if err := s.store.SetStatus(ctx, e.ID, status); err != nil {
			return nil, err
		}

		result.Results = append(result.Results, EntryResult{
			Category: e.Category,
			Hours:    e.Hours,
			Err:      postErr,
		})
	}
	return result, nil
}

// UploadAll posts every stored week in ascending order.
func (s *Service) UploadAll(ctx context.Context) ([]*WeekResult, error) {
	weeks, err := s.store.Weeks(ctx)
	if err != nil {
		return nil, err
	}

	var results []*WeekResult
	for _, w := range weeks {
		r, err := s.UploadWeek(ctx, w.Week)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// LatestWeek returns the most recent stored week.
func (s *Service) LatestWeek(ctx context.Context) (string, error) {
	weeks, err := s.store.Weeks(ctx)
	if err != nil {
		return "", err
	}
	if len(weeks) == 0 {
		return "", fmt.Errorf("no entries stored, run preview first")
	}
	return weeks[len(weeks)-1].Week, nil
}
