package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/domain"
	"tally/internal/store"
	"tally/internal/testutil"
)

func newStore(t *testing.T) *store.EntryStore {
	t.Helper()
	return store.NewEntryStore(testutil.NewTestDB(t))
}

func sampleTable() []domain.TimeEntry {
	return []domain.TimeEntry{
		testutil.NewTestEntry("2025-12-07", domain.CategoryCustomerDemo, 2,
			testutil.WithClient("Michelin"), testutil.WithOpportunityID("OP-1001"),
			testutil.WithComments("Fleet demo")),
		testutil.NewTestEntry("2025-12-07", domain.CategoryPrep, 3,
			testutil.WithClient("Michelin"), testutil.WithAutofilled()),
		testutil.NewWeekTotalEntry("2025-12-07", 5),
		testutil.NewTestEntry("2025-12-14", domain.CategoryAdmin, 1.5),
		testutil.NewWeekTotalEntry("2025-12-14", 1.5),
	}
}

func TestReplaceAllAndList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, sampleTable()))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	// Table order is preserved exactly.
	assert.Equal(t, domain.CategoryCustomerDemo, entries[0].Category)
	assert.Equal(t, "Michelin", entries[0].Client)
	assert.Equal(t, "OP-1001", entries[0].OpportunityID)
	assert.True(t, entries[1].IsAutofilled)
	assert.True(t, entries[2].IsWeekTotal())
	assert.Equal(t, domain.StatusWeekTotal, entries[2].Status)
	assert.NotEmpty(t, entries[0].ID)
}

func TestReplaceAllOverwritesPreviousRun(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, sampleTable()))
	require.NoError(t, s.ReplaceAll(ctx, []domain.TimeEntry{
		testutil.NewTestEntry("2025-12-21", domain.CategoryTraining, 4),
	}))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-12-21", entries[0].WeekBeginning)
}

func TestListWeek(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx, sampleTable()))

	entries, err := s.ListWeek(ctx, "2025-12-07")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.CategoryPrep, entries[1].Category)

	empty, err := s.ListWeek(ctx, "2026-01-04")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWeeksSummary(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx, sampleTable()))

	weeks, err := s.Weeks(ctx)
	require.NoError(t, err)
	require.Len(t, weeks, 2)

	// Summary rows are excluded from counts and hours.
	assert.Equal(t, "2025-12-07", weeks[0].Week)
	assert.Equal(t, 2, weeks[0].Rows)
	assert.InDelta(t, 5.0, weeks[0].Hours, 1e-9)
	assert.Equal(t, 2, weeks[0].New)
	assert.Zero(t, weeks[0].Uploaded)

	assert.Equal(t, "2025-12-14", weeks[1].Week)
	assert.Equal(t, 1, weeks[1].Rows)
	assert.InDelta(t, 1.5, weeks[1].Hours, 1e-9)
}

func TestSetStatus(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx, sampleTable()))

	entries, err := s.ListWeek(ctx, "2025-12-07")
	require.NoError(t, err)

	require.NoError(t, s.SetStatus(ctx, entries[0].ID, domain.StatusUploaded))
	require.NoError(t, s.SetStatus(ctx, entries[1].ID, domain.StatusError))

	weeks, err := s.Weeks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, weeks[0].New)
	assert.Equal(t, 1, weeks[0].Uploaded)
	assert.Equal(t, 1, weeks[0].Errors)
}

func TestSetStatusUnknownID(t *testing.T) {
	s := newStore(t)
	err := s.SetStatus(context.Background(), "no-such-id", domain.StatusUploaded)
	assert.Error(t, err)
}
