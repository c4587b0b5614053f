package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tally/internal/domain"
)

// StoredEntry is a TimeEntry with its row identity, needed by the upload
// step to mark individual rows uploaded or failed.
type StoredEntry struct {
	ID string
	domain.TimeEntry
}

// WeekSummary describes one week of the stored preview table.
type WeekSummary struct {
	Week     string
	Rows     int // data rows, summary row excluded
	Hours    float64
	New      int
	Uploaded int
	Errors   int
}

// EntryStore persists the normalized entry table between the preview step
// and the status, report, and upload steps.
type EntryStore struct {
	db *sql.DB
}

// NewEntryStore creates an EntryStore over an open database.
func NewEntryStore(db *sql.DB) *EntryStore {
	return &EntryStore{db: db}
}

const entryColumns = `id, position, week_beginning, category, client, hours,
	opportunity_id, comments, external_domains, needs_review, is_autofilled, status`

// ReplaceAll replaces the whole stored table with a fresh pipeline result.
// Each preview run produces the complete table, so partial updates are
// never needed.
func (s *EntryStore) ReplaceAll(ctx context.Context, entries []domain.TimeEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM time_entries`); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO time_entries (` + entryColumns + `, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, e := range entries {
		_, err := tx.ExecContext(ctx, query,
			uuid.NewString(),
			i,
			e.WeekBeginning,
			string(e.Category),
			e.Client,
			e.Hours,
			e.OpportunityID,
			e.Comments,
			e.ExternalDomains,
			e.NeedsReview,
			e.IsAutofilled,
			string(e.Status),
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entries: %w", err)
	}
	committed = true
	return nil
}

// List returns all stored entries in table order.
func (s *EntryStore) List(ctx context.Context) ([]StoredEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries ORDER BY position`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListWeek returns one week's entries in table order. Summary rows are
// included; callers that upload must skip them.
func (s *EntryStore) ListWeek(ctx context.Context, week string) ([]StoredEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries
		WHERE week_beginning = ? ORDER BY position`
	rows, err := s.db.QueryContext(ctx, query, week)
	if err != nil {
		return nil, fmt.Errorf("listing entries for week %s: %w", week, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Weeks summarizes the stored table per week, in ascending week order.
func (s *EntryStore) Weeks(ctx context.Context) ([]WeekSummary, error) {
	query := `SELECT week_beginning,
		COUNT(*),
		COALESCE(SUM(hours), 0),
		COALESCE(SUM(status = 'NEW'), 0),
		COALESCE(SUM(status = 'UPLOADED'), 0),
		COALESCE(SUM(status = 'ERROR'), 0)
		FROM time_entries
		WHERE category != ?
		GROUP BY week_beginning
		ORDER BY week_beginning`
	rows, err := s.db.QueryContext(ctx, query, string(domain.WeekTotalCategory))
	if err != nil {
		return nil, fmt.Errorf("summarizing weeks: %w", err)
	}
	defer rows.Close()

	var weeks []WeekSummary
	for rows.Next() {
		var w WeekSummary
		if err := rows.Scan(&w.Week, &w.Rows, &w.Hours, &w.New, &w.Uploaded, &w.Errors); err != nil {
			return nil, fmt.Errorf("scanning week summary: %w", err)
		}
		weeks = append(weeks, w)
	}
	return weeks, rows.Err()
}

// SetStatus updates the lifecycle status of a single entry.
func (s *EntryStore) SetStatus(ctx context.Context, id string, status domain.EntryStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE time_entries SET status = ? WHERE id = ?`,
		string(status), id)
	if err != nil {
		return fmt.Errorf("updating entry status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking entry status update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("entry %s not found", id)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]StoredEntry, error) {
	var entries []StoredEntry
	for rows.Next() {
		var e StoredEntry
		var position int
		var category, status string
		err := rows.Scan(
			&e.ID, &position, &e.WeekBeginning, &category, &e.Client, &e.Hours,
			&e.OpportunityID, &e.Comments, &e.ExternalDomains,
			&e.NeedsReview, &e.IsAutofilled, &status,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e.Category = domain.Category(category)
		e.Status = domain.EntryStatus(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
