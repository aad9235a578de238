package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const selectEntryColumns = `
	id, user_id, project_id, task_id, timesheet_id, start_time, end_time,
	hours, description, billable, status, created_at, updated_at, deleted_at
`

// scanEntry reads an entry row from the scanner.
// Expected column order matches selectEntryColumns.
func scanEntry(s scanner) (*timeentry.Entry, error) {
	var e timeentry.Entry

	var statusStr string

	if err := s.Scan(
		&e.ID, &e.UserID, &e.ProjectID, &e.TaskID, &e.TimesheetID,
		&e.Start, &e.End, &e.Hours, &e.Description, &e.Billable,
		&statusStr, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	e.Status = timeentry.Status(statusStr)

	return &e, nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*timeentry.Entry, error) {
	return getEntry(ctx, s.db, id)
}

func getEntry(ctx context.Context, q querier, id uuid.UUID) (*timeentry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries
		WHERE id = $1 AND deleted_at IS NULL`

	e, err := scanEntry(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, timeentry.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter timeentry.ListFilter) ([]*timeentry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries
		WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.ProjectID != nil {
		query += fmt.Sprintf(" AND project_id = $%d", argIdx)

		args = append(args, *filter.ProjectID)
		argIdx++
	}

	if filter.TimesheetID != nil {
		query += fmt.Sprintf(" AND timesheet_id = $%d", argIdx)

		args = append(args, *filter.TimesheetID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, string(*filter.Status))
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND start_time >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND start_time < $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY start_time ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*timeentry.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}

// userLockKey derives the advisory lock key serializing all interval
// writes of one user.
func userLockKey(userID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte("time_entries"))
	h.Write([]byte{0})
	h.Write(userID[:])

	return int64(h.Sum64())
}

type entryTx struct {
	tx *sql.Tx
}

// Begin opens a transaction and takes the user's advisory lock, so the
// overlap check and the write it guards commit as one serialized unit.
func (s *Store) Begin(ctx context.Context, userID uuid.UUID) (timeentry.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning entry tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", userLockKey(userID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring user lock: %w", err)
	}

	return &entryTx{tx: dbTx}, nil
}

func (t *entryTx) Commit() error   { return t.tx.Commit() }
func (t *entryTx) Rollback() error { return t.tx.Rollback() }

func (t *entryTx) GetEntry(ctx context.Context, id uuid.UUID) (*timeentry.Entry, error) {
	return getEntry(ctx, t.tx, id)
}

// FindOverlapping is the SQL rendering of timeentry.Overlaps: the
// half-open intersection test s < end && e > start, with null ends on
// either side treated as open-ended intervals.
func (t *entryTx) FindOverlapping(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time, exclude *uuid.UUID) (*timeentry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND deleted_at IS NULL
		  AND ($2::uuid IS NULL OR id <> $2)
		  AND ($3::timestamptz IS NULL OR start_time < $3)
		  AND (end_time IS NULL OR end_time > $4)
		ORDER BY start_time ASC
		LIMIT 1`

	e, err := scanEntry(t.tx.QueryRowContext(ctx, query, userID, exclude, end, start))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding overlap: %w", err)
	}

	return e, nil
}

func (t *entryTx) FindRunning(ctx context.Context, userID uuid.UUID) (*timeentry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND end_time IS NULL AND deleted_at IS NULL
		LIMIT 1`

	e, err := scanEntry(t.tx.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding running entry: %w", err)
	}

	return e, nil
}

func (t *entryTx) CreateEntry(ctx context.Context, e *timeentry.Entry) error {
	query := `
		INSERT INTO time_entries (user_id, project_id, task_id, timesheet_id, start_time, end_time, hours, description, billable, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		e.UserID,
		e.ProjectID,
		e.TaskID,
		e.TimesheetID,
		e.Start,
		e.End,
		e.Hours,
		e.Description,
		e.Billable,
		string(e.Status),
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	return nil
}

func (t *entryTx) UpdateEntry(ctx context.Context, e *timeentry.Entry) error {
	query := `
		UPDATE time_entries
		SET project_id = $1, task_id = $2, timesheet_id = $3, start_time = $4, end_time = $5,
		    hours = $6, description = $7, billable = $8, status = $9, updated_at = NOW()
		WHERE id = $10 AND deleted_at IS NULL
	`

	_, err := t.tx.ExecContext(ctx, query,
		e.ProjectID,
		e.TaskID,
		e.TimesheetID,
		e.Start,
		e.End,
		e.Hours,
		e.Description,
		e.Billable,
		string(e.Status),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	return nil
}

func (t *entryTx) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE time_entries
		SET deleted_at = NOW()
		WHERE id = $1
	`

	if _, err := t.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	return nil
}

// RecomputeTimesheetTotal is always a full re-sum of the member
// entries, never an incremental add or subtract.
func (t *entryTx) RecomputeTimesheetTotal(ctx context.Context, timesheetID uuid.UUID) error {
	query := `
		UPDATE timesheets
		SET total_hours = COALESCE((
			SELECT SUM(hours) FROM time_entries
			WHERE timesheet_id = $1 AND deleted_at IS NULL
		), 0), updated_at = NOW()
		WHERE id = $1
	`

	if _, err := t.tx.ExecContext(ctx, query, timesheetID); err != nil {
		return fmt.Errorf("recomputing timesheet total: %w", err)
	}

	return nil
}
