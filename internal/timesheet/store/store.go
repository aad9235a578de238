package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
	"github.com/bacembenhfayehd/manarja-sub001/internal/timesheet"
)

const uniqueViolation = "23505"

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

const selectTimesheetColumns = `
	id, user_id, week_start, week_end, total_hours, status,
	submitted_at, approved_at, approved_by, rejected_at, rejected_by,
	comments, created_at, updated_at
`

func scanTimesheet(s scanner) (*timesheet.Timesheet, error) {
	var ts timesheet.Timesheet

	var statusStr string

	if err := s.Scan(
		&ts.ID, &ts.UserID, &ts.WeekStart, &ts.WeekEnd, &ts.TotalHours, &statusStr,
		&ts.SubmittedAt, &ts.ApprovedAt, &ts.ApprovedBy, &ts.RejectedAt, &ts.RejectedBy,
		&ts.Comments, &ts.CreatedAt, &ts.UpdatedAt,
	); err != nil {
		return nil, err
	}

	ts.Status = timesheet.Status(statusStr)

	return &ts, nil
}

func getTimesheet(ctx context.Context, q querier, id uuid.UUID) (*timesheet.Timesheet, error) {
	query := `SELECT ` + selectTimesheetColumns + `
		FROM timesheets
		WHERE id = $1`

	ts, err := scanTimesheet(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, timesheet.ErrNotFound
		}

		return nil, fmt.Errorf("getting timesheet: %w", err)
	}

	return ts, nil
}

func (s *Store) GetTimesheet(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error) {
	return getTimesheet(ctx, s.db, id)
}

func (s *Store) ListTimesheets(ctx context.Context, filter timesheet.ListFilter) ([]*timesheet.Timesheet, error) {
	query := `SELECT ` + selectTimesheetColumns + `
		FROM timesheets
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, string(*filter.Status))
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND week_start >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND week_start <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY week_start DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []*timesheet.Timesheet

	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning timesheet: %w", err)
		}

		sheets = append(sheets, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timesheet rows: %w", err)
	}

	return sheets, nil
}

const selectEntryColumns = `
	id, user_id, project_id, task_id, timesheet_id, start_time, end_time,
	hours, description, billable, status, created_at, updated_at, deleted_at
`

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

func (s *Store) ListMemberEntries(ctx context.Context, timesheetID uuid.UUID) ([]*timeentry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries
		WHERE timesheet_id = $1 AND deleted_at IS NULL
		ORDER BY start_time ASC`

	rows, err := s.db.QueryContext(ctx, query, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("listing member entries: %w", err)
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

type sheetTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (timesheet.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning timesheet tx: %w", err)
	}

	return &sheetTx{tx: dbTx}, nil
}

func (t *sheetTx) Commit() error   { return t.tx.Commit() }
func (t *sheetTx) Rollback() error { return t.tx.Rollback() }

func (t *sheetTx) GetTimesheet(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error) {
	return getTimesheet(ctx, t.tx, id)
}

func (t *sheetTx) CreateTimesheet(ctx context.Context, ts *timesheet.Timesheet) error {
	query := `
		INSERT INTO timesheets (user_id, week_start, week_end, total_hours, status, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		ts.UserID,
		ts.WeekStart,
		ts.WeekEnd,
		ts.TotalHours,
		string(ts.Status),
		ts.Comments,
	).Scan(&ts.ID, &ts.CreatedAt, &ts.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return timesheet.ErrDuplicate
		}

		return fmt.Errorf("creating timesheet: %w", err)
	}

	return nil
}

func (t *sheetTx) UpdateTimesheet(ctx context.Context, ts *timesheet.Timesheet) error {
	query := `
		UPDATE timesheets
		SET total_hours = $1, status = $2, submitted_at = $3, approved_at = $4, approved_by = $5,
		    rejected_at = $6, rejected_by = $7, comments = $8, updated_at = NOW()
		WHERE id = $9
	`

	_, err := t.tx.ExecContext(ctx, query,
		ts.TotalHours,
		string(ts.Status),
		ts.SubmittedAt,
		ts.ApprovedAt,
		ts.ApprovedBy,
		ts.RejectedAt,
		ts.RejectedBy,
		ts.Comments,
		ts.ID,
	)
	if err != nil {
		return fmt.Errorf("updating timesheet: %w", err)
	}

	return nil
}

func (t *sheetTx) DeleteTimesheet(ctx context.Context, id uuid.UUID) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM timesheets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting timesheet: %w", err)
	}

	return nil
}

func (t *sheetTx) GetEntries(ctx context.Context, ids []uuid.UUID) ([]*timeentry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries
		WHERE id = $1 AND deleted_at IS NULL`

	entries := make([]*timeentry.Entry, 0, len(ids))

	for _, id := range ids {
		e, err := scanEntry(t.tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, timeentry.ErrNotFound
			}

			return nil, fmt.Errorf("getting entry: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, nil
}

func (t *sheetTx) CountMemberEntries(ctx context.Context, timesheetID uuid.UUID) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM time_entries WHERE timesheet_id = $1 AND deleted_at IS NULL`
	if err := t.tx.QueryRowContext(ctx, query, timesheetID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting member entries: %w", err)
	}

	return count, nil
}

func (t *sheetTx) CountUnassignedInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	var count int

	query := `
		SELECT COUNT(*) FROM time_entries
		WHERE user_id = $1 AND timesheet_id IS NULL AND deleted_at IS NULL
		  AND start_time >= $2 AND start_time < $3
	`
	if err := t.tx.QueryRowContext(ctx, query, userID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting entries in range: %w", err)
	}

	return count, nil
}

func (t *sheetTx) AssignUnassignedInRange(ctx context.Context, timesheetID, userID uuid.UUID, from, to time.Time) error {
	query := `
		UPDATE time_entries
		SET timesheet_id = $1, updated_at = NOW()
		WHERE user_id = $2 AND timesheet_id IS NULL AND deleted_at IS NULL
		  AND start_time >= $3 AND start_time < $4
	`

	if _, err := t.tx.ExecContext(ctx, query, timesheetID, userID, from, to); err != nil {
		return fmt.Errorf("assigning entries in range: %w", err)
	}

	return nil
}

func (t *sheetTx) AssignEntries(ctx context.Context, timesheetID uuid.UUID, entryIDs []uuid.UUID) error {
	query := `
		UPDATE time_entries
		SET timesheet_id = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	for _, id := range entryIDs {
		if _, err := t.tx.ExecContext(ctx, query, timesheetID, id); err != nil {
			return fmt.Errorf("assigning entry: %w", err)
		}
	}

	return nil
}

func (t *sheetTx) UnassignEntry(ctx context.Context, entryID uuid.UUID) error {
	query := `
		UPDATE time_entries
		SET timesheet_id = NULL, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := t.tx.ExecContext(ctx, query, entryID); err != nil {
		return fmt.Errorf("unassigning entry: %w", err)
	}

	return nil
}

func (t *sheetTx) UnassignAll(ctx context.Context, timesheetID uuid.UUID) error {
	query := `
		UPDATE time_entries
		SET timesheet_id = NULL, updated_at = NOW()
		WHERE timesheet_id = $1
	`

	if _, err := t.tx.ExecContext(ctx, query, timesheetID); err != nil {
		return fmt.Errorf("unassigning entries: %w", err)
	}

	return nil
}

// RecomputeTotal is always a full re-sum, never an incremental add or
// subtract.
func (t *sheetTx) RecomputeTotal(ctx context.Context, timesheetID uuid.UUID) (decimal.Decimal, error) {
	query := `
		UPDATE timesheets
		SET total_hours = COALESCE((
			SELECT SUM(hours) FROM time_entries
			WHERE timesheet_id = $1 AND deleted_at IS NULL
		), 0), updated_at = NOW()
		WHERE id = $1
		RETURNING total_hours
	`

	var total decimal.Decimal
	if err := t.tx.QueryRowContext(ctx, query, timesheetID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("recomputing total: %w", err)
	}

	return total, nil
}
