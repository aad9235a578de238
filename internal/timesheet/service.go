package timesheet

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=timesheet
type Repository interface {
	GetTimesheet(ctx context.Context, id uuid.UUID) (*Timesheet, error)
	ListTimesheets(ctx context.Context, filter ListFilter) ([]*Timesheet, error)
	ListMemberEntries(ctx context.Context, timesheetID uuid.UUID) ([]*timeentry.Entry, error)

	// Begin opens the transaction wrapping a timesheet mutation and
	// its total recompute, so readers never observe a stale total.
	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	GetTimesheet(ctx context.Context, id uuid.UUID) (*Timesheet, error)
	// CreateTimesheet maps a (user_id, week_start) unique violation to
	// ErrDuplicate.
	CreateTimesheet(ctx context.Context, ts *Timesheet) error
	UpdateTimesheet(ctx context.Context, ts *Timesheet) error
	DeleteTimesheet(ctx context.Context, id uuid.UUID) error

	GetEntries(ctx context.Context, ids []uuid.UUID) ([]*timeentry.Entry, error)
	CountMemberEntries(ctx context.Context, timesheetID uuid.UUID) (int, error)
	// CountUnassignedInRange counts the user's entries in the week
	// window that are not yet attached to any timesheet.
	CountUnassignedInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	AssignUnassignedInRange(ctx context.Context, timesheetID, userID uuid.UUID, from, to time.Time) error
	AssignEntries(ctx context.Context, timesheetID uuid.UUID, entryIDs []uuid.UUID) error
	UnassignEntry(ctx context.Context, entryID uuid.UUID) error
	UnassignAll(ctx context.Context, timesheetID uuid.UUID) error

	// RecomputeTotal re-sums the member entries' hours, stores the
	// result and returns it. Idempotent by construction.
	RecomputeTotal(ctx context.Context, timesheetID uuid.UUID) (decimal.Decimal, error)

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	UserID    uuid.UUID
	WeekStart time.Time
	WeekEnd   time.Time
	Comments  string
}

type ListFilter struct {
	UserID *uuid.UUID
	Status *Status
	From   *time.Time
	To     *time.Time
}

// Create opens a draft timesheet for the week. The user's entries in
// range that are not attached elsewhere are pulled in and the total is
// computed from them.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Timesheet, error) {
	if !params.WeekEnd.After(params.WeekStart) {
		return nil, ErrInvalidWeek
	}

	ts := &Timesheet{
		UserID:    params.UserID,
		WeekStart: params.WeekStart,
		WeekEnd:   params.WeekEnd,
		Status:    StatusDraft,
		Comments:  params.Comments,
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin timesheet tx: %w", err)
	}
	defer tx.Rollback()

	if err := tx.CreateTimesheet(ctx, ts); err != nil {
		return nil, err
	}

	if err := tx.AssignUnassignedInRange(ctx, ts.ID, ts.UserID, ts.WeekStart, ts.WeekEnd.AddDate(0, 0, 1)); err != nil {
		return nil, fmt.Errorf("assign entries in range: %w", err)
	}

	total, err := tx.RecomputeTotal(ctx, ts.ID)
	if err != nil {
		return nil, fmt.Errorf("recompute total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit timesheet tx: %w", err)
	}

	ts.TotalHours = total

	return ts, nil
}

// Generate is a convenience constructor over Create: it derives the
// week window from weekStart and refuses to create an empty sheet.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*Timesheet, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin timesheet tx: %w", err)
	}
	defer tx.Rollback()

	count, err := tx.CountUnassignedInRange(ctx, userID, weekStart, weekEnd.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("count entries in range: %w", err)
	}

	if count == 0 {
		return nil, ErrNoEntries
	}

	ts := &Timesheet{
		UserID:    userID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Status:    StatusDraft,
	}

	if err := tx.CreateTimesheet(ctx, ts); err != nil {
		return nil, err
	}

	if err := tx.AssignUnassignedInRange(ctx, ts.ID, userID, weekStart, weekEnd.AddDate(0, 0, 1)); err != nil {
		return nil, fmt.Errorf("assign entries in range: %w", err)
	}

	total, err := tx.RecomputeTotal(ctx, ts.ID)
	if err != nil {
		return nil, fmt.Errorf("recompute total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit timesheet tx: %w", err)
	}

	ts.TotalHours = total

	return ts, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Timesheet, error) {
	return s.repo.GetTimesheet(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Timesheet, error) {
	return s.repo.ListTimesheets(ctx, filter)
}

// Submit moves a draft with at least one member entry to submitted.
// The total is recomputed so the approver sees current numbers.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*Timesheet, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin timesheet tx: %w", err)
	}
	defer tx.Rollback()

	ts, err := tx.GetTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}

	if ts.Status != StatusDraft {
		return nil, ErrInvalidTransition
	}

	count, err := tx.CountMemberEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count member entries: %w", err)
	}

	if count == 0 {
		return nil, ErrEmptyTimesheet
	}

	total, err := tx.RecomputeTotal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("recompute total: %w", err)
	}

	now := s.now()
	ts.Status = StatusSubmitted
	ts.SubmittedAt = &now
	ts.TotalHours = total

	if err := tx.UpdateTimesheet(ctx, ts); err != nil {
		return nil, fmt.Errorf("update timesheet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit timesheet tx: %w", err)
	}

	return ts, nil
}

// Approve finalizes a submitted timesheet. The approver must not be
// its owner. Prior rejection stamps are cleared.
func (s *Service) Approve(ctx context.Context, id, approverID uuid.UUID, comments string) (*Timesheet, error) {
	return s.decide(ctx, id, approverID, comments, StatusApproved)
}

// Reject returns a submitted timesheet to its owner. The rejector must
// not be its owner. Prior approval stamps are cleared.
func (s *Service) Reject(ctx context.Context, id, rejectedBy uuid.UUID, comments string) (*Timesheet, error) {
	return s.decide(ctx, id, rejectedBy, comments, StatusRejected)
}

func (s *Service) decide(ctx context.Context, id, actorID uuid.UUID, comments string, next Status) (*Timesheet, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin timesheet tx: %w", err)
	}
	defer tx.Rollback()

	ts, err := tx.GetTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}

	if ts.Status != StatusSubmitted {
		return nil, ErrInvalidTransition
	}

	if actorID == ts.UserID {
		return nil, ErrSelfApproval
	}

	now := s.now()

	switch next {
	case StatusApproved:
		ts.ApprovedAt = &now
		ts.ApprovedBy = &actorID
		ts.RejectedAt = nil
		ts.RejectedBy = nil
	case StatusRejected:
		ts.RejectedAt = &now
		ts.RejectedBy = &actorID
		ts.ApprovedAt = nil
		ts.ApprovedBy = nil
	}

	ts.Status = next

	if comments != "" {
		ts.Comments = comments
	}

	if err := tx.UpdateTimesheet(ctx, ts); err != nil {
		return nil, fmt.Errorf("update timesheet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit timesheet tx: %w", err)
	}

	return ts, nil
}

// Reopen returns a rejected timesheet to draft for correction. The
// rejection stamps stay in place as history.
func (s *Service) Reopen(ctx context.Context, id uuid.UUID) (*Timesheet, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin timesheet tx: %w", err)
	}
	defer tx.Rollback()

	ts, err := tx.GetTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}

	if ts.Status != StatusRejected {
		return nil, ErrInvalidTransition
	}

	ts.Status = StatusDraft
	ts.SubmittedAt = nil

	if err := tx.UpdateTimesheet(ctx, ts); err != nil {
		return nil, fmt.Errorf("update timesheet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit timesheet tx: %w", err)
	}

	return ts, nil
}

// AddEntries attaches entries to a draft timesheet. Every entry must
// belong to the sheet's owner, start inside the week window and not be
// attached to a different sheet. The total is recomputed as the last
// step of the same transaction.
func (s *Service) AddEntries(ctx context.Context, id uuid.UUID, entryIDs []uuid.UUID) (*Timesheet, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin timesheet tx: %w", err)
	}
	defer tx.Rollback()

	ts, err := tx.GetTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}

	if ts.Status != StatusDraft {
		return nil, ErrInvalidTransition
	}

	entries, err := tx.GetEntries(ctx, entryIDs)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.UserID != ts.UserID || !ts.ContainsStart(e.Start) {
			return nil, ErrInvalidMembership
		}

		if e.TimesheetID != nil && *e.TimesheetID != ts.ID {
			return nil, ErrInvalidMembership
		}
	}

	if err := tx.AssignEntries(ctx, ts.ID, entryIDs); err != nil {
		return nil, fmt.Errorf("assign entries: %w", err)
	}

	total, err := tx.RecomputeTotal(ctx, ts.ID)
	if err != nil {
		return nil, fmt.Errorf("recompute total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit timesheet tx: %w", err)
	}

	ts.TotalHours = total

	return ts, nil
}

// RemoveEntry detaches one entry from a draft timesheet and recomputes
// the total.
func (s *Service) RemoveEntry(ctx context.Context, id, entryID uuid.UUID) (*Timesheet, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin timesheet tx: %w", err)
	}
	defer tx.Rollback()

	ts, err := tx.GetTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}

	if ts.Status != StatusDraft {
		return nil, ErrInvalidTransition
	}

	entries, err := tx.GetEntries(ctx, []uuid.UUID{entryID})
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 || entries[0].TimesheetID == nil || *entries[0].TimesheetID != ts.ID {
		return nil, ErrInvalidMembership
	}

	if err := tx.UnassignEntry(ctx, entryID); err != nil {
		return nil, fmt.Errorf("unassign entry: %w", err)
	}

	total, err := tx.RecomputeTotal(ctx, ts.ID)
	if err != nil {
		return nil, fmt.Errorf("recompute total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit timesheet tx: %w", err)
	}

	ts.TotalHours = total

	return ts, nil
}

// Delete removes a non-approved timesheet. Member entries outlive the
// container: their timesheet reference is nulled in the same
// transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin timesheet tx: %w", err)
	}
	defer tx.Rollback()

	ts, err := tx.GetTimesheet(ctx, id)
	if err != nil {
		return err
	}

	if ts.Status == StatusApproved {
		return ErrImmutable
	}

	if err := tx.UnassignAll(ctx, id); err != nil {
		return fmt.Errorf("unassign entries: %w", err)
	}

	if err := tx.DeleteTimesheet(ctx, id); err != nil {
		return fmt.Errorf("delete timesheet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit timesheet tx: %w", err)
	}

	return nil
}

// DaySummary aggregates one UTC calendar day of a timesheet.
type DaySummary struct {
	Date    time.Time // midnight UTC
	Hours   decimal.Decimal
	Entries int
}

// Summary is the reporting view over a timesheet's member entries.
type Summary struct {
	Timesheet        *Timesheet
	BillableHours    decimal.Decimal
	NonBillableHours decimal.Decimal
	Days             []DaySummary
}

// Summarize computes the per-day and billable breakdown of a
// timesheet's current member entries.
func (s *Service) Summarize(ctx context.Context, id uuid.UUID) (*Summary, error) {
	ts, err := s.repo.GetTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListMemberEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list member entries: %w", err)
	}

	summary := &Summary{
		Timesheet:        ts,
		BillableHours:    decimal.Zero,
		NonBillableHours: decimal.Zero,
	}

	byDay := make(map[time.Time]int)

	for _, e := range entries {
		if e.Billable {
			summary.BillableHours = summary.BillableHours.Add(e.Hours)
		} else {
			summary.NonBillableHours = summary.NonBillableHours.Add(e.Hours)
		}

		// Bucket on the UTC calendar date, not a 24h truncation, so
		// offset-carrying timestamps land in the right day.
		year, month, dayOfMonth := e.Start.UTC().Date()
		day := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)

		idx, ok := byDay[day]
		if !ok {
			idx = len(summary.Days)
			byDay[day] = idx

			summary.Days = append(summary.Days, DaySummary{Date: day, Hours: decimal.Zero})
		}

		summary.Days[idx].Hours = summary.Days[idx].Hours.Add(e.Hours)
		summary.Days[idx].Entries++
	}

	slices.SortFunc(summary.Days, func(a, b DaySummary) int {
		return a.Date.Compare(b.Date)
	})

	return summary, nil
}
