package timeentry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=timeentry
type Repository interface {
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)

	// Begin opens a transaction holding a per-user advisory lock, so
	// overlap checks and the writes that depend on them are serialized
	// per user.
	Begin(ctx context.Context, userID uuid.UUID) (Tx, error)
}

type Tx interface {
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	// FindOverlapping returns an entry of the user whose interval
	// intersects [start, end) per Overlaps, or nil. exclude skips one
	// entry id.
	FindOverlapping(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time, exclude *uuid.UUID) (*Entry, error)
	FindRunning(ctx context.Context, userID uuid.UUID) (*Entry, error)
	CreateEntry(ctx context.Context, e *Entry) error
	UpdateEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	// RecomputeTimesheetTotal re-sums the hours of all entries
	// currently assigned to the timesheet and stores the result.
	RecomputeTimesheetTotal(ctx context.Context, timesheetID uuid.UUID) error
	Commit() error
	Rollback() error
}

// RelationValidator confirms that the referenced user/project/task
// exist and that the task belongs to the project.
type RelationValidator interface {
	Validate(ctx context.Context, userID uuid.UUID, projectID, taskID *uuid.UUID) error
}

type Service struct {
	repo      Repository
	relations RelationValidator
	retention time.Duration
	now       func() time.Time
}

func NewService(repo Repository, relations RelationValidator, retention time.Duration) *Service {
	return &Service{
		repo:      repo,
		relations: relations,
		retention: retention,
		now:       time.Now,
	}
}

type CreateParams struct {
	UserID      uuid.UUID
	ProjectID   *uuid.UUID
	TaskID      *uuid.UUID
	TimesheetID *uuid.UUID
	Start       time.Time
	End         *time.Time
	// Hours overrides the derived duration for manually logged time.
	// Used verbatim, never cross-checked against the interval.
	Hours       *decimal.Decimal
	Description string
	Billable    bool
}

type ListFilter struct {
	UserID      *uuid.UUID
	ProjectID   *uuid.UUID
	TimesheetID *uuid.UUID
	Status      *Status
	From        *time.Time
	To          *time.Time
}

// Create validates and persists a new entry. Validation order matters:
// relations, then temporal constraints, then hours derivation, then
// the overlap check against the final computed interval. The overlap
// check and the insert share one serialized transaction, and the
// parent timesheet total, if any, is recomputed before commit.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	if err := s.relations.Validate(ctx, params.UserID, params.ProjectID, params.TaskID); err != nil {
		return nil, err
	}

	now := s.now()
	if err := CheckInterval(params.Start, params.End, now, s.retention); err != nil {
		return nil, err
	}

	hours, err := s.deriveHours(params.Start, params.End, params.Hours)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		UserID:      params.UserID,
		ProjectID:   params.ProjectID,
		TaskID:      params.TaskID,
		TimesheetID: params.TimesheetID,
		Start:       params.Start,
		End:         params.End,
		Hours:       hours,
		Description: params.Description,
		Billable:    params.Billable,
		Status:      StatusPending,
	}

	tx, err := s.repo.Begin(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("begin entry tx: %w", err)
	}
	defer tx.Rollback()

	if entry.End == nil {
		running, err := tx.FindRunning(ctx, params.UserID)
		if err != nil {
			return nil, fmt.Errorf("find running entry: %w", err)
		}

		if running != nil {
			return nil, ErrTimerConflict
		}
	}

	if err := s.checkOverlap(ctx, tx, params.UserID, entry.Start, entry.End, nil); err != nil {
		return nil, err
	}

	if err := tx.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	if entry.TimesheetID != nil {
		if err := tx.RecomputeTimesheetTotal(ctx, *entry.TimesheetID); err != nil {
			return nil, fmt.Errorf("recompute timesheet total: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit entry tx: %w", err)
	}

	return entry, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

type UpdateParams struct {
	ProjectID   *uuid.UUID
	TaskID      *uuid.UUID
	Start       *time.Time
	End         *time.Time
	Hours       *decimal.Decimal
	Description *string
	Billable    *bool
}

// Update applies a partial patch to a non-approved entry. Interval and
// reference changes are re-validated in full, including a fresh
// overlap check that excludes the entry itself.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch UpdateParams) (*Entry, error) {
	current, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == StatusApproved {
		return nil, ErrImmutable
	}

	tx, err := s.repo.Begin(ctx, current.UserID)
	if err != nil {
		return nil, fmt.Errorf("begin entry tx: %w", err)
	}
	defer tx.Rollback()

	// Re-read under the lock so the patch applies to current state.
	entry, err := tx.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.Status == StatusApproved {
		return nil, ErrImmutable
	}

	relationsChanged := patch.ProjectID != nil || patch.TaskID != nil
	intervalChanged := patch.Start != nil || patch.End != nil

	if patch.ProjectID != nil {
		entry.ProjectID = patch.ProjectID
	}

	if patch.TaskID != nil {
		entry.TaskID = patch.TaskID
	}

	if patch.Start != nil {
		entry.Start = *patch.Start
	}

	if patch.End != nil {
		entry.End = patch.End
	}

	if patch.Description != nil {
		entry.Description = *patch.Description
	}

	if patch.Billable != nil {
		entry.Billable = *patch.Billable
	}

	if relationsChanged {
		if err := s.relations.Validate(ctx, entry.UserID, entry.ProjectID, entry.TaskID); err != nil {
			return nil, err
		}
	}

	if intervalChanged {
		if err := CheckInterval(entry.Start, entry.End, s.now(), s.retention); err != nil {
			return nil, err
		}
	}

	switch {
	case patch.Hours != nil:
		entry.Hours = *patch.Hours
	case intervalChanged && entry.End != nil:
		hours, err := HoursBetween(entry.Start, *entry.End)
		if err != nil {
			return nil, err
		}

		entry.Hours = hours
	}

	if intervalChanged {
		if err := s.checkOverlap(ctx, tx, entry.UserID, entry.Start, entry.End, &entry.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	if entry.TimesheetID != nil {
		if err := tx.RecomputeTimesheetTotal(ctx, *entry.TimesheetID); err != nil {
			return nil, fmt.Errorf("recompute timesheet total: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit entry tx: %w", err)
	}

	return entry, nil
}

// Delete removes a non-approved entry and recomputes the total of the
// timesheet it was attached to, if any.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	if current.Status == StatusApproved {
		return ErrImmutable
	}

	tx, err := s.repo.Begin(ctx, current.UserID)
	if err != nil {
		return fmt.Errorf("begin entry tx: %w", err)
	}
	defer tx.Rollback()

	if err := tx.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	if current.TimesheetID != nil {
		if err := tx.RecomputeTimesheetTotal(ctx, *current.TimesheetID); err != nil {
			return fmt.Errorf("recompute timesheet total: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entry tx: %w", err)
	}

	return nil
}

// StartTimer restarts the clock on an unfinished entry: its start is
// reset to now and it becomes the user's single running timer.
func (s *Service) StartTimer(ctx context.Context, id uuid.UUID) (*Entry, error) {
	current, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == StatusApproved {
		return nil, ErrImmutable
	}

	if current.End != nil {
		return nil, ErrAlreadyCompleted
	}

	tx, err := s.repo.Begin(ctx, current.UserID)
	if err != nil {
		return nil, fmt.Errorf("begin entry tx: %w", err)
	}
	defer tx.Rollback()

	entry, err := tx.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.Status == StatusApproved {
		return nil, ErrImmutable
	}

	running, err := tx.FindRunning(ctx, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("find running entry: %w", err)
	}

	if running != nil && running.ID != entry.ID {
		return nil, ErrTimerConflict
	}

	entry.Start = s.now()

	if err := s.checkOverlap(ctx, tx, entry.UserID, entry.Start, nil, &entry.ID); err != nil {
		return nil, err
	}

	if err := tx.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit entry tx: %w", err)
	}

	return entry, nil
}

// StopTimer closes a running entry at now and derives its hours.
func (s *Service) StopTimer(ctx context.Context, id uuid.UUID) (*Entry, error) {
	current, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx, current.UserID)
	if err != nil {
		return nil, fmt.Errorf("begin entry tx: %w", err)
	}
	defer tx.Rollback()

	entry, err := tx.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.stopEntry(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit entry tx: %w", err)
	}

	return entry, nil
}

type StartTimerParams struct {
	UserID      uuid.UUID
	ProjectID   *uuid.UUID
	TaskID      *uuid.UUID
	Description string
	Billable    bool
}

// StartNewTimer stops the user's running timer, if any, and opens a
// fresh entry starting now with no end. Both steps commit atomically.
func (s *Service) StartNewTimer(ctx context.Context, params StartTimerParams) (*Entry, error) {
	if err := s.relations.Validate(ctx, params.UserID, params.ProjectID, params.TaskID); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("begin entry tx: %w", err)
	}
	defer tx.Rollback()

	running, err := tx.FindRunning(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("find running entry: %w", err)
	}

	if running != nil {
		if err := s.stopEntry(ctx, tx, running); err != nil {
			return nil, err
		}
	}

	entry := &Entry{
		UserID:      params.UserID,
		ProjectID:   params.ProjectID,
		TaskID:      params.TaskID,
		Start:       s.now(),
		Description: params.Description,
		Billable:    params.Billable,
		Status:      StatusPending,
	}

	if err := s.checkOverlap(ctx, tx, params.UserID, entry.Start, nil, nil); err != nil {
		return nil, err
	}

	if err := tx.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit entry tx: %w", err)
	}

	return entry, nil
}

// Approve marks a pending entry approved. Approved entries are
// immutable afterwards.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.decide(ctx, id, StatusApproved)
}

// Reject marks a pending entry rejected. Rejected entries stay
// editable and can be resubmitted for approval.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.decide(ctx, id, StatusRejected)
}

func (s *Service) decide(ctx context.Context, id uuid.UUID, next Status) (*Entry, error) {
	current, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx, current.UserID)
	if err != nil {
		return nil, fmt.Errorf("begin entry tx: %w", err)
	}
	defer tx.Rollback()

	entry, err := tx.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	entry.Status = next

	if err := tx.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("update entry status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit entry tx: %w", err)
	}

	return entry, nil
}

func (s *Service) deriveHours(start time.Time, end *time.Time, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		return *override, nil
	}

	if end == nil {
		return decimal.Zero, nil
	}

	return HoursBetween(start, *end)
}

func (s *Service) stopEntry(ctx context.Context, tx Tx, entry *Entry) error {
	if entry.Status == StatusApproved {
		return ErrImmutable
	}

	if entry.End != nil {
		return ErrNotRunning
	}

	end := s.now()

	hours, err := HoursBetween(entry.Start, end)
	if err != nil {
		return err
	}

	entry.End = &end
	entry.Hours = hours

	if err := tx.UpdateEntry(ctx, entry); err != nil {
		return fmt.Errorf("stop entry: %w", err)
	}

	if entry.TimesheetID != nil {
		if err := tx.RecomputeTimesheetTotal(ctx, *entry.TimesheetID); err != nil {
			return fmt.Errorf("recompute timesheet total: %w", err)
		}
	}

	return nil
}

func (s *Service) checkOverlap(ctx context.Context, tx Tx, userID uuid.UUID, start time.Time, end *time.Time, exclude *uuid.UUID) error {
	conflict, err := tx.FindOverlapping(ctx, userID, start, end, exclude)
	if err != nil {
		return fmt.Errorf("find overlapping entry: %w", err)
	}

	if conflict != nil {
		return &OverlapError{ConflictingID: conflict.ID}
	}

	return nil
}
