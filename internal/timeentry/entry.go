package timeentry

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the approval state of a time entry.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Entry represents a single logged interval of work. End is nil while
// the entry's timer is running.
type Entry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ProjectID   *uuid.UUID
	TaskID      *uuid.UUID
	TimesheetID *uuid.UUID
	Start       time.Time
	End         *time.Time
	Hours       decimal.Decimal
	Description string
	Billable    bool
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// Running reports whether the entry's timer is still open.
func (e *Entry) Running() bool {
	return e.End == nil
}

var (
	ErrNotFound          = errors.New("time entry not found")
	ErrInvalidInterval   = errors.New("end must be after start")
	ErrFutureStart       = errors.New("start must not be in the future")
	ErrStaleEntry        = errors.New("start is older than the retention window")
	ErrImmutable         = errors.New("approved entries cannot be modified")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTimerConflict     = errors.New("user already has a running timer")
	ErrNotRunning        = errors.New("entry timer is not running")
	ErrAlreadyCompleted  = errors.New("entry already has an end time")
)

// OverlapError reports an interval that intersects an existing entry
// of the same user.
type OverlapError struct {
	ConflictingID uuid.UUID
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("interval overlaps existing entry %s", e.ConflictingID)
}
