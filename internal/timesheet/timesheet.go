package timesheet

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the workflow state of a timesheet.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Timesheet is a weekly aggregation container over one user's time
// entries. TotalHours is always a full re-sum of the member entries,
// never trusted incrementally.
type Timesheet struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	WeekStart   time.Time
	WeekEnd     time.Time
	TotalHours  decimal.Decimal
	Status      Status
	SubmittedAt *time.Time
	ApprovedAt  *time.Time
	ApprovedBy  *uuid.UUID
	RejectedAt  *time.Time
	RejectedBy  *uuid.UUID
	Comments    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ContainsStart reports whether an entry starting at t belongs to this
// week. Containment is day-granular on the start: an entry that starts
// Sunday 23:00 and runs past midnight counts toward the week it
// started in.
func (ts *Timesheet) ContainsStart(t time.Time) bool {
	return !t.Before(ts.WeekStart) && t.Before(ts.WeekEnd.AddDate(0, 0, 1))
}

var (
	ErrNotFound          = errors.New("timesheet not found")
	ErrDuplicate         = errors.New("timesheet already exists for user and week")
	ErrInvalidWeek       = errors.New("week end must be after week start")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyTimesheet    = errors.New("timesheet has no entries")
	ErrNoEntries         = errors.New("no entries in week range")
	ErrSelfApproval      = errors.New("timesheet owner cannot approve or reject it")
	ErrImmutable         = errors.New("approved timesheets cannot be deleted")
	ErrInvalidMembership = errors.New("entry does not belong to the timesheet's owner and week")
)
