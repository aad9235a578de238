package timeentry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
)

type entryResponse struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	ProjectID   *uuid.UUID       `json:"project_id,omitempty"`
	TaskID      *uuid.UUID       `json:"task_id,omitempty"`
	TimesheetID *uuid.UUID       `json:"timesheet_id,omitempty"`
	Start       time.Time        `json:"start"`
	End         *time.Time       `json:"end,omitempty"`
	Hours       decimal.Decimal  `json:"hours"`
	Description string           `json:"description"`
	Billable    bool             `json:"billable"`
	Status      timeentry.Status `json:"status"`
	Running     bool             `json:"running"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(e *timeentry.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		ProjectID:   e.ProjectID,
		TaskID:      e.TaskID,
		TimesheetID: e.TimesheetID,
		Start:       e.Start,
		End:         e.End,
		Hours:       e.Hours,
		Description: e.Description,
		Billable:    e.Billable,
		Status:      e.Status,
		Running:     e.Running(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toResponseList(entries []*timeentry.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}
