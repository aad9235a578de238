package timesheet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bacembenhfayehd/manarja-sub001/internal/timesheet"
)

type timesheetResponse struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	WeekStart   time.Time        `json:"week_start"`
	WeekEnd     time.Time        `json:"week_end"`
	TotalHours  decimal.Decimal  `json:"total_hours"`
	Status      timesheet.Status `json:"status"`
	SubmittedAt *time.Time       `json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time       `json:"approved_at,omitempty"`
	ApprovedBy  *uuid.UUID       `json:"approved_by,omitempty"`
	RejectedAt  *time.Time       `json:"rejected_at,omitempty"`
	RejectedBy  *uuid.UUID       `json:"rejected_by,omitempty"`
	Comments    string           `json:"comments,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(ts *timesheet.Timesheet) timesheetResponse {
	return timesheetResponse{
		ID:          ts.ID,
		UserID:      ts.UserID,
		WeekStart:   ts.WeekStart,
		WeekEnd:     ts.WeekEnd,
		TotalHours:  ts.TotalHours,
		Status:      ts.Status,
		SubmittedAt: ts.SubmittedAt,
		ApprovedAt:  ts.ApprovedAt,
		ApprovedBy:  ts.ApprovedBy,
		RejectedAt:  ts.RejectedAt,
		RejectedBy:  ts.RejectedBy,
		Comments:    ts.Comments,
		CreatedAt:   ts.CreatedAt,
		UpdatedAt:   ts.UpdatedAt,
	}
}

func toResponseList(sheets []*timesheet.Timesheet) []timesheetResponse {
	resp := make([]timesheetResponse, len(sheets))
	for i, ts := range sheets {
		resp[i] = toResponse(ts)
	}

	return resp
}

type daySummaryResponse struct {
	Date    string          `json:"date"`
	Hours   decimal.Decimal `json:"hours"`
	Entries int             `json:"entries"`
}

type summaryResponse struct {
	Timesheet        timesheetResponse    `json:"timesheet"`
	BillableHours    decimal.Decimal      `json:"billable_hours"`
	NonBillableHours decimal.Decimal      `json:"non_billable_hours"`
	Days             []daySummaryResponse `json:"days"`
}

func toSummaryResponse(s *timesheet.Summary) summaryResponse {
	resp := summaryResponse{
		Timesheet:        toResponse(s.Timesheet),
		BillableHours:    s.BillableHours,
		NonBillableHours: s.NonBillableHours,
		Days:             make([]daySummaryResponse, len(s.Days)),
	}

	for i, d := range s.Days {
		resp.Days[i] = daySummaryResponse{
			Date:    d.Date.Format(time.DateOnly),
			Hours:   d.Hours,
			Entries: d.Entries,
		}
	}

	return resp
}
