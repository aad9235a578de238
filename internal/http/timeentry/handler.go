package timeentry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bacembenhfayehd/manarja-sub001/internal/auth"
	"github.com/bacembenhfayehd/manarja-sub001/internal/relation"
	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
)

type Handler struct {
	svc *timeentry.Service
}

func NewHandler(svc *timeentry.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/timer", h.startNewTimer)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/start", h.startTimer)
	r.Post("/{id}/stop", h.stopTimer)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
}

type createEntryRequest struct {
	ProjectID   *uuid.UUID       `json:"project_id,omitempty"`
	TaskID      *uuid.UUID       `json:"task_id,omitempty"`
	TimesheetID *uuid.UUID       `json:"timesheet_id,omitempty"`
	Start       time.Time        `json:"start"`
	End         *time.Time       `json:"end,omitempty"`
	Hours       *decimal.Decimal `json:"hours,omitempty"`
	Description string           `json:"description"`
	Billable    bool             `json:"billable"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.svc.Create(r.Context(), timeentry.CreateParams{
		UserID:      principal.UserID,
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		TimesheetID: req.TimesheetID,
		Start:       req.Start,
		End:         req.End,
		Hours:       req.Hours,
		Description: req.Description,
		Billable:    req.Billable,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(entry))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	filter := timeentry.ListFilter{UserID: new(principal.UserID)}

	if s := r.URL.Query().Get("project_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.ProjectID = new(id)
		}
	}

	if s := r.URL.Query().Get("timesheet_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.TimesheetID = new(id)
		}
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(timeentry.Status(s))
	}

	if s := r.URL.Query().Get("from"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			filter.From = new(t)
		}
	}

	if s := r.URL.Query().Get("to"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			filter.To = new(t)
		}
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(entries))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(entry))
}

type updateEntryRequest struct {
	ProjectID   *uuid.UUID       `json:"project_id,omitempty"`
	TaskID      *uuid.UUID       `json:"task_id,omitempty"`
	Start       *time.Time       `json:"start,omitempty"`
	End         *time.Time       `json:"end,omitempty"`
	Hours       *decimal.Decimal `json:"hours,omitempty"`
	Description *string          `json:"description,omitempty"`
	Billable    *bool            `json:"billable,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.svc.Update(r.Context(), id, timeentry.UpdateParams{
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		Start:       req.Start,
		End:         req.End,
		Hours:       req.Hours,
		Description: req.Description,
		Billable:    req.Billable,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(entry))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type startTimerRequest struct {
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	TaskID      *uuid.UUID `json:"task_id,omitempty"`
	Description string     `json:"description"`
	Billable    bool       `json:"billable"`
}

func (h *Handler) startNewTimer(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req startTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.svc.StartNewTimer(r.Context(), timeentry.StartTimerParams{
		UserID:      principal.UserID,
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		Description: req.Description,
		Billable:    req.Billable,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(entry))
}

func (h *Handler) startTimer(w http.ResponseWriter, r *http.Request) {
	h.entryAction(w, r, h.svc.StartTimer)
}

func (h *Handler) stopTimer(w http.ResponseWriter, r *http.Request) {
	h.entryAction(w, r, h.svc.StopTimer)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.entryAction(w, r, h.svc.Approve)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.entryAction(w, r, h.svc.Reject)
}

func (h *Handler) entryAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id uuid.UUID) (*timeentry.Entry, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entry, err := action(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(entry))
}

func respondError(w http.ResponseWriter, err error) {
	var overlap *timeentry.OverlapError

	var notFound *relation.NotFoundError

	switch {
	case errors.Is(err, timeentry.ErrNotFound):
		http.Error(w, "time entry not found", http.StatusNotFound)
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &overlap):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":          "interval overlaps an existing entry",
			"conflicting_id": overlap.ConflictingID.String(),
		})
	case errors.Is(err, timeentry.ErrTimerConflict),
		errors.Is(err, timeentry.ErrImmutable),
		errors.Is(err, timeentry.ErrInvalidTransition),
		errors.Is(err, timeentry.ErrAlreadyCompleted),
		errors.Is(err, timeentry.ErrNotRunning):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, timeentry.ErrInvalidInterval),
		errors.Is(err, timeentry.ErrFutureStart),
		errors.Is(err, timeentry.ErrStaleEntry),
		errors.Is(err, relation.ErrInvalidRelation):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		slog.Error("time entry operation failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
