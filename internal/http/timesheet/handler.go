package timesheet

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bacembenhfayehd/manarja-sub001/internal/auth"
	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
	"github.com/bacembenhfayehd/manarja-sub001/internal/timesheet"
)

type Handler struct {
	svc *timesheet.Service
}

func NewHandler(svc *timesheet.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/generate", h.generate)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/summary", h.summary)
	r.Post("/{id}/submit", h.submit)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
	r.Post("/{id}/reopen", h.reopen)
	r.Post("/{id}/entries", h.addEntries)
	r.Delete("/{id}/entries/{entryID}", h.removeEntry)
}

type createTimesheetRequest struct {
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
	Comments  string    `json:"comments"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ts, err := h.svc.Create(r.Context(), timesheet.CreateParams{
		UserID:    principal.UserID,
		WeekStart: req.WeekStart,
		WeekEnd:   req.WeekEnd,
		Comments:  req.Comments,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(ts))
}

type generateTimesheetRequest struct {
	WeekStart time.Time `json:"week_start"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req generateTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ts, err := h.svc.Generate(r.Context(), principal.UserID, req.WeekStart)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(ts))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	filter := timesheet.ListFilter{UserID: new(principal.UserID)}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(timesheet.Status(s))
	}

	if s := r.URL.Query().Get("from"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.From = new(t)
		}
	}

	if s := r.URL.Query().Get("to"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.To = new(t)
		}
	}

	sheets, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(sheets))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ts, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ts))
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

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Summarize(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ts, err := h.svc.Submit(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ts))
}

type decisionRequest struct {
	Comments string `json:"comments"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Approve)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id, actorID uuid.UUID, comments string) (*timesheet.Timesheet, error)) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req decisionRequest
	if r.Body != nil {
		// The comment body is optional.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	ts, err := action(r.Context(), id, principal.UserID, req.Comments)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ts))
}

func (h *Handler) reopen(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ts, err := h.svc.Reopen(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ts))
}

type addEntriesRequest struct {
	EntryIDs []uuid.UUID `json:"entry_ids"`
}

func (h *Handler) addEntries(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req addEntriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.EntryIDs) == 0 {
		http.Error(w, "entry_ids is required", http.StatusBadRequest)
		return
	}

	ts, err := h.svc.AddEntries(r.Context(), id, req.EntryIDs)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ts))
}

func (h *Handler) removeEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	ts, err := h.svc.RemoveEntry(r.Context(), id, entryID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ts))
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, timesheet.ErrNotFound):
		http.Error(w, "timesheet not found", http.StatusNotFound)
	case errors.Is(err, timeentry.ErrNotFound):
		http.Error(w, "time entry not found", http.StatusNotFound)
	case errors.Is(err, timesheet.ErrSelfApproval):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, timesheet.ErrDuplicate),
		errors.Is(err, timesheet.ErrInvalidTransition),
		errors.Is(err, timesheet.ErrImmutable):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, timesheet.ErrInvalidWeek),
		errors.Is(err, timesheet.ErrEmptyTimesheet),
		errors.Is(err, timesheet.ErrNoEntries),
		errors.Is(err, timesheet.ErrInvalidMembership):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		slog.Error("timesheet operation failed", "error", err)
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
