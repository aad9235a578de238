package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bacembenhfayehd/manarja-sub001/internal/auth"
	"github.com/bacembenhfayehd/manarja-sub001/internal/importer"
	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
)

type Handler struct {
	importSvc *importer.Service
	entrySvc  *timeentry.Service
}

func NewHandler(importSvc *importer.Service, entrySvc *timeentry.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		entrySvc:  entrySvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/csv", h.importCSV)
}

type entryDTO struct {
	ID          uuid.UUID       `json:"id"`
	Start       time.Time       `json:"start"`
	End         *time.Time      `json:"end,omitempty"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Billable    bool            `json:"billable"`
}

type failureDTO struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type importResponse struct {
	Imported int          `json:"imported"`
	Entries  []entryDTO   `json:"entries"`
	Failures []failureDTO `json:"failures,omitempty"`
}

// importCSV parses the uploaded tracker export and feeds every row
// through the regular entry-creation pipeline, so relation, constraint
// and overlap failures are reported per row instead of discarding the
// whole file.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var projectID, taskID *uuid.UUID

	if s := r.FormValue("project_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid project_id", http.StatusBadRequest)
			return
		}

		projectID = &id
	}

	if s := r.FormValue("task_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid task_id", http.StatusBadRequest)
			return
		}

		taskID = &id
	}

	resp := importResponse{Entries: []entryDTO{}}

	for i, row := range rows {
		entry, err := h.entrySvc.Create(r.Context(), timeentry.CreateParams{
			UserID:      principal.UserID,
			ProjectID:   projectID,
			TaskID:      taskID,
			Start:       row.Start,
			End:         row.End,
			Hours:       row.Hours,
			Description: row.Description,
			Billable:    row.Billable,
		})
		if err != nil {
			// Data rows start after the header.
			resp.Failures = append(resp.Failures, failureDTO{Row: i + 2, Error: err.Error()})
			continue
		}

		resp.Entries = append(resp.Entries, entryDTO{
			ID:          entry.ID,
			Start:       entry.Start,
			End:         entry.End,
			Hours:       entry.Hours,
			Description: entry.Description,
			Billable:    entry.Billable,
		})
	}

	resp.Imported = len(resp.Entries)

	status := http.StatusCreated
	if len(resp.Failures) > 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
