package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/vendops/api/internal/database"
)

// MaintenanceStore defines the database methods needed by maintenance handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type MaintenanceStore interface {
	ListMaintenanceRecords(ctx context.Context, arg database.ListMaintenanceRecordsParams) ([]database.MaintenanceRecord, error)
	GetMaintenanceRecord(ctx context.Context, id uuid.UUID) (database.MaintenanceRecord, error)
	CreateMaintenanceRecord(ctx context.Context, arg database.CreateMaintenanceRecordParams) (database.MaintenanceRecord, error)
	UpdateMaintenanceRecord(ctx context.Context, arg database.UpdateMaintenanceRecordParams) (database.MaintenanceRecord, error)
	DeleteMaintenanceRecord(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// MaintenanceHandler handles machine maintenance records.
type MaintenanceHandler struct {
	store MaintenanceStore
	now   func() time.Time
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(store MaintenanceStore) *MaintenanceHandler {
	return &MaintenanceHandler{store: store, now: time.Now}
}

// RegisterRoutes registers maintenance endpoints on the given Chi router.
// Expected to be mounted at /api/maintenance.
func (h *MaintenanceHandler) RegisterRoutes(r chi.Router) {
	r.Use(adminOnly)
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type maintenanceRequest struct {
	Type          string           `json:"type" validate:"required,oneof=routine repair inspection cleaning"`
	Priority      string           `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Status        string           `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	ScheduledDate *dateTime        `json:"scheduled_date" validate:"required"`
	CompletedDate *dateTime        `json:"completed_date"`
	Technician    string           `json:"technician" validate:"max=100"`
	Description   string           `json:"description"`
	Notes         string           `json:"notes"`
	Cost          *decimal.Decimal `json:"cost"`
}

type maintenanceResponse struct {
	ID            uuid.UUID  `json:"id"`
	Type          string     `json:"type"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	CompletedDate *time.Time `json:"completed_date"`
	Technician    *string    `json:"technician"`
	Description   *string    `json:"description"`
	Notes         *string    `json:"notes"`
	Cost          *string    `json:"cost"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toMaintenanceResponse(m database.MaintenanceRecord) maintenanceResponse {
	return maintenanceResponse{
		ID:            m.ID,
		Type:          string(m.Type),
		Priority:      string(m.Priority),
		Status:        string(m.Status),
		ScheduledDate: m.ScheduledDate,
		CompletedDate: timePtr(m.CompletedDate),
		Technician:    textPtr(m.Technician),
		Description:   textPtr(m.Description),
		Notes:         textPtr(m.Notes),
		Cost:          numericToStringPtr(m.Cost),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// completedDate returns the requested completion date, or now when the
// record is being marked completed without one.
func (h *MaintenanceHandler) completedDate(req maintenanceRequest, status database.MaintenanceStatus) *time.Time {
	if d := req.CompletedDate.ptr(); d != nil {
		return d
	}
	if status == database.MaintenanceStatusCompleted {
		now := h.now().UTC()
		return &now
	}
	return nil
}

// --- Handlers ---

// List returns maintenance records, optionally filtered by status and type.
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	params := database.ListMaintenanceRecordsParams{Limit: limit, Offset: offset}

	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		status := database.MaintenanceStatus(v)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		params.Status = database.NullMaintenanceStatus{MaintenanceStatus: status, Valid: true}
	}
	if v := q.Get("type"); v != "" {
		typ := database.MaintenanceType(v)
		if !typ.Valid() {
			writeError(w, http.StatusBadRequest, "invalid type")
			return
		}
		params.Type = database.NullMaintenanceType{MaintenanceType: typ, Valid: true}
	}

	records, err := h.store.ListMaintenanceRecords(r.Context(), params)
	if err != nil {
		writeInternalError(w, "list maintenance records", err)
		return
	}

	resp := make([]maintenanceResponse, len(records))
	for i, m := range records {
		resp[i] = toMaintenanceResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single maintenance record.
func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "maintenance record")
	if !ok {
		return
	}

	record, err := h.store.GetMaintenanceRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "maintenance record not found")
			return
		}
		writeInternalError(w, "get maintenance record", err)
		return
	}
	writeJSON(w, http.StatusOK, toMaintenanceResponse(record))
}

// Create adds a maintenance record. Status defaults to scheduled, priority to normal.
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !validateMoney(w, moneyField{name: "cost", amount: req.Cost}) {
		return
	}

	status := database.MaintenanceStatus(req.Status)
	if status == "" {
		status = database.MaintenanceStatusScheduled
	}
	priority := database.Priority(req.Priority)
	if priority == "" {
		priority = database.PriorityNormal
	}

	record, err := h.store.CreateMaintenanceRecord(r.Context(), database.CreateMaintenanceRecordParams{
		Type:          database.MaintenanceType(req.Type),
		Priority:      priority,
		Status:        status,
		ScheduledDate: req.ScheduledDate.Time,
		CompletedDate: toTimestamptz(h.completedDate(req, status)),
		Technician:    toText(req.Technician),
		Description:   toText(req.Description),
		Notes:         toText(req.Notes),
		Cost:          optionalNumeric(req.Cost),
	})
	if err != nil {
		writeInternalError(w, "create maintenance record", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMaintenanceResponse(record))
}

// Update replaces a maintenance record. Omitted status and priority are kept.
func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "maintenance record")
	if !ok {
		return
	}

	var req maintenanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !validateMoney(w, moneyField{name: "cost", amount: req.Cost}) {
		return
	}

	current, err := h.store.GetMaintenanceRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "maintenance record not found")
			return
		}
		writeInternalError(w, "get maintenance record", err)
		return
	}

	status := database.MaintenanceStatus(req.Status)
	if status == "" {
		status = current.Status
	}
	priority := database.Priority(req.Priority)
	if priority == "" {
		priority = current.Priority
	}
	completed := toTimestamptz(h.completedDate(req, status))
	if req.CompletedDate == nil && current.CompletedDate.Valid {
		completed = current.CompletedDate
	}

	record, err := h.store.UpdateMaintenanceRecord(r.Context(), database.UpdateMaintenanceRecordParams{
		ID:            id,
		Type:          database.MaintenanceType(req.Type),
		Priority:      priority,
		Status:        status,
		ScheduledDate: req.ScheduledDate.Time,
		CompletedDate: completed,
		Technician:    toText(req.Technician),
		Description:   toText(req.Description),
		Notes:         toText(req.Notes),
		Cost:          optionalNumeric(req.Cost),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "maintenance record not found")
			return
		}
		writeInternalError(w, "update maintenance record", err)
		return
	}
	writeJSON(w, http.StatusOK, toMaintenanceResponse(record))
}

// Delete removes a maintenance record.
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "maintenance record")
	if !ok {
		return
	}

	if _, err := h.store.DeleteMaintenanceRecord(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "maintenance record not found")
			return
		}
		writeInternalError(w, "delete maintenance record", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "maintenance record deleted"})
}
