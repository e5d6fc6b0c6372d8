package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vendops/api/internal/database"
)

// AssemblyStore defines the database methods needed by assembly task handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type AssemblyStore interface {
	ListAssemblies(ctx context.Context, arg database.ListAssembliesParams) ([]database.Assembly, error)
	GetAssembly(ctx context.Context, id uuid.UUID) (database.Assembly, error)
	CreateAssembly(ctx context.Context, arg database.CreateAssemblyParams) (database.Assembly, error)
	UpdateAssembly(ctx context.Context, arg database.UpdateAssemblyParams) (database.Assembly, error)
	DeleteAssembly(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// AssemblyHandler handles CRUD for workshop assembly tasks.
type AssemblyHandler struct {
	store AssemblyStore
}

// NewAssemblyHandler creates a new AssemblyHandler.
func NewAssemblyHandler(store AssemblyStore) *AssemblyHandler {
	return &AssemblyHandler{store: store}
}

// RegisterRoutes registers assembly endpoints on the given Chi router.
// Expected to be mounted at /api/assemblies.
func (h *AssemblyHandler) RegisterRoutes(r chi.Router) {
	r.Use(adminOnly)
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type assemblyRequest struct {
	Name          string              `json:"name" validate:"required,max=200"`
	Type          string              `json:"type" validate:"required,oneof=component kit full_machine"`
	Components    database.Components `json:"components" validate:"dive,keys,notblank,endkeys,gt=0"`
	Status        string              `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority      string              `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	AssignedTo    string              `json:"assigned_to" validate:"max=100"`
	EstimatedTime *int32              `json:"estimated_time" validate:"omitempty,gte=0"`
	Notes         string              `json:"notes"`
}

type assemblyResponse struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Type          string              `json:"type"`
	Components    database.Components `json:"components"`
	Status        string              `json:"status"`
	Priority      string              `json:"priority"`
	AssignedTo    *string             `json:"assigned_to"`
	EstimatedTime *int32              `json:"estimated_time"`
	Notes         *string             `json:"notes"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func toAssemblyResponse(a database.Assembly) assemblyResponse {
	components := a.Components
	if components == nil {
		components = database.Components{}
	}
	var estimated *int32
	if a.EstimatedTime.Valid {
		v := a.EstimatedTime.Int32
		estimated = &v
	}
	return assemblyResponse{
		ID:            a.ID,
		Name:          a.Name,
		Type:          string(a.Type),
		Components:    components,
		Status:        string(a.Status),
		Priority:      string(a.Priority),
		AssignedTo:    textPtr(a.AssignedTo),
		EstimatedTime: estimated,
		Notes:         textPtr(a.Notes),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toInt4(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}

// --- Handlers ---

// List returns assembly tasks, optionally filtered by status and priority.
func (h *AssemblyHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	params := database.ListAssembliesParams{Limit: limit, Offset: offset}

	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		status := database.AssemblyTaskStatus(v)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		params.Status = database.NullAssemblyTaskStatus{AssemblyTaskStatus: status, Valid: true}
	}
	if v := q.Get("priority"); v != "" {
		priority := database.Priority(v)
		if !priority.Valid() {
			writeError(w, http.StatusBadRequest, "invalid priority")
			return
		}
		params.Priority = database.NullPriority{Priority: priority, Valid: true}
	}

	assemblies, err := h.store.ListAssemblies(r.Context(), params)
	if err != nil {
		writeInternalError(w, "list assemblies", err)
		return
	}

	resp := make([]assemblyResponse, len(assemblies))
	for i, a := range assemblies {
		resp[i] = toAssemblyResponse(a)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single assembly task.
func (h *AssemblyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "assembly")
	if !ok {
		return
	}

	assembly, err := h.store.GetAssembly(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "assembly not found")
			return
		}
		writeInternalError(w, "get assembly", err)
		return
	}
	writeJSON(w, http.StatusOK, toAssemblyResponse(assembly))
}

// Create adds an assembly task. Status defaults to pending, priority to normal.
func (h *AssemblyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req assemblyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status := database.AssemblyTaskStatus(req.Status)
	if status == "" {
		status = database.AssemblyTaskStatusPending
	}
	priority := database.Priority(req.Priority)
	if priority == "" {
		priority = database.PriorityNormal
	}
	components := req.Components
	if components == nil {
		components = database.Components{}
	}

	assembly, err := h.store.CreateAssembly(r.Context(), database.CreateAssemblyParams{
		Name:          req.Name,
		Type:          database.AssemblyType(req.Type),
		Components:    components,
		Status:        status,
		Priority:      priority,
		AssignedTo:    toText(req.AssignedTo),
		EstimatedTime: toInt4(req.EstimatedTime),
		Notes:         toText(req.Notes),
	})
	if err != nil {
		writeInternalError(w, "create assembly", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssemblyResponse(assembly))
}

// Update replaces an assembly task. Omitted status and priority are kept.
func (h *AssemblyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "assembly")
	if !ok {
		return
	}

	var req assemblyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	current, err := h.store.GetAssembly(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "assembly not found")
			return
		}
		writeInternalError(w, "get assembly", err)
		return
	}

	status := database.AssemblyTaskStatus(req.Status)
	if status == "" {
		status = current.Status
	}
	priority := database.Priority(req.Priority)
	if priority == "" {
		priority = current.Priority
	}
	components := req.Components
	if components == nil {
		components = current.Components
	}

	assembly, err := h.store.UpdateAssembly(r.Context(), database.UpdateAssemblyParams{
		ID:            id,
		Name:          req.Name,
		Type:          database.AssemblyType(req.Type),
		Components:    components,
		Status:        status,
		Priority:      priority,
		AssignedTo:    toText(req.AssignedTo),
		EstimatedTime: toInt4(req.EstimatedTime),
		Notes:         toText(req.Notes),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "assembly not found")
			return
		}
		writeInternalError(w, "update assembly", err)
		return
	}
	writeJSON(w, http.StatusOK, toAssemblyResponse(assembly))
}

// Delete removes an assembly task.
func (h *AssemblyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "assembly")
	if !ok {
		return
	}

	if _, err := h.store.DeleteAssembly(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "assembly not found")
			return
		}
		writeInternalError(w, "delete assembly", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "assembly deleted"})
}
