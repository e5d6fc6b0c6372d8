package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vendops/api/internal/database"
)

// SubcategoryStore defines the database methods needed by subcategory handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type SubcategoryStore interface {
	ListSubcategories(ctx context.Context, categoryID pgtype.UUID) ([]database.Subcategory, error)
	GetSubcategory(ctx context.Context, id uuid.UUID) (database.Subcategory, error)
	CreateSubcategory(ctx context.Context, arg database.CreateSubcategoryParams) (database.Subcategory, error)
	UpdateSubcategory(ctx context.Context, arg database.UpdateSubcategoryParams) (database.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetCategory(ctx context.Context, id uuid.UUID) (database.Category, error)
}

// SubcategoryHandler handles subcategory CRUD endpoints.
type SubcategoryHandler struct {
	store SubcategoryStore
}

// NewSubcategoryHandler creates a new SubcategoryHandler.
func NewSubcategoryHandler(store SubcategoryStore) *SubcategoryHandler {
	return &SubcategoryHandler{store: store}
}

// RegisterRoutes registers subcategory endpoints on the given Chi router.
// Expected to be mounted at /api/subcategories.
func (h *SubcategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// --- Request / Response types ---

type subcategoryRequest struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=500"`
}

type subcategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toSubcategoryResponse(s database.Subcategory) subcategoryResponse {
	return subcategoryResponse{
		ID:          s.ID,
		CategoryID:  s.CategoryID,
		Name:        s.Name,
		Description: textPtr(s.Description),
		CreatedAt:   s.CreatedAt,
	}
}

// --- Handlers ---

// List returns subcategories sorted by name, optionally for one category.
func (h *SubcategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var categoryID pgtype.UUID
	if v := r.URL.Query().Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category ID")
			return
		}
		categoryID = pgtype.UUID{Bytes: id, Valid: true}
	}

	subs, err := h.store.ListSubcategories(r.Context(), categoryID)
	if err != nil {
		writeInternalError(w, "list subcategories", err)
		return
	}

	resp := make([]subcategoryResponse, len(subs))
	for i, s := range subs {
		resp[i] = toSubcategoryResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single subcategory.
func (h *SubcategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "subcategory")
	if !ok {
		return
	}

	sub, err := h.store.GetSubcategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "subcategory not found")
			return
		}
		writeInternalError(w, "get subcategory", err)
		return
	}
	writeJSON(w, http.StatusOK, toSubcategoryResponse(sub))
}

// Create adds a subcategory under an existing category.
func (h *SubcategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req subcategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !h.categoryExists(w, r, req.CategoryID) {
		return
	}

	sub, err := h.store.CreateSubcategory(r.Context(), database.CreateSubcategoryParams{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: toText(req.Description),
	})
	if err != nil {
		writeInternalError(w, "create subcategory", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubcategoryResponse(sub))
}

// Update replaces a subcategory, which may move it to another category.
func (h *SubcategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "subcategory")
	if !ok {
		return
	}

	var req subcategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !h.categoryExists(w, r, req.CategoryID) {
		return
	}

	sub, err := h.store.UpdateSubcategory(r.Context(), database.UpdateSubcategoryParams{
		ID:          id,
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: toText(req.Description),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "subcategory not found")
			return
		}
		writeInternalError(w, "update subcategory", err)
		return
	}
	writeJSON(w, http.StatusOK, toSubcategoryResponse(sub))
}

// Delete removes a subcategory.
func (h *SubcategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "subcategory")
	if !ok {
		return
	}

	if _, err := h.store.DeleteSubcategory(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "subcategory not found")
			return
		}
		writeInternalError(w, "delete subcategory", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "subcategory deleted"})
}

func (h *SubcategoryHandler) categoryExists(w http.ResponseWriter, r *http.Request, id uuid.UUID) bool {
	if _, err := h.store.GetCategory(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "category not found")
			return false
		}
		writeInternalError(w, "get category", err)
		return false
	}
	return true
}
