package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vendops/api/internal/database"
)

// CategoryStore defines the database methods needed by category handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]database.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (database.Category, error)
	CreateCategory(ctx context.Context, arg database.CreateCategoryParams) (database.Category, error)
	UpdateCategory(ctx context.Context, arg database.UpdateCategoryParams) (database.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListSubcategories(ctx context.Context, categoryID pgtype.UUID) ([]database.Subcategory, error)
	DeleteSubcategoriesByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// CategoryHandler handles category CRUD and the category tree.
type CategoryHandler struct {
	store    CategoryStore
	pool     TxBeginner
	newStore func(database.DBTX) CategoryStore
}

// NewCategoryHandler creates a new CategoryHandler. pool and newStore run
// the cascading delete inside one transaction.
func NewCategoryHandler(store CategoryStore, pool TxBeginner, newStore func(database.DBTX) CategoryStore) *CategoryHandler {
	return &CategoryHandler{store: store, pool: pool, newStore: newStore}
}

// RegisterRoutes registers category endpoints on the given Chi router.
// Expected to be mounted under /api.
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories-with-subcategories", h.Tree)
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// --- Request / Response types ---

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type categoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type categoryTreeResponse struct {
	categoryResponse
	Subcategories []subcategoryResponse `json:"subcategories"`
}

func toCategoryResponse(c database.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: textPtr(c.Description),
		CreatedAt:   c.CreatedAt,
	}
}

// --- Handlers ---

// List returns all categories sorted by name.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		writeInternalError(w, "list categories", err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single category.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "category")
	if !ok {
		return
	}

	category, err := h.store.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeInternalError(w, "get category", err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// Tree returns every category with its subcategories, both sorted by name.
func (h *CategoryHandler) Tree(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		writeInternalError(w, "list categories", err)
		return
	}

	// One query for all subcategories, grouped in memory.
	subs, err := h.store.ListSubcategories(r.Context(), pgtype.UUID{})
	if err != nil {
		writeInternalError(w, "list subcategories", err)
		return
	}
	byCategory := make(map[uuid.UUID][]subcategoryResponse)
	for _, s := range subs {
		byCategory[s.CategoryID] = append(byCategory[s.CategoryID], toSubcategoryResponse(s))
	}

	resp := make([]categoryTreeResponse, len(categories))
	for i, c := range categories {
		children := byCategory[c.ID]
		if children == nil {
			children = []subcategoryResponse{}
		}
		resp[i] = categoryTreeResponse{categoryResponse: toCategoryResponse(c), Subcategories: children}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create adds a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.store.CreateCategory(r.Context(), database.CreateCategoryParams{
		Name:        strings.TrimSpace(req.Name),
		Description: toText(req.Description),
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "category name already exists")
			return
		}
		writeInternalError(w, "create category", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

// Update replaces a category's name and description.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "category")
	if !ok {
		return
	}

	var req categoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.store.UpdateCategory(r.Context(), database.UpdateCategoryParams{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: toText(req.Description),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "category name already exists")
			return
		}
		writeInternalError(w, "update category", err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// Delete removes a category and all of its subcategories in one transaction.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "category")
	if !ok {
		return
	}

	removed, err := h.deleteCascade(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeInternalError(w, "delete category", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":               "category deleted",
		"subcategories_deleted": removed,
	})
}

func (h *CategoryHandler) deleteCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	tx, err := h.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := h.newStore(tx)
	removed, err := qtx.DeleteSubcategoriesByCategory(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete subcategories: %w", err)
	}
	if _, err := qtx.DeleteCategory(ctx, id); err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return removed, nil
}
