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
	"github.com/shopspring/decimal"
	"github.com/vendops/api/internal/database"
)

// ProductStore defines the database methods needed by product handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ProductStore interface {
	ListProducts(ctx context.Context, arg database.ListProductsParams) ([]database.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (database.Product, error)
	GetProductByName(ctx context.Context, name string) (database.Product, error)
	CreateProduct(ctx context.Context, arg database.CreateProductParams) (database.Product, error)
	UpdateProduct(ctx context.Context, arg database.UpdateProductParams) (database.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListCategories(ctx context.Context) ([]database.Category, error)
}

// ProductHandler handles product CRUD and spreadsheet import.
type ProductHandler struct {
	store ProductStore
	stats StatsInvalidator
}

// NewProductHandler creates a new ProductHandler. stats may be nil.
func NewProductHandler(store ProductStore, stats StatsInvalidator) *ProductHandler {
	return &ProductHandler{store: store, stats: orNop(stats)}
}

// RegisterRoutes registers product endpoints on the given Chi router.
// Expected to be mounted at /api/products.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Post("/", h.Create)
		r.Post("/import", h.Import)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// --- Request / Response types ---

type productRequest struct {
	Name           string                  `json:"name" validate:"required,max=200"`
	Category       string                  `json:"category" validate:"max=100"`
	CategoryID     *uuid.UUID              `json:"category_id"`
	SubcategoryID  *uuid.UUID              `json:"subcategory_id"`
	Price          *decimal.Decimal        `json:"price" validate:"required"`
	Description    string                  `json:"description"`
	Image          string                  `json:"image" validate:"max=1000"`
	Stock          int32                   `json:"stock" validate:"gte=0"`
	Specifications database.Specifications `json:"specifications" validate:"dive,keys,notblank,endkeys"`
	Status         string                  `json:"status" validate:"omitempty,oneof=active inactive out_of_stock"`
}

type productResponse struct {
	ID             uuid.UUID               `json:"id"`
	Name           string                  `json:"name"`
	Category       *string                 `json:"category"`
	CategoryID     *uuid.UUID              `json:"category_id"`
	SubcategoryID  *uuid.UUID              `json:"subcategory_id"`
	Price          string                  `json:"price"`
	Description    *string                 `json:"description"`
	Image          *string                 `json:"image"`
	Stock          int32                   `json:"stock"`
	Specifications database.Specifications `json:"specifications"`
	Status         string                  `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func toProductResponse(p database.Product) productResponse {
	specs := p.Specifications
	if specs == nil {
		specs = database.Specifications{}
	}
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       textPtr(p.Category),
		CategoryID:     uuidPtr(p.CategoryID),
		SubcategoryID:  uuidPtr(p.SubcategoryID),
		Price:          numericToString(p.Price),
		Description:    textPtr(p.Description),
		Image:          textPtr(p.Image),
		Stock:          p.Stock,
		Specifications: specs,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// productStatusFor reconciles the requested status with the stock level:
// zero stock is always out_of_stock, and restocking an out_of_stock
// product makes it active again.
func productStatusFor(status database.ProductStatus, stock int32) database.ProductStatus {
	if stock == 0 {
		return database.ProductStatusOutOfStock
	}
	if status == database.ProductStatusOutOfStock || status == "" {
		return database.ProductStatusActive
	}
	return status
}

// --- Handlers ---

// List returns products filtered by category_id, status and a name search.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := parsePagination(r)
	params := database.ListProductsParams{
		Search: toText(strings.TrimSpace(q.Get("search"))),
		Limit:  limit,
		Offset: offset,
	}

	if v := q.Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category ID")
			return
		}
		params.CategoryID = pgtype.UUID{Bytes: id, Valid: true}
	}
	if v := q.Get("status"); v != "" {
		status := database.ProductStatus(v)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		params.Status = database.NullProductStatus{ProductStatus: status, Valid: true}
	}

	products, err := h.store.ListProducts(r.Context(), params)
	if err != nil {
		writeInternalError(w, "list products", err)
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single product.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "product")
	if !ok {
		return
	}

	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, "get product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Create adds a product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !validateMoney(w, moneyField{name: "price", amount: req.Price}) {
		return
	}

	product, err := h.store.CreateProduct(r.Context(), database.CreateProductParams{
		Name:           strings.TrimSpace(req.Name),
		Category:       toText(req.Category),
		CategoryID:     toPgUUID(req.CategoryID),
		SubcategoryID:  toPgUUID(req.SubcategoryID),
		Price:          decimalToNumeric(*req.Price),
		Description:    toText(req.Description),
		Image:          toText(req.Image),
		Stock:          req.Stock,
		Specifications: req.Specifications,
		Status:         productStatusFor(database.ProductStatus(req.Status), req.Stock),
	})
	if err != nil {
		writeInternalError(w, "create product", err)
		return
	}

	h.stats.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// Update replaces a product. An omitted status keeps the current one.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "product")
	if !ok {
		return
	}

	var req productRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !validateMoney(w, moneyField{name: "price", amount: req.Price}) {
		return
	}

	current, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, "get product", err)
		return
	}

	status := database.ProductStatus(req.Status)
	if status == "" {
		status = current.Status
	}

	product, err := h.store.UpdateProduct(r.Context(), database.UpdateProductParams{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Category:       toText(req.Category),
		CategoryID:     toPgUUID(req.CategoryID),
		SubcategoryID:  toPgUUID(req.SubcategoryID),
		Price:          decimalToNumeric(*req.Price),
		Description:    toText(req.Description),
		Image:          toText(req.Image),
		Stock:          req.Stock,
		Specifications: req.Specifications,
		Status:         productStatusFor(status, req.Stock),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, "update product", err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete removes a product that no order references.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "product")
	if !ok {
		return
	}

	if _, err := h.store.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		if isForeignKeyViolation(err) {
			writeError(w, http.StatusConflict, "product is referenced by existing orders")
			return
		}
		writeInternalError(w, "delete product", err)
		return
	}

	h.stats.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
