package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/service"
)

// StatsGetter is satisfied by *service.StatsService.
type StatsGetter interface {
	Get(ctx context.Context) (service.DashboardStats, error)
}

// ReportsStore defines the database methods needed by report handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ReportsStore interface {
	ListDeliveredOrders(ctx context.Context, arg database.ListDeliveredOrdersParams) ([]database.ListDeliveredOrdersRow, error)
}

// ReportsHandler serves the admin dashboard summary and the delivered-orders
// monitoring feed.
type ReportsHandler struct {
	stats StatsGetter
	store ReportsStore
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(stats StatsGetter, store ReportsStore) *ReportsHandler {
	return &ReportsHandler{stats: stats, store: store}
}

// RegisterRoutes registers admin report endpoints.
// Expected to be mounted at /api.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Get("/stats", h.Stats)
		r.Get("/monitoring/delivered", h.Delivered)
	})
}

// --- Response types ---

type deliveredOrderResponse struct {
	orderResponse
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func toDeliveredOrderResponse(row database.ListDeliveredOrdersRow) deliveredOrderResponse {
	order := database.Order{
		ID:                    row.ID,
		OrderNumber:           row.OrderNumber,
		UserID:                row.UserID,
		TotalAmount:           row.TotalAmount,
		ItemsCount:            row.ItemsCount,
		Status:                row.Status,
		PaymentMethod:         row.PaymentMethod,
		PaymentAmount:         row.PaymentAmount,
		PaymentTransferID:     row.PaymentTransferID,
		PaymentTransferDate:   row.PaymentTransferDate,
		CustomerInfo:          row.CustomerInfo,
		AssemblyScheduledDate: row.AssemblyScheduledDate,
		AssemblyStatus:        row.AssemblyStatus,
		AssemblyCompletedDate: row.AssemblyCompletedDate,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}
	return deliveredOrderResponse{
		orderResponse: toOrderResponse(order),
		Username:      textPtr(row.Username),
		Email:         textPtr(row.Email),
	}
}

// --- Handlers ---

// Stats returns product and order totals for the dashboard.
func (h *ReportsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Get(r.Context())
	if err != nil {
		writeInternalError(w, "get dashboard stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Delivered lists completed orders with their owner's username and email,
// newest first.
func (h *ReportsHandler) Delivered(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	rows, err := h.store.ListDeliveredOrders(r.Context(), database.ListDeliveredOrdersParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeInternalError(w, "list delivered orders", err)
		return
	}

	resp := make([]deliveredOrderResponse, len(rows))
	for i, row := range rows {
		resp[i] = toDeliveredOrderResponse(row)
	}
	writeJSON(w, http.StatusOK, resp)
}
