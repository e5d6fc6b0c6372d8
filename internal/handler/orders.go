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
	"github.com/shopspring/decimal"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/middleware"
	"github.com/vendops/api/internal/service"
)

// OrderWorkflower defines the service methods that drive order state.
// Satisfied by *service.OrderWorkflow.
type OrderWorkflower interface {
	CreateOrder(ctx context.Context, req service.ManualOrderRequest) (database.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to database.OrderStatus) (database.Order, error)
	ScheduleAssembly(ctx context.Context, id uuid.UUID, date time.Time) (database.Order, error)
	UpdateAssemblyStatus(ctx context.Context, id uuid.UUID, to database.AssemblyScheduleStatus) (database.Order, error)
}

// OrderStore defines the database methods needed by order read and edit handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	UpdateOrder(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error)
	ListOrdersForExport(ctx context.Context, arg database.ListOrdersForExportParams) ([]database.Order, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	workflow OrderWorkflower
	store    OrderStore
	stats    StatsInvalidator
}

// NewOrderHandler creates a new OrderHandler. stats may be nil.
func NewOrderHandler(workflow OrderWorkflower, store OrderStore, stats StatsInvalidator) *OrderHandler {
	return &OrderHandler{workflow: workflow, store: store, stats: orNop(stats)}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /api/orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireAuth)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Post("/", h.Create)
		r.Get("/export", h.Export)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Post("/{id}/assembly", h.ScheduleAssembly)
		r.Patch("/{id}/assembly", h.UpdateAssemblyStatus)
	})
}

// --- Request / Response types ---

type createOrderRequest struct {
	UserID              *uuid.UUID             `json:"user_id"`
	TotalAmount         *decimal.Decimal       `json:"total_amount" validate:"required"`
	ItemsCount          int32                  `json:"items_count" validate:"gte=0"`
	Status              string                 `json:"status" validate:"omitempty,oneof=pending paid processing completed failed cancelled"`
	PaymentMethod       string                 `json:"payment_method" validate:"omitempty,oneof=bank_transfer cashapp venmo western_union"`
	PaymentAmount       *decimal.Decimal       `json:"payment_amount"`
	PaymentTransferID   string                 `json:"payment_transfer_id" validate:"max=200"`
	PaymentTransferDate *dateTime              `json:"payment_transfer_date"`
	CustomerInfo        *database.CustomerInfo `json:"customer_info"`
}

type updateOrderRequest struct {
	TotalAmount         *decimal.Decimal       `json:"total_amount" validate:"required"`
	ItemsCount          int32                  `json:"items_count" validate:"gte=0"`
	PaymentMethod       string                 `json:"payment_method" validate:"omitempty,oneof=bank_transfer cashapp venmo western_union"`
	PaymentAmount       *decimal.Decimal       `json:"payment_amount"`
	PaymentTransferID   string                 `json:"payment_transfer_id" validate:"max=200"`
	PaymentTransferDate *dateTime              `json:"payment_transfer_date"`
	CustomerInfo        *database.CustomerInfo `json:"customer_info"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type scheduleAssemblyRequest struct {
	AssemblyScheduledDate string `json:"assembly_scheduled_date"`
}

type updateAssemblyStatusRequest struct {
	AssemblyStatus string `json:"assembly_status"`
}

type orderItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type orderResponse struct {
	ID                    uuid.UUID              `json:"id"`
	OrderNumber           string                 `json:"order_number"`
	UserID                *uuid.UUID             `json:"user_id"`
	TotalAmount           string                 `json:"total_amount"`
	ItemsCount            int32                  `json:"items_count"`
	Status                string                 `json:"status"`
	PaymentMethod         *string                `json:"payment_method"`
	PaymentAmount         *string                `json:"payment_amount"`
	PaymentTransferID     *string                `json:"payment_transfer_id"`
	PaymentTransferDate   *time.Time             `json:"payment_transfer_date"`
	CustomerInfo          *database.CustomerInfo `json:"customer_info"`
	AssemblyScheduledDate *time.Time             `json:"assembly_scheduled_date"`
	AssemblyStatus        *string                `json:"assembly_status"`
	AssemblyCompletedDate *time.Time             `json:"assembly_completed_date"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
	Items                 []orderItemResponse    `json:"items,omitempty"`
}

func toOrderResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		UserID:                uuidPtr(o.UserID),
		TotalAmount:           numericToString(o.TotalAmount),
		ItemsCount:            o.ItemsCount,
		Status:                string(o.Status),
		PaymentAmount:         numericToStringPtr(o.PaymentAmount),
		PaymentTransferID:     textPtr(o.PaymentTransferID),
		PaymentTransferDate:   timePtr(o.PaymentTransferDate),
		CustomerInfo:          o.CustomerInfo,
		AssemblyScheduledDate: timePtr(o.AssemblyScheduledDate),
		AssemblyCompletedDate: timePtr(o.AssemblyCompletedDate),
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
	if o.PaymentMethod.Valid {
		m := string(o.PaymentMethod.PaymentMethod)
		resp.PaymentMethod = &m
	}
	if o.AssemblyStatus.Valid {
		s := string(o.AssemblyStatus.AssemblyScheduleStatus)
		resp.AssemblyStatus = &s
	}
	return resp
}

func toOrderItemResponses(items []database.OrderItem) []orderItemResponse {
	resp := make([]orderItemResponse, len(items))
	for i, it := range items {
		resp[i] = orderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     numericToString(it.Price),
			CreatedAt: it.CreatedAt,
		}
	}
	return resp
}

func toPaymentMethod(s string) database.NullPaymentMethod {
	if s == "" {
		return database.NullPaymentMethod{}
	}
	return database.NullPaymentMethod{PaymentMethod: database.PaymentMethod(s), Valid: true}
}

// --- Handlers ---

// List returns orders newest first. Customers only ever see their own.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.UserFromContext(r.Context())
	limit, offset := parsePagination(r)
	params := database.ListOrdersParams{Limit: limit, Offset: offset}

	if v := r.URL.Query().Get("status"); v != "" {
		status := database.OrderStatus(v)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		params.Status = database.NullOrderStatus{OrderStatus: status, Valid: true}
	}

	if caller.IsAdmin() {
		if v := r.URL.Query().Get("user_id"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid user ID")
				return
			}
			params.UserID = pgtype.UUID{Bytes: id, Valid: true}
		}
	} else {
		params.UserID = pgtype.UUID{Bytes: caller.ID, Valid: true}
	}

	orders, err := h.store.ListOrders(r.Context(), params)
	if err != nil {
		writeInternalError(w, "list orders", err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns an order with its items. Another customer's order is reported
// as not found.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "order")
	if !ok {
		return
	}
	caller := middleware.UserFromContext(r.Context())

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeInternalError(w, "get order", err)
		return
	}
	if !caller.IsAdmin() && (!order.UserID.Valid || uuid.UUID(order.UserID.Bytes) != caller.ID) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	items, err := h.store.ListOrderItemsByOrder(r.Context(), id)
	if err != nil {
		writeInternalError(w, "list order items", err)
		return
	}

	resp := toOrderResponse(order)
	resp.Items = toOrderItemResponses(items)
	if resp.Items == nil {
		resp.Items = []orderItemResponse{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create records a manually entered order. No stock is moved.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !validateMoney(w,
		moneyField{name: "total_amount", amount: req.TotalAmount, positive: true},
		moneyField{name: "payment_amount", amount: req.PaymentAmount},
	) {
		return
	}

	order, err := h.workflow.CreateOrder(r.Context(), service.ManualOrderRequest{
		UserID:              req.UserID,
		TotalAmount:         *req.TotalAmount,
		ItemsCount:          req.ItemsCount,
		Status:              database.OrderStatus(req.Status),
		PaymentMethod:       toPaymentMethod(req.PaymentMethod),
		PaymentAmount:       req.PaymentAmount,
		PaymentTransferID:   req.PaymentTransferID,
		PaymentTransferDate: req.PaymentTransferDate.ptr(),
		CustomerInfo:        req.CustomerInfo,
	})
	if err != nil {
		h.writeWorkflowError(w, "create order", err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// Update edits totals, payment and customer details. Status is not
// writable here.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "order")
	if !ok {
		return
	}

	var req updateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !validateMoney(w,
		moneyField{name: "total_amount", amount: req.TotalAmount, positive: true},
		moneyField{name: "payment_amount", amount: req.PaymentAmount},
	) {
		return
	}

	order, err := h.store.UpdateOrder(r.Context(), database.UpdateOrderParams{
		ID:                  id,
		TotalAmount:         decimalToNumeric(*req.TotalAmount),
		ItemsCount:          req.ItemsCount,
		PaymentMethod:       toPaymentMethod(req.PaymentMethod),
		PaymentAmount:       optionalNumeric(req.PaymentAmount),
		PaymentTransferID:   toText(req.PaymentTransferID),
		PaymentTransferDate: toTimestamptz(req.PaymentTransferDate.ptr()),
		CustomerInfo:        req.CustomerInfo,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeInternalError(w, "update order", err)
		return
	}

	h.stats.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateStatus moves an order along its status workflow.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "order")
	if !ok {
		return
	}

	var req updateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.workflow.UpdateStatus(r.Context(), id, database.OrderStatus(req.Status))
	if err != nil {
		h.writeWorkflowError(w, "update order status", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// ScheduleAssembly sets the assembly date and marks it scheduled.
func (h *OrderHandler) ScheduleAssembly(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "order")
	if !ok {
		return
	}

	var req scheduleAssemblyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.AssemblyScheduledDate == "" {
		writeValidationErrors(w, fieldError{Field: "assembly_scheduled_date", Message: "is required"})
		return
	}
	date, err := parseDate(req.AssemblyScheduledDate)
	if err != nil {
		writeValidationErrors(w, fieldError{Field: "assembly_scheduled_date", Message: "must be an RFC3339 timestamp or YYYY-MM-DD date"})
		return
	}

	order, err := h.workflow.ScheduleAssembly(r.Context(), id, date)
	if err != nil {
		h.writeWorkflowError(w, "schedule assembly", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateAssemblyStatus moves the assembly along none → scheduled → completed.
func (h *OrderHandler) UpdateAssemblyStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "order")
	if !ok {
		return
	}

	var req updateAssemblyStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.workflow.UpdateAssemblyStatus(r.Context(), id, database.AssemblyScheduleStatus(req.AssemblyStatus))
	if err != nil {
		h.writeWorkflowError(w, "update assembly status", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) writeWorkflowError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid status")
	case errors.Is(err, service.ErrInvalidAssemblyStatus):
		writeError(w, http.StatusBadRequest, "invalid assembly status")
	case errors.Is(err, service.ErrAssemblyDateRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrStatusConflict),
		errors.Is(err, service.ErrAssemblyStatusConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeInternalError(w, op, err)
	}
}
