package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/middleware"
	"github.com/vendops/api/internal/service"
)

// CheckoutServicer defines the service method used by the checkout handler.
// Satisfied by *service.CheckoutService.
type CheckoutServicer interface {
	Checkout(ctx context.Context, req service.CheckoutRequest) (*service.CheckoutResult, error)
}

// CheckoutHandler places single-product orders.
type CheckoutHandler struct {
	svc CheckoutServicer
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(svc CheckoutServicer) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// RegisterRoutes registers the checkout endpoint on the given Chi router.
// Expected to be mounted under /api.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Post("/checkout", h.Checkout)
}

// --- Request types ---

type checkoutRequest struct {
	ProductID           uuid.UUID              `json:"product_id" validate:"required"`
	Quantity            int32                  `json:"quantity" validate:"required,gt=0"`
	TotalAmount         *decimal.Decimal       `json:"total_amount" validate:"required"`
	PaymentMethod       string                 `json:"payment_method" validate:"omitempty,oneof=bank_transfer cashapp venmo western_union"`
	PaymentAmount       *decimal.Decimal       `json:"payment_amount"`
	PaymentTransferID   string                 `json:"payment_transfer_id" validate:"max=200"`
	PaymentTransferDate *dateTime              `json:"payment_transfer_date"`
	CustomerInfo        *database.CustomerInfo `json:"customer_info"`
}

// --- Handlers ---

// Checkout buys quantity units of one product for the caller.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !validateMoney(w,
		moneyField{name: "total_amount", amount: req.TotalAmount, positive: true},
		moneyField{name: "payment_amount", amount: req.PaymentAmount},
	) {
		return
	}

	caller := middleware.UserFromContext(r.Context())
	result, err := h.svc.Checkout(r.Context(), service.CheckoutRequest{
		UserID:              caller.ID,
		ProductID:           req.ProductID,
		Quantity:            req.Quantity,
		TotalAmount:         *req.TotalAmount,
		PaymentMethod:       toPaymentMethod(req.PaymentMethod),
		PaymentAmount:       req.PaymentAmount,
		PaymentTransferID:   req.PaymentTransferID,
		PaymentTransferDate: req.PaymentTransferDate.ptr(),
		CustomerInfo:        req.CustomerInfo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrInsufficientStock):
			writeError(w, http.StatusBadRequest, "insufficient stock available")
		case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrInvalidTotal):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(w, "checkout", err)
		}
		return
	}

	resp := toOrderResponse(result.Order)
	resp.Items = toOrderItemResponses(result.Items)
	writeJSON(w, http.StatusCreated, resp)
}
