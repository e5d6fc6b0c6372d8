package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/handler"
	"github.com/vendops/api/internal/service"
)

// --- Mock service ---

type mockCheckoutService struct {
	checkoutFn func(ctx context.Context, req service.CheckoutRequest) (*service.CheckoutResult, error)
	lastReq    *service.CheckoutRequest
}

func (m *mockCheckoutService) Checkout(ctx context.Context, req service.CheckoutRequest) (*service.CheckoutResult, error) {
	m.lastReq = &req
	if m.checkoutFn != nil {
		return m.checkoutFn(ctx, req)
	}
	order := database.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-1700000000000-ABCDEFGHI",
		UserID:      pgtype.UUID{Bytes: req.UserID, Valid: true},
		TotalAmount: testNumeric(req.TotalAmount.StringFixed(2)),
		ItemsCount:  req.Quantity,
		Status:      database.OrderStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if req.PaymentTransferID != "" {
		order.Status = database.OrderStatusPaid
	}
	return &service.CheckoutResult{
		Order: order,
		Items: []database.OrderItem{{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Price:     testNumeric("25.00"),
		}},
	}, nil
}

func setupCheckoutRouter(svc *mockCheckoutService, sessions *fakeSessions) *chi.Mux {
	h := handler.NewCheckoutHandler(svc)
	return setupAPIRouter(sessions, h.RegisterRoutes)
}

func validCheckoutBody(productID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"product_id":   productID.String(),
		"quantity":     2,
		"total_amount": "50.00",
	}
}

// --- Tests ---

func TestCheckout_Created(t *testing.T) {
	sessions := newFakeSessions()
	token, caller := sessions.signIn(t, database.UserRoleCustomer)
	svc := &mockCheckoutService{}
	router := setupCheckoutRouter(svc, sessions)
	productID := uuid.New()

	body := validCheckoutBody(productID)
	body["payment_method"] = "cashapp"
	body["payment_transfer_id"] = "CASH-991"
	body["payment_transfer_date"] = "2026-02-14T10:00:00Z"

	rr := doAuthRequest(t, router, "POST", "/api/checkout", body, token)
	assertStatus(t, rr, http.StatusCreated)

	resp := decodeMap(t, rr)
	if resp["status"] != "paid" {
		t.Errorf("status: got %v, want paid", resp["status"])
	}
	if resp["user_id"] != caller.UserID.String() {
		t.Errorf("user_id: got %v, want %v", resp["user_id"], caller.UserID)
	}
	items := resp["items"].([]interface{})
	if len(items) != 1 || items[0].(map[string]interface{})["product_id"] != productID.String() {
		t.Errorf("items: got %v", items)
	}

	req := svc.lastReq
	if req.UserID != caller.UserID {
		t.Error("checkout should run as the caller")
	}
	if !req.PaymentMethod.Valid || req.PaymentMethod.PaymentMethod != database.PaymentMethodCashapp {
		t.Errorf("payment method: got %+v", req.PaymentMethod)
	}
	if req.PaymentTransferDate == nil || req.PaymentTransferDate.Day() != 14 {
		t.Errorf("payment transfer date: got %v", req.PaymentTransferDate)
	}
}

func TestCheckout_Unauthenticated(t *testing.T) {
	svc := &mockCheckoutService{}
	router := setupCheckoutRouter(svc, newFakeSessions())

	rr := doRequest(t, router, "POST", "/api/checkout", validCheckoutBody(uuid.New()))
	assertStatus(t, rr, http.StatusUnauthorized)
	if svc.lastReq != nil {
		t.Error("service must not be called")
	}
}

func TestCheckout_ProductNotFound(t *testing.T) {
	sessions := newFakeSessions()
	token, _ := sessions.signIn(t, database.UserRoleCustomer)
	svc := &mockCheckoutService{checkoutFn: func(context.Context, service.CheckoutRequest) (*service.CheckoutResult, error) {
		return nil, fmt.Errorf("lock product: %w", service.ErrProductNotFound)
	}}
	router := setupCheckoutRouter(svc, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/checkout", validCheckoutBody(uuid.New()), token)
	assertStatus(t, rr, http.StatusNotFound)
	assertError(t, rr, "product not found")
}

func TestCheckout_InsufficientStock(t *testing.T) {
	sessions := newFakeSessions()
	token, _ := sessions.signIn(t, database.UserRoleCustomer)
	svc := &mockCheckoutService{checkoutFn: func(context.Context, service.CheckoutRequest) (*service.CheckoutResult, error) {
		return nil, service.ErrInsufficientStock
	}}
	router := setupCheckoutRouter(svc, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/checkout", validCheckoutBody(uuid.New()), token)
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "insufficient stock available")
}

func TestCheckout_ValidationErrors(t *testing.T) {
	sessions := newFakeSessions()
	token, _ := sessions.signIn(t, database.UserRoleCustomer)
	svc := &mockCheckoutService{}
	router := setupCheckoutRouter(svc, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/checkout", map[string]interface{}{
		"quantity":       0,
		"payment_method": "bitcoin",
	}, token)
	assertStatus(t, rr, http.StatusBadRequest)

	resp := decodeMap(t, rr)
	if resp["error"] != "validation failed" {
		t.Fatalf("error: got %v", resp["error"])
	}
	fields := map[string]bool{}
	for _, e := range resp["errors"].([]interface{}) {
		fields[e.(map[string]interface{})["field"].(string)] = true
	}
	for _, f := range []string{"product_id", "quantity", "total_amount", "payment_method"} {
		if !fields[f] {
			t.Errorf("expected field error for %q, got %v", f, fields)
		}
	}
	if svc.lastReq != nil {
		t.Error("service must not be called")
	}
}

func TestCheckout_NonPositiveTotal(t *testing.T) {
	sessions := newFakeSessions()
	token, _ := sessions.signIn(t, database.UserRoleCustomer)
	svc := &mockCheckoutService{}
	router := setupCheckoutRouter(svc, sessions)

	body := validCheckoutBody(uuid.New())
	body["total_amount"] = "0"
	rr := doAuthRequest(t, router, "POST", "/api/checkout", body, token)
	assertStatus(t, rr, http.StatusBadRequest)
	if svc.lastReq != nil {
		t.Error("service must not be called")
	}
}

func TestCheckout_TotalOutOfRange(t *testing.T) {
	sessions := newFakeSessions()
	token, _ := sessions.signIn(t, database.UserRoleCustomer)
	svc := &mockCheckoutService{}
	router := setupCheckoutRouter(svc, sessions)

	body := validCheckoutBody(uuid.New())
	body["total_amount"] = "1e9"
	rr := doAuthRequest(t, router, "POST", "/api/checkout", body, token)
	assertStatus(t, rr, http.StatusBadRequest)

	errs := decodeMap(t, rr)["errors"].([]interface{})
	if len(errs) != 1 || errs[0].(map[string]interface{})["field"] != "total_amount" {
		t.Errorf("field errors: got %v, want total_amount", errs)
	}
	if svc.lastReq != nil {
		t.Error("service must not be called")
	}
}

func TestCheckout_InvalidTransferDate(t *testing.T) {
	sessions := newFakeSessions()
	token, _ := sessions.signIn(t, database.UserRoleCustomer)
	router := setupCheckoutRouter(&mockCheckoutService{}, sessions)

	body := validCheckoutBody(uuid.New())
	body["payment_transfer_date"] = "14/02/2026"
	rr := doAuthRequest(t, router, "POST", "/api/checkout", body, token)
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "invalid request body")
}
