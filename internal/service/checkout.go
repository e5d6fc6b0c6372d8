package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

const (
	maxOrderNumberRetries = 3
	orderNumberConstraint = "orders_order_number_key"
	orderNumberSuffixLen  = 9
	base36                = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Errors returned by the checkout service.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock available")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrInvalidTotal      = errors.New("total_amount must be greater than 0")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CheckoutStore defines the DB methods needed to place an order.
// Satisfied by *database.Queries (and its WithTx variant).
type CheckoutStore interface {
	GetProductForUpdate(ctx context.Context, id uuid.UUID) (database.Product, error)
	UpdateProductStock(ctx context.Context, arg database.UpdateProductStockParams) (database.Product, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
}

// NewCheckoutStore creates a CheckoutStore from a DBTX (pool or tx).
type NewCheckoutStore func(db database.DBTX) CheckoutStore

// OrderEvents receives order lifecycle changes after they are committed.
// Implementations must not fail the caller.
type OrderEvents interface {
	OrderCreated(ctx context.Context, order database.Order)
	OrderStatusChanged(ctx context.Context, order database.Order, from database.OrderStatus)
	AssemblyUpdated(ctx context.Context, order database.Order)
}

// CheckoutRequest is the validated input for a single-product checkout.
type CheckoutRequest struct {
	UserID              uuid.UUID
	ProductID           uuid.UUID
	Quantity            int32
	TotalAmount         decimal.Decimal
	PaymentMethod       database.NullPaymentMethod
	PaymentAmount       *decimal.Decimal
	PaymentTransferID   string
	PaymentTransferDate *time.Time
	CustomerInfo        *database.CustomerInfo
}

// CheckoutResult is the created order with its line item and the product
// as it looks after the stock movement.
type CheckoutResult struct {
	Order   database.Order
	Items   []database.OrderItem
	Product database.Product
}

// CheckoutService places orders against product stock.
type CheckoutService struct {
	pool        TxBeginner
	newStore    NewCheckoutStore
	events      OrderEvents
	orderNumber func() (string, error)
}

func NewCheckoutService(pool TxBeginner, newStore NewCheckoutStore, events OrderEvents) *CheckoutService {
	return &CheckoutService{
		pool:        pool,
		newStore:    newStore,
		events:      events,
		orderNumber: NewOrderNumber,
	}
}

// Checkout decrements stock and records the order and its item atomically.
// The product row is locked for the life of the transaction, so concurrent
// checkouts of the same product serialize and stock never goes negative.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "CheckoutService.Checkout")
	defer span.End()
	span.SetAttributes(
		attribute.String("product_id", req.ProductID.String()),
		attribute.Int("quantity", int(req.Quantity)),
	)

	start := time.Now()
	defer func() { telemetry.CheckoutLatency.Observe(time.Since(start).Seconds()) }()

	if req.Quantity <= 0 {
		telemetry.CheckoutsFailedTotal.WithLabelValues("invalid_quantity").Inc()
		return nil, ErrInvalidQuantity
	}
	if !req.TotalAmount.IsPositive() {
		telemetry.CheckoutsFailedTotal.WithLabelValues("invalid_total").Inc()
		return nil, ErrInvalidTotal
	}

	var lastErr error
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		result, err := s.checkoutTx(ctx, req)
		if err == nil {
			telemetry.CheckoutsTotal.Inc()
			if s.events != nil {
				s.events.OrderCreated(ctx, result.Order)
			}
			return result, nil
		}
		if isOrderNumberConflict(err) {
			lastErr = err
			continue
		}
		span.RecordError(err)
		telemetry.CheckoutsFailedTotal.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}
	telemetry.CheckoutsFailedTotal.WithLabelValues("order_number_conflict").Inc()
	return nil, lastErr
}

func (s *CheckoutService) checkoutTx(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// --- Lock product and check stock ---
	product, err := store.GetProductForUpdate(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if req.Quantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	// --- Move stock ---
	product, err = store.UpdateProductStock(ctx, database.UpdateProductStockParams{
		ID:    product.ID,
		Stock: product.Stock - req.Quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}

	// --- Insert order ---
	orderNumber, err := s.orderNumber()
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}

	status := database.OrderStatusPending
	if strings.TrimSpace(req.PaymentTransferID) != "" {
		status = database.OrderStatusPaid
	}

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		OrderNumber:         orderNumber,
		UserID:              pgtype.UUID{Bytes: req.UserID, Valid: req.UserID != uuid.Nil},
		TotalAmount:         decimalToNumeric(req.TotalAmount),
		ItemsCount:          req.Quantity,
		Status:              status,
		PaymentMethod:       req.PaymentMethod,
		PaymentAmount:       optionalNumeric(req.PaymentAmount),
		PaymentTransferID:   optionalText(req.PaymentTransferID),
		PaymentTransferDate: optionalTimestamptz(req.PaymentTransferDate),
		CustomerInfo:        req.CustomerInfo,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// --- Insert item at the current price ---
	item, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Price:     product.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("create order item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &CheckoutResult{
		Order:   order,
		Items:   []database.OrderItem{item},
		Product: product,
	}, nil
}

// NewOrderNumber returns ORD-<unix millis>-<9 random base36 chars>.
func NewOrderNumber() (string, error) {
	var sb strings.Builder
	radix := big.NewInt(int64(len(base36)))
	for i := 0; i < orderNumberSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, radix)
		if err != nil {
			return "", err
		}
		sb.WriteByte(base36[n.Int64()])
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), sb.String()), nil
}

// isOrderNumberConflict reports a unique violation on the order number.
func isOrderNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == orderNumberConstraint
	}
	return false
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "error"
	}
}
