package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Errors returned by the order workflow.
var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidAssemblyStatus  = errors.New("invalid assembly status")
	ErrInvalidTransition      = errors.New("cannot transition")
	ErrStatusConflict         = errors.New("order status changed, please retry")
	ErrAssemblyStatusConflict = errors.New("assembly status changed, please retry")
	ErrAssemblyDateRequired   = errors.New("assembly date is required to schedule")
)

// allowedTransitions maps each order status to the statuses it may move to.
// completed, failed and cancelled are terminal.
var allowedTransitions = map[database.OrderStatus][]database.OrderStatus{
	database.OrderStatusPending: {
		database.OrderStatusPaid,
		database.OrderStatusProcessing,
		database.OrderStatusFailed,
		database.OrderStatusCancelled,
	},
	database.OrderStatusPaid: {
		database.OrderStatusProcessing,
		database.OrderStatusFailed,
		database.OrderStatusCancelled,
	},
	database.OrderStatusProcessing: {
		database.OrderStatusCompleted,
		database.OrderStatusFailed,
		database.OrderStatusCancelled,
	},
}

// allowedAssemblyTransitions keys on the current assembly status; "" means
// the order was never scheduled.
var allowedAssemblyTransitions = map[database.AssemblyScheduleStatus][]database.AssemblyScheduleStatus{
	"": {database.AssemblyScheduleStatusScheduled},
	database.AssemblyScheduleStatusScheduled: {
		database.AssemblyScheduleStatusScheduled,
		database.AssemblyScheduleStatusCompleted,
	},
}

// ValidateOrderTransition checks whether an order may move from one status
// to another. The returned error wraps ErrInvalidTransition.
func ValidateOrderTransition(from, to database.OrderStatus) error {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w from %s to %s", ErrInvalidTransition, from, to)
}

// ValidateAssemblyTransition is ValidateOrderTransition for the assembly
// schedule carried on the order.
func ValidateAssemblyTransition(from database.NullAssemblyScheduleStatus, to database.AssemblyScheduleStatus) error {
	var current database.AssemblyScheduleStatus
	if from.Valid {
		current = from.AssemblyScheduleStatus
	}
	for _, s := range allowedAssemblyTransitions[current] {
		if s == to {
			return nil
		}
	}
	label := string(current)
	if label == "" {
		label = "unscheduled"
	}
	return fmt.Errorf("%w from %s to %s", ErrInvalidTransition, label, to)
}

// OrderWorkflowStore defines the DB methods the workflow needs.
// Satisfied by *database.Queries.
type OrderWorkflowStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	UpdateOrderAssembly(ctx context.Context, arg database.UpdateOrderAssemblyParams) (database.Order, error)
}

// OrderWorkflow drives the order and assembly state machines.
type OrderWorkflow struct {
	store       OrderWorkflowStore
	events      OrderEvents
	orderNumber func() (string, error)
}

func NewOrderWorkflow(store OrderWorkflowStore, events OrderEvents) *OrderWorkflow {
	return &OrderWorkflow{store: store, events: events, orderNumber: NewOrderNumber}
}

// ManualOrderRequest is an order keyed in by an admin. No stock moves.
type ManualOrderRequest struct {
	UserID              *uuid.UUID
	TotalAmount         decimal.Decimal
	ItemsCount          int32
	Status              database.OrderStatus
	PaymentMethod       database.NullPaymentMethod
	PaymentAmount       *decimal.Decimal
	PaymentTransferID   string
	PaymentTransferDate *time.Time
	CustomerInfo        *database.CustomerInfo
}

func (w *OrderWorkflow) CreateOrder(ctx context.Context, req ManualOrderRequest) (database.Order, error) {
	status := req.Status
	if status == "" {
		status = database.OrderStatusPending
	}
	if !status.Valid() {
		return database.Order{}, ErrInvalidStatus
	}

	userID := pgtype.UUID{}
	if req.UserID != nil {
		userID = pgtype.UUID{Bytes: *req.UserID, Valid: true}
	}

	var lastErr error
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		number, err := w.orderNumber()
		if err != nil {
			return database.Order{}, fmt.Errorf("generate order number: %w", err)
		}
		order, err := w.store.CreateOrder(ctx, database.CreateOrderParams{
			OrderNumber:         number,
			UserID:              userID,
			TotalAmount:         decimalToNumeric(req.TotalAmount),
			ItemsCount:          req.ItemsCount,
			Status:              status,
			PaymentMethod:       req.PaymentMethod,
			PaymentAmount:       optionalNumeric(req.PaymentAmount),
			PaymentTransferID:   optionalText(req.PaymentTransferID),
			PaymentTransferDate: optionalTimestamptz(req.PaymentTransferDate),
			CustomerInfo:        req.CustomerInfo,
		})
		if err == nil {
			if w.events != nil {
				w.events.OrderCreated(ctx, order)
			}
			return order, nil
		}
		if !isOrderNumberConflict(err) {
			return database.Order{}, fmt.Errorf("create order: %w", err)
		}
		lastErr = err
	}
	return database.Order{}, lastErr
}

// UpdateStatus moves an order to a new status. The write only lands if the
// status is still the one that was validated.
func (w *OrderWorkflow) UpdateStatus(ctx context.Context, id uuid.UUID, to database.OrderStatus) (database.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderWorkflow.UpdateStatus")
	defer span.End()
	span.SetAttributes(attribute.String("order_id", id.String()), attribute.String("status", string(to)))

	if !to.Valid() {
		return database.Order{}, ErrInvalidStatus
	}

	current, err := w.getOrder(ctx, id)
	if err != nil {
		return database.Order{}, err
	}
	if err := ValidateOrderTransition(current.Status, to); err != nil {
		return database.Order{}, err
	}

	order, err := w.store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		ID:       id,
		Status:   to,
		Status_2: current.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrStatusConflict
		}
		span.RecordError(err)
		return database.Order{}, fmt.Errorf("update order status: %w", err)
	}

	telemetry.OrderStatusTransitionsTotal.WithLabelValues(string(to)).Inc()
	if w.events != nil {
		w.events.OrderStatusChanged(ctx, order, current.Status)
	}
	return order, nil
}

// ScheduleAssembly sets (or moves) the assembly date and marks the order
// scheduled.
func (w *OrderWorkflow) ScheduleAssembly(ctx context.Context, id uuid.UUID, date time.Time) (database.Order, error) {
	return w.moveAssembly(ctx, id, database.AssemblyScheduleStatusScheduled, pgtype.Timestamptz{Time: date, Valid: true})
}

// UpdateAssemblyStatus sets the assembly status directly. completed stamps
// the completion date.
func (w *OrderWorkflow) UpdateAssemblyStatus(ctx context.Context, id uuid.UUID, to database.AssemblyScheduleStatus) (database.Order, error) {
	if !to.Valid() {
		return database.Order{}, ErrInvalidAssemblyStatus
	}
	return w.moveAssembly(ctx, id, to, pgtype.Timestamptz{})
}

func (w *OrderWorkflow) moveAssembly(ctx context.Context, id uuid.UUID, to database.AssemblyScheduleStatus, date pgtype.Timestamptz) (database.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderWorkflow.moveAssembly")
	defer span.End()
	span.SetAttributes(attribute.String("order_id", id.String()), attribute.String("assembly_status", string(to)))

	current, err := w.getOrder(ctx, id)
	if err != nil {
		return database.Order{}, err
	}
	if err := ValidateAssemblyTransition(current.AssemblyStatus, to); err != nil {
		return database.Order{}, err
	}
	// a scheduled order always carries its date
	if to == database.AssemblyScheduleStatusScheduled && !date.Valid && !current.AssemblyScheduledDate.Valid {
		return database.Order{}, ErrAssemblyDateRequired
	}

	order, err := w.store.UpdateOrderAssembly(ctx, database.UpdateOrderAssemblyParams{
		ID:                    id,
		AssemblyStatus:        to,
		AssemblyScheduledDate: date,
		CurrentStatus:         current.AssemblyStatus,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrAssemblyStatusConflict
		}
		return database.Order{}, fmt.Errorf("update order assembly: %w", err)
	}

	if w.events != nil {
		w.events.AssemblyUpdated(ctx, order)
	}
	return order, nil
}

func (w *OrderWorkflow) getOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	order, err := w.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}
