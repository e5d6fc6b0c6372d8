package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vendops/api/internal/broker"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/enum"
	"github.com/vendops/api/internal/telemetry"
	"github.com/vendops/api/internal/ws"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

// NotificationStore is satisfied by *database.Queries.
type NotificationStore interface {
	CreateNotification(ctx context.Context, arg database.CreateNotificationParams) (database.Notification, error)
}

// Broadcaster is satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastToRoom(room string, event ws.Event)
}

// EventPublisher is satisfied by *broker.EventPublisher and broker.NopPublisher.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event *broker.OrderEvent) error
}

// StatsInvalidator is satisfied by *StatsService.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// Notifier fans committed order changes out to stored notifications, the
// WebSocket feed, Kafka and the stats cache. Every step is best-effort.
type Notifier struct {
	store     NotificationStore
	hub       Broadcaster
	publisher EventPublisher
	stats     StatsInvalidator
}

func NewNotifier(store NotificationStore, hub Broadcaster, publisher EventPublisher, stats StatsInvalidator) *Notifier {
	return &Notifier{store: store, hub: hub, publisher: publisher, stats: stats}
}

// orderPayload is the WebSocket payload for order events.
type orderPayload struct {
	ID             string  `json:"id"`
	OrderNumber    string  `json:"order_number"`
	Status         string  `json:"status"`
	PreviousStatus string  `json:"previous_status,omitempty"`
	AssemblyStatus *string `json:"assembly_status"`
	TotalAmount    string  `json:"total_amount"`
	UserID         *string `json:"user_id"`
}

func (n *Notifier) OrderCreated(ctx context.Context, order database.Order) {
	if order.UserID.Valid {
		n.notify(ctx, order.UserID, "Order placed",
			fmt.Sprintf("Your order %s has been received.", order.OrderNumber),
			database.NotificationTypeSuccess)
	}
	n.notify(ctx, pgtype.UUID{}, "New order",
		fmt.Sprintf("Order %s was placed for %s.", order.OrderNumber, numericToDecimal(order.TotalAmount).StringFixed(2)),
		database.NotificationTypeInfo)

	n.emit(ctx, enum.EventOrderCreated, order, "")
}

func (n *Notifier) OrderStatusChanged(ctx context.Context, order database.Order, from database.OrderStatus) {
	if order.UserID.Valid {
		n.notify(ctx, order.UserID, "Order updated",
			fmt.Sprintf("Order %s is now %s.", order.OrderNumber, order.Status),
			notificationTypeFor(order.Status))
	}
	n.emit(ctx, enum.EventOrderStatusChanged, order, from)
}

func (n *Notifier) AssemblyUpdated(ctx context.Context, order database.Order) {
	if order.UserID.Valid && order.AssemblyStatus.Valid {
		msg := fmt.Sprintf("Assembly for order %s is %s.", order.OrderNumber, order.AssemblyStatus.AssemblyScheduleStatus)
		if order.AssemblyStatus.AssemblyScheduleStatus == database.AssemblyScheduleStatusScheduled && order.AssemblyScheduledDate.Valid {
			msg = fmt.Sprintf("Assembly for order %s is scheduled for %s.", order.OrderNumber, order.AssemblyScheduledDate.Time.Format("2006-01-02"))
		}
		n.notify(ctx, order.UserID, "Assembly update", msg, database.NotificationTypeInfo)
	}
	n.emit(ctx, enum.EventAssemblyUpdated, order, "")
}

// DeliveryStatusChanged only reaches admins; deliveries have no owner.
func (n *Notifier) DeliveryStatusChanged(ctx context.Context, delivery database.Delivery) {
	payload, err := json.Marshal(map[string]string{
		"id":              delivery.ID.String(),
		"delivery_number": delivery.DeliveryNumber,
		"status":          string(delivery.Status),
	})
	if err != nil {
		return
	}
	n.hub.BroadcastToRoom(enum.RoomAdmin, ws.Event{Type: enum.EventDeliveryUpdated, Payload: payload})
}

func (n *Notifier) notify(ctx context.Context, userID pgtype.UUID, title, message string, typ database.NotificationType) {
	_, err := n.store.CreateNotification(ctx, database.CreateNotificationParams{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	})
	if err != nil {
		zap.L().Error("create notification", zap.String("title", title), zap.Error(err))
	}
}

func (n *Notifier) emit(ctx context.Context, eventType string, order database.Order, from database.OrderStatus) {
	n.stats.Invalidate(ctx)

	p := orderPayload{
		ID:             order.ID.String(),
		OrderNumber:    order.OrderNumber,
		Status:         string(order.Status),
		PreviousStatus: string(from),
		TotalAmount:    numericToDecimal(order.TotalAmount).StringFixed(2),
	}
	if order.AssemblyStatus.Valid {
		s := string(order.AssemblyStatus.AssemblyScheduleStatus)
		p.AssemblyStatus = &s
	}
	if order.UserID.Valid {
		s := uuid.UUID(order.UserID.Bytes).String()
		p.UserID = &s
	}

	payload, err := json.Marshal(p)
	if err != nil {
		zap.L().Error("marshal order event", zap.Error(err))
		return
	}
	event := ws.Event{Type: eventType, Payload: payload}
	n.hub.BroadcastToRoom(enum.RoomAdmin, event)
	if p.UserID != nil {
		n.hub.BroadcastToRoom(*p.UserID, event)
	}

	be := broker.NewOrderEvent(eventType, order.ID, order.OrderNumber, string(order.Status))
	be.TotalAmount = p.TotalAmount
	if p.AssemblyStatus != nil {
		be.AssemblyStatus = *p.AssemblyStatus
	}
	if order.UserID.Valid {
		uid := uuid.UUID(order.UserID.Bytes)
		be.UserID = &uid
	}

	// Publishing must not hold up the response.
	go func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		if err := n.publisher.PublishOrderEvent(ctx, be); err != nil {
			telemetry.EventsPublishFailedTotal.WithLabelValues(eventType).Inc()
			zap.L().Warn("publish order event", zap.String("type", eventType), zap.Error(err))
		}
	}(context.WithoutCancel(ctx))
}

func notificationTypeFor(status database.OrderStatus) database.NotificationType {
	switch status {
	case database.OrderStatusCompleted, database.OrderStatusPaid:
		return database.NotificationTypeSuccess
	case database.OrderStatusCancelled:
		return database.NotificationTypeWarning
	case database.OrderStatusFailed:
		return database.NotificationTypeError
	default:
		return database.NotificationTypeInfo
	}
}
