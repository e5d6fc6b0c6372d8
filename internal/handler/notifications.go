package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/middleware"
)

// NotificationStore defines the database methods needed by notification handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type NotificationStore interface {
	ListNotifications(ctx context.Context, arg database.ListNotificationsParams) ([]database.Notification, error)
	MarkNotificationRead(ctx context.Context, arg database.MarkNotificationReadParams) (database.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, arg database.MarkAllNotificationsReadParams) (int64, error)
	DeleteNotification(ctx context.Context, arg database.DeleteNotificationParams) (uuid.UUID, error)
}

// NotificationHandler serves the caller's notification inbox. Admins also
// see broadcast notifications (no user_id).
type NotificationHandler struct {
	store NotificationStore
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(store NotificationStore) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// RegisterRoutes registers notification endpoints on the given Chi router.
// Expected to be mounted at /api/notifications.
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireAuth)
	r.Get("/", h.List)
	r.Patch("/mark-all-read", h.MarkAllRead)
	r.Patch("/{id}/read", h.MarkRead)
	r.Delete("/{id}", h.Delete)
}

// --- Response types ---

type notificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}

func toNotificationResponse(n database.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		UserID:    uuidPtr(n.UserID),
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// --- Handlers ---

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	limit, offset := parsePagination(r)

	notifications, err := h.store.ListNotifications(r.Context(), database.ListNotificationsParams{
		UserID:           user.ID,
		IncludeBroadcast: user.IsAdmin(),
		Limit:            limit,
		Offset:           offset,
	})
	if err != nil {
		writeInternalError(w, "list notifications", err)
		return
	}

	resp := make([]notificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = toNotificationResponse(n)
	}
	writeJSON(w, http.StatusOK, resp)
}

// MarkRead marks one notification read. Another user's notification is
// reported as not found.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "notification")
	if !ok {
		return
	}
	user := middleware.UserFromContext(r.Context())

	n, err := h.store.MarkNotificationRead(r.Context(), database.MarkNotificationReadParams{
		ID:               id,
		UserID:           user.ID,
		IncludeBroadcast: user.IsAdmin(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		writeInternalError(w, "mark notification read", err)
		return
	}
	writeJSON(w, http.StatusOK, toNotificationResponse(n))
}

// MarkAllRead marks every visible notification read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	updated, err := h.store.MarkAllNotificationsRead(r.Context(), database.MarkAllNotificationsReadParams{
		UserID:           user.ID,
		IncludeBroadcast: user.IsAdmin(),
	})
	if err != nil {
		writeInternalError(w, "mark all notifications read", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

// Delete removes one visible notification.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "notification")
	if !ok {
		return
	}
	user := middleware.UserFromContext(r.Context())

	_, err := h.store.DeleteNotification(r.Context(), database.DeleteNotificationParams{
		ID:               id,
		UserID:           user.ID,
		IncludeBroadcast: user.IsAdmin(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		writeInternalError(w, "delete notification", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "notification deleted"})
}
