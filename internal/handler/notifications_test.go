package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/handler"
)

// --- Mock store ---

type mockNotificationStore struct {
	notifications map[uuid.UUID]database.Notification
}

func newMockNotificationStore() *mockNotificationStore {
	return &mockNotificationStore{notifications: make(map[uuid.UUID]database.Notification)}
}

// add stores a notification for userID, or a broadcast when userID is uuid.Nil.
func (m *mockNotificationStore) add(userID uuid.UUID, title string) database.Notification {
	n := database.Notification{
		ID:        uuid.New(),
		Title:     title,
		Message:   title,
		Type:      database.NotificationTypeInfo,
		CreatedAt: time.Now(),
	}
	if userID != uuid.Nil {
		n.UserID = pgtype.UUID{Bytes: userID, Valid: true}
	}
	m.notifications[n.ID] = n
	return n
}

func (m *mockNotificationStore) visible(n database.Notification, userID uuid.UUID, includeBroadcast bool) bool {
	if !n.UserID.Valid {
		return includeBroadcast
	}
	return uuid.UUID(n.UserID.Bytes) == userID
}

func (m *mockNotificationStore) ListNotifications(_ context.Context, arg database.ListNotificationsParams) ([]database.Notification, error) {
	var out []database.Notification
	for _, n := range m.notifications {
		if m.visible(n, arg.UserID, arg.IncludeBroadcast) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationStore) MarkNotificationRead(_ context.Context, arg database.MarkNotificationReadParams) (database.Notification, error) {
	n, ok := m.notifications[arg.ID]
	if !ok || !m.visible(n, arg.UserID, arg.IncludeBroadcast) {
		return database.Notification{}, pgx.ErrNoRows
	}
	n.Read = true
	m.notifications[n.ID] = n
	return n, nil
}

func (m *mockNotificationStore) MarkAllNotificationsRead(_ context.Context, arg database.MarkAllNotificationsReadParams) (int64, error) {
	var count int64
	for id, n := range m.notifications {
		if !n.Read && m.visible(n, arg.UserID, arg.IncludeBroadcast) {
			n.Read = true
			m.notifications[id] = n
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationStore) DeleteNotification(_ context.Context, arg database.DeleteNotificationParams) (uuid.UUID, error) {
	n, ok := m.notifications[arg.ID]
	if !ok || !m.visible(n, arg.UserID, arg.IncludeBroadcast) {
		return uuid.Nil, pgx.ErrNoRows
	}
	delete(m.notifications, arg.ID)
	return arg.ID, nil
}

func setupNotificationRouter(store *mockNotificationStore, sessions *fakeSessions) *chi.Mux {
	h := handler.NewNotificationHandler(store)
	return setupAPIRouter(sessions, func(r chi.Router) {
		r.Route("/notifications", h.RegisterRoutes)
	})
}

// --- Tests ---

func TestNotifications_RequireAuth(t *testing.T) {
	router := setupNotificationRouter(newMockNotificationStore(), newFakeSessions())

	rr := doRequest(t, router, "GET", "/api/notifications", nil)
	assertStatus(t, rr, http.StatusUnauthorized)
	assertError(t, rr, "not authenticated")
}

func TestListNotifications_CustomerSeesOwnOnly(t *testing.T) {
	sessions := newFakeSessions()
	token, user := sessions.signIn(t, database.UserRoleCustomer)
	store := newMockNotificationStore()
	store.add(user.UserID, "Order confirmed")
	store.add(uuid.New(), "Someone else's order")
	store.add(uuid.Nil, "New order placed")
	router := setupNotificationRouter(store, sessions)

	rr := doAuthRequest(t, router, "GET", "/api/notifications", nil, token)
	assertStatus(t, rr, http.StatusOK)

	list := decodeList(t, rr)
	if len(list) != 1 || list[0]["title"] != "Order confirmed" {
		t.Fatalf("unexpected list: %v", list)
	}
}

func TestListNotifications_AdminSeesBroadcast(t *testing.T) {
	sessions := newFakeSessions()
	token, admin := sessions.signIn(t, database.UserRoleAdmin)
	store := newMockNotificationStore()
	store.add(admin.UserID, "Password changed")
	store.add(uuid.Nil, "New order placed")
	router := setupNotificationRouter(store, sessions)

	rr := doAuthRequest(t, router, "GET", "/api/notifications", nil, token)
	assertStatus(t, rr, http.StatusOK)
	if list := decodeList(t, rr); len(list) != 2 {
		t.Fatalf("len: got %d, want 2", len(list))
	}
}

func TestMarkNotificationRead(t *testing.T) {
	sessions := newFakeSessions()
	token, user := sessions.signIn(t, database.UserRoleCustomer)
	store := newMockNotificationStore()
	mine := store.add(user.UserID, "Order confirmed")
	broadcast := store.add(uuid.Nil, "New order placed")
	router := setupNotificationRouter(store, sessions)

	rr := doAuthRequest(t, router, "PATCH", "/api/notifications/"+mine.ID.String()+"/read", nil, token)
	assertStatus(t, rr, http.StatusOK)
	if resp := decodeMap(t, rr); resp["read"] != true {
		t.Errorf("read: got %v, want true", resp["read"])
	}

	rr = doAuthRequest(t, router, "PATCH", "/api/notifications/"+broadcast.ID.String()+"/read", nil, token)
	assertStatus(t, rr, http.StatusNotFound)
	assertError(t, rr, "notification not found")
}

func TestMarkAllNotificationsRead(t *testing.T) {
	sessions := newFakeSessions()
	token, admin := sessions.signIn(t, database.UserRoleAdmin)
	store := newMockNotificationStore()
	store.add(admin.UserID, "a")
	store.add(uuid.Nil, "b")
	other := store.add(uuid.New(), "c")
	router := setupNotificationRouter(store, sessions)

	rr := doAuthRequest(t, router, "PATCH", "/api/notifications/mark-all-read", nil, token)
	assertStatus(t, rr, http.StatusOK)
	if resp := decodeMap(t, rr); resp["updated"] != float64(2) {
		t.Errorf("updated: got %v, want 2", resp["updated"])
	}
	if store.notifications[other.ID].Read {
		t.Error("another user's notification was marked read")
	}
}

func TestDeleteNotification(t *testing.T) {
	sessions := newFakeSessions()
	token, user := sessions.signIn(t, database.UserRoleCustomer)
	store := newMockNotificationStore()
	mine := store.add(user.UserID, "Order confirmed")
	router := setupNotificationRouter(store, sessions)

	rr := doAuthRequest(t, router, "DELETE", "/api/notifications/"+mine.ID.String(), nil, token)
	assertStatus(t, rr, http.StatusOK)
	if _, ok := store.notifications[mine.ID]; ok {
		t.Error("notification was not deleted")
	}

	rr = doAuthRequest(t, router, "DELETE", "/api/notifications/bogus", nil, token)
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "invalid notification ID")
}
