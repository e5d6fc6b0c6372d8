package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vendops/api/internal/auth"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/handler"
)

// --- Mock store ---

type mockUserStore struct {
	users               map[uuid.UUID]database.User
	revokedAll          []uuid.UUID
	revokedOthers       []database.DeleteOtherUserSessionsParams
	passwordUpdateCalls int
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uuid.UUID]database.User)}
}

func (m *mockUserStore) put(t *testing.T, id uuid.UUID, username, password string) database.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := database.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         database.UserRoleCustomer,
		CreatedAt:    time.Now(),
	}
	m.users[id] = u
	return u
}

func (m *mockUserStore) GetUserByID(_ context.Context, id uuid.UUID) (database.User, error) {
	u, ok := m.users[id]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserStore) UpdateUserPassword(_ context.Context, arg database.UpdateUserPasswordParams) error {
	u, ok := m.users[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	m.passwordUpdateCalls++
	u.PasswordHash = arg.PasswordHash
	m.users[arg.ID] = u
	return nil
}

func (m *mockUserStore) DeleteUserSessions(_ context.Context, userID uuid.UUID) error {
	m.revokedAll = append(m.revokedAll, userID)
	return nil
}

func (m *mockUserStore) DeleteOtherUserSessions(_ context.Context, arg database.DeleteOtherUserSessionsParams) error {
	m.revokedOthers = append(m.revokedOthers, arg)
	return nil
}

// --- Helpers ---

func setupUserRouter(store *mockUserStore, sessions *fakeSessions) *chi.Mux {
	h := handler.NewUserHandler(store, testResetSecret)
	return setupAPIRouter(sessions, h.RegisterRoutes)
}

// --- Me tests ---

func TestMe_Unauthenticated(t *testing.T) {
	router := setupUserRouter(newMockUserStore(), newFakeSessions())

	rr := doRequest(t, router, "GET", "/api/user", nil)
	assertStatus(t, rr, http.StatusUnauthorized)
	assertError(t, rr, "not authenticated")
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	store := newMockUserStore()
	sessions := newFakeSessions()
	token, row := sessions.signIn(t, database.UserRoleCustomer)
	store.put(t, row.UserID, "dana", "secret1")
	router := setupUserRouter(store, sessions)

	rr := doAuthRequest(t, router, "GET", "/api/user", nil, token)
	assertStatus(t, rr, http.StatusOK)

	resp := decodeMap(t, rr)
	if resp["username"] != "dana" {
		t.Errorf("username: got %v, want dana", resp["username"])
	}
	if _, ok := resp["password_hash"]; ok {
		t.Error("response must not expose password_hash")
	}
}

// --- Reset password: authenticated mode ---

func TestResetPassword_CurrentPassword(t *testing.T) {
	store := newMockUserStore()
	sessions := newFakeSessions()
	token, row := sessions.signIn(t, database.UserRoleCustomer)
	store.put(t, row.UserID, "dana", "secret1")
	router := setupUserRouter(store, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/reset-password", map[string]string{
		"current_password": "secret1",
		"new_password":     "secret2",
	}, token)
	assertStatus(t, rr, http.StatusOK)

	if !auth.CheckPassword(store.users[row.UserID].PasswordHash, "secret2") {
		t.Error("password should be updated")
	}
	if len(store.revokedOthers) != 1 {
		t.Fatalf("other-session revocations: got %d, want 1", len(store.revokedOthers))
	}
	if store.revokedOthers[0].ID != row.SessionID {
		t.Error("the current session should be kept")
	}
}

func TestResetPassword_WrongCurrentPassword(t *testing.T) {
	store := newMockUserStore()
	sessions := newFakeSessions()
	token, row := sessions.signIn(t, database.UserRoleCustomer)
	store.put(t, row.UserID, "dana", "secret1")
	router := setupUserRouter(store, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/reset-password", map[string]string{
		"current_password": "nope",
		"new_password":     "secret2",
	}, token)
	assertStatus(t, rr, http.StatusBadRequest)
	if store.passwordUpdateCalls != 0 {
		t.Error("password must not change")
	}
}

func TestResetPassword_ShortNewPassword(t *testing.T) {
	sessions := newFakeSessions()
	token, _ := sessions.signIn(t, database.UserRoleCustomer)
	router := setupUserRouter(newMockUserStore(), sessions)

	rr := doAuthRequest(t, router, "POST", "/api/reset-password", map[string]string{
		"current_password": "secret1",
		"new_password":     "123",
	}, token)
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "validation failed")
}

// --- Reset password: token mode ---

func TestResetPassword_Token(t *testing.T) {
	store := newMockUserStore()
	u := store.put(t, uuid.New(), "erin", "secret1")
	router := setupUserRouter(store, newFakeSessions())

	token, err := auth.GenerateResetToken(testResetSecret, u.ID, u.PasswordHash)
	if err != nil {
		t.Fatalf("generate reset token: %v", err)
	}

	rr := doRequest(t, router, "POST", "/api/reset-password", map[string]string{
		"token":        token,
		"new_password": "fresh-pass",
	})
	assertStatus(t, rr, http.StatusOK)

	if !auth.CheckPassword(store.users[u.ID].PasswordHash, "fresh-pass") {
		t.Error("password should be updated")
	}
	if len(store.revokedAll) != 1 || store.revokedAll[0] != u.ID {
		t.Errorf("revoked sessions: got %v, want [%v]", store.revokedAll, u.ID)
	}

	// The same token cannot be replayed once the password changed.
	rr = doRequest(t, router, "POST", "/api/reset-password", map[string]string{
		"token":        token,
		"new_password": "another-pass",
	})
	assertStatus(t, rr, http.StatusBadRequest)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	router := setupUserRouter(newMockUserStore(), newFakeSessions())

	rr := doRequest(t, router, "POST", "/api/reset-password", map[string]string{
		"token":        "garbage",
		"new_password": "fresh-pass",
	})
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "invalid or expired reset token")
}

func TestResetPassword_NoAuthNoToken(t *testing.T) {
	router := setupUserRouter(newMockUserStore(), newFakeSessions())

	rr := doRequest(t, router, "POST", "/api/reset-password", map[string]string{
		"new_password": "fresh-pass",
	})
	assertStatus(t, rr, http.StatusUnauthorized)
}
