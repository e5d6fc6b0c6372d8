package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vendops/api/internal/auth"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/middleware"
)

// UserStore defines the database methods needed by account handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type UserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error)
	UpdateUserPassword(ctx context.Context, arg database.UpdateUserPasswordParams) error
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) error
	DeleteOtherUserSessions(ctx context.Context, arg database.DeleteOtherUserSessionsParams) error
}

// UserHandler serves the current account: profile and password reset.
type UserHandler struct {
	store       UserStore
	resetSecret string
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(store UserStore, resetSecret string) *UserHandler {
	return &UserHandler{store: store, resetSecret: resetSecret}
}

// RegisterRoutes registers account endpoints on the given Chi router.
// Expected to be mounted under /api behind middleware.Authenticate.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Get("/user", h.Me)
	r.Post("/reset-password", h.ResetPassword)
}

// --- Request / Response types ---

type resetPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	Token           string `json:"token"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// --- Handlers ---

// Me returns the authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller := middleware.UserFromContext(r.Context())

	user, err := h.store.GetUserByID(r.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeInternalError(w, "get current user", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// ResetPassword changes the password either for the signed-in caller (who
// must confirm the current password) or for the holder of a reset token.
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	caller := middleware.UserFromContext(r.Context())
	switch {
	case caller != nil && req.Token == "":
		h.resetWithCurrentPassword(w, r, caller, req)
	case req.Token != "":
		h.resetWithToken(w, r, req)
	default:
		writeError(w, http.StatusUnauthorized, "not authenticated")
	}
}

func (h *UserHandler) resetWithCurrentPassword(w http.ResponseWriter, r *http.Request, caller *middleware.SessionUser, req resetPasswordRequest) {
	if req.CurrentPassword == "" {
		writeValidationErrors(w, fieldError{Field: "current_password", Message: "is required"})
		return
	}

	user, err := h.store.GetUserByID(r.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeInternalError(w, "get user for password change", err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		writeError(w, http.StatusBadRequest, "current password is incorrect")
		return
	}

	if !h.setPassword(w, r, user.ID, req.NewPassword) {
		return
	}

	if err := h.store.DeleteOtherUserSessions(r.Context(), database.DeleteOtherUserSessionsParams{
		UserID: user.ID,
		ID:     caller.SessionID,
	}); err != nil {
		writeInternalError(w, "revoke other sessions", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *UserHandler) resetWithToken(w http.ResponseWriter, r *http.Request, req resetPasswordRequest) {
	claims, err := auth.ValidateResetToken(h.resetSecret, req.Token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or expired reset token")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusBadRequest, "invalid or expired reset token")
			return
		}
		writeInternalError(w, "get user for password reset", err)
		return
	}

	// A token stops working once the password it was issued against changes.
	if claims.Fingerprint != auth.PasswordFingerprint(user.PasswordHash) {
		writeError(w, http.StatusBadRequest, "invalid or expired reset token")
		return
	}

	if !h.setPassword(w, r, user.ID, req.NewPassword) {
		return
	}

	if err := h.store.DeleteUserSessions(r.Context(), user.ID); err != nil {
		writeInternalError(w, "revoke sessions", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *UserHandler) setPassword(w http.ResponseWriter, r *http.Request, userID uuid.UUID, password string) bool {
	hash, err := auth.HashPassword(password)
	if err != nil {
		writeInternalError(w, "hash password", err)
		return false
	}
	if err := h.store.UpdateUserPassword(r.Context(), database.UpdateUserPasswordParams{
		ID:           userID,
		PasswordHash: hash,
	}); err != nil {
		writeInternalError(w, "update password", err)
		return false
	}
	return true
}
