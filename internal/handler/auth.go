package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vendops/api/internal/auth"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/mail"
	"go.uber.org/zap"
)

// AuthStore defines the database methods needed by auth handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type AuthStore interface {
	CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error)
	GetUserByEmail(ctx context.Context, email string) (database.User, error)
	GetUserByUsername(ctx context.Context, username string) (database.User, error)
	CreateSession(ctx context.Context, arg database.CreateSessionParams) (database.Session, error)
	DeleteSession(ctx context.Context, tokenHash string) error
}

// AuthConfig carries the session and reset-link settings.
type AuthConfig struct {
	SessionTTL   time.Duration
	CookieSecure bool
	ResetSecret  string
	AppBaseURL   string
}

// AuthHandler handles registration, login, logout and forgot-password.
type AuthHandler struct {
	store  AuthStore
	mailer mail.Mailer
	cfg    AuthConfig
}

func NewAuthHandler(store AuthStore, mailer mail.Mailer, cfg AuthConfig) *AuthHandler {
	return &AuthHandler{store: store, mailer: mailer, cfg: cfg}
}

// RegisterRoutes registers auth endpoints on the given Chi router.
// Expected to be mounted under /api.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Post("/forgot-password", h.ForgotPassword)
}

// --- Request / Response types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	userResponse
	Token string `json:"token"`
}

func toUserResponse(u database.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// --- Handlers ---

// Register creates a customer account and signs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeInternalError(w, "hash password", err)
		return
	}

	user, err := h.store.CreateUser(r.Context(), database.CreateUserParams{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         database.UserRoleCustomer,
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeError(w, http.StatusBadRequest, "username or email already exists")
			return
		}
		writeInternalError(w, "create user", err)
		return
	}

	h.startSession(w, r, user, http.StatusCreated)
}

// Login accepts a username, or an email when the value contains "@".
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var (
		user database.User
		err  error
	)
	if strings.Contains(req.Username, "@") {
		user, err = h.store.GetUserByEmail(r.Context(), strings.TrimSpace(req.Username))
	} else {
		user, err = h.store.GetUserByUsername(r.Context(), strings.TrimSpace(req.Username))
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		writeInternalError(w, "get user for login", err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	h.startSession(w, r, user, http.StatusOK)
}

// Logout deletes the current session, if any, and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionTokenFrom(r); token != "" {
		if err := h.store.DeleteSession(r.Context(), auth.HashSessionToken(token)); err != nil {
			writeInternalError(w, "delete session", err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// ForgotPassword mails a one-hour reset link.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeInternalError(w, "get user by email", err)
		return
	}

	token, err := auth.GenerateResetToken(h.cfg.ResetSecret, user.ID, user.PasswordHash)
	if err != nil {
		writeInternalError(w, "generate reset token", err)
		return
	}

	link := strings.TrimRight(h.cfg.AppBaseURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
	if err := h.mailer.SendPasswordReset(r.Context(), user.Email, user.Username, link); err != nil {
		zap.L().Error("send password reset", zap.String("user_id", user.ID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to send reset email")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password reset email sent"})
}

// --- Helpers ---

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user database.User, status int) {
	token, hash, err := auth.NewSessionToken()
	if err != nil {
		writeInternalError(w, "new session token", err)
		return
	}

	expires := time.Now().Add(h.cfg.SessionTTL)
	if _, err := h.store.CreateSession(r.Context(), database.CreateSessionParams{
		TokenHash: hash,
		UserID:    user.ID,
		ExpiresAt: expires,
	}); err != nil {
		writeInternalError(w, "create session", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, status, sessionResponse{userResponse: toUserResponse(user), Token: token})
}

func sessionTokenFrom(r *http.Request) string {
	if c, err := r.Cookie(auth.SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
