package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vendops/api/internal/auth"
	"github.com/vendops/api/internal/database"
	"go.uber.org/zap"
)

type contextKey string

const userKey contextKey = "session_user"

// SessionStore resolves a session token hash to its user.
// Satisfied by *database.Queries.
type SessionStore interface {
	GetSessionUser(ctx context.Context, tokenHash string) (database.GetSessionUserRow, error)
}

// SessionUser is the authenticated caller attached to the request context.
type SessionUser struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Role      string
	SessionID uuid.UUID
}

func (u *SessionUser) IsAdmin() bool { return u.Role == string(database.UserRoleAdmin) }

// Authenticate resolves the session token (cookie or bearer header) and
// attaches the user when it is valid. Unknown or expired sessions pass
// through anonymously; RequireAuth and RequireRole do the gating. A failed
// lookup is a 500.
func Authenticate(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			row, err := store.GetSessionUser(r.Context(), auth.HashSessionToken(token))
			if errors.Is(err, pgx.ErrNoRows) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				zap.L().Error("lookup session", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
				return
			}

			user := &SessionUser{
				ID:        row.UserID,
				Username:  row.Username,
				Email:     row.Email,
				Role:      string(row.Role),
				SessionID: row.SessionID,
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// TokenFromRequest reads the session cookie, then the Authorization header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(auth.SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeJSON(w, http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
		})
	}
}

func UserFromContext(ctx context.Context) *SessionUser {
	user, _ := ctx.Value(userKey).(*SessionUser)
	return user
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *SessionUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
