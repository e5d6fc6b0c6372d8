package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	resetPurpose  = "password_reset"
	ResetTokenTTL = time.Hour
)

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// ResetClaims are carried by password-reset tokens. Fingerprint binds the
// token to the password hash it was issued against, so it stops validating
// once the password changes.
type ResetClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	Purpose     string    `json:"purpose"`
	Fingerprint string    `json:"fp"`
	jwt.RegisteredClaims
}

func GenerateResetToken(secret string, userID uuid.UUID, passwordHash string) (string, error) {
	claims := ResetClaims{
		UserID:      userID,
		Purpose:     resetPurpose,
		Fingerprint: PasswordFingerprint(passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ResetTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateResetToken(secret, tokenStr string) (*ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &ResetClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResetToken, err)
	}
	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid || claims.Purpose != resetPurpose {
		return nil, ErrInvalidResetToken
	}
	return claims, nil
}

// PasswordFingerprint is a short digest of a stored password hash.
func PasswordFingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}
