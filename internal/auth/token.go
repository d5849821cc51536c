package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"storefront/internal/apperrors"
)

// TokenIssuer signs and verifies time-limited identity tokens. The signing
// secret is injected at construction; request paths never reach into the
// environment for it.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer. An empty secret is tolerated here and
// rejected on use, so a misconfigured process fails per call, not at startup.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token embedding userID, expiring after the issuer's TTL.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	if len(t.secret) == 0 {
		return "", apperrors.ErrMissingSecret
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(t.ttl).Unix(),
		"iat":     time.Now().Unix(),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the embedded user
// identifier. A valid signature with no user identifier in the payload is
// still an invalid token.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	if len(t.secret) == 0 {
		return "", apperrors.ErrMissingSecret
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user identifier", apperrors.ErrInvalidToken)
	}
	return userID, nil
}
