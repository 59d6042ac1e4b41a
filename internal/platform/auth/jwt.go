// Package auth validates bearer tokens and extracts the caller identity.
//
// Identity verification happens upstream; this package only checks the
// token signature and lifts the already-authenticated subject claim into a
// typed account ID.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"namereg/internal/platform/middleware"
	id "namereg/pkg/domain"
)

// Validator verifies HS256-signed tokens with a shared key.
type Validator struct {
	signingKey []byte
}

// NewValidator creates a Validator over the configured signing key.
func NewValidator(signingKey string) *Validator {
	return &Validator{signingKey: []byte(signingKey)}
}

// ValidateToken parses and verifies a token, returning the caller claims.
// The subject claim must be a valid account ID.
func (v *Validator) ValidateToken(tokenString string) (*middleware.CallerClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}
	account, err := id.ParseAccountID(subject)
	if err != nil {
		return nil, fmt.Errorf("token subject is not an account id: %w", err)
	}
	return &middleware.CallerClaims{Caller: account}, nil
}

// Sign issues a token for an account. Used by tests and local tooling.
func (v *Validator) Sign(account id.AccountID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": account.String(),
	})
	return token.SignedString(v.signingKey)
}
