package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the part of a backend credential the portal reads.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenInspector reads backend credentials without verifying them. The backend
// owns the signing key; the portal only uses the claims to size the session.
type TokenInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector builds an inspector.
func NewTokenInspector() *TokenInspector {
	return &TokenInspector{parser: jwt.NewParser()}
}

// Inspect returns the credential's claims, or false when it is not a JWT.
func (ti *TokenInspector) Inspect(credential string) (*Claims, bool) {
	if credential == "" {
		return nil, false
	}
	claims := &Claims{}
	if _, _, err := ti.parser.ParseUnverified(credential, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// ExpiresAt reports the credential's exp claim when present.
func (ti *TokenInspector) ExpiresAt(credential string) (time.Time, bool) {
	claims, ok := ti.Inspect(credential)
	if !ok || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
