package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded, unverified payload of a session token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// DecodeClaims decodes the token payload without verifying the signature.
// The client treats tokens as opaque credentials; this exists only so whoami
// can show who is logged in and when the token lapses. A token that is not a
// JWT is not an error condition for the session itself.
func DecodeClaims(token string) (*Claims, error) {
	parser := jwt.NewParser()
	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, mapClaims); err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}

	claims := &Claims{}
	if subject, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = subject
	}
	if issuedAt, err := mapClaims.GetIssuedAt(); err == nil && issuedAt != nil {
		claims.IssuedAt = issuedAt.Time
	}
	if expiresAt, err := mapClaims.GetExpirationTime(); err == nil && expiresAt != nil {
		claims.ExpiresAt = expiresAt.Time
	}
	return claims, nil
}

// Expired reports whether the claims carry an expiry in the past. A zero
// expiry means the token declared none and is treated as live.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
