package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the minimal set of user attributes carried by a session
// token. It never holds secrets.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// IsZero reports whether the identity carries no user reference
func (i Identity) IsZero() bool {
	return i.ID == "" && i.Username == ""
}

// JWTClaims is the payload signed into every session token
type JWTClaims struct {
	jwt.RegisteredClaims
	UID      string `json:"id"`
	Username string `json:"username"`
}

// Identity narrows the claims to the {id, username} projection
func (c *JWTClaims) Identity() Identity {
	if c == nil {
		return Identity{}
	}
	return Identity{
		ID:       c.UID,
		Username: c.Username,
	}
}

// Expires returns the expiration time, zero if not set
func (c *JWTClaims) Expires() time.Time {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// IssuedAt returns the issue time, zero if not set
func (c *JWTClaims) IssuedAt() time.Time {
	if c == nil || c.RegisteredClaims.IssuedAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.IssuedAt.Time
}
