package adminauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents verified token claims. A token's claims are only
// trusted once signature and expiry verification succeed.
type AuthClaims interface {
	Subject() string
	UserID() string
	Name() string
	Email() string
	Role() string
	HasRole(role string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       string `json:"uid,omitempty"`
	FullName  string `json:"name,omitempty"`
	UserEmail string `json:"email,omitempty"`
	UserRole  string `json:"role,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the account ID
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Name returns the account's display name
func (c *JWTClaims) Name() string {
	return c.FullName
}

// Email returns the account's email
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// Role returns the account's role
func (c *JWTClaims) Role() string {
	return c.UserRole
}

// HasRole checks if the claims carry a specific role
func (c *JWTClaims) HasRole(role string) bool {
	return c.UserRole == role
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issuance time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
