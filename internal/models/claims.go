package models

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleViewer = "viewer"
)

// UserClaims identify the caller of the recipient and pairing endpoints.
// UserID is the durable chat-platform user id recipients are keyed by.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// HasPermission reports whether the token lists permission explicitly.
func (c *UserClaims) HasPermission(permission string) bool {
	return slices.Contains(c.Permissions, permission)
}

// Can is HasPermission with the admin override.
func (c *UserClaims) Can(permission string) bool {
	return c.IsAdmin() || c.HasPermission(permission)
}
