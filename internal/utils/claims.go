package utils

import (
	"errors"

	"splitpay/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Request locals written by the auth middleware.
const (
	LocalClaims = "claims"
	LocalUserID = "userID"
)

var ErrNoClaims = errors.New("request is not authenticated")

// SetClaims attaches verified claims to the request.
func SetClaims(c *fiber.Ctx, claims *models.UserClaims) {
	c.Locals(LocalClaims, claims)
	c.Locals(LocalUserID, claims.UserID)
}

// GetUserClaims returns the claims attached by SetClaims.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals(LocalClaims).(*models.UserClaims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// CurrentUserID is the authenticated caller's durable user id.
func CurrentUserID(c *fiber.Ctx) (string, bool) {
	claims, err := GetUserClaims(c)
	if err != nil || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
