// Package middleware holds the fiber middleware guarding the recipient and
// pairing endpoints.
package middleware

import (
	"strings"

	"splitpay/internal/utils"
	"splitpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const bearerPrefix = "Bearer "

// AuthMiddleware verifies HS256 bearer tokens signed with the configured
// secret. An empty secret rejects every request.
type AuthMiddleware struct {
	secret string
	log    *logrus.Entry
}

func NewAuthMiddleware(secret string, log *logrus.Logger) *AuthMiddleware {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AuthMiddleware{
		secret: secret,
		log:    log.WithField("middleware", "auth"),
	}
}

// Handler attaches the token's claims to the request or answers 401.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}

	claims, err := utils.ParseToken(m.secret, token)
	if err != nil {
		m.log.WithError(err).WithField("path", c.Path()).Debug("token rejected")
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	utils.SetClaims(c, claims)
	return c.Next()
}

// Optional lets anonymous requests through without claims. A request that
// does send an Authorization header is checked as by Handler.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		return c.Next()
	}
	return m.Handler(c)
}

// HasPermission requires permission on the caller's token. Admins pass.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return response.Unauthorized(c)
		}
		if !claims.Can(permission) {
			return response.Error(c, fiber.StatusForbidden, "Insufficient permissions")
		}
		return c.Next()
	}
}

func AdminOnly(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	if !claims.IsAdmin() {
		return response.Error(c, fiber.StatusForbidden, "Insufficient permissions")
	}
	return c.Next()
}
