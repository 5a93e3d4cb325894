package middleware

import (
	"strings"

	"billed/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Locals keys set for authenticated requests.
const (
	LocalUserID   = "userID"
	LocalEmail    = "email"
	LocalUserType = "userType"
)

func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if token == "" {
			logger.Warn("Missing authorization token", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil || claims.Email == "" {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalUserType, claims.Type)

		return c.Next()
	}
}
