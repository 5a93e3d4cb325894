package handlers

import (
	"billed/internal/session"
	"billed/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

// requestSession seeds a per-request session with the authenticated user.
func requestSession(c *fiber.Ctx) (session.Session, *session.User, error) {
	email, ok := c.Locals(middleware.LocalEmail).(string)
	if !ok || email == "" {
		return nil, nil, fiber.ErrUnauthorized
	}
	userType, _ := c.Locals(middleware.LocalUserType).(string)

	user := session.User{Type: userType, Email: email}
	sess := session.NewMemory()
	if err := session.SetUser(sess, user); err != nil {
		return nil, nil, err
	}
	return sess, &user, nil
}
