package handlers

import (
	"context"
	"errors"

	"billed/internal/dto"
	"billed/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler issues the tokens whose email and type claims seed each bills
// request session.
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register an employee
// @Description Open an employee account; back-office accounts are provisioned by the seeder
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Employee email and password"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /user/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	return h.issue(c, &req, fiber.StatusCreated, func(ctx context.Context) (*dto.AuthResponse, error) {
		return h.authService.Register(ctx, &req)
	})
}

// Login godoc
// @Summary Log in
// @Description Exchange employee or admin credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /user/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	return h.issue(c, &req, fiber.StatusOK, func(ctx context.Context) (*dto.AuthResponse, error) {
		return h.authService.Login(ctx, &req)
	})
}

// RefreshToken godoc
// @Summary Refresh access token
// @Description Issue a new token pair, re-reading the account type
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /user/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	return h.issue(c, &req, fiber.StatusOK, func(ctx context.Context) (*dto.AuthResponse, error) {
		return h.authService.RefreshToken(ctx, req.RefreshToken)
	})
}

// issue binds the body into req, runs call and maps its outcome.
func (h *AuthHandler) issue(
	c *fiber.Ctx,
	req any,
	status int,
	call func(ctx context.Context) (*dto.AuthResponse, error),
) error {
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := call(c.Context())
	if err == nil {
		return c.Status(status).JSON(resp)
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An account already uses this email",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verrs.Error(),
		})
	}

	h.logger.Error("Authentication failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Authentication failed",
	})
}
