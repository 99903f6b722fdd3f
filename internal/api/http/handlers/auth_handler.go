package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-compliance-service/internal/api/dto"
	"github.com/spec-kit/sla-compliance-service/internal/service"
	apperrors "github.com/spec-kit/sla-compliance-service/pkg/util"
)

// AuthHandler exposes the PIN login endpoint.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PIN == "" {
		return apperrors.NewValidationError("pin required", nil)
	}

	token, expiresAt, err := h.service.Login(req.PIN)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{Token: token, ExpiresAt: expiresAt}})
}
