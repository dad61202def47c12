package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/incident-service/internal/api/dto"
	"github.com/helpdesk-labs/incident-service/internal/auth"
	"github.com/helpdesk-labs/incident-service/internal/service"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// AuthHandler exposes registration, login and claim echo endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register. Only end users register here;
// administrators are provisioned out-of-band.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("payload inválido", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("faltan campos obligatorios", nil)
	}

	profile, token, _, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.RegisterResponse{
		Message: "usuario registrado correctamente",
		User:    *profile,
		Token:   token,
	})
}

// Login handles POST /auth/login for either principal kind.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("payload inválido", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("faltan credenciales", nil)
	}

	profile, token, _, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Message: "login correcto",
		Token:   token,
		Profile: *profile,
	})
}

// Me handles POST /auth/me, echoing the verified claim.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no autenticado")
	}
	return c.JSON(fiber.Map{"user": fiber.Map{
		"sub":   claims.SubjectID,
		"role":  claims.Role,
		"email": claims.Email,
		"iat":   claims.IssuedAt,
		"exp":   claims.ExpiresAt,
	}})
}
