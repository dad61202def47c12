package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-labs/incident-service/internal/api/dto"
	"github.com/helpdesk-labs/incident-service/internal/repository"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// PrincipalsHandler exposes user and administrator directories. All
// routes are admin-gated and responses never include password hashes.
type PrincipalsHandler struct {
	users  repository.UserRepository
	admins repository.AdministratorRepository
}

// NewPrincipalsHandler constructs handler.
func NewPrincipalsHandler(users repository.UserRepository, admins repository.AdministratorRepository) *PrincipalsHandler {
	return &PrincipalsHandler{users: users, admins: admins}
}

// ListUsers GET /usuarios.
func (h *PrincipalsHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// GetUser GET /usuarios/:id.
func (h *PrincipalsHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("usuario", nil)
		}
		return err
	}
	return c.JSON(dto.PrincipalResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

// ListAdministrators GET /administradores.
func (h *PrincipalsHandler) ListAdministrators(c *fiber.Ctx) error {
	admins, err := h.admins.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdministratorResponses(admins))
}

// GetAdministrator GET /administradores/:id.
func (h *PrincipalsHandler) GetAdministrator(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	admin, err := h.admins.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("administrador", nil)
		}
		return err
	}
	return c.JSON(dto.PrincipalResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email})
}
