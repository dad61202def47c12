package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/incident-service/internal/api/dto"
	"github.com/helpdesk-labs/incident-service/internal/service"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// ReferencesHandler serves category and status catalogs.
type ReferencesHandler struct {
	service *service.ReferenceService
}

// NewReferencesHandler constructs handler.
func NewReferencesHandler(referenceService *service.ReferenceService) *ReferencesHandler {
	return &ReferencesHandler{service: referenceService}
}

// ListCategories GET /categorias.
func (h *ReferencesHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GetCategory GET /categorias/:id.
func (h *ReferencesHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	category, err := h.service.GetCategory(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// CreateCategory POST /categorias. Admin-only.
func (h *ReferencesHandler) CreateCategory(c *fiber.Ctx) error {
	name, err := parseNameBody(c)
	if err != nil {
		return err
	}
	category, err := h.service.CreateCategory(c.Context(), name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(category)
}

// UpdateCategory PUT /categorias/:id. Admin-only.
func (h *ReferencesHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	name, err := parseNameBody(c)
	if err != nil {
		return err
	}
	if err := h.service.UpdateCategory(c.Context(), id, name); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"mensaje": "categoría actualizada correctamente"})
}

// DeleteCategory DELETE /categorias/:id. Admin-only. Refused while an
// incident still references the category.
func (h *ReferencesHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"mensaje": "categoría eliminada correctamente"})
}

// ListStatuses GET /estados.
func (h *ReferencesHandler) ListStatuses(c *fiber.Ctx) error {
	statuses, err := h.service.ListStatuses(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(statuses)
}

// GetStatus GET /estados/:id.
func (h *ReferencesHandler) GetStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	status, err := h.service.GetStatus(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(status)
}

// CreateStatus POST /estados. Admin-only.
func (h *ReferencesHandler) CreateStatus(c *fiber.Ctx) error {
	name, err := parseNameBody(c)
	if err != nil {
		return err
	}
	status, err := h.service.CreateStatus(c.Context(), name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(status)
}

// UpdateStatus PUT /estados/:id. Admin-only.
func (h *ReferencesHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	name, err := parseNameBody(c)
	if err != nil {
		return err
	}
	if err := h.service.UpdateStatus(c.Context(), id, name); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"mensaje": "estado actualizado correctamente"})
}

// DeleteStatus DELETE /estados/:id. Admin-only.
func (h *ReferencesHandler) DeleteStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteStatus(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"mensaje": "estado eliminado correctamente"})
}

func parseNameBody(c *fiber.Ctx) (string, error) {
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return "", apperrors.NewBadRequest("payload inválido", nil)
	}
	if req.Name == "" {
		return "", apperrors.NewBadRequest("nombre es obligatorio", nil)
	}
	return req.Name, nil
}
