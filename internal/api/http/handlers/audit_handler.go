package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/incident-service/internal/api/dto"
	"github.com/helpdesk-labs/incident-service/internal/auth"
	"github.com/helpdesk-labs/incident-service/internal/service"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// AuditHandler manages audit trail endpoints.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{service: auditService}
}

// List GET /historiales.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	entries, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAuditDetailResponses(entries))
}

// ListByIncident GET /historiales/incidencia/:incidenciaId.
func (h *AuditHandler) ListByIncident(c *fiber.Ctx) error {
	incidentID, err := parseIDParam(c, "incidenciaId")
	if err != nil {
		return err
	}
	entries, err := h.service.ListByIncident(c.Context(), incidentID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAuditDetailResponses(entries))
}

// Get GET /historiales/:id.
func (h *AuditHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAuditDetailResponse(entry))
}

// Create POST /historiales. Admin-only.
func (h *AuditHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no autenticado")
	}
	var req dto.AuditRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("payload inválido", nil)
	}

	entry, err := h.service.Create(c.Context(), claims, auditInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAuditResponse(entry))
}

// Update PUT /historiales/:id. Admin-only amendment of an entry.
func (h *AuditHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AuditRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("payload inválido", nil)
	}

	if err := h.service.Update(c.Context(), id, auditInput(req)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"mensaje": "historial actualizado correctamente"})
}

// Delete DELETE /historiales/:id. Admin-only.
func (h *AuditHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"mensaje": "historial eliminado correctamente"})
}

func auditInput(req dto.AuditRequest) service.AuditInput {
	return service.AuditInput{
		ChangedAt:        req.ChangedAt,
		Description:      req.Description,
		FromStatusID:     req.FromStatusID,
		ToStatusID:       req.ToStatusID,
		IncidentID:       req.IncidentID,
		ChangedByAdminID: req.ChangedByAdminID,
	}
}
