package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/incident-service/internal/api/dto"
	"github.com/helpdesk-labs/incident-service/internal/auth"
	"github.com/helpdesk-labs/incident-service/internal/service"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// IncidentsHandler manages incident endpoints.
type IncidentsHandler struct {
	service *service.IncidentService
}

// NewIncidentsHandler constructs handler.
func NewIncidentsHandler(incidentService *service.IncidentService) *IncidentsHandler {
	return &IncidentsHandler{service: incidentService}
}

// List GET /incidencias. Admin-only global listing with optional
// estado_id, categoria_id and q filters.
func (h *IncidentsHandler) List(c *fiber.Ctx) error {
	page := parseQueryInt(c, "page", 1)
	limit := parseQueryInt(c, "limit", 10)

	filter := service.AdminListFilter{
		StatusID:   parseQueryInt64(c, "estado_id"),
		CategoryID: parseQueryInt64(c, "categoria_id"),
	}
	if q := c.Query("q"); q != "" {
		filter.SearchTerm = &q
	}

	items, meta, err := h.service.ListForAdmin(c.Context(), page, limit, filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPagedResponse(meta, dto.NewIncidentDetailResponses(items)))
}

// ListMine GET /incidencias/mias. Owner-scoped listing for end users.
func (h *IncidentsHandler) ListMine(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no autenticado")
	}
	page := parseQueryInt(c, "page", 1)
	limit := parseQueryInt(c, "limit", 10)

	items, meta, err := h.service.ListForOwner(c.Context(), claims.SubjectID, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPagedResponse(meta, dto.NewIncidentDetailResponses(items)))
}

// Get GET /incidencias/:id.
func (h *IncidentsHandler) Get(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no autenticado")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Context(), claims, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewIncidentDetailResponse(detail))
}

// Create POST /incidencias.
func (h *IncidentsHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no autenticado")
	}
	var req dto.IncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("payload inválido", nil)
	}

	incident, err := h.service.Create(c.Context(), claims, incidentInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewIncidentResponse(incident))
}

// Update PUT /incidencias/:id. Full replacement of the editable fields.
func (h *IncidentsHandler) Update(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no autenticado")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.IncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("payload inválido", nil)
	}

	if err := h.service.Update(c.Context(), claims, id, incidentInput(req)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"mensaje": "incidencia actualizada correctamente"})
}

// Delete DELETE /incidencias/:id. Refused while the audit trail still
// references the incident.
func (h *IncidentsHandler) Delete(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no autenticado")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), claims, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"mensaje": "incidencia eliminada correctamente"})
}

func incidentInput(req dto.IncidentRequest) service.IncidentInput {
	return service.IncidentInput{
		Title:           req.Title,
		Description:     req.Description,
		StatusID:        req.StatusID,
		CategoryID:      req.CategoryID,
		OwnerUserID:     req.OwnerUserID,
		AssignedAdminID: req.AssignedAdminID,
	}
}
