package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/incident-service/internal/api/dto"
	"github.com/helpdesk-labs/incident-service/internal/service"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// AssistantHandler serves category suggestion, FAQ chat and FAQ management.
type AssistantHandler struct {
	service *service.AssistantService
}

// NewAssistantHandler constructs handler.
func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: assistantService}
}

// SuggestCategory POST /ia/sugerir-categoria.
func (h *AssistantHandler) SuggestCategory(c *fiber.Ctx) error {
	var req dto.SuggestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("payload inválido", nil)
	}

	suggestion, err := h.service.SuggestCategory(c.Context(), req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuggestResponse(suggestion))
}

// Chat POST /ia/chat.
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("payload inválido", nil)
	}

	answer, err := h.service.Chat(req.Message)
	if err != nil {
		return err
	}
	return c.JSON(dto.ChatResponse{Answer: answer})
}

// ListFAQs GET /ia/faqs.
func (h *AssistantHandler) ListFAQs(c *fiber.Ctx) error {
	return c.JSON(h.service.ListFAQs())
}

// CreateFAQ POST /ia/faqs. Admin-only.
func (h *AssistantHandler) CreateFAQ(c *fiber.Ctx) error {
	var req dto.FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("payload inválido", nil)
	}

	faq, err := h.service.CreateFAQ(req.Keywords, req.Answer)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(faq)
}

// UpdateFAQ PUT /ia/faqs/:id. Admin-only.
func (h *AssistantHandler) UpdateFAQ(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("payload inválido", nil)
	}

	faq, err := h.service.UpdateFAQ(id, req.Keywords, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(faq)
}

// DeleteFAQ DELETE /ia/faqs/:id. Admin-only.
func (h *AssistantHandler) DeleteFAQ(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.service.DeleteFAQ(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"mensaje": "FAQ eliminada correctamente"})
}
