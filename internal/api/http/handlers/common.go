package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// parseIDParam reads a numeric path parameter; a non-numeric value is a
// client error, not a miss.
func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequest("ID inválido, debe ser un número", nil)
	}
	return id, nil
}

func parseQueryInt(c *fiber.Ctx, name string, def int) int {
	val := c.Query(name)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func parseQueryInt64(c *fiber.Ctx, name string) *int64 {
	val := c.Query(name)
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
