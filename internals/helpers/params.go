package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseUUIDParam: path param → uuid, 400 dengan msg kalau formatnya salah
func ParseUUIDParam(c *fiber.Ctx, name, msg string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, msg)
	}
	return id, nil
}

// ParseUUIDQuery: query kosong → nil, formatnya salah → 400
func ParseUUIDQuery(c *fiber.Ctx, name, msg string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, msg)
	}
	return &id, nil
}
