package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/internal/model"
)

// currentUserID reads the acting operator's id set by the auth middleware
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(raw)
}

// actor returns the acting operator's id as the audit string
func actor(c *fiber.Ctx) string {
	if raw, ok := c.Locals("user_id").(string); ok {
		return raw
	}
	return "system"
}

// fail converts a service error into the tagged failure envelope
func fail(c *fiber.Ctx, err error) error {
	return c.Status(apperr.StatusOf(err)).JSON(model.Fail(err.Error()))
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func parseDateParam(c *fiber.Ctx, name string) (time.Time, error) {
	return time.Parse("2006-01-02", c.Params(name))
}

func parseDateQuery(c *fiber.Ctx, name string) (time.Time, error) {
	return time.Parse("2006-01-02", c.Query(name))
}
