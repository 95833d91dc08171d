package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/service"
)

type TillHandler struct {
	tillService service.TillService
}

func NewTillHandler(tillService service.TillService) *TillHandler {
	return &TillHandler{tillService: tillService}
}

func (h *TillHandler) Open(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(model.Fail("Unauthorized"))
	}

	var req model.OpenTillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	session, err := h.tillService.Open(userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(model.OK("Till session opened", session))
}

func (h *TillHandler) Close(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid session ID"))
	}

	var req model.CloseTillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	session, err := h.tillService.Close(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Till session closed", session))
}

// GetActive returns the caller's open session, if any.
func (h *TillHandler) GetActive(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(model.Fail("Unauthorized"))
	}

	session, err := h.tillService.GetActive(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Till session retrieved", session))
}

func (h *TillHandler) GetMine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(model.Fail("Unauthorized"))
	}

	sessions, err := h.tillService.GetByUser(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Till sessions retrieved", sessions))
}

func (h *TillHandler) GetAll(c *fiber.Ctx) error {
	sessions, err := h.tillService.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Till sessions retrieved", sessions))
}

func (h *TillHandler) GetByDate(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid date, expected YYYY-MM-DD"))
	}

	sessions, err := h.tillService.GetByDate(date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Till sessions retrieved", sessions))
}

func (h *TillHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid session ID"))
	}

	session, err := h.tillService.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Till session retrieved", session))
}
