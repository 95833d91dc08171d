package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/service"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(model.Fail("Unauthorized"))
	}

	var req model.CreatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	purchase, err := h.purchaseService.Create(&req, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(model.OK("Purchase registered", purchase))
}

func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid purchase ID"))
	}

	if err := h.purchaseService.Cancel(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Purchase cancelled", nil))
}

func (h *PurchaseHandler) GetAll(c *fiber.Ctx) error {
	purchases, err := h.purchaseService.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Purchases retrieved", purchases))
}

func (h *PurchaseHandler) GetByDate(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid date, expected YYYY-MM-DD"))
	}

	purchases, err := h.purchaseService.GetByDate(date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Purchases retrieved", purchases))
}

func (h *PurchaseHandler) GetByPeriod(c *fiber.Ctx) error {
	start, err := parseDateQuery(c, "start")
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid start date, expected YYYY-MM-DD"))
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid end date, expected YYYY-MM-DD"))
	}
	if end.Before(start) {
		return c.Status(400).JSON(model.Fail("End date must not be before start date"))
	}

	purchases, err := h.purchaseService.GetByPeriod(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Purchases retrieved", purchases))
}

func (h *PurchaseHandler) GetBySupplier(c *fiber.Ctx) error {
	supplierID, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid supplier ID"))
	}

	purchases, err := h.purchaseService.GetBySupplier(supplierID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Purchases retrieved", purchases))
}

func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid purchase ID"))
	}

	purchase, err := h.purchaseService.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Purchase retrieved", purchase))
}

func (h *PurchaseHandler) TodayStats(c *fiber.Ctx) error {
	stats, err := h.purchaseService.TodayStats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Purchase stats retrieved", stats))
}
