package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/service"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(model.Fail("Unauthorized"))
	}

	var req model.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	sale, err := h.saleService.Create(&req, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(model.OK("Sale registered", sale))
}

func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid sale ID"))
	}

	if err := h.saleService.Cancel(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Sale cancelled", nil))
}

func (h *SaleHandler) GetAll(c *fiber.Ctx) error {
	sales, err := h.saleService.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Sales retrieved", sales))
}

func (h *SaleHandler) GetToday(c *fiber.Ctx) error {
	sales, err := h.saleService.GetToday()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Sales retrieved", sales))
}

func (h *SaleHandler) GetByDate(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid date, expected YYYY-MM-DD"))
	}

	sales, err := h.saleService.GetByDate(date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Sales retrieved", sales))
}

func (h *SaleHandler) GetByPeriod(c *fiber.Ctx) error {
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

	sales, err := h.saleService.GetByPeriod(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Sales retrieved", sales))
}

func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid sale ID"))
	}

	sale, err := h.saleService.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Sale retrieved", sale))
}

func (h *SaleHandler) TodayStats(c *fiber.Ctx) error {
	stats, err := h.saleService.TodayStats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Sales stats retrieved", stats))
}
