package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/service"
)

type SupplierHandler struct {
	supplierService service.SupplierService
}

func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var req model.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	supplier, err := h.supplierService.Create(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(model.OK("Supplier created", supplier))
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid supplier ID"))
	}

	var req model.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	supplier, err := h.supplierService.Update(id, &req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Supplier updated", supplier))
}

func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid supplier ID"))
	}

	if err := h.supplierService.Delete(id, actor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Supplier deactivated", nil))
}

func (h *SupplierHandler) GetAll(c *fiber.Ctx) error {
	suppliers, err := h.supplierService.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Suppliers retrieved", suppliers))
}

func (h *SupplierHandler) GetAllActive(c *fiber.Ctx) error {
	suppliers, err := h.supplierService.GetAllActive()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Suppliers retrieved", suppliers))
}

func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid supplier ID"))
	}

	supplier, err := h.supplierService.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Supplier retrieved", supplier))
}
