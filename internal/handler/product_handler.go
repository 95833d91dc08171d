package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req model.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	product, err := h.productService.Create(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(model.OK("Product created", product))
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid product ID"))
	}

	var req model.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	product, err := h.productService.Update(id, &req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Product updated", product))
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid product ID"))
	}

	if err := h.productService.Delete(id, actor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Product deactivated", nil))
}

func (h *ProductHandler) GetAll(c *fiber.Ctx) error {
	products, err := h.productService.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Products retrieved", products))
}

func (h *ProductHandler) GetAllActive(c *fiber.Ctx) error {
	products, err := h.productService.GetAllActive()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Products retrieved", products))
}

func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid product ID"))
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Product retrieved", product))
}

func (h *ProductHandler) GetByCategory(c *fiber.Ctx) error {
	categoryID, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid category ID"))
	}

	products, err := h.productService.GetByCategory(categoryID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Products retrieved", products))
}

func (h *ProductHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.productService.GetLowStock()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Low stock products retrieved", products))
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		return c.Status(400).JSON(model.Fail("Missing search term"))
	}

	products, err := h.productService.Search(term)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Products retrieved", products))
}
