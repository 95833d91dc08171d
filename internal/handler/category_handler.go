package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req model.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	category, err := h.categoryService.Create(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(model.OK("Category created", category))
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid category ID"))
	}

	var req model.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	category, err := h.categoryService.Update(id, &req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Category updated", category))
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid category ID"))
	}

	if err := h.categoryService.Delete(id, actor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Category deactivated", nil))
}

func (h *CategoryHandler) GetAll(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Categories retrieved", categories))
}

func (h *CategoryHandler) GetAllActive(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetAllActive()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Categories retrieved", categories))
}

func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(model.Fail("Invalid category ID"))
	}

	category, err := h.categoryService.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Category retrieved", category))
}
