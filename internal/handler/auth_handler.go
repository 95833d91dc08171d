package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(model.OK("Login successful", resp))
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.Fail("Invalid JSON"))
	}

	user, err := h.authService.Register(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(model.OK("User registered", user))
}
