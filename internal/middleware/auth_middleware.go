package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
	"go-papeleria-pos/pkg/jwt"
)

// RequireAuth validates the bearer token and sets user info in context
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(model.Fail("Missing authorization token"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(model.Fail("Invalid authorization format. Use: Bearer <token>"))
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(model.Fail("Invalid or expired token"))
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(model.Fail("User not found"))
		}
		if !user.Active {
			return c.Status(401).JSON(model.Fail("User account is inactive"))
		}

		// Set user info in context for downstream handlers
		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_email", claims.Email)
		c.Locals("username", claims.Username)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// RequireRoles allows only users whose role is in the given set
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok {
			return c.Status(403).JSON(model.Fail("No role found"))
		}

		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}

		return c.Status(403).JSON(model.Fail("Forbidden: requires one of the roles " + strings.Join(roles, ", ")))
	}
}
