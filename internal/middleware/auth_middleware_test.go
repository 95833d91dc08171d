package middleware

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
	"go-papeleria-pos/pkg/jwt"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepo(db)

	app := fiber.New()
	app.Get("/open", RequireAuth(userRepo), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/admin-only", RequireAuth(userRepo), RequireRoles(model.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, db
}

func seedUserWithToken(t *testing.T, db *gorm.DB, role string, active bool) string {
	u := &model.User{
		Username: "op-" + role,
		Email:    role + "@test.local",
		Role:     role,
		Active:   active,
	}
	if err := u.SetPassword("secret123"); err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := jwt.GenerateToken(u.ID, u.Email, u.Username, u.Role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func TestRequireAuthMissingToken(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/open", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireAuthBadToken(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	app, db := setupApp(t)
	token := seedUserWithToken(t, db, model.RoleCajero, true)

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRequireAuthInactiveUser(t *testing.T) {
	app, db := setupApp(t)
	token := seedUserWithToken(t, db, model.RoleCajero, false)

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireRolesForbidden(t *testing.T) {
	app, db := setupApp(t)
	token := seedUserWithToken(t, db, model.RoleCajero, true)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestRequireRolesAllowed(t *testing.T) {
	app, db := setupApp(t)
	token := seedUserWithToken(t, db, model.RoleAdmin, true)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
