package service

import (
	"testing"

	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
	"go-papeleria-pos/pkg/jwt"
)

func TestAuthLoginSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleAdmin)

	svc := NewAuthService(repository.NewUserRepo(db))

	resp, err := svc.Login(&model.LoginRequest{Email: user.Email, Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.Email != user.Email {
		t.Errorf("user email = %s, want %s", resp.User.Email, user.Email)
	}

	claims, err := jwt.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("claims role = %s, want %s", claims.Role, model.RoleAdmin)
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleAdmin)

	svc := NewAuthService(repository.NewUserRepo(db))

	_, err := svc.Login(&model.LoginRequest{Email: user.Email, Password: "wrong"})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)

	svc := NewAuthService(repository.NewUserRepo(db))

	_, err := svc.Login(&model.LoginRequest{Email: "nobody@test.local", Password: "whatever"})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestAuthLoginInactiveUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleCajero)
	if err := db.Model(user).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	svc := NewAuthService(repository.NewUserRepo(db))

	_, err := svc.Login(&model.LoginRequest{Email: user.Email, Password: "secret123"})
	if !apperr.IsKind(err, apperr.BusinessRule) {
		t.Fatalf("err = %v, want business rule violation", err)
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleAdmin)

	svc := NewAuthService(repository.NewUserRepo(db))

	_, err := svc.Register(&model.RegisterRequest{
		Username: "otro",
		Email:    user.Email,
		Password: "secret123",
		Role:     model.RoleCajero,
	}, "admin")
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestAuthRegisterInvalidRole(t *testing.T) {
	db := setupTestDB(t)

	svc := NewAuthService(repository.NewUserRepo(db))

	_, err := svc.Register(&model.RegisterRequest{
		Username: "nuevo",
		Email:    "nuevo@test.local",
		Password: "secret123",
		Role:     "Gerente",
	}, "admin")
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestAuthRegisterHashesPassword(t *testing.T) {
	db := setupTestDB(t)

	svc := NewAuthService(repository.NewUserRepo(db))

	resp, err := svc.Register(&model.RegisterRequest{
		Username: "cajera",
		Email:    "cajera@test.local",
		Password: "secret123",
		Role:     model.RoleCajero,
	}, "admin")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var stored model.User
	if err := db.First(&stored, "id = ?", resp.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Password == "secret123" {
		t.Fatal("password stored in clear")
	}
	if !stored.CheckPassword("secret123") {
		t.Error("stored hash does not verify")
	}
}
