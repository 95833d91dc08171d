package service

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Sale{},
		&model.SaleLine{},
		&model.Purchase{},
		&model.PurchaseLine{},
		&model.TillSession{},
		&model.DocumentCounter{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *model.User {
	u := &model.User{
		Username: "tester-" + role,
		Email:    role + "@test.local",
		Role:     role,
		Active:   true,
	}
	if err := u.SetPassword("secret123"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedCategory(t *testing.T, db *gorm.DB) *model.Category {
	c := &model.Category{Name: "Escritura", Description: "Plumas y lapices", Active: true}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func seedSupplier(t *testing.T, db *gorm.DB) *model.Supplier {
	s := &model.Supplier{Name: "Papeles del Norte", RFC: "PNO850101AB1", Active: true}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return s
}

func seedProduct(t *testing.T, db *gorm.DB, category *model.Category, code string, stock int, salePrice string) *model.Product {
	p := &model.Product{
		Code:          code,
		Name:          "Producto " + code,
		CategoryID:    category.ID,
		PurchasePrice: decimal.RequireFromString("10.00"),
		SalePrice:     decimal.RequireFromString(salePrice),
		Stock:         stock,
		MinStock:      5,
		Active:        true,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product %s: %v", code, err)
	}
	return p
}

func productStock(t *testing.T, db *gorm.DB, id interface{}) int {
	var p model.Product
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return p.Stock
}
