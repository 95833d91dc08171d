package repository

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
		&model.Category{},
		&model.Product{},
		&model.DocumentCounter{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *model.Product {
	category := &model.Category{Name: "Oficina", Active: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	p := &model.Product{
		Code:          "TEST-001",
		Name:          "Producto de prueba",
		CategoryID:    category.ID,
		PurchasePrice: decimal.RequireFromString("10.00"),
		SalePrice:     decimal.RequireFromString("20.00"),
		Stock:         stock,
		MinStock:      5,
		Active:        true,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}
