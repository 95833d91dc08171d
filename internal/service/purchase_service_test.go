package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
)

func TestPurchaseCreateIncrementsStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleAlmacenista)
	category := seedCategory(t, db)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, category, "REC-001", 5, "30.00")

	svc := NewPurchaseService(db,
		repository.NewPurchaseRepo(db),
		repository.NewProductRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewSequenceRepo(),
		nil,
	)

	purchase, err := svc.Create(&model.CreatePurchaseRequest{
		SupplierID: supplier.ID,
		Items: []model.PurchaseItemRequest{
			{ProductID: product.ID, Quantity: 10, UnitCost: decimal.RequireFromString("12.50")},
		},
	}, user.ID)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	if !strings.HasPrefix(purchase.Number, "C-") {
		t.Errorf("number = %s, want C- prefix", purchase.Number)
	}
	if !purchase.Total.Equal(decimal.RequireFromString("125.00")) {
		t.Errorf("total = %s, want 125.00", purchase.Total)
	}
	if got := productStock(t, db, product.ID); got != 15 {
		t.Errorf("stock = %d, want 15", got)
	}

	var reloaded model.Product
	if err := db.First(&reloaded, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if !reloaded.PurchasePrice.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("purchase price = %s, want 12.50", reloaded.PurchasePrice)
	}
}

func TestPurchaseCreateUnknownSupplier(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleAlmacenista)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category, "NOS-001", 5, "30.00")

	svc := NewPurchaseService(db,
		repository.NewPurchaseRepo(db),
		repository.NewProductRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewSequenceRepo(),
		nil,
	)

	_, err := svc.Create(&model.CreatePurchaseRequest{
		SupplierID: product.ID, // any uuid that is not a supplier
		Items: []model.PurchaseItemRequest{
			{ProductID: product.ID, Quantity: 1, UnitCost: decimal.RequireFromString("1.00")},
		},
	}, user.ID)
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestPurchaseCancelReversesStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleAlmacenista)
	category := seedCategory(t, db)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, category, "REV-001", 5, "30.00")

	svc := NewPurchaseService(db,
		repository.NewPurchaseRepo(db),
		repository.NewProductRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewSequenceRepo(),
		nil,
	)

	purchase, err := svc.Create(&model.CreatePurchaseRequest{
		SupplierID: supplier.ID,
		Items: []model.PurchaseItemRequest{
			{ProductID: product.ID, Quantity: 10, UnitCost: decimal.RequireFromString("12.50")},
		},
	}, user.ID)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 15 {
		t.Fatalf("stock after purchase = %d, want 15", got)
	}

	if err := svc.Cancel(purchase.ID); err != nil {
		t.Fatalf("cancel purchase: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 5 {
		t.Errorf("stock after cancel = %d, want 5", got)
	}
	var count int64
	if err := db.Unscoped().Model(&model.Purchase{}).Count(&count).Error; err != nil {
		t.Fatalf("count purchases: %v", err)
	}
	if count != 0 {
		t.Errorf("purchases remaining = %d, want 0", count)
	}
}

func TestPurchaseCancelBlockedWhenStockConsumed(t *testing.T) {
	db := setupTestDB(t)
	almacenista := seedUser(t, db, model.RoleAlmacenista)
	cajero := seedUser(t, db, model.RoleCajero)
	category := seedCategory(t, db)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, category, "CON-001", 0, "30.00")

	purchaseSvc := NewPurchaseService(db,
		repository.NewPurchaseRepo(db),
		repository.NewProductRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewSequenceRepo(),
		nil,
	)
	saleSvc := NewSaleService(db,
		repository.NewSaleRepo(db),
		repository.NewProductRepo(db),
		repository.NewSequenceRepo(),
		nil,
	)

	purchase, err := purchaseSvc.Create(&model.CreatePurchaseRequest{
		SupplierID: supplier.ID,
		Items: []model.PurchaseItemRequest{
			{ProductID: product.ID, Quantity: 10, UnitCost: decimal.RequireFromString("12.50")},
		},
	}, almacenista.ID)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	// Sell most of the received stock, so the purchase can no longer be
	// fully reversed.
	_, err = saleSvc.Create(&model.CreateSaleRequest{
		Items: []model.SaleItemRequest{
			{ProductID: product.ID, Quantity: 8, UnitPrice: decimal.RequireFromString("30.00")},
		},
		PaymentMethod:  model.PaymentCash,
		AmountTendered: decimal.RequireFromString("240.00"),
	}, cajero.ID)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	err = purchaseSvc.Cancel(purchase.ID)
	if !apperr.IsKind(err, apperr.BusinessRule) {
		t.Fatalf("err = %v, want business rule violation", err)
	}
	if got := productStock(t, db, product.ID); got != 2 {
		t.Errorf("stock = %d, want 2 untouched", got)
	}
	var count int64
	if err := db.Model(&model.Purchase{}).Count(&count).Error; err != nil {
		t.Fatalf("count purchases: %v", err)
	}
	if count != 1 {
		t.Errorf("purchases remaining = %d, want 1", count)
	}
}

func TestPurchaseCancelOutsideWindow(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleAlmacenista)
	category := seedCategory(t, db)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, category, "WIN-001", 5, "30.00")

	svc := NewPurchaseService(db,
		repository.NewPurchaseRepo(db),
		repository.NewProductRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewSequenceRepo(),
		nil,
	)

	purchase, err := svc.Create(&model.CreatePurchaseRequest{
		SupplierID: supplier.ID,
		Items: []model.PurchaseItemRequest{
			{ProductID: product.ID, Quantity: 1, UnitCost: decimal.RequireFromString("1.00")},
		},
	}, user.ID)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	backdated := time.Now().Add(-31 * 24 * time.Hour)
	if err := db.Model(&model.Purchase{}).Where("id = ?", purchase.ID).Update("purchased_at", backdated).Error; err != nil {
		t.Fatalf("backdate purchase: %v", err)
	}

	err = svc.Cancel(purchase.ID)
	if !apperr.IsKind(err, apperr.BusinessRule) {
		t.Fatalf("err = %v, want business rule violation", err)
	}
}
