package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
)

func TestTillOpenRejectsSecondSession(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleCajero)

	svc := NewTillService(db, repository.NewTillRepo(db), repository.NewSaleRepo(db), nil)

	if _, err := svc.Open(user.ID, &model.OpenTillRequest{OpeningFloat: decimal.RequireFromString("500.00")}); err != nil {
		t.Fatalf("open first session: %v", err)
	}

	_, err := svc.Open(user.ID, &model.OpenTillRequest{OpeningFloat: decimal.RequireFromString("300.00")})
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestTillOpenRejectsNegativeFloat(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleCajero)

	svc := NewTillService(db, repository.NewTillRepo(db), repository.NewSaleRepo(db), nil)

	_, err := svc.Open(user.ID, &model.OpenTillRequest{OpeningFloat: decimal.RequireFromString("-1.00")})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestTillCloseIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleCajero)

	svc := NewTillService(db, repository.NewTillRepo(db), repository.NewSaleRepo(db), nil)

	session, err := svc.Open(user.ID, &model.OpenTillRequest{OpeningFloat: decimal.RequireFromString("200.00")})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if _, err := svc.Close(session.ID, &model.CloseTillRequest{ClosingCount: decimal.RequireFromString("200.00")}); err != nil {
		t.Fatalf("close session: %v", err)
	}

	_, err = svc.Close(session.ID, &model.CloseTillRequest{ClosingCount: decimal.RequireFromString("200.00")})
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("err = %v, want conflict on second close", err)
	}
}

// Opens a drawer with 500, sells two items at 50 with tax paid in cash with
// 120, and closes the drawer counting 616. The counted cash matches the
// float plus the cash taken, so the variance is zero.
func TestTillFullDay(t *testing.T) {
	db := setupTestDB(t)
	cajero := seedUser(t, db, model.RoleCajero)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category, "DIA-001", 20, "50.00")

	tillSvc := NewTillService(db, repository.NewTillRepo(db), repository.NewSaleRepo(db), nil)
	saleSvc := NewSaleService(db,
		repository.NewSaleRepo(db),
		repository.NewProductRepo(db),
		repository.NewSequenceRepo(),
		nil,
	)

	session, err := tillSvc.Open(cajero.ID, &model.OpenTillRequest{OpeningFloat: decimal.RequireFromString("500.00")})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	sale, err := saleSvc.Create(&model.CreateSaleRequest{
		Items: []model.SaleItemRequest{
			{ProductID: product.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("50.00")},
		},
		PaymentMethod:  model.PaymentCash,
		AmountTendered: decimal.RequireFromString("120.00"),
		ApplyIVA:       true,
	}, cajero.ID)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	if !sale.Total.Equal(decimal.RequireFromString("116.00")) {
		t.Fatalf("total = %s, want 116.00", sale.Total)
	}
	if !sale.Change.Equal(decimal.RequireFromString("4.00")) {
		t.Fatalf("change = %s, want 4.00", sale.Change)
	}
	if got := productStock(t, db, product.ID); got != 18 {
		t.Fatalf("stock = %d, want 18", got)
	}

	closed, err := tillSvc.Close(session.ID, &model.CloseTillRequest{ClosingCount: decimal.RequireFromString("616.00")})
	if err != nil {
		t.Fatalf("close session: %v", err)
	}

	if !closed.CashSales.Equal(decimal.RequireFromString("116.00")) {
		t.Errorf("cash sales = %s, want 116.00", closed.CashSales)
	}
	if !closed.TotalSales.Equal(decimal.RequireFromString("116.00")) {
		t.Errorf("total sales = %s, want 116.00", closed.TotalSales)
	}
	if !closed.Variance.IsZero() {
		t.Errorf("variance = %s, want 0", closed.Variance)
	}
	if !closed.Closed || closed.ClosedAt == nil {
		t.Errorf("session not marked closed")
	}
}

func TestTillClosePartitionsByPaymentMethod(t *testing.T) {
	db := setupTestDB(t)
	cajero := seedUser(t, db, model.RoleCajero)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category, "MET-001", 50, "10.00")

	tillSvc := NewTillService(db, repository.NewTillRepo(db), repository.NewSaleRepo(db), nil)
	saleSvc := NewSaleService(db,
		repository.NewSaleRepo(db),
		repository.NewProductRepo(db),
		repository.NewSequenceRepo(),
		nil,
	)

	session, err := tillSvc.Open(cajero.ID, &model.OpenTillRequest{OpeningFloat: decimal.RequireFromString("100.00")})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	for _, method := range []model.PaymentMethod{model.PaymentCash, model.PaymentCard, model.PaymentTransfer} {
		_, err := saleSvc.Create(&model.CreateSaleRequest{
			Items: []model.SaleItemRequest{
				{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
			},
			PaymentMethod:  method,
			AmountTendered: decimal.RequireFromString("10.00"),
		}, cajero.ID)
		if err != nil {
			t.Fatalf("create %s sale: %v", method, err)
		}
	}

	// Drawer holds the float plus only the cash sale
	closed, err := tillSvc.Close(session.ID, &model.CloseTillRequest{ClosingCount: decimal.RequireFromString("110.00")})
	if err != nil {
		t.Fatalf("close session: %v", err)
	}

	if !closed.CashSales.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("cash sales = %s, want 10.00", closed.CashSales)
	}
	if !closed.CardSales.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("card sales = %s, want 10.00", closed.CardSales)
	}
	if !closed.TransferSales.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("transfer sales = %s, want 10.00", closed.TransferSales)
	}
	if !closed.TotalSales.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("total sales = %s, want 30.00", closed.TotalSales)
	}
	if !closed.Variance.IsZero() {
		t.Errorf("variance = %s, want 0", closed.Variance)
	}
}

func TestTillCloseReportsShortDrawer(t *testing.T) {
	db := setupTestDB(t)
	cajero := seedUser(t, db, model.RoleCajero)

	svc := NewTillService(db, repository.NewTillRepo(db), repository.NewSaleRepo(db), nil)

	session, err := svc.Open(cajero.ID, &model.OpenTillRequest{OpeningFloat: decimal.RequireFromString("500.00")})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	closed, err := svc.Close(session.ID, &model.CloseTillRequest{ClosingCount: decimal.RequireFromString("480.00"), Notes: "billete falso retirado"})
	if err != nil {
		t.Fatalf("close session: %v", err)
	}
	if !closed.Variance.Equal(decimal.RequireFromString("-20.00")) {
		t.Errorf("variance = %s, want -20.00", closed.Variance)
	}
}

func TestTillGetActive(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleCajero)

	svc := NewTillService(db, repository.NewTillRepo(db), repository.NewSaleRepo(db), nil)

	if _, err := svc.GetActive(user.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("err = %v, want not found before opening", err)
	}

	opened, err := svc.Open(user.ID, &model.OpenTillRequest{OpeningFloat: decimal.RequireFromString("50.00")})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	active, err := svc.GetActive(user.ID)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.ID != opened.ID {
		t.Errorf("active session = %s, want %s", active.ID, opened.ID)
	}
}
