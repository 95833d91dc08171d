package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
	"go-papeleria-pos/internal/ws"
)

// saleCancelWindow is how long after the fact a sale may still be cancelled
const saleCancelWindow = 7 * 24 * time.Hour

type SaleStats struct {
	Date    string          `json:"date"`
	Total   decimal.Decimal `json:"total"`
	Count   int64           `json:"count"`
	Average decimal.Decimal `json:"average"`
}

type SaleService interface {
	Create(req *model.CreateSaleRequest, userID uuid.UUID) (*model.Sale, error)
	Cancel(id uuid.UUID) error
	GetAll() ([]model.SaleSummary, error)
	GetToday() ([]model.SaleSummary, error)
	GetByDate(date time.Time) ([]model.SaleSummary, error)
	GetByPeriod(start, end time.Time) ([]model.SaleSummary, error)
	GetByID(id uuid.UUID) (*model.Sale, error)
	TodayStats() (*SaleStats, error)
}

type saleService struct {
	db           *gorm.DB
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	sequenceRepo repository.SequenceRepository
	hub          *ws.Hub
}

func NewSaleService(
	db *gorm.DB,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	sequenceRepo repository.SequenceRepository,
	hub *ws.Hub,
) SaleService {
	return &saleService{
		db:           db,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		sequenceRepo: sequenceRepo,
		hub:          hub,
	}
}

// Create registers a sale. Every requested line is validated against current
// product state before anything is written, so a failure can never leave a
// partial stock change behind. Persisting the header, the lines and the stock
// decrements happens in one database transaction.
func (s *saleService) Create(req *model.CreateSaleRequest, userID uuid.UUID) (*model.Sale, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	// Validate all lines first
	products := make(map[uuid.UUID]*model.Product, len(req.Items))
	for _, item := range req.Items {
		if !item.UnitPrice.IsPositive() {
			return nil, apperr.Validationf("unit price must be greater than zero")
		}

		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFoundf("product %s does not exist", item.ProductID)
			}
			return nil, apperr.Wrap(err, "failed to load product")
		}
		if !product.Active {
			return nil, apperr.BusinessRulef("product '%s' is not active", product.Name)
		}
		if product.Stock < item.Quantity {
			return nil, apperr.BusinessRulef("insufficient stock for '%s': available %d, requested %d",
				product.Name, product.Stock, item.Quantity)
		}
		products[item.ProductID] = product
	}

	// Totals
	subtotal := decimal.Zero
	for _, item := range req.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	iva := decimal.Zero
	if req.ApplyIVA {
		iva = subtotal.Mul(model.IVARate).Round(2)
	}
	total := subtotal.Add(iva)

	// Payment rules: cash must cover the total and yields change, any other
	// method records the tendered amount as-is with zero change.
	change := decimal.Zero
	if req.PaymentMethod == model.PaymentCash {
		if req.AmountTendered.LessThan(total) {
			return nil, apperr.BusinessRulef("amount tendered (%s) is less than the total (%s)",
				req.AmountTendered.StringFixed(2), total.StringFixed(2))
		}
		change = req.AmountTendered.Sub(total)
	}

	now := time.Now()
	sale := &model.Sale{
		UserID:         userID,
		SoldAt:         now,
		Subtotal:       subtotal,
		IVA:            iva,
		Total:          total,
		PaymentMethod:  req.PaymentMethod,
		AmountTendered: req.AmountTendered,
		Change:         change,
	}
	for _, item := range req.Items {
		sale.Lines = append(sale.Lines, model.SaleLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		number, err := s.sequenceRepo.NextNumber(tx, model.CounterKindSale, now)
		if err != nil {
			return apperr.Wrap(err, "failed to generate sale number")
		}
		sale.Number = number

		if err := tx.Create(sale).Error; err != nil {
			return apperr.Wrap(err, "failed to persist sale")
		}

		for _, item := range req.Items {
			if err := s.productRepo.DecreaseStock(tx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrStockConflict) {
					return apperr.BusinessRulef("insufficient stock for '%s'", products[item.ProductID].Name)
				}
				return apperr.Wrap(err, "failed to decrement stock")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifySale(sale, req.Items, products)

	return s.saleRepo.FindByID(sale.ID)
}

func (s *saleService) notifySale(sale *model.Sale, items []model.SaleItemRequest, products map[uuid.UUID]*model.Product) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(map[string]interface{}{
		"type":   "sale_registered",
		"number": sale.Number,
		"total":  sale.Total,
	})
	for _, item := range items {
		product := products[item.ProductID]
		remaining := product.Stock - item.Quantity
		if remaining <= product.MinStock {
			s.hub.Publish(map[string]interface{}{
				"type":      "low_stock_alert",
				"product":   product.Name,
				"code":      product.Code,
				"stock":     remaining,
				"min_stock": product.MinStock,
			})
		}
	}
}

// Cancel reverses a sale: stock goes back per line and the header with its
// lines is removed, all inside one transaction. Sales older than the cancel
// window are rejected.
func (s *saleService) Cancel(id uuid.UUID) error {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("sale not found")
		}
		return apperr.Wrap(err, "failed to load sale")
	}

	if time.Since(sale.SoldAt) > saleCancelWindow {
		return apperr.BusinessRulef("sales older than %d days cannot be cancelled", int(saleCancelWindow.Hours()/24))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range sale.Lines {
			if err := s.productRepo.IncreaseStock(tx, line.ProductID, line.Quantity); err != nil {
				return apperr.Wrap(err, "failed to restore stock")
			}
		}
		if err := tx.Unscoped().Where("sale_id = ?", sale.ID).Delete(&model.SaleLine{}).Error; err != nil {
			return apperr.Wrap(err, "failed to delete sale lines")
		}
		if err := tx.Unscoped().Delete(&model.Sale{}, "id = ?", sale.ID).Error; err != nil {
			return apperr.Wrap(err, "failed to delete sale")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Publish(map[string]interface{}{
			"type":   "sale_cancelled",
			"number": sale.Number,
		})
	}
	return nil
}

func (s *saleService) GetAll() ([]model.SaleSummary, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list sales")
	}
	return summarizeSales(sales), nil
}

func (s *saleService) GetToday() ([]model.SaleSummary, error) {
	return s.GetByDate(time.Now())
}

func (s *saleService) GetByDate(date time.Time) ([]model.SaleSummary, error) {
	sales, err := s.saleRepo.FindByDate(date)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list sales")
	}
	return summarizeSales(sales), nil
}

func (s *saleService) GetByPeriod(start, end time.Time) ([]model.SaleSummary, error) {
	if start.After(end) {
		return nil, apperr.Validationf("start date cannot be after end date")
	}
	sales, err := s.saleRepo.FindByPeriod(start, end)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list sales")
	}
	return summarizeSales(sales), nil
}

func (s *saleService) GetByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("sale not found")
		}
		return nil, apperr.Wrap(err, "failed to load sale")
	}
	return sale, nil
}

func (s *saleService) TodayStats() (*SaleStats, error) {
	now := time.Now()
	sales, err := s.saleRepo.FindByDate(now)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load today's sales")
	}

	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Total)
	}
	count := int64(len(sales))
	average := decimal.Zero
	if count > 0 {
		average = total.Div(decimal.NewFromInt(count)).Round(2)
	}

	return &SaleStats{
		Date:    now.Format("02/01/2006"),
		Total:   total,
		Count:   count,
		Average: average,
	}, nil
}

func summarizeSales(sales []model.Sale) []model.SaleSummary {
	summaries := make([]model.SaleSummary, 0, len(sales))
	for i := range sales {
		summaries = append(summaries, sales[i].ToSummary())
	}
	return summaries
}
