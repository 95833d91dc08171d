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

// purchaseCancelWindow is wider than the sale window: receipts are corrected
// less urgently than tickets.
const purchaseCancelWindow = 30 * 24 * time.Hour

type PurchaseStats struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type PurchaseService interface {
	Create(req *model.CreatePurchaseRequest, userID uuid.UUID) (*model.Purchase, error)
	Cancel(id uuid.UUID) error
	GetAll() ([]model.PurchaseSummary, error)
	GetByDate(date time.Time) ([]model.PurchaseSummary, error)
	GetByPeriod(start, end time.Time) ([]model.PurchaseSummary, error)
	GetBySupplier(supplierID uuid.UUID) ([]model.PurchaseSummary, error)
	GetByID(id uuid.UUID) (*model.Purchase, error)
	TodayStats() (*PurchaseStats, error)
}

type purchaseService struct {
	db           *gorm.DB
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	sequenceRepo repository.SequenceRepository
	hub          *ws.Hub
}

func NewPurchaseService(
	db *gorm.DB,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	sequenceRepo repository.SequenceRepository,
	hub *ws.Hub,
) PurchaseService {
	return &purchaseService{
		db:           db,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		sequenceRepo: sequenceRepo,
		hub:          hub,
	}
}

// Create receives stock from a supplier. Each line increments the product's
// stock and refreshes its stored purchase price to the latest unit cost;
// header, lines and stock mutations commit atomically.
func (s *purchaseService) Create(req *model.CreatePurchaseRequest, userID uuid.UUID) (*model.Purchase, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.supplierRepo.Exists(req.SupplierID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check supplier")
	}
	if !exists {
		return nil, apperr.NotFoundf("the selected supplier does not exist")
	}

	for _, item := range req.Items {
		if !item.UnitCost.IsPositive() {
			return nil, apperr.Validationf("unit cost must be greater than zero")
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
	}

	total := decimal.Zero
	for _, item := range req.Items {
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := time.Now()
	purchase := &model.Purchase{
		SupplierID:  req.SupplierID,
		UserID:      userID,
		PurchasedAt: now,
		Total:       total,
	}
	for _, item := range req.Items {
		purchase.Lines = append(purchase.Lines, model.PurchaseLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			Subtotal:  item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		number, err := s.sequenceRepo.NextNumber(tx, model.CounterKindPurchase, now)
		if err != nil {
			return apperr.Wrap(err, "failed to generate purchase number")
		}
		purchase.Number = number

		if err := tx.Create(purchase).Error; err != nil {
			return apperr.Wrap(err, "failed to persist purchase")
		}

		for _, item := range req.Items {
			if err := s.productRepo.IncreaseStock(tx, item.ProductID, item.Quantity); err != nil {
				return apperr.Wrap(err, "failed to increment stock")
			}
			if err := s.productRepo.UpdatePurchasePrice(tx, item.ProductID, item.UnitCost); err != nil {
				return apperr.Wrap(err, "failed to update purchase price")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish(map[string]interface{}{
			"type":   "purchase_received",
			"number": purchase.Number,
			"total":  purchase.Total,
		})
	}

	return s.purchaseRepo.FindByID(purchase.ID)
}

// Cancel reverses a purchase receipt. Reversing means taking the received
// quantities back out of stock; if later sales already consumed them the
// conditional decrement touches no rows and the whole cancellation rolls
// back.
func (s *purchaseService) Cancel(id uuid.UUID) error {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("purchase not found")
		}
		return apperr.Wrap(err, "failed to load purchase")
	}

	if time.Since(purchase.PurchasedAt) > purchaseCancelWindow {
		return apperr.BusinessRulef("purchases older than %d days cannot be cancelled", int(purchaseCancelWindow.Hours()/24))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range purchase.Lines {
			if err := s.productRepo.DecreaseStock(tx, line.ProductID, line.Quantity); err != nil {
				if errors.Is(err, repository.ErrStockConflict) {
					name := line.ProductID.String()
					if line.Product != nil {
						name = line.Product.Name
					}
					return apperr.BusinessRulef("cannot cancel purchase: product '%s' no longer has enough stock to give back", name)
				}
				return apperr.Wrap(err, "failed to reverse stock")
			}
		}
		if err := tx.Unscoped().Where("purchase_id = ?", purchase.ID).Delete(&model.PurchaseLine{}).Error; err != nil {
			return apperr.Wrap(err, "failed to delete purchase lines")
		}
		if err := tx.Unscoped().Delete(&model.Purchase{}, "id = ?", purchase.ID).Error; err != nil {
			return apperr.Wrap(err, "failed to delete purchase")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Publish(map[string]interface{}{
			"type":   "purchase_cancelled",
			"number": purchase.Number,
		})
	}
	return nil
}

func (s *purchaseService) GetAll() ([]model.PurchaseSummary, error) {
	purchases, err := s.purchaseRepo.FindAll()
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list purchases")
	}
	return summarizePurchases(purchases), nil
}

func (s *purchaseService) GetByDate(date time.Time) ([]model.PurchaseSummary, error) {
	purchases, err := s.purchaseRepo.FindByDate(date)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list purchases")
	}
	return summarizePurchases(purchases), nil
}

func (s *purchaseService) GetByPeriod(start, end time.Time) ([]model.PurchaseSummary, error) {
	if start.After(end) {
		return nil, apperr.Validationf("start date cannot be after end date")
	}
	purchases, err := s.purchaseRepo.FindByPeriod(start, end)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list purchases")
	}
	return summarizePurchases(purchases), nil
}

func (s *purchaseService) GetBySupplier(supplierID uuid.UUID) ([]model.PurchaseSummary, error) {
	exists, err := s.supplierRepo.Exists(supplierID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check supplier")
	}
	if !exists {
		return nil, apperr.NotFoundf("supplier not found")
	}
	purchases, err := s.purchaseRepo.FindBySupplier(supplierID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list purchases")
	}
	return summarizePurchases(purchases), nil
}

func (s *purchaseService) GetByID(id uuid.UUID) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("purchase not found")
		}
		return nil, apperr.Wrap(err, "failed to load purchase")
	}
	return purchase, nil
}

func (s *purchaseService) TodayStats() (*PurchaseStats, error) {
	now := time.Now()
	purchases, err := s.purchaseRepo.FindByDate(now)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load today's purchases")
	}

	total := decimal.Zero
	for _, purchase := range purchases {
		total = total.Add(purchase.Total)
	}

	return &PurchaseStats{
		Date:  now.Format("02/01/2006"),
		Total: total,
		Count: int64(len(purchases)),
	}, nil
}

func summarizePurchases(purchases []model.Purchase) []model.PurchaseSummary {
	summaries := make([]model.PurchaseSummary, 0, len(purchases))
	for i := range purchases {
		summaries = append(summaries, purchases[i].ToSummary())
	}
	return summaries
}
