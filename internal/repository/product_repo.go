package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/model"
)

// ErrStockConflict is returned when a conditional stock update touched no
// rows, meaning the product is missing or its stock would go negative.
var ErrStockConflict = errors.New("stock update affected no rows")

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindAllActive() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByCode(code string) (*model.Product, error)
	FindByCategory(categoryID uuid.UUID) ([]model.Product, error)
	FindLowStock() ([]model.Product, error)
	Search(term string) ([]model.Product, error)
	Update(product *model.Product) error

	// Stock ledger. Both run inside whatever transaction the caller has open
	// and never commit on their own. Decrease is a conditional update so two
	// concurrent sales can never drive stock below zero.
	IncreaseStock(tx *gorm.DB, id uuid.UUID, quantity int) error
	DecreaseStock(tx *gorm.DB, id uuid.UUID, quantity int) error

	// UpdatePurchasePrice stores the latest unit cost on the product row
	UpdatePurchasePrice(tx *gorm.DB, id uuid.UUID, price decimal.Decimal) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindAllActive() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Where("active = ?", true).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("category_id = ? AND active = ?", categoryID, true).
		Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindLowStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("stock <= min_stock AND active = ?", true).
		Order("stock ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Search(term string) ([]model.Product, error) {
	var products []model.Product
	like := "%" + term + "%"
	err := r.db.Preload("Category").
		Where("(name LIKE ? OR code LIKE ?) AND active = ?", like, like, true).
		Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) IncreaseStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

func (r *productRepo) DecreaseStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

func (r *productRepo) UpdatePurchasePrice(tx *gorm.DB, id uuid.UUID, price decimal.Decimal) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("purchase_price", price).Error
}
