package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/model"
)

type PurchaseRepository interface {
	FindAll() ([]model.Purchase, error)
	FindByID(id uuid.UUID) (*model.Purchase, error)
	FindByDate(date time.Time) ([]model.Purchase, error)
	FindByPeriod(start, end time.Time) ([]model.Purchase, error)
	FindBySupplier(supplierID uuid.UUID) ([]model.Purchase, error)
	CountByDate(date time.Time) (int64, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Supplier").Preload("User").
		Preload("Lines").Preload("Lines.Product").
		Order("purchased_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Preload("Supplier").Preload("User").
		Preload("Lines").Preload("Lines.Product").
		Preload("Lines.Product.Category").
		First(&purchase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) FindByDate(date time.Time) ([]model.Purchase, error) {
	dayStart := date.Truncate(24 * time.Hour)
	return r.findRange(dayStart, dayStart.Add(24*time.Hour))
}

func (r *purchaseRepo) FindByPeriod(start, end time.Time) ([]model.Purchase, error) {
	return r.findRange(start.Truncate(24*time.Hour), end.Truncate(24*time.Hour).Add(24*time.Hour))
}

func (r *purchaseRepo) findRange(from, to time.Time) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Supplier").Preload("User").
		Preload("Lines").Preload("Lines.Product").
		Where("purchased_at >= ? AND purchased_at < ?", from, to).
		Order("purchased_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindBySupplier(supplierID uuid.UUID) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Supplier").Preload("User").
		Preload("Lines").Preload("Lines.Product").
		Where("supplier_id = ?", supplierID).
		Order("purchased_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) CountByDate(date time.Time) (int64, error) {
	dayStart := date.Truncate(24 * time.Hour)
	var count int64
	err := r.db.Model(&model.Purchase{}).
		Where("purchased_at >= ? AND purchased_at < ?", dayStart, dayStart.Add(24*time.Hour)).
		Count(&count).Error
	return count, err
}
