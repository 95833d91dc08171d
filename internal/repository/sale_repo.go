package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/model"
)

type SaleRepository interface {
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindByDate(date time.Time) ([]model.Sale, error)
	FindByPeriod(start, end time.Time) ([]model.Sale, error)
	// FindBetween returns the sales whose timestamp falls inside the exact
	// window [start, end]; the till close snapshot reads through this.
	FindBetween(start, end time.Time) ([]model.Sale, error)
	CountByDate(date time.Time) (int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("User").Preload("Lines").Preload("Lines.Product").
		Order("sold_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("User").Preload("Lines").Preload("Lines.Product").
		Preload("Lines.Product.Category").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByDate(date time.Time) ([]model.Sale, error) {
	dayStart := date.Truncate(24 * time.Hour)
	return r.findRange(dayStart, dayStart.Add(24*time.Hour))
}

func (r *saleRepo) FindByPeriod(start, end time.Time) ([]model.Sale, error) {
	return r.findRange(start.Truncate(24*time.Hour), end.Truncate(24*time.Hour).Add(24*time.Hour))
}

func (r *saleRepo) findRange(from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("User").Preload("Lines").Preload("Lines.Product").
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Order("sold_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindBetween(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Where("sold_at >= ? AND sold_at <= ?", start, end).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) CountByDate(date time.Time) (int64, error) {
	dayStart := date.Truncate(24 * time.Hour)
	var count int64
	err := r.db.Model(&model.Sale{}).
		Where("sold_at >= ? AND sold_at < ?", dayStart, dayStart.Add(24*time.Hour)).
		Count(&count).Error
	return count, err
}
