package repository

import (
	"go-papeleria-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	FindAll() ([]model.Supplier, error)
	FindAllActive() ([]model.Supplier, error)
	FindByID(id uuid.UUID) (*model.Supplier, error)
	ExistsByRFC(rfc string) (bool, error)
	Exists(id uuid.UUID) (bool, error)
	Update(supplier *model.Supplier) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) FindAll() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindAllActive() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Where("active = ?", true).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) ExistsByRFC(rfc string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Supplier{}).Where("rfc = ?", rfc).Count(&count).Error
	return count > 0, err
}

func (r *supplierRepo) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Supplier{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	return r.db.Save(supplier).Error
}
