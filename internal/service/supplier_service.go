package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
)

type SupplierService interface {
	Create(req *model.SupplierRequest, actor string) (*model.Supplier, error)
	Update(id uuid.UUID, req *model.SupplierRequest, actor string) (*model.Supplier, error)
	Delete(id uuid.UUID, actor string) error
	GetAll() ([]model.Supplier, error)
	GetAllActive() ([]model.Supplier, error)
	GetByID(id uuid.UUID) (*model.Supplier, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) Create(req *model.SupplierRequest, actor string) (*model.Supplier, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if req.RFC != "" {
		exists, err := s.supplierRepo.ExistsByRFC(req.RFC)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to check RFC")
		}
		if exists {
			return nil, apperr.Conflictf("a supplier with RFC '%s' already exists", req.RFC)
		}
	}

	supplier := &model.Supplier{
		Name:    req.Name,
		RFC:     req.RFC,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Active:  true,
	}
	supplier.CreatedBy = actor
	supplier.UpdatedBy = actor

	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, apperr.Wrap(err, "failed to create supplier")
	}
	return supplier, nil
}

func (s *supplierService) Update(id uuid.UUID, req *model.SupplierRequest, actor string) (*model.Supplier, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("supplier not found")
		}
		return nil, apperr.Wrap(err, "failed to load supplier")
	}

	if req.RFC != "" && req.RFC != supplier.RFC {
		exists, err := s.supplierRepo.ExistsByRFC(req.RFC)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to check RFC")
		}
		if exists {
			return nil, apperr.Conflictf("a supplier with RFC '%s' already exists", req.RFC)
		}
	}

	supplier.Name = req.Name
	supplier.RFC = req.RFC
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.UpdatedBy = actor

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, apperr.Wrap(err, "failed to update supplier")
	}
	return supplier, nil
}

func (s *supplierService) Delete(id uuid.UUID, actor string) error {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("supplier not found")
		}
		return apperr.Wrap(err, "failed to load supplier")
	}

	supplier.Active = false
	supplier.UpdatedBy = actor
	if err := s.supplierRepo.Update(supplier); err != nil {
		return apperr.Wrap(err, "failed to deactivate supplier")
	}
	return nil
}

func (s *supplierService) GetAll() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *supplierService) GetAllActive() ([]model.Supplier, error) {
	return s.supplierRepo.FindAllActive()
}

func (s *supplierService) GetByID(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("supplier not found")
		}
		return nil, apperr.Wrap(err, "failed to load supplier")
	}
	return supplier, nil
}
