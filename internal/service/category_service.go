package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
)

type CategoryService interface {
	Create(req *model.CategoryRequest, actor string) (*model.Category, error)
	Update(id uuid.UUID, req *model.CategoryRequest, actor string) (*model.Category, error)
	Delete(id uuid.UUID, actor string) error
	GetAll() ([]model.Category, error)
	GetAllActive() ([]model.Category, error)
	GetByID(id uuid.UUID) (*model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(req *model.CategoryRequest, actor string) (*model.Category, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(req.Name)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check category name")
	}
	if exists {
		return nil, apperr.Conflictf("a category named '%s' already exists", req.Name)
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	category.CreatedBy = actor
	category.UpdatedBy = actor

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, apperr.Wrap(err, "failed to create category")
	}
	return category, nil
}

func (s *categoryService) Update(id uuid.UUID, req *model.CategoryRequest, actor string) (*model.Category, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("category not found")
		}
		return nil, apperr.Wrap(err, "failed to load category")
	}

	if req.Name != category.Name {
		exists, err := s.categoryRepo.ExistsByName(req.Name)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to check category name")
		}
		if exists {
			return nil, apperr.Conflictf("a category named '%s' already exists", req.Name)
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	category.UpdatedBy = actor

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, apperr.Wrap(err, "failed to update category")
	}
	return category, nil
}

// Delete deactivates the category instead of removing the row
func (s *categoryService) Delete(id uuid.UUID, actor string) error {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("category not found")
		}
		return apperr.Wrap(err, "failed to load category")
	}

	category.Active = false
	category.UpdatedBy = actor
	if err := s.categoryRepo.Update(category); err != nil {
		return apperr.Wrap(err, "failed to deactivate category")
	}
	return nil
}

func (s *categoryService) GetAll() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetAllActive() ([]model.Category, error) {
	return s.categoryRepo.FindAllActive()
}

func (s *categoryService) GetByID(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("category not found")
		}
		return nil, apperr.Wrap(err, "failed to load category")
	}
	return category, nil
}
