package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
)

type ProductService interface {
	Create(req *model.ProductRequest, actor string) (*model.Product, error)
	Update(id uuid.UUID, req *model.ProductRequest, actor string) (*model.Product, error)
	Delete(id uuid.UUID, actor string) error
	GetAll() ([]model.Product, error)
	GetAllActive() ([]model.Product, error)
	GetByID(id uuid.UUID) (*model.Product, error)
	GetByCategory(categoryID uuid.UUID) ([]model.Product, error)
	GetLowStock() ([]model.Product, error)
	Search(term string) ([]model.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// checkPrices enforces the pricing rules: both prices positive, sale price
// above purchase price.
func checkPrices(req *model.ProductRequest) *apperr.Error {
	if !req.PurchasePrice.IsPositive() {
		return apperr.Validationf("purchase price must be greater than zero")
	}
	if !req.SalePrice.IsPositive() {
		return apperr.Validationf("sale price must be greater than zero")
	}
	if req.SalePrice.LessThanOrEqual(req.PurchasePrice) {
		return apperr.BusinessRulef("sale price (%s) must be greater than purchase price (%s)",
			req.SalePrice.StringFixed(2), req.PurchasePrice.StringFixed(2))
	}
	return nil
}

func (s *productService) Create(req *model.ProductRequest, actor string) (*model.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := checkPrices(req); err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.Exists(req.CategoryID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check category")
	}
	if !exists {
		return nil, apperr.NotFoundf("the selected category does not exist")
	}

	if existing, _ := s.productRepo.FindByCode(req.Code); existing != nil {
		return nil, apperr.Conflictf("a product with code '%s' already exists", req.Code)
	}

	product := &model.Product{
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		Stock:         req.Stock,
		MinStock:      req.MinStock,
		Active:        true,
	}
	if product.MinStock == 0 {
		product.MinStock = 5
	}
	product.CreatedBy = actor
	product.UpdatedBy = actor

	if err := s.productRepo.Create(product); err != nil {
		return nil, apperr.Wrap(err, "failed to create product")
	}
	return product, nil
}

func (s *productService) Update(id uuid.UUID, req *model.ProductRequest, actor string) (*model.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := checkPrices(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("product not found")
		}
		return nil, apperr.Wrap(err, "failed to load product")
	}

	exists, err := s.categoryRepo.Exists(req.CategoryID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check category")
	}
	if !exists {
		return nil, apperr.NotFoundf("the selected category does not exist")
	}

	if req.Code != product.Code {
		if existing, _ := s.productRepo.FindByCode(req.Code); existing != nil {
			return nil, apperr.Conflictf("a product with code '%s' already exists", req.Code)
		}
	}

	product.Code = req.Code
	product.Name = req.Name
	product.Description = req.Description
	product.CategoryID = req.CategoryID
	product.PurchasePrice = req.PurchasePrice
	product.SalePrice = req.SalePrice
	product.MinStock = req.MinStock
	product.UpdatedBy = actor

	if err := s.productRepo.Update(product); err != nil {
		return nil, apperr.Wrap(err, "failed to update product")
	}
	return product, nil
}

// Delete deactivates the product; stock history stays intact
func (s *productService) Delete(id uuid.UUID, actor string) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("product not found")
		}
		return apperr.Wrap(err, "failed to load product")
	}

	product.Active = false
	product.UpdatedBy = actor
	if err := s.productRepo.Update(product); err != nil {
		return apperr.Wrap(err, "failed to deactivate product")
	}
	return nil
}

func (s *productService) GetAll() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetAllActive() ([]model.Product, error) {
	return s.productRepo.FindAllActive()
}

func (s *productService) GetByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("product not found")
		}
		return nil, apperr.Wrap(err, "failed to load product")
	}
	return product, nil
}

func (s *productService) GetByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	exists, err := s.categoryRepo.Exists(categoryID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check category")
	}
	if !exists {
		return nil, apperr.NotFoundf("category not found")
	}
	return s.productRepo.FindByCategory(categoryID)
}

func (s *productService) GetLowStock() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

func (s *productService) Search(term string) ([]model.Product, error) {
	if term == "" {
		return s.productRepo.FindAllActive()
	}
	return s.productRepo.Search(term)
}
