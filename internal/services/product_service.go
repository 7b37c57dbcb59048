package services

import (
	"strings"
	"unicode/utf8"

	"achats/internal/apperrors"
	"achats/internal/models"
	"achats/internal/repositories"
)

const maxProductNameLength = 200

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// normalizeProductName trims surrounding whitespace and enforces the
// non-empty and length constraints shared by every path that accepts a
// product name. The limit counts characters, not bytes, so multibyte names
// get the full 200 characters.
func normalizeProductName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewValidationError("name", "product name is required")
	}
	if utf8.RuneCountInString(name) > maxProductNameLength {
		return "", apperrors.NewValidationError("name", "product name must not exceed 200 characters")
	}
	return name, nil
}

// GetAllProducts retrieves all products, ordered by name.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product. The name is trimmed before storage;
// a name already in use yields apperrors.ErrDuplicateName.
func (s *ProductService) CreateProduct(name string) (*models.Product, error) {
	name, err := normalizeProductName(name)
	if err != nil {
		return nil, err
	}

	product := &models.Product{Name: name}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct renames an existing product.
func (s *ProductService) UpdateProduct(id, name string) (*models.Product, error) {
	name, err := normalizeProductName(name)
	if err != nil {
		return nil, err
	}

	product := &models.Product{ID: id, Name: name}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID. All purchases referencing the
// product are deleted with it.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
