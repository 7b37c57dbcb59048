package services_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"achats/internal/models"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPurchaseRepository is a mock implementation of repositories.PurchaseRepository.
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) GetAll() ([]models.Purchase, error) {
	args := m.Called()
	return args.Get(0).([]models.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) GetByID(id string) (*models.Purchase, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Create(purchase *models.Purchase) error {
	args := m.Called(purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) CreateWithProduct(productName string, purchase *models.Purchase) error {
	args := m.Called(productName, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Update(purchase *models.Purchase) error {
	args := m.Called(purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ListByDateRange(start, end *time.Time) ([]models.Purchase, error) {
	args := m.Called(start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Purchase), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishPurchaseCreated(data map[string]interface{}) error {
	args := m.Called(data)
	return args.Error(0)
}

// mustDate parses a YYYY-MM-DD test fixture date.
func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

// purchaseOf builds a purchase fixture for a named product.
func purchaseOf(productName, price, date string) models.Purchase {
	return models.Purchase{
		Product: models.Product{Name: productName},
		Price:   decimal.RequireFromString(price),
		Date:    mustDate(date),
	}
}
