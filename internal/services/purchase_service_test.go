package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"achats/internal/apperrors"
	"achats/internal/models"
	"achats/internal/services"
)

func TestPurchaseService_CreateByProductName(t *testing.T) {
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockProductRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewPurchaseService(mockPurchaseRepo, mockProductRepo, mockPublisher)

	date := mustDate("2024-01-05")
	price := decimal.RequireFromString("1000.00")

	// The name is trimmed before the repository sees it, and the purchase
	// comes back materialized with its product.
	mockPurchaseRepo.On("CreateWithProduct", "Riz", mock.AnythingOfType("*models.Purchase")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*models.Purchase)
			p.ID = "purchase-1"
			p.ProductID = "product-1"
			p.Product = models.Product{ID: "product-1", Name: "Riz"}
		}).
		Return(nil).Once()
	mockPublisher.On("PublishPurchaseCreated", mock.Anything).Return(nil).Once()

	purchase, err := service.CreateByProductName("  Riz  ", price, date)

	assert.NoError(t, err)
	assert.Equal(t, "purchase-1", purchase.ID)
	assert.Equal(t, "product-1", purchase.ProductID)
	assert.Equal(t, "Riz", purchase.Product.Name)
	mockPurchaseRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestPurchaseService_CreateByProductName_InvalidName(t *testing.T) {
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewPurchaseService(mockPurchaseRepo, mockProductRepo, nil)

	date := mustDate("2024-01-05")
	price := decimal.RequireFromString("10.00")

	for _, name := range []string{"", "   ", "\t\n"} {
		purchase, err := service.CreateByProductName(name, price, date)
		assert.Nil(t, purchase)
		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "name", verr.Field)
	}
	mockPurchaseRepo.AssertNotCalled(t, "CreateWithProduct", mock.Anything, mock.Anything)
}

func TestPurchaseService_NonPositivePriceRejectedOnBothPaths(t *testing.T) {
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewPurchaseService(mockPurchaseRepo, mockProductRepo, nil)

	date := mustDate("2024-01-05")

	for _, raw := range []string{"0", "0.00", "-1", "-250.50"} {
		price := decimal.RequireFromString(raw)

		purchase, err := service.CreateByProductName("Riz", price, date)
		assert.Nil(t, purchase)
		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "price", verr.Field)

		purchase, err = service.CreateByProductID("product-1", price, date)
		assert.Nil(t, purchase)
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "price", verr.Field)
	}
	mockPurchaseRepo.AssertNotCalled(t, "CreateWithProduct", mock.Anything, mock.Anything)
	mockPurchaseRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestPurchaseService_CreateByProductID(t *testing.T) {
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewPurchaseService(mockPurchaseRepo, mockProductRepo, nil)

	date := mustDate("2024-01-05")
	price := decimal.RequireFromString("75.00")
	product := &models.Product{ID: "product-1", Name: "Huile"}

	mockProductRepo.On("GetByID", "product-1").Return(product, nil).Once()
	mockPurchaseRepo.On("Create", mock.AnythingOfType("*models.Purchase")).
		Run(func(args mock.Arguments) {
			p := args.Get(0).(*models.Purchase)
			p.ID = "purchase-1"
			p.Product = *product
		}).
		Return(nil).Once()

	purchase, err := service.CreateByProductID("product-1", price, date)

	assert.NoError(t, err)
	assert.Equal(t, "product-1", purchase.ProductID)
	assert.Equal(t, "Huile", purchase.Product.Name)
	mockProductRepo.AssertExpectations(t)
	mockPurchaseRepo.AssertExpectations(t)
}

func TestPurchaseService_CreateByProductID_UnknownProduct(t *testing.T) {
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewPurchaseService(mockPurchaseRepo, mockProductRepo, nil)

	mockProductRepo.On("GetByID", "missing").Return(nil, apperrors.ErrNotFound).Once()

	purchase, err := service.CreateByProductID("missing", decimal.RequireFromString("10.00"), mustDate("2024-01-05"))

	assert.Nil(t, purchase)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockPurchaseRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockProductRepo.AssertExpectations(t)
}

func TestPurchaseService_UpdatePurchase(t *testing.T) {
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewPurchaseService(mockPurchaseRepo, mockProductRepo, nil)

	existing := &models.Purchase{
		ID:        "purchase-1",
		ProductID: "product-1",
		Product:   models.Product{ID: "product-1", Name: "Riz"},
		Price:     decimal.RequireFromString("100.00"),
		Date:      mustDate("2024-01-05"),
	}
	newPrice := decimal.RequireFromString("150.00")
	newDate := mustDate("2024-01-10")

	mockPurchaseRepo.On("GetByID", "purchase-1").Return(existing, nil).Once()
	mockPurchaseRepo.On("Update", mock.AnythingOfType("*models.Purchase")).Return(nil).Once()

	purchase, err := service.UpdatePurchase("purchase-1", nil, &newPrice, &newDate)

	assert.NoError(t, err)
	assert.True(t, purchase.Price.Equal(newPrice))
	assert.Equal(t, newDate, purchase.Date)
	assert.Equal(t, "product-1", purchase.ProductID)
	mockPurchaseRepo.AssertExpectations(t)
}

func TestPurchaseService_UpdatePurchase_InvalidPrice(t *testing.T) {
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewPurchaseService(mockPurchaseRepo, mockProductRepo, nil)

	existing := &models.Purchase{
		ID:    "purchase-1",
		Price: decimal.RequireFromString("100.00"),
		Date:  mustDate("2024-01-05"),
	}
	badPrice := decimal.Zero

	mockPurchaseRepo.On("GetByID", "purchase-1").Return(existing, nil).Once()

	purchase, err := service.UpdatePurchase("purchase-1", nil, &badPrice, nil)

	assert.Nil(t, purchase)
	var verr *apperrors.ValidationError
	assert.ErrorAs(t, err, &verr)
	mockPurchaseRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestPurchaseService_DeletePurchase_NotFound(t *testing.T) {
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewPurchaseService(mockPurchaseRepo, mockProductRepo, nil)

	mockPurchaseRepo.On("Delete", "missing").Return(apperrors.ErrNotFound).Once()

	err := service.DeletePurchase("missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockPurchaseRepo.AssertExpectations(t)
}
