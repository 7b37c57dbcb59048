package services

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"achats/internal/apperrors"
	"achats/internal/models"
	"achats/internal/repositories"
)

// EventPublisher publishes purchase lifecycle events to a message broker.
// A nil publisher disables eventing.
type EventPublisher interface {
	PublishPurchaseCreated(data map[string]interface{}) error
}

// PurchaseService handles business logic related to purchases.
type PurchaseService struct {
	purchaseRepo repositories.PurchaseRepository
	productRepo  repositories.ProductRepository
	publisher    EventPublisher
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(purchaseRepo repositories.PurchaseRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		publisher:    publisher,
	}
}

// validatePrice enforces the strictly-positive price invariant. It runs on
// every creation and update path independently.
func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return apperrors.NewValidationError("price", "price must be strictly positive")
	}
	return nil
}

// GetAllPurchases retrieves all purchases, most recent first.
func (s *PurchaseService) GetAllPurchases() ([]models.Purchase, error) {
	return s.purchaseRepo.GetAll()
}

// GetPurchaseByID retrieves a single purchase by its ID.
func (s *PurchaseService) GetPurchaseByID(id string) (*models.Purchase, error) {
	return s.purchaseRepo.GetByID(id)
}

// CreateByProductName records a purchase for the named product, creating the
// product first if no product with that exact trimmed name exists. The
// returned purchase carries the resolved product, so callers never need a
// second fetch.
func (s *PurchaseService) CreateByProductName(productName string, price decimal.Decimal, date time.Time) (*models.Purchase, error) {
	productName, err := normalizeProductName(productName)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		Price: price,
		Date:  date,
	}
	if err := s.purchaseRepo.CreateWithProduct(productName, purchase); err != nil {
		return nil, err
	}

	s.publishCreated(purchase)
	return purchase, nil
}

// CreateByProductID records a purchase for an existing product. An unknown
// product ID yields apperrors.ErrNotFound.
func (s *PurchaseService) CreateByProductID(productID string, price decimal.Decimal, date time.Time) (*models.Purchase, error) {
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		ProductID: productID,
		Price:     price,
		Date:      date,
	}
	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}

	s.publishCreated(purchase)
	return purchase, nil
}

// UpdatePurchase applies the provided fields to an existing purchase. Nil
// fields keep their current value; a provided price is re-validated and a
// provided product ID must resolve.
func (s *PurchaseService) UpdatePurchase(id string, productID *string, price *decimal.Decimal, date *time.Time) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if productID != nil {
		if _, err := s.productRepo.GetByID(*productID); err != nil {
			return nil, err
		}
		purchase.ProductID = *productID
	}
	if price != nil {
		if err := validatePrice(*price); err != nil {
			return nil, err
		}
		purchase.Price = *price
	}
	if date != nil {
		purchase.Date = *date
	}

	if err := s.purchaseRepo.Update(purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// DeletePurchase deletes a purchase by its ID.
func (s *PurchaseService) DeletePurchase(id string) error {
	return s.purchaseRepo.Delete(id)
}

// publishCreated emits a purchase.created event when a broker is configured.
// Publishing is best effort: a broker failure never fails the request that
// already committed the purchase.
func (s *PurchaseService) publishCreated(purchase *models.Purchase) {
	if s.publisher == nil {
		return
	}

	event := map[string]interface{}{
		"purchaseId":  purchase.ID,
		"productId":   purchase.ProductID,
		"productName": purchase.Product.Name,
		"price":       purchase.Price.StringFixed(2),
		"date":        purchase.Date.Format("2006-01-02"),
	}
	if err := s.publisher.PublishPurchaseCreated(event); err != nil {
		log.Printf("Warning: failed to publish purchase created event for purchase %s: %v", purchase.ID, err)
	}
}
