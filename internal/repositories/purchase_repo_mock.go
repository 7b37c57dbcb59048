package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"achats/internal/apperrors"
	"achats/internal/models"
)

// MockPurchaseRepository is an in-memory implementation of PurchaseRepository.
// It shares a MockProductRepository so the by-name creation path can resolve
// and create products the way the transactional store does.
type MockPurchaseRepository struct {
	purchases   map[string]models.Purchase
	productRepo *MockProductRepository
	mu          sync.RWMutex
}

// NewMockPurchaseRepository creates a new instance of MockPurchaseRepository.
func NewMockPurchaseRepository(productRepo *MockProductRepository) *MockPurchaseRepository {
	return &MockPurchaseRepository{
		purchases:   make(map[string]models.Purchase),
		productRepo: productRepo,
	}
}

// GetAll returns all purchases, most recent first.
func (r *MockPurchaseRepository) GetAll() ([]models.Purchase, error) {
	return r.ListByDateRange(nil, nil)
}

// GetByID returns a purchase by its ID.
func (r *MockPurchaseRepository) GetByID(id string) (*models.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	purchase, ok := r.purchases[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &purchase, nil
}

// Create adds a purchase referencing an existing product.
func (r *MockPurchaseRepository) Create(purchase *models.Purchase) error {
	product, err := r.productRepo.GetByID(purchase.ProductID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	purchase.Product = *product
	r.purchases[purchase.ID] = *purchase
	return nil
}

// CreateWithProduct resolves or creates the named product, then adds the
// purchase linked to it.
func (r *MockPurchaseRepository) CreateWithProduct(productName string, purchase *models.Purchase) error {
	products, err := r.productRepo.GetAll()
	if err != nil {
		return err
	}

	var product *models.Product
	for i := range products {
		if products[i].Name == productName {
			product = &products[i]
			break
		}
	}
	if product == nil {
		product = &models.Product{Name: productName}
		if err := r.productRepo.Create(product); err != nil {
			return err
		}
	}

	purchase.ProductID = product.ID
	return r.Create(purchase)
}

// Update modifies an existing purchase.
func (r *MockPurchaseRepository) Update(purchase *models.Purchase) error {
	product, err := r.productRepo.GetByID(purchase.ProductID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.purchases[purchase.ID]; !ok {
		return apperrors.ErrNotFound
	}
	purchase.Product = *product
	r.purchases[purchase.ID] = *purchase
	return nil
}

// Delete removes a purchase by its ID.
func (r *MockPurchaseRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.purchases[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.purchases, id)
	return nil
}

// DeleteByProductID removes all purchases referencing a product, mirroring
// the store-level cascade.
func (r *MockPurchaseRepository) DeleteByProductID(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.purchases {
		if p.ProductID == productID {
			delete(r.purchases, id)
		}
	}
}

// ListByDateRange returns purchases inside the inclusive window, most recent
// first.
func (r *MockPurchaseRepository) ListByDateRange(start, end *time.Time) ([]models.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	purchaseList := make([]models.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		if start != nil && p.Date.Before(*start) {
			continue
		}
		if end != nil && p.Date.After(*end) {
			continue
		}
		purchaseList = append(purchaseList, p)
	}
	sort.Slice(purchaseList, func(i, j int) bool {
		return purchaseList[i].Date.After(purchaseList[j].Date)
	})
	return purchaseList, nil
}
