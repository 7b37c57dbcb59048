package repositories

import (
	"time"

	"achats/internal/models"
)

// PurchaseRepository defines the interface for purchase data access.
type PurchaseRepository interface {
	GetAll() ([]models.Purchase, error)
	GetByID(id string) (*models.Purchase, error)
	// Create inserts a purchase referencing an existing product.
	Create(purchase *models.Purchase) error
	// CreateWithProduct resolves the product by exact name, creating it if
	// absent, then inserts the purchase. Both steps run in one transaction;
	// the unique index on the product name makes a concurrent duplicate
	// insert fail instead of producing two rows. The purchase is returned
	// with the Product association populated.
	CreateWithProduct(productName string, purchase *models.Purchase) error
	Update(purchase *models.Purchase) error
	Delete(id string) error
	// ListByDateRange returns purchases whose date falls within the
	// inclusive window. A nil bound leaves that side open.
	ListByDateRange(start, end *time.Time) ([]models.Purchase, error)
}
