package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"achats/internal/apperrors"
	"achats/internal/models"
)

// GORMPurchaseRepository is a GORM implementation of PurchaseRepository.
type GORMPurchaseRepository struct {
	db *gorm.DB
}

// NewGORMPurchaseRepository creates a new instance of GORMPurchaseRepository.
func NewGORMPurchaseRepository(db *gorm.DB) *GORMPurchaseRepository {
	return &GORMPurchaseRepository{
		db: db,
	}
}

// GetAll retrieves all purchases with their product, most recent first.
func (r *GORMPurchaseRepository) GetAll() ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.db.Preload("Product").Order("date DESC").Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to get all purchases: %w", err)
	}
	return purchases, nil
}

// GetByID retrieves a single purchase by its ID, with its product.
func (r *GORMPurchaseRepository) GetByID(id string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.Preload("Product").First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase by ID %s: %w", id, err)
	}
	return &purchase, nil
}

// Create inserts a purchase referencing an existing product and reloads the
// product association so callers get a fully materialized row back.
func (r *GORMPurchaseRepository) Create(purchase *models.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	if err := r.db.Create(purchase).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	if err := r.db.First(&purchase.Product, "id = ?", purchase.ProductID).Error; err != nil {
		return fmt.Errorf("failed to load product for purchase %s: %w", purchase.ID, err)
	}
	return nil
}

// CreateWithProduct gets or creates the product by exact name and inserts the
// purchase, all within one transaction. A concurrent create of the same name
// fails the duplicate insert on the unique index rather than producing a
// second product row.
func (r *GORMPurchaseRepository) CreateWithProduct(productName string, purchase *models.Purchase) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		err := tx.Where("name = ?", productName).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			product = models.Product{
				ID:   uuid.New().String(),
				Name: productName,
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to create product %q: %w", productName, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up product %q: %w", productName, err)
		}

		if purchase.ID == "" {
			purchase.ID = uuid.New().String()
		}
		purchase.ProductID = product.ID
		if err := tx.Create(purchase).Error; err != nil {
			return fmt.Errorf("failed to create purchase: %w", err)
		}
		purchase.Product = product
		return nil
	})
}

// Update saves the mutable fields of an existing purchase.
func (r *GORMPurchaseRepository) Update(purchase *models.Purchase) error {
	res := r.db.Model(&models.Purchase{}).Where("id = ?", purchase.ID).Updates(map[string]interface{}{
		"product_id": purchase.ProductID,
		"price":      purchase.Price,
		"date":       purchase.Date,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update purchase: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	if err := r.db.First(&purchase.Product, "id = ?", purchase.ProductID).Error; err != nil {
		return fmt.Errorf("failed to load product for purchase %s: %w", purchase.ID, err)
	}
	return nil
}

// Delete removes a purchase by its ID.
func (r *GORMPurchaseRepository) Delete(id string) error {
	res := r.db.Delete(&models.Purchase{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete purchase %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListByDateRange retrieves purchases inside the inclusive window, with their
// product, most recent first. Nil bounds leave that side of the window open.
func (r *GORMPurchaseRepository) ListByDateRange(start, end *time.Time) ([]models.Purchase, error) {
	query := r.db.Preload("Product").Order("date DESC")
	if start != nil {
		query = query.Where("date >= ?", *start)
	}
	if end != nil {
		query = query.Where("date <= ?", *end)
	}

	var purchases []models.Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases by date range: %w", err)
	}
	return purchases, nil
}
