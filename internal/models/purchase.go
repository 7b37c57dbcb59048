package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase represents a single recorded acquisition of one product at a
// given price on a given calendar date. Price is stored as a fixed-point
// decimal; the date carries no time-of-day component.
type Purchase struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36);index;not null"`
	Product   Product         `json:"product" gorm:"foreignKey:ProductID"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Date      time.Time       `json:"date" gorm:"type:date;index;not null"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}
