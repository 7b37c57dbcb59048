package models

import "time"

// Product represents a purchasable item. The name is the natural key used
// when purchases are submitted by product name instead of ID.
type Product struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string     `json:"name" gorm:"uniqueIndex;type:varchar(200);not null" validate:"required,min=1,max=200"`
	Purchases []Purchase `json:"purchases,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}
