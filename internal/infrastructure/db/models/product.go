package models

import "time"

type Product struct {
	SKU         string  `gorm:"column:sku;size:255;primaryKey"`
	Name        string  `gorm:"size:255;not null"`
	Description *string `gorm:"type:text"`
	IsActive    bool    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}

func (Product) TableName() string {
	return "products"
}
