package models

import "time"

// Product represents a product in a tenant's catalogue.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	Brand       string    `json:"brand" gorm:"type:varchar(100)"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0;check:chk_products_quantity,quantity >= 0"`
	Price       float64   `json:"price" gorm:"not null;default:0;check:chk_products_price,price >= 0"`
	Category    string    `json:"category" gorm:"type:varchar(100)"`
	Photo       string    `json:"photo" gorm:"type:varchar(255)"`
	APIKeyID    uint      `json:"-" gorm:"column:api_key_id;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (Product) TableName() string {
	return "products"
}
