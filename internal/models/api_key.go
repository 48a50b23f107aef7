package models

import "time"

// APIKey is a tenant. Every user and product belongs to exactly one key.
type APIKey struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Key         string    `json:"key" gorm:"type:varchar(64);uniqueIndex;not null"`
	UsersSeeded bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`

	Users    []User    `json:"-" gorm:"foreignKey:APIKeyID;constraint:OnDelete:CASCADE"`
	Products []Product `json:"-" gorm:"foreignKey:APIKeyID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name.
func (APIKey) TableName() string {
	return "api_keys"
}
