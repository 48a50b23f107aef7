package models

import "time"

// User represents an end-user of a tenant.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Address      string    `json:"address" gorm:"type:varchar(500)"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:varchar(255);not null"` // never serialized
	Role         Role      `json:"role" gorm:"type:varchar(16);not null;default:customer;check:chk_users_role,role IN ('admin','manager','vendor','customer')"`
	APIKeyID     uint      `json:"-" gorm:"column:api_key_id;not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (User) TableName() string {
	return "users"
}
