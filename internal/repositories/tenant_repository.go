package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fakestore/internal/models"
)

// TenantRepository defines the interface for API key (tenant) data access.
type TenantRepository interface {
	CreateWithAdmin(ctx context.Context, tenant *models.APIKey, admin *models.User) error
	GetByKey(ctx context.Context, key string) (*models.APIKey, error)
	GetByID(ctx context.Context, id uint) (*models.APIKey, error)
	Delete(ctx context.Context, id uint) error
}

// GORMTenantRepository is a GORM implementation of TenantRepository.
type GORMTenantRepository struct {
	db *gorm.DB
}

// NewGORMTenantRepository creates a new instance of GORMTenantRepository.
func NewGORMTenantRepository(db *gorm.DB) *GORMTenantRepository {
	return &GORMTenantRepository{
		db: db,
	}
}

// CreateWithAdmin persists a tenant together with its bootstrap admin in one transaction.
func (r *GORMTenantRepository) CreateWithAdmin(ctx context.Context, tenant *models.APIKey, admin *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return fmt.Errorf("failed to create api key: %w", translate(err))
		}
		admin.APIKeyID = tenant.ID
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", translate(err))
		}
		return nil
	})
}

// GetByKey retrieves a tenant by its exact key value.
func (r *GORMTenantRepository) GetByKey(ctx context.Context, key string) (*models.APIKey, error) {
	var tenant models.APIKey
	// "key" is a keyword in some dialects; a map condition gets it quoted.
	if err := r.db.WithContext(ctx).Where(map[string]interface{}{"key": key}).First(&tenant).Error; err != nil {
		return nil, fmt.Errorf("failed to get api key: %w", translate(err))
	}
	return &tenant, nil
}

// GetByID retrieves a tenant by its ID.
func (r *GORMTenantRepository) GetByID(ctx context.Context, id uint) (*models.APIKey, error) {
	var tenant models.APIKey
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("api key %d: %w", id, translate(err))
	}
	return &tenant, nil
}

// Delete removes a tenant and everything it owns.
func (r *GORMTenantRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Explicit deletes keep the cascade working on SQLite connections
		// opened without foreign key enforcement.
		if err := tx.Where("api_key_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("failed to delete products of api key %d: %w", id, err)
		}
		if err := tx.Where("api_key_id = ?", id).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("failed to delete users of api key %d: %w", id, err)
		}
		res := tx.Delete(&models.APIKey{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete api key %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("api key %d not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}
