package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fakestore/internal/models"
)

// ProductRepository defines the interface for tenant-scoped product data access.
type ProductRepository interface {
	List(ctx context.Context, tenantID uint, offset, limit int) ([]models.Product, error)
	Count(ctx context.Context, tenantID uint) (int64, error)
	GetByID(ctx context.Context, tenantID, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, tenantID, id uint) error
	SeedIfEmpty(ctx context.Context, tenantID uint, generate func() []models.Product) (bool, error)
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves one page of a tenant's products ordered by id.
func (r *GORMProductRepository) List(ctx context.Context, tenantID uint, offset, limit int) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).
		Where("api_key_id = ?", tenantID).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Count returns the number of products owned by a tenant.
func (r *GORMProductRepository) Count(ctx context.Context, tenantID uint) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("api_key_id = ?", tenantID).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// GetByID retrieves a single product of a tenant.
func (r *GORMProductRepository) GetByID(ctx context.Context, tenantID, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ? AND api_key_id = ?", id, tenantID).Error; err != nil {
		return nil, fmt.Errorf("product with ID %d: %w", id, translate(err))
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

// Update writes every column of product back, scoped to its tenant.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(product).
		Where("api_key_id = ?", product.APIKeyID).
		Select("*").
		Omit("id", "api_key_id", "created_at").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a tenant's product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, tenantID, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ? AND api_key_id = ?", id, tenantID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// SeedIfEmpty inserts the generated products when the tenant owns none. The
// count and the insert run in one transaction holding the tenant row lock, so
// at most one caller seeds. It reports whether this call inserted anything.
func (r *GORMProductRepository) SeedIfEmpty(ctx context.Context, tenantID uint, generate func() []models.Product) (bool, error) {
	seeded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockTenant(tx, tenantID); err != nil {
			return err
		}
		var total int64
		if err := tx.Model(&models.Product{}).Where("api_key_id = ?", tenantID).Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if total > 0 {
			return nil
		}
		products := generate()
		for i := range products {
			products[i].APIKeyID = tenantID
		}
		if err := tx.CreateInBatches(products, seedBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert seed products: %w", translate(err))
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}
