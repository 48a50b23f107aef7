package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fakestore/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByTenantAndID(ctx context.Context, tenantID, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tenantID uint, email string) (*models.User, error)
	List(ctx context.Context, tenantID uint, offset, limit int) ([]models.User, error)
	Count(ctx context.Context, tenantID uint) (int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, tenantID, id uint) error
	SeedOnce(ctx context.Context, tenantID uint, generate func() []models.User) (bool, error)
}

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

// GetByID retrieves a user by ID regardless of tenant. Only token resolution
// uses it; the token's user carries its own tenant.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("user with ID %d: %w", id, translate(err))
	}
	return &user, nil
}

// GetByTenantAndID retrieves a user of a tenant by ID.
func (r *GORMUserRepository) GetByTenantAndID(ctx context.Context, tenantID, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ? AND api_key_id = ?", id, tenantID).Error; err != nil {
		return nil, fmt.Errorf("user with ID %d: %w", id, translate(err))
	}
	return &user, nil
}

// GetByEmail retrieves a tenant's user by email.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, tenantID uint, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ? AND api_key_id = ?", email, tenantID).Error; err != nil {
		return nil, fmt.Errorf("user with email %s: %w", email, translate(err))
	}
	return &user, nil
}

// List retrieves one page of a tenant's users ordered by id.
func (r *GORMUserRepository) List(ctx context.Context, tenantID uint, offset, limit int) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).
		Where("api_key_id = ?", tenantID).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Count returns the number of users owned by a tenant.
func (r *GORMUserRepository) Count(ctx context.Context, tenantID uint) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("api_key_id = ?", tenantID).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

// Update writes every mutable column of user back, scoped to its tenant.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).
		Model(user).
		Where("api_key_id = ?", user.APIKeyID).
		Select("*").
		Omit("id", "api_key_id", "created_at").
		Updates(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found for update: %w", user.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a tenant's user by its ID.
func (r *GORMUserRepository) Delete(ctx context.Context, tenantID, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ? AND api_key_id = ?", id, tenantID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// SeedOnce inserts the generated users the first time it runs for a tenant and
// marks the tenant as seeded in the same transaction. The bootstrap admin means
// a tenant's user count is never zero, so a flag stands in for the empty check.
func (r *GORMUserRepository) SeedOnce(ctx context.Context, tenantID uint, generate func() []models.User) (bool, error) {
	seeded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := lockTenant(tx, tenantID)
		if err != nil {
			return err
		}
		if tenant.UsersSeeded {
			return nil
		}
		users := generate()
		for i := range users {
			users[i].APIKeyID = tenantID
		}
		if err := tx.CreateInBatches(users, seedBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert seed users: %w", translate(err))
		}
		if err := tx.Model(&models.APIKey{}).Where("id = ?", tenantID).Update("users_seeded", true).Error; err != nil {
			return fmt.Errorf("failed to mark users seeded: %w", err)
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}
