package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fakestore/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist in the requested tenant.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("record already exists")
)

// translate maps GORM errors onto the repository error set.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// lockTenant loads the tenant row with FOR UPDATE so concurrent seeders for the
// same tenant queue behind each other. SQLite ignores the locking clause and
// relies on its single-writer semantics instead.
func lockTenant(tx *gorm.DB, tenantID uint) (*models.APIKey, error) {
	var tenant models.APIKey
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tenant, "id = ?", tenantID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock tenant %d: %w", tenantID, translate(err))
	}
	return &tenant, nil
}

// seedBatchSize keeps multi-row inserts under SQLite's bound-parameter limit.
const seedBatchSize = 100
