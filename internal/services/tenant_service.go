package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fakestore/internal/models"
	"fakestore/internal/repositories"
)

// BootstrapAdminPassword is the initial password of every tenant's first admin.
const BootstrapAdminPassword = "admin123"

// ProvisionResult is returned once, when a tenant is created.
type ProvisionResult struct {
	APIKey    string          `json:"api_key"`
	AdminUser AdminCredential `json:"admin_user"`
}

// AdminCredential describes the bootstrap admin, including its initial password.
type AdminCredential struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TenantService provisions and deletes tenants.
type TenantService struct {
	repo       repositories.TenantRepository
	gen        FakeGenerator
	bcryptCost int
	log        *zap.Logger
	events     EventPublisher
}

// NewTenantService creates a new TenantService.
func NewTenantService(repo repositories.TenantRepository, gen FakeGenerator, bcryptCost int, log *zap.Logger, events EventPublisher) *TenantService {
	return &TenantService{
		repo:       repo,
		gen:        gen,
		bcryptCost: bcryptCost,
		log:        log,
		events:     events,
	}
}

// NewAPIKeyValue returns a fresh random 32 character hex key.
func NewAPIKeyValue() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Provision creates a tenant and its bootstrap admin atomically.
func (s *TenantService) Provision(ctx context.Context) (*ProvisionResult, error) {
	hash, err := hashPassword(BootstrapAdminPassword, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	tenant := &models.APIKey{Key: NewAPIKeyValue()}
	admin := &models.User{
		Name:         "Admin",
		Email:        s.gen.Email(),
		Address:      "Admin Address",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.repo.CreateWithAdmin(ctx, tenant, admin); err != nil {
		return nil, fmt.Errorf("failed to provision api key: %w", err)
	}

	s.log.Info("Provisioned api key", zap.Uint("api_key_id", tenant.ID), zap.Uint("admin_id", admin.ID))
	publish(s.log, s.events, EventTenantProvisioned, map[string]interface{}{
		"api_key_id": tenant.ID, "admin_id": admin.ID,
	})

	return &ProvisionResult{
		APIKey: tenant.Key,
		AdminUser: AdminCredential{
			ID:       admin.ID,
			Name:     admin.Name,
			Email:    admin.Email,
			Password: BootstrapAdminPassword,
		},
	}, nil
}

// Delete removes tenant with all of its users and products.
func (s *TenantService) Delete(ctx context.Context, tenant *models.APIKey) error {
	if err := s.repo.Delete(ctx, tenant.ID); err != nil {
		return fmt.Errorf("failed to delete api key: %w", err)
	}
	s.log.Info("Deleted api key", zap.Uint("api_key_id", tenant.ID))
	publish(s.log, s.events, EventTenantDeleted, map[string]interface{}{"api_key_id": tenant.ID})
	return nil
}
