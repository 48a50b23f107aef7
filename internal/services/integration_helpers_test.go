package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fakestore/internal/database/dbtest"
	"fakestore/internal/models"
	"fakestore/internal/repositories"
	"fakestore/internal/services"
)

// stack is a set of services over a private SQLite database.
type stack struct {
	db       *gorm.DB
	tenants  *services.TenantService
	seeder   *services.SeedService
	products *services.ProductService
	users    *services.UserService
	userRepo *repositories.GORMUserRepository
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db := dbtest.Open(t)
	gen := newFakeGenerator()
	cost := testConfig().BcryptCost

	tenantRepo := repositories.NewGORMTenantRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	seeder := services.NewSeedService(tenantRepo, productRepo, userRepo, gen, cost, testLogger, nil, nil)
	return &stack{
		db:       db,
		tenants:  services.NewTenantService(tenantRepo, gen, cost, testLogger, nil),
		seeder:   seeder,
		products: services.NewProductService(productRepo, seeder, testLogger, nil),
		users:    services.NewUserService(userRepo, seeder, cost, testLogger, nil),
		userRepo: userRepo,
	}
}

// provision creates a tenant and returns its bootstrap admin.
func (s *stack) provision(t *testing.T) *models.User {
	t.Helper()
	result, err := s.tenants.Provision(context.Background())
	require.NoError(t, err)
	admin, err := s.userRepo.GetByID(context.Background(), result.AdminUser.ID)
	require.NoError(t, err)
	return admin
}

// userWithRole creates a user of role in admin's tenant.
func (s *stack) userWithRole(t *testing.T, admin *models.User, role models.Role, email string) *models.User {
	t.Helper()
	user, err := s.users.Create(context.Background(), admin, services.UserInput{
		Name:     string(role) + " user",
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}
