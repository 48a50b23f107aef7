package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"fakestore/internal/config"
	"fakestore/internal/models"
	"fakestore/pkg/fakedata"
)

const testJWTSecret = "test_jwt_secret"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      testJWTSecret,
		AccessTokenTTL: 30 * time.Minute,
		BcryptCost:     bcrypt.MinCost,
	}
}

var testLogger = zap.NewNop()


// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByTenantAndID(ctx context.Context, tenantID, id uint) (*models.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, tenantID uint, email string) (*models.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, tenantID uint, offset, limit int) ([]models.User, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, tenantID uint) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, tenantID, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUserRepository) SeedOnce(ctx context.Context, tenantID uint, generate func() []models.User) (bool, error) {
	args := m.Called(ctx, tenantID, generate)
	return args.Bool(0), args.Error(1)
}

// MockTenantRepository is a mock implementation of repositories.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) CreateWithAdmin(ctx context.Context, tenant *models.APIKey, admin *models.User) error {
	args := m.Called(ctx, tenant, admin)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByKey(ctx context.Context, key string) (*models.APIKey, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.APIKey), args.Error(1)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uint) (*models.APIKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.APIKey), args.Error(1)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, tenantID uint, offset, limit int) ([]models.Product, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, tenantID uint) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, tenantID, id uint) (*models.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, tenantID, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) SeedIfEmpty(ctx context.Context, tenantID uint, generate func() []models.Product) (bool, error) {
	args := m.Called(ctx, tenantID, generate)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher records published events.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(eventType string, payload map[string]interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

// newFakeGenerator returns a deterministic generator.
func newFakeGenerator() *fakedata.Generator {
	return fakedata.New(7)
}
