package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"fakestore/internal/models"
	"fakestore/internal/repositories"
	"fakestore/pkg/fakedata"
)

const (
	// ProductSeedCount is the number of products generated for an empty tenant.
	ProductSeedCount = 1000
	// SeedUserPassword is the password of every generated user.
	SeedUserPassword = "password123"
)

// UserSeedPlan is the role distribution of generated users, in insertion order.
var UserSeedPlan = []struct {
	Role  models.Role
	Count int
}{
	{models.RoleAdmin, 1},
	{models.RoleManager, 1},
	{models.RoleVendor, 3},
	{models.RoleCustomer, 5},
}

// FakeGenerator supplies synthetic field values.
type FakeGenerator interface {
	Product() fakedata.ProductFields
	User() fakedata.UserFields
	Email() string
}

// SeedObserver is notified whenever a tenant receives a generated batch.
type SeedObserver interface {
	SeedObserved(kind string)
}

// SeedService lazily fills a tenant's empty collections with mock data.
type SeedService struct {
	tenantRepo  repositories.TenantRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	gen         FakeGenerator
	bcryptCost  int
	log         *zap.Logger
	events      EventPublisher
	observer    SeedObserver

	// group collapses concurrent first listings of one tenant in this process.
	// The repositories' tenant row lock covers other processes.
	group singleflight.Group
}

// NewSeedService creates a new SeedService. observer may be nil.
func NewSeedService(
	tenantRepo repositories.TenantRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	gen FakeGenerator,
	bcryptCost int,
	log *zap.Logger,
	events EventPublisher,
	observer SeedObserver,
) *SeedService {
	return &SeedService{
		tenantRepo:  tenantRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		gen:         gen,
		bcryptCost:  bcryptCost,
		log:         log,
		events:      events,
		observer:    observer,
	}
}

// EnsureProductsSeeded generates ProductSeedCount products for a tenant that
// owns none. Calling it again is a no-op.
func (s *SeedService) EnsureProductsSeeded(ctx context.Context, tenantID uint) error {
	total, err := s.productRepo.Count(ctx, tenantID)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	_, err, _ = s.group.Do(fmt.Sprintf("products:%d", tenantID), func() (interface{}, error) {
		// Shared by every waiting caller, so one caller's cancellation must not abort it.
		seeded, err := s.productRepo.SeedIfEmpty(context.WithoutCancel(ctx), tenantID, s.generateProducts)
		if err != nil {
			return nil, fmt.Errorf("failed to seed products for api key %d: %w", tenantID, err)
		}
		if seeded {
			s.seeded(tenantID, "products", ProductSeedCount)
		}
		return nil, nil
	})
	return err
}

// EnsureUsersSeeded generates the UserSeedPlan users the first time a
// tenant's users are listed.
func (s *SeedService) EnsureUsersSeeded(ctx context.Context, tenantID uint) error {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant.UsersSeeded {
		return nil
	}

	_, err, _ = s.group.Do(fmt.Sprintf("users:%d", tenantID), func() (interface{}, error) {
		// One hash serves every generated user; they share the password.
		hash, err := hashPassword(SeedUserPassword, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		seeded, err := s.userRepo.SeedOnce(context.WithoutCancel(ctx), tenantID, func() []models.User {
			return s.generateUsers(hash)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed users for api key %d: %w", tenantID, err)
		}
		if seeded {
			total := 0
			for _, p := range UserSeedPlan {
				total += p.Count
			}
			s.seeded(tenantID, "users", total)
		}
		return nil, nil
	})
	return err
}

func (s *SeedService) seeded(tenantID uint, kind string, count int) {
	s.log.Info("Seeded tenant", zap.Uint("api_key_id", tenantID), zap.String("kind", kind), zap.Int("count", count))
	if s.observer != nil {
		s.observer.SeedObserved(kind)
	}
	publish(s.log, s.events, EventTenantSeeded, map[string]interface{}{
		"api_key_id": tenantID, "kind": kind, "count": count,
	})
}

func (s *SeedService) generateProducts() []models.Product {
	products := make([]models.Product, 0, ProductSeedCount)
	for i := 0; i < ProductSeedCount; i++ {
		f := s.gen.Product()
		products = append(products, models.Product{
			Name:        f.Name,
			Description: f.Description,
			Brand:       f.Brand,
			Quantity:    f.Quantity,
			Price:       f.Price,
			Category:    f.Category,
			Photo:       f.Photo,
		})
	}
	return products
}

func (s *SeedService) generateUsers(passwordHash string) []models.User {
	var users []models.User
	for _, plan := range UserSeedPlan {
		for i := 0; i < plan.Count; i++ {
			f := s.gen.User()
			users = append(users, models.User{
				Name:         f.Name,
				Email:        f.Email,
				Address:      f.Address,
				PasswordHash: passwordHash,
				Role:         plan.Role,
			})
		}
	}
	return users
}
