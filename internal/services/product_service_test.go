package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fakestore/internal/models"
	"fakestore/internal/repositories"
	"fakestore/internal/services"
)

type countingObserver struct {
	kinds []string
}

func (o *countingObserver) SeedObserved(kind string) {
	o.kinds = append(o.kinds, kind)
}

func newProductService(repo *MockProductRepository, observer services.SeedObserver) *services.ProductService {
	seeder := services.NewSeedService(nil, repo, nil, newFakeGenerator(), testConfig().BcryptCost, testLogger, nil, observer)
	return services.NewProductService(repo, seeder, testLogger, nil)
}

func actor(id uint, role models.Role) *models.User {
	return &models.User{ID: id, Role: role, APIKeyID: testTenant.ID}
}

func TestProductService_ListSeedsEmptyTenant(t *testing.T) {
	repo := new(MockProductRepository)
	observer := &countingObserver{}
	productService := newProductService(repo, observer)

	repo.On("Count", mock.Anything, testTenant.ID).Return(int64(0), nil).Once()
	repo.On("SeedIfEmpty", mock.Anything, testTenant.ID, mock.Anything).Return(true, nil).Once()
	repo.On("Count", mock.Anything, testTenant.ID).Return(int64(1000), nil).Once()
	repo.On("List", mock.Anything, testTenant.ID, 20, 20).Return([]models.Product{{ID: 21}, {ID: 22}}, nil).Once()

	page, err := productService.List(context.Background(), testTenant.ID, 2, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, int64(1000), page.TotalItems)
	assert.Equal(t, int64(50), page.TotalPages)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, []string{"products"}, observer.kinds)

	repo.AssertExpectations(t)
}

func TestProductService_ListSkipsSeedingWhenPopulated(t *testing.T) {
	repo := new(MockProductRepository)
	productService := newProductService(repo, nil)

	repo.On("Count", mock.Anything, testTenant.ID).Return(int64(1), nil)
	repo.On("List", mock.Anything, testTenant.ID, 0, services.DefaultProductLimit).Return([]models.Product{{ID: 1}}, nil)

	page, err := productService.List(context.Background(), testTenant.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, int64(1), page.TotalPages)
	repo.AssertNotCalled(t, "SeedIfEmpty", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_Create(t *testing.T) {
	input := services.ProductInput{Name: "Widget", Quantity: 3, Price: 9.5}

	t.Run("admin", func(t *testing.T) {
		repo := new(MockProductRepository)
		productService := newProductService(repo, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.APIKeyID == testTenant.ID && p.Name == "Widget"
		})).Return(nil)

		product, err := productService.Create(context.Background(), actor(1, models.RoleAdmin), input)
		require.NoError(t, err)
		assert.Equal(t, 9.5, product.Price)
		repo.AssertExpectations(t)
	})

	for _, role := range []models.Role{models.RoleManager, models.RoleVendor, models.RoleCustomer} {
		t.Run(string(role), func(t *testing.T) {
			repo := new(MockProductRepository)
			productService := newProductService(repo, nil)

			_, err := productService.Create(context.Background(), actor(2, role), input)
			var forbidden *services.ForbiddenError
			assert.ErrorAs(t, err, &forbidden)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		repo := new(MockProductRepository)
		productService := newProductService(repo, nil)

		_, err := productService.Create(context.Background(), actor(1, models.RoleAdmin), services.ProductInput{Price: -1})
		var validationErr *services.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "Name")
		assert.Contains(t, validationErr.Fields, "Price")
	})
}

func TestProductService_Update(t *testing.T) {
	name := "Renamed"

	t.Run("manager updates only the given fields", func(t *testing.T) {
		repo := new(MockProductRepository)
		productService := newProductService(repo, nil)
		existing := &models.Product{ID: 5, Name: "Old", Brand: "Acme", Quantity: 7, APIKeyID: testTenant.ID}
		repo.On("GetByID", mock.Anything, testTenant.ID, uint(5)).Return(existing, nil)
		repo.On("Update", mock.Anything, existing).Return(nil)

		product, err := productService.Update(context.Background(), actor(2, models.RoleManager), 5, services.ProductPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", product.Name)
		assert.Equal(t, "Acme", product.Brand)
		assert.Equal(t, 7, product.Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("vendor is forbidden", func(t *testing.T) {
		repo := new(MockProductRepository)
		productService := newProductService(repo, nil)

		_, err := productService.Update(context.Background(), actor(3, models.RoleVendor), 5, services.ProductPatch{Name: &name})
		var forbidden *services.ForbiddenError
		assert.ErrorAs(t, err, &forbidden)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing product", func(t *testing.T) {
		repo := new(MockProductRepository)
		productService := newProductService(repo, nil)
		repo.On("GetByID", mock.Anything, testTenant.ID, uint(99)).Return(nil, repositories.ErrNotFound)

		_, err := productService.Update(context.Background(), actor(1, models.RoleAdmin), 99, services.ProductPatch{Name: &name})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestProductService_Delete(t *testing.T) {
	repo := new(MockProductRepository)
	productService := newProductService(repo, nil)
	repo.On("Delete", mock.Anything, testTenant.ID, uint(5)).Return(nil)
	repo.On("Delete", mock.Anything, testTenant.ID, uint(6)).Return(repositories.ErrNotFound)

	err := productService.Delete(context.Background(), actor(2, models.RoleManager), 5)
	var forbidden *services.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, services.ActionDeleteProduct, forbidden.Action)

	assert.NoError(t, productService.Delete(context.Background(), actor(1, models.RoleAdmin), 5))
	assert.ErrorIs(t, productService.Delete(context.Background(), actor(1, models.RoleAdmin), 6), services.ErrNotFound)
	repo.AssertExpectations(t)
}
