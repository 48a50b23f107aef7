package services

import (
	"context"

	"go.uber.org/zap"

	"fakestore/internal/models"
	"fakestore/internal/repositories"
)

// ProductInput is the full set of fields accepted when creating a product.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=500"`
	Brand       string  `json:"brand" validate:"max=100"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"max=100"`
	Photo       string  `json:"photo" validate:"max=255"`
}

// ProductPatch lists the updatable product fields. Nil fields are left unchanged.
type ProductPatch struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Brand       *string  `json:"brand" validate:"omitempty,max=100"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Photo       *string  `json:"photo" validate:"omitempty,max=255"`
}

func (p ProductPatch) apply(product *models.Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Brand != nil {
		product.Brand = *p.Brand
	}
	if p.Quantity != nil {
		product.Quantity = *p.Quantity
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Photo != nil {
		product.Photo = *p.Photo
	}
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	seeder *SeedService
	log    *zap.Logger
	events EventPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, seeder *SeedService, log *zap.Logger, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		seeder: seeder,
		log:    log,
		events: events,
	}
}

// List returns one page of the tenant's products, seeding them first if the
// tenant has none.
func (s *ProductService) List(ctx context.Context, tenantID uint, page, limit int) (*Page[models.Product], error) {
	page, limit = NormalizePage(page, limit, DefaultProductLimit)
	if err := s.seeder.EnsureProductsSeeded(ctx, tenantID); err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.List(ctx, tenantID, offset(page, limit), limit)
	if err != nil {
		return nil, err
	}
	return newPage(page, limit, total, products), nil
}

// Get retrieves a single product of the tenant.
func (s *ProductService) Get(ctx context.Context, tenantID, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// Create adds a product to the actor's tenant.
func (s *ProductService) Create(ctx context.Context, actor *models.User, in ProductInput) (*models.Product, error) {
	if err := Authorize(ActionCreateProduct, actor.Role); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Brand:       in.Brand,
		Quantity:    in.Quantity,
		Price:       in.Price,
		Category:    in.Category,
		Photo:       in.Photo,
		APIKeyID:    actor.APIKeyID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	publish(s.log, s.events, EventProductCreated, map[string]interface{}{
		"api_key_id": product.APIKeyID, "product_id": product.ID, "actor_id": actor.ID,
	})
	return product, nil
}

// Update applies the fields present in patch to one of the actor's tenant's products.
func (s *ProductService) Update(ctx context.Context, actor *models.User, id uint, patch ProductPatch) (*models.Product, error) {
	if err := Authorize(ActionUpdateProduct, actor.Role); err != nil {
		return nil, err
	}
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(ctx, actor.APIKeyID, id)
	if err != nil {
		return nil, err
	}
	patch.apply(product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	publish(s.log, s.events, EventProductUpdated, map[string]interface{}{
		"api_key_id": product.APIKeyID, "product_id": product.ID, "actor_id": actor.ID,
	})
	return product, nil
}

// Delete removes one of the actor's tenant's products.
func (s *ProductService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if err := Authorize(ActionDeleteProduct, actor.Role); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, actor.APIKeyID, id); err != nil {
		return err
	}
	publish(s.log, s.events, EventProductDeleted, map[string]interface{}{
		"api_key_id": actor.APIKeyID, "product_id": id, "actor_id": actor.ID,
	})
	return nil
}
