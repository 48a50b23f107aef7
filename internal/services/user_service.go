package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"fakestore/internal/models"
	"fakestore/internal/repositories"
)

// UserInput is the set of fields accepted when creating a user.
type UserInput struct {
	Name     string      `json:"name" validate:"required,max=255"`
	Email    string      `json:"email" validate:"required,email,max=255"`
	Address  string      `json:"address" validate:"max=500"`
	Password string      `json:"password" validate:"required,min=6,max=72"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=admin manager vendor customer"`
}

// UserPatch lists the updatable user fields. Nil fields are left unchanged.
type UserPatch struct {
	Name     *string      `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string      `json:"email" validate:"omitempty,email,max=255"`
	Address  *string      `json:"address" validate:"omitempty,max=500"`
	Password *string      `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *models.Role `json:"role" validate:"omitempty,oneof=admin manager vendor customer"`
}

// UserService handles business logic related to a tenant's users.
type UserService struct {
	repo       repositories.UserRepository
	seeder     *SeedService
	bcryptCost int
	log        *zap.Logger
	events     EventPublisher
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository, seeder *SeedService, bcryptCost int, log *zap.Logger, events EventPublisher) *UserService {
	return &UserService{
		repo:       repo,
		seeder:     seeder,
		bcryptCost: bcryptCost,
		log:        log,
		events:     events,
	}
}

// List returns one page of the actor's tenant's users, seeding them on first use.
func (s *UserService) List(ctx context.Context, actor *models.User, page, limit int) (*Page[models.User], error) {
	if err := Authorize(ActionListUsers, actor.Role); err != nil {
		return nil, err
	}
	page, limit = NormalizePage(page, limit, DefaultUserLimit)
	if err := s.seeder.EnsureUsersSeeded(ctx, actor.APIKeyID); err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, actor.APIKeyID)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx, actor.APIKeyID, offset(page, limit), limit)
	if err != nil {
		return nil, err
	}
	return newPage(page, limit, total, users), nil
}

// Get retrieves a user of the actor's tenant.
func (s *UserService) Get(ctx context.Context, actor *models.User, id uint) (*models.User, error) {
	return s.repo.GetByTenantAndID(ctx, actor.APIKeyID, id)
}

// Create adds a user to the actor's tenant. Roles other than customer require an admin.
func (s *UserService) Create(ctx context.Context, actor *models.User, in UserInput) (*models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}
	if err := Authorize(CreateUserAction(in.Role), actor.Role); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		Address:      in.Address,
		PasswordHash: hash,
		Role:         in.Role,
		APIKeyID:     actor.APIKeyID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	publish(s.log, s.events, EventUserCreated, map[string]interface{}{
		"api_key_id": user.APIKeyID, "user_id": user.ID, "role": user.Role, "actor_id": actor.ID,
	})
	return user, nil
}

// Update applies patch to a user of the actor's tenant. Users may edit
// themselves; editing others or changing a role requires an admin.
func (s *UserService) Update(ctx context.Context, actor *models.User, id uint, patch UserPatch) (*models.User, error) {
	user, err := s.repo.GetByTenantAndID(ctx, actor.APIKeyID, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(UpdateUserAction(actor.ID, user.ID), actor.Role); err != nil {
		return nil, err
	}
	if patch.Role != nil && *patch.Role != user.Role {
		if err := Authorize(ActionChangeRole, actor.Role); err != nil {
			return nil, err
		}
	}
	if err := validateStruct(patch); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = strings.ToLower(*patch.Email)
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Password != nil {
		hash, err := hashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	publish(s.log, s.events, EventUserUpdated, map[string]interface{}{
		"api_key_id": user.APIKeyID, "user_id": user.ID, "actor_id": actor.ID,
	})
	return user, nil
}

// Delete removes a user of the actor's tenant.
func (s *UserService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if err := Authorize(ActionDeleteUser, actor.Role); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, actor.APIKeyID, id); err != nil {
		return err
	}
	publish(s.log, s.events, EventUserDeleted, map[string]interface{}{
		"api_key_id": actor.APIKeyID, "user_id": id, "actor_id": actor.ID,
	})
	return nil
}
