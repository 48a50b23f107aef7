package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"fakestore/internal/models"
	"fakestore/internal/services"
)

const (
	// APIKeyHeader carries the tenant's key.
	APIKeyHeader = "API-Key"

	tenantLocal = "tenant"
	userLocal   = "current_user"
)

// RequireAPIKey resolves the tenant from the API-Key header.
func RequireAPIKey(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenant, err := authService.ResolveTenant(c.UserContext(), c.Get(APIKeyHeader))
		if err != nil {
			return err
		}
		c.Locals(tenantLocal, tenant)
		return c.Next()
	}
}

// AuthRequired is a Fiber middleware that resolves the current user from a
// bearer token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fmt.Errorf("%w: Authorization header is required", services.ErrInvalidToken)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return fmt.Errorf("%w: Authorization header format must be 'Bearer <token>'", services.ErrInvalidToken)
		}

		user, err := authService.ResolveCurrentUser(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

// CurrentTenant returns the tenant stored by RequireAPIKey.
func CurrentTenant(c *fiber.Ctx) *models.APIKey {
	tenant, _ := c.Locals(tenantLocal).(*models.APIKey)
	return tenant
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocal).(*models.User)
	return user
}
