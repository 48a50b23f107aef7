package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fakestore/internal/middleware"
	"fakestore/internal/services"
)

// TenantHandler handles provisioning and deletion of API keys.
type TenantHandler struct {
	service *services.TenantService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(service *services.TenantService) *TenantHandler {
	return &TenantHandler{
		service: service,
	}
}

// RegisterRoutes registers the API key routes.
func (h *TenantHandler) RegisterRoutes(router fiber.Router, requireAPIKey fiber.Handler) {
	apiRoutes := router.Group("/api")
	apiRoutes.Post("/", h.HandleProvision)
	apiRoutes.Delete("/", requireAPIKey, h.HandleDelete)
}

// HandleProvision creates a tenant and returns its key and bootstrap admin.
func (h *TenantHandler) HandleProvision(c *fiber.Ctx) error {
	result, err := h.service.Provision(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleDelete deletes the calling tenant and everything it owns.
func (h *TenantHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), middleware.CurrentTenant(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "API Key deleted"})
}
