package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fakestore/internal/middleware"
	"fakestore/internal/services"
)

// UserHandler handles HTTP requests for a tenant's users.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes. All of them need a bearer token.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/users", authRequired)
	userRoutes.Get("/", h.HandleList)
	userRoutes.Get("/me", h.HandleMe)
	userRoutes.Get("/:id", h.HandleGet)
	userRoutes.Post("/", h.HandleCreate)
	userRoutes.Put("/:id", h.HandleUpdate)
	userRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns a page of the tenant's users.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), middleware.CurrentUser(c),
		c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultUserLimit))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleMe returns the authenticated user.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// HandleGet returns a single user of the tenant.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleCreate creates a user in the caller's tenant.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.UserInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	user, err := h.service.Create(c.UserContext(), middleware.CurrentUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleUpdate partially updates a user.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var patch services.UserPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}
	user, err := h.service.Update(c.UserContext(), middleware.CurrentUser(c), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleDelete deletes a user.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
