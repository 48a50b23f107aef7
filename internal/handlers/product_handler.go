package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fakestore/internal/middleware"
	"fakestore/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. Reads are scoped by API key,
// writes by the bearer's tenant.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, requireAPIKey, authRequired fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", requireAPIKey, h.HandleList)
	productRoutes.Get("/:id", requireAPIKey, h.HandleGet)
	productRoutes.Post("/", authRequired, h.HandleCreate)
	productRoutes.Put("/:id", authRequired, h.HandleUpdate)
	productRoutes.Delete("/:id", authRequired, h.HandleDelete)
}

// HandleList returns a page of the tenant's products.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), middleware.CurrentTenant(c).ID,
		c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultProductLimit))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGet returns a single product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	product, err := h.service.Get(c.UserContext(), middleware.CurrentTenant(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreate creates a product in the caller's tenant.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	product, err := h.service.Create(c.UserContext(), middleware.CurrentUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate partially updates a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var patch services.ProductPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}
	product, err := h.service.Update(c.UserContext(), middleware.CurrentUser(c), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDelete deletes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
