package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fakestore/internal/middleware"
	"fakestore/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes. Both require an API key.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, requireAPIKey fiber.Handler) {
	authRoutes := router.Group("/auth", requireAPIKey)
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister registers a new customer in the caller's tenant.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.UserInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	user, err := h.authService.Register(c.UserContext(), middleware.CurrentTenant(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Email == "" || req.Password == "" {
		return &services.ValidationError{Fields: map[string]string{
			"credentials": "Fields 'email' and 'password' are required",
		}}
	}

	token, err := h.authService.Authenticate(c.UserContext(), middleware.CurrentTenant(c), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(LoginResponse{AccessToken: token, TokenType: "bearer"})
}
