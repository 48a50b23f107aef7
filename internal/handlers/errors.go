package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"fakestore/internal/services"
)

// ErrorHandler renders every error returned by a handler or middleware as a
// JSON body with the matching status code.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			validationErr *services.ValidationError
			forbiddenErr  *services.ForbiddenError
			fiberErr      *fiber.Error
		)

		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  validationErr.Fields,
			})
		case errors.As(err, &forbiddenErr):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Insufficient role",
				"error":   forbiddenErr.Error(),
				"action":  forbiddenErr.Action,
				"role":    forbiddenErr.Role,
			})
		case errors.Is(err, services.ErrInvalidAPIKey):
			return message(c, fiber.StatusForbidden, "Invalid API Key", err)
		case errors.Is(err, services.ErrInvalidCredentials):
			return message(c, fiber.StatusUnauthorized, "Invalid credentials", err)
		case errors.Is(err, services.ErrTokenExpired):
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return message(c, fiber.StatusUnauthorized, "Token expired", err)
		case errors.Is(err, services.ErrInvalidToken):
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return message(c, fiber.StatusUnauthorized, "Invalid token", err)
		case errors.Is(err, services.ErrUserNotFound):
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return message(c, fiber.StatusUnauthorized, "Invalid authentication token", err)
		case errors.Is(err, services.ErrNotFound):
			return message(c, fiber.StatusNotFound, "Not found", err)
		case errors.Is(err, services.ErrConflict):
			return message(c, fiber.StatusConflict, "Already exists", err)
		case errors.As(err, &fiberErr):
			return message(c, fiberErr.Code, fiberErr.Message, err)
		}

		log.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}

func message(c *fiber.Ctx, status int, msg string, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"message": msg,
		"error":   err.Error(),
	})
}
