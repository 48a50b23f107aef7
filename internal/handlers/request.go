package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes a JSON body into v, rejecting fields v does not declare
// and values of the wrong type.
func parseBody(c *fiber.Ctx, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return fiber.NewError(fiber.StatusBadRequest, "Request body is required")
		}
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if dec.More() {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: trailing data")
	}
	return nil
}

// idParam reads the positive integer :id route parameter.
func idParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}
