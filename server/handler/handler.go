// Package handler holds one constructor per HTTP endpoint. Each takes the
// world and returns a fiber handler.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tempoforge/tempo"
)

// httpError maps world errors onto HTTP statuses.
func httpError(err error) error {
	switch {
	case errors.Is(err, tempo.ErrUnknownGame):
		return fiber.NewError(fiber.StatusNotFound, "unknown game")
	case errors.Is(err, tempo.ErrEntityNotFound):
		return fiber.NewError(fiber.StatusNotFound, "entity not found")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
