package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tempoforge/tempo"
)

// CreateEntityRequest is the body for POST /:game/entities.
type CreateEntityRequest struct {
	Name  string            `json:"name"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// PostCreateEntity handles POST /:game/entities.
func PostCreateEntity(world *tempo.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		var req CreateEntityRequest
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		st, err := world.CreateEntity(ctx.Context(), ctx.Params("game"), req.Name, req.Attrs)
		if err != nil {
			return httpError(err)
		}
		return ctx.Status(fiber.StatusCreated).JSON(st)
	}
}

// GetState handles GET /:game/state/:id.
func GetState(world *tempo.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		st, err := world.State(ctx.Context(), ctx.Params("game"), ctx.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return ctx.JSON(st)
	}
}
