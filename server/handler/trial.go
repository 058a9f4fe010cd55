package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tempoforge/tempo"
)

// TrialResponse reports the tier reached through a completed trial.
type TrialResponse struct {
	State *tempo.EntityState `json:"state"`
	Tier  string             `json:"tier"`
}

// PostTrial handles POST /:game/trial/:id, the externally gated advance.
func PostTrial(world *tempo.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		st, tier, err := world.CompleteTrial(ctx.Context(), ctx.Params("game"), ctx.Params("id"))
		if err != nil {
			if errors.Is(err, tempo.ErrUnknownGame) || errors.Is(err, tempo.ErrEntityNotFound) {
				return httpError(err)
			}
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return ctx.JSON(TrialResponse{State: st, Tier: tier.Name})
	}
}
