package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tempoforge/tempo/ladder"
)

// LadderResponse lists a game's tiers in ascending order.
type LadderResponse struct {
	Game  string        `json:"game"`
	Tiers []ladder.Tier `json:"tiers"`
}

// GetLadder handles GET /:game/ladder.
func GetLadder() func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		game := ctx.Params("game")
		lad, ok := ladder.Get(game)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown game")
		}
		return ctx.JSON(LadderResponse{Game: game, Tiers: lad.Tiers})
	}
}
