package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tempoforge/tempo"
)

// JournalResponse lists an entity's retained tick results, oldest first.
type JournalResponse struct {
	Results []tempo.TickResult `json:"results"`
}

// GetJournal handles GET /:game/journal/:id.
func GetJournal(world *tempo.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(JournalResponse{
			Results: world.Recent(ctx.Params("game"), ctx.Params("id")),
		})
	}
}
