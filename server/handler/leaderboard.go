package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tempoforge/tempo"
	storage "github.com/tempoforge/tempo/storage/redis"
)

// LeaderboardResponse lists the game's top entities, best first.
type LeaderboardResponse struct {
	Game  string         `json:"game"`
	Ranks []storage.Rank `json:"ranks"`
}

// GetLeaderboard handles GET /:game/leaderboard?limit=N.
func GetLeaderboard(world *tempo.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		game := ctx.Params("game")
		limit := int64(ctx.QueryInt("limit", 10))
		ranks, err := world.Leaderboard(ctx.Context(), game, limit)
		if err != nil {
			return httpError(err)
		}
		return ctx.JSON(LeaderboardResponse{Game: game, Ranks: ranks})
	}
}
