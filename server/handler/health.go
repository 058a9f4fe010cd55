package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tempoforge/tempo"
)

// HealthResponse reports liveness and the games this deployment hosts.
type HealthResponse struct {
	OK    bool     `json:"ok"`
	Games []string `json:"games"`
}

// GetHealth handles GET /health.
func GetHealth(world *tempo.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(HealthResponse{
			OK:    true,
			Games: world.Games(),
		})
	}
}
