package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tempoforge/tempo"
	"github.com/tempoforge/tempo/statsd"
)

// TickResponse carries the advanced state and what the ticks produced.
type TickResponse struct {
	State   *tempo.EntityState `json:"state"`
	Result  tempo.TickResult   `json:"result"`
	Message string             `json:"message,omitempty"`
}

// PostTick handles POST /:game/tick/:id, advancing the entity one tick.
func PostTick(world *tempo.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		st, result, err := world.TickEntity(ctx.Context(), ctx.Params("game"), ctx.Params("id"))
		if err != nil {
			return httpError(err)
		}
		statsd.EmitTickStat(start, "http_tick")
		return ctx.JSON(TickResponse{State: st, Result: result})
	}
}

// PostCatchup handles POST /:game/catchup/:id, settling all offline time and
// marking the entity resident.
func PostCatchup(world *tempo.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		st, result, err := world.Checkout(ctx.Context(), ctx.Params("game"), ctx.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return ctx.JSON(TickResponse{
			State:   st,
			Result:  result,
			Message: tempo.WelcomeBack(result),
		})
	}
}

// PostRelease handles POST /:game/release/:id, returning the entity to
// offline accrual.
func PostRelease(world *tempo.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		world.Release(ctx.Params("game"), ctx.Params("id"))
		return ctx.SendStatus(fiber.StatusNoContent)
	}
}
