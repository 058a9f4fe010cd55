// Package tempo is a tick-based progression and offline-catchup engine for
// idle-style multiplayer games. One Engine wraps one game Domain and advances
// EntityState values through fixed-order ticks; offline time is settled
// through catchup with diminishing efficiency.
package tempo

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tempoforge/tempo/ladder"
)

const (
	// TickIntervalSeconds is the wall-clock length of one tick.
	TickIntervalSeconds = 60
	// MaxCatchupTicks caps how much offline time a single catchup settles.
	MaxCatchupTicks = 10000
	// SmallBatchThreshold is the largest catchup replayed tick by tick.
	SmallBatchThreshold = 100
	// TicksPerDay is the in-game day length in ticks.
	TicksPerDay = 100
	// MaxAutoAdvances caps automatic tier advances within one catchup.
	MaxAutoAdvances = 5
	// StarvationDivisor scales a food deficit into deaths.
	StarvationDivisor = 10
	// GrowthDivisor scales current population into baseline births.
	GrowthDivisor = 100
	// EventRollBound is the exclusive upper bound of the daily event roll.
	EventRollBound = 100
)

// Engine schedules ticks for one game domain. It performs no I/O and never
// fails; persistence and transport live in collaborators around it.
type Engine struct {
	domain Domain
	lad    *ladder.Ladder
	clock  func() time.Time
	rngMu  sync.Mutex
	rng    *rand.Rand
	logger zerolog.Logger
}

// roll draws a uniform value in [0, bound). rand.Rand is not safe for the
// concurrent per-entity calls a hosting world may make.
func (e *Engine) roll(bound int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(bound)
}

// New builds an engine around the given domain.
func New(domain Domain, opts ...EngineOption) *Engine {
	e := &Engine{
		domain: domain,
		lad:    domain.Ladder(),
		clock:  time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: log.With().Str("game", domain.Game()).Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Domain returns the engine's game domain.
func (e *Engine) Domain() Domain { return e.domain }

// Ladder returns the engine's progression ladder.
func (e *Engine) Ladder() *ladder.Ladder { return e.lad }

// Now returns the engine's current time.
func (e *Engine) Now() time.Time { return e.clock() }

// EngineOption configures an Engine at construction.
type EngineOption func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(clock func() time.Time) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithRand overrides the engine's randomness source.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger overrides the engine's logger.
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}
