package tempo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/tempoforge/tempo/codec"
	"github.com/tempoforge/tempo/journal"
	"github.com/tempoforge/tempo/ladder"
	"github.com/tempoforge/tempo/statsd"
	storage "github.com/tempoforge/tempo/storage/redis"
)

// ErrUnknownGame is returned for a game no engine is registered for.
var ErrUnknownGame = eris.New("unknown game")

// ErrEntityNotFound is returned when the requested entity does not exist.
var ErrEntityNotFound = eris.New("entity not found")

type entityKey struct {
	game string
	id   string
}

// World hosts one engine per game around shared persistence. Entities are
// offline by default and settle their elapsed time through Checkout; checked
// out entities are resident and advance on the game loop until released.
type World struct {
	store   storage.Storage
	engines map[string]*Engine
	journal *journal.Book[TickResult]
	logger  zerolog.Logger

	tickChannel     <-chan time.Time
	tickDoneChannel chan<- uint64
	tickInterval    time.Duration

	residentMu sync.Mutex
	resident   map[entityKey]struct{}

	// entityLocks serializes the load-advance-save sequence per entity. The
	// engine itself assumes at most one call touches a state at a time; the
	// world is where that guarantee is enforced.
	entityLocks sync.Map
}

func (w *World) lockEntity(key entityKey) func() {
	lock, _ := w.entityLocks.LoadOrStore(key, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithTickChannel sets the channel that drives the game loop, replacing the
// interval ticker. Tests use this to fire loop iterations on demand.
func WithTickChannel(ch <-chan time.Time) WorldOption {
	return func(w *World) { w.tickChannel = ch }
}

// WithTickDoneChannel sets a channel that receives the loop iteration number
// after each completed pass over the resident entities.
func WithTickDoneChannel(ch chan<- uint64) WorldOption {
	return func(w *World) { w.tickDoneChannel = ch }
}

// WithTickInterval sets the game loop interval. Ignored when a tick channel
// is supplied.
func WithTickInterval(interval time.Duration) WorldOption {
	return func(w *World) { w.tickInterval = interval }
}

// WithJournalSize sets how many recent results are retained per entity.
func WithJournalSize(size int) WorldOption {
	return func(w *World) { w.journal = journal.New[TickResult](size) }
}

// NewWorld builds a world around the given storage.
func NewWorld(store storage.Storage, opts ...WorldOption) *World {
	w := &World{
		store:        store,
		engines:      map[string]*Engine{},
		journal:      journal.New[TickResult](journal.DefaultSize),
		logger:       log.With().Str("component", "world").Logger(),
		tickInterval: TickIntervalSeconds * time.Second,
		resident:     map[entityKey]struct{}{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// RegisterEngine adds a game engine to the world.
func (w *World) RegisterEngine(e *Engine) error {
	game := e.Domain().Game()
	if _, ok := w.engines[game]; ok {
		return eris.Errorf("engine for game %q already registered", game)
	}
	w.engines[game] = e
	return nil
}

// Engine returns the engine registered for the game.
func (w *World) Engine(game string) (*Engine, bool) {
	e, ok := w.engines[game]
	return e, ok
}

// Games lists the registered game keys.
func (w *World) Games() []string {
	games := make([]string, 0, len(w.engines))
	for game := range w.engines {
		games = append(games, game)
	}
	return games
}

// CreateEntity mints and persists a fresh entity for the game. Attrs carries
// creation-time picks the domain understands.
func (w *World) CreateEntity(ctx context.Context, game, name string, attrs map[string]string) (*EntityState, error) {
	engine, ok := w.engines[game]
	if !ok {
		return nil, ErrUnknownGame
	}
	st := NewEntityState(game, name, engine.Now())
	if initializer, ok := engine.Domain().(Initializer); ok {
		initializer.InitEntity(st, attrs)
	}
	if err := w.saveState(ctx, engine, st); err != nil {
		return nil, err
	}
	w.logger.Info().Str("game", game).Str("entity", st.ID).Msg("entity created")
	return st, nil
}

// State loads an entity's state without advancing it.
func (w *World) State(ctx context.Context, game, entityID string) (*EntityState, error) {
	if _, ok := w.engines[game]; !ok {
		return nil, ErrUnknownGame
	}
	return w.loadState(ctx, game, entityID)
}

// Checkout settles the entity's offline time, marks it resident so the game
// loop keeps it moving, and returns the fresh state with the catchup result.
func (w *World) Checkout(ctx context.Context, game, entityID string) (*EntityState, TickResult, error) {
	engine, ok := w.engines[game]
	if !ok {
		return nil, TickResult{}, ErrUnknownGame
	}
	unlock := w.lockEntity(entityKey{game, entityID})
	defer unlock()
	st, err := w.loadState(ctx, game, entityID)
	if err != nil {
		return nil, TickResult{}, err
	}

	span, ctx := tracer.StartSpanFromContext(ctx, "world.catchup",
		tracer.Tag("game", game), tracer.Tag("entity", entityID))
	result := engine.ProcessCatchup(st)
	span.Finish()

	if result.TicksProcessed > 0 {
		w.journal.Record(journalKey(game, entityID), result)
		statsd.EmitCatchupStat(game, result.TicksProcessed)
	}
	if err := w.saveState(ctx, engine, st); err != nil {
		return nil, TickResult{}, err
	}

	w.residentMu.Lock()
	w.resident[entityKey{game, entityID}] = struct{}{}
	w.residentMu.Unlock()
	return st, result, nil
}

// Release marks the entity offline again. Its time accrues for the next
// Checkout instead of the game loop.
func (w *World) Release(game, entityID string) {
	w.residentMu.Lock()
	delete(w.resident, entityKey{game, entityID})
	w.residentMu.Unlock()
}

// TickEntity advances the entity by exactly one tick and persists it.
func (w *World) TickEntity(ctx context.Context, game, entityID string) (*EntityState, TickResult, error) {
	engine, ok := w.engines[game]
	if !ok {
		return nil, TickResult{}, ErrUnknownGame
	}
	unlock := w.lockEntity(entityKey{game, entityID})
	defer unlock()
	st, err := w.loadState(ctx, game, entityID)
	if err != nil {
		return nil, TickResult{}, err
	}
	result := engine.ProcessTick(st)
	w.journal.Record(journalKey(game, entityID), result)
	if err := w.saveState(ctx, engine, st); err != nil {
		return nil, TickResult{}, err
	}
	return st, result, nil
}

// CompleteTrial performs the gated tier advance for the entity and persists
// the outcome.
func (w *World) CompleteTrial(ctx context.Context, game, entityID string) (*EntityState, ladder.Tier, error) {
	engine, ok := w.engines[game]
	if !ok {
		return nil, ladder.Tier{}, ErrUnknownGame
	}
	unlock := w.lockEntity(entityKey{game, entityID})
	defer unlock()
	st, err := w.loadState(ctx, game, entityID)
	if err != nil {
		return nil, ladder.Tier{}, err
	}
	tier, ok := engine.CompleteTrial(st)
	if !ok {
		return nil, ladder.Tier{}, eris.New("trial requirements not met")
	}
	if err := w.saveState(ctx, engine, st); err != nil {
		return nil, ladder.Tier{}, err
	}
	return st, tier, nil
}

// Recent returns the retained tick results for the entity, oldest first.
func (w *World) Recent(game, entityID string) []TickResult {
	return w.journal.Recent(journalKey(game, entityID))
}

// Leaderboard returns the game's top entities by score.
func (w *World) Leaderboard(ctx context.Context, game string, limit int64) ([]storage.Rank, error) {
	if _, ok := w.engines[game]; !ok {
		return nil, ErrUnknownGame
	}
	return w.store.Leaderboard(ctx, game, limit)
}

// StartGameLoop runs the resident-entity loop until ctx is cancelled. Each
// pass advances every resident entity one tick.
func (w *World) StartGameLoop(ctx context.Context) {
	tickSource := w.tickChannel
	if tickSource == nil {
		ticker := time.NewTicker(w.tickInterval)
		defer ticker.Stop()
		tickSource = ticker.C
	}
	w.logger.Info().Msg("game loop started")
	var iteration uint64
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("game loop stopped")
			return
		case <-tickSource:
			iteration++
			w.runLoopPass(ctx)
			if w.tickDoneChannel != nil {
				w.tickDoneChannel <- iteration
			}
		}
	}
}

func (w *World) runLoopPass(ctx context.Context) {
	start := time.Now()
	w.residentMu.Lock()
	keys := make([]entityKey, 0, len(w.resident))
	for key := range w.resident {
		keys = append(keys, key)
	}
	w.residentMu.Unlock()

	for _, key := range keys {
		if _, _, err := w.TickEntity(ctx, key.game, key.id); err != nil {
			w.logger.Error().Err(err).
				Str("game", key.game).
				Str("entity", key.id).
				Msg("failed to tick resident entity")
		}
	}
	statsd.EmitTickStat(start, "loop_pass")
}

func (w *World) loadState(ctx context.Context, game, entityID string) (*EntityState, error) {
	data, err := w.store.LoadState(ctx, game, entityID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, err
	}
	st, err := codec.Decode[*EntityState](data)
	if err != nil {
		return nil, eris.Wrapf(err, "corrupt state for %s/%s", game, entityID)
	}
	return st, nil
}

func (w *World) saveState(ctx context.Context, engine *Engine, st *EntityState) error {
	data, err := codec.Encode(st)
	if err != nil {
		return eris.Wrapf(err, "failed to encode state for %s/%s", st.Game, st.ID)
	}
	if err := w.store.SaveState(ctx, st.Game, st.ID, data); err != nil {
		return err
	}
	if err := w.store.RecordScore(ctx, st.Game, st.ID, w.score(engine, st)); err != nil {
		return err
	}
	return nil
}

// score is the leaderboard ranking value: the domain's composite score when
// it has one, otherwise lifetime ticks.
func (w *World) score(engine *Engine, st *EntityState) int64 {
	if scorer, ok := engine.Domain().(Scorer); ok {
		return scorer.Score(st)
	}
	return st.TotalTicks
}

func journalKey(game, entityID string) string {
	return game + "/" + entityID
}
