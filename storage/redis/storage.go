// Package redis persists serialized entity state and per-game leaderboards.
// It deals only in opaque bytes and keys; what the bytes mean is the engine's
// business.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when no state exists for the requested entity.
var ErrNotFound = eris.New("entity state not found")

// Options configures the underlying redis client.
type Options = redis.Options

// Storage is a namespaced redis store. Entity states live in one hash per
// game; leaderboards in one sorted set per game.
type Storage struct {
	Namespace string
	Client    *redis.Client
	Log       zerolog.Logger
}

// NewStorage connects to redis with the given options under the namespace.
func NewStorage(log zerolog.Logger, namespace string, options Options) Storage {
	return Storage{
		Namespace: namespace,
		Client:    redis.NewClient(&options),
		Log:       log,
	}
}

// SaveState writes the serialized state for an entity.
func (s Storage) SaveState(ctx context.Context, game, entityID string, data []byte) error {
	if err := s.Client.HSet(ctx, s.stateKey(game), entityID, data).Err(); err != nil {
		return eris.Wrapf(err, "failed to save state for %s/%s", game, entityID)
	}
	return nil
}

// LoadState reads the serialized state for an entity. Missing entities yield
// ErrNotFound.
func (s Storage) LoadState(ctx context.Context, game, entityID string) ([]byte, error) {
	data, err := s.Client.HGet(ctx, s.stateKey(game), entityID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "failed to load state for %s/%s", game, entityID)
	}
	return data, nil
}

// DeleteState removes an entity's state and leaderboard entry.
func (s Storage) DeleteState(ctx context.Context, game, entityID string) error {
	pipe := s.Client.TxPipeline()
	pipe.HDel(ctx, s.stateKey(game), entityID)
	pipe.ZRem(ctx, s.leaderboardKey(game), entityID)
	if _, err := pipe.Exec(ctx); err != nil {
		return eris.Wrapf(err, "failed to delete state for %s/%s", game, entityID)
	}
	return nil
}

// ListEntityIDs returns every entity id stored for the game.
func (s Storage) ListEntityIDs(ctx context.Context, game string) ([]string, error) {
	ids, err := s.Client.HKeys(ctx, s.stateKey(game)).Result()
	if err != nil {
		return nil, eris.Wrapf(err, "failed to list entities for %s", game)
	}
	return ids, nil
}

// RecordScore upserts an entity's leaderboard score. Scores only move up.
func (s Storage) RecordScore(ctx context.Context, game, entityID string, score int64) error {
	member := redis.Z{Score: float64(score), Member: entityID}
	if err := s.Client.ZAddGT(ctx, s.leaderboardKey(game), member).Err(); err != nil {
		return eris.Wrapf(err, "failed to record score for %s/%s", game, entityID)
	}
	return nil
}

// Rank is one leaderboard row.
type Rank struct {
	EntityID string `json:"entity_id"`
	Score    int64  `json:"score"`
}

// Leaderboard returns the top entities for the game, best first.
func (s Storage) Leaderboard(ctx context.Context, game string, limit int64) ([]Rank, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.Client.ZRevRangeWithScores(ctx, s.leaderboardKey(game), 0, limit-1).Result()
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read leaderboard for %s", game)
	}
	ranks := make([]Rank, 0, len(rows))
	for _, row := range rows {
		id, ok := row.Member.(string)
		if !ok {
			continue
		}
		ranks = append(ranks, Rank{EntityID: id, Score: int64(row.Score)})
	}
	return ranks, nil
}

// Ping verifies the connection.
func (s Storage) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Client.Ping(ctx).Err(); err != nil {
		return eris.Wrap(err, "redis ping failed")
	}
	return nil
}

// Close shuts down the client.
func (s Storage) Close() error {
	if err := s.Client.Close(); err != nil {
		return eris.Wrap(err, "failed to close redis client")
	}
	return nil
}
