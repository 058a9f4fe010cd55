package tempo

import (
	"time"

	"github.com/google/uuid"
)

// Queue entry kinds.
const (
	QueueBuild = "build"
	QueueTrain = "train"
)

// QueueEntry is one pending construction or training order. Remaining counts
// down once per tick; the order completes when it reaches zero.
type QueueEntry struct {
	Kind      string `json:"kind"`
	Key       string `json:"key"`
	Count     int64  `json:"count"`
	Remaining int64  `json:"remaining"`
}

// Effect is an active timed modifier. A positive Magnitude boosts gains of
// the matching resource category by that percentage each tick until the timer
// runs out.
type Effect struct {
	Category  string `json:"category"`
	Magnitude int64  `json:"magnitude"`
	Remaining int64  `json:"remaining"`
}

// Research is an in-progress research project. It completes when Progress
// reaches the domain's research goal.
type Research struct {
	Key      string `json:"key"`
	Progress int64  `json:"progress"`
}

// EntityState is the full progression state of one player entity. It is plain
// data: the engine mutates it in place and the storage layer serializes it
// as-is.
type EntityState struct {
	ID   string `json:"id"`
	Game string `json:"game"`
	Name string `json:"name"`

	TierIndex    int     `json:"tier_index"`
	TierProgress float64 `json:"tier_progress"`

	Resources map[string]int64 `json:"resources"`
	Counts    map[string]int64 `json:"counts"`
	// Attributes holds small domain-owned string facts, such as a race pick.
	Attributes map[string]string `json:"attributes"`

	Population    int64 `json:"population"`
	MaxPopulation int64 `json:"max_population"`

	Queue    []QueueEntry `json:"queue,omitempty"`
	Research *Research    `json:"research,omitempty"`
	Effects  []Effect     `json:"effects,omitempty"`

	Peaks map[string]int64 `json:"peaks"`

	// LastTick is the unix-seconds timestamp of the most recent processed
	// tick. It only ever moves forward.
	LastTick int64 `json:"last_tick"`
	// TotalTicks counts every tick ever processed for this entity.
	TotalTicks int64 `json:"total_ticks"`
}

// NewEntityState mints a fresh entity for the given game at tier zero.
func NewEntityState(game, name string, now time.Time) *EntityState {
	return &EntityState{
		ID:         uuid.New().String(),
		Game:       game,
		Name:       name,
		Resources:  map[string]int64{},
		Counts:     map[string]int64{},
		Attributes: map[string]string{},
		Peaks:      map[string]int64{},
		LastTick:   now.Unix(),
	}
}

// Resource returns the current amount in the given category.
func (s *EntityState) Resource(category string) int64 {
	return s.Resources[category]
}

// AddResource adds amount to the category with saturation. The floor is the
// domain's business; the engine itself never clamps here.
func (s *EntityState) AddResource(category string, amount int64) {
	s.Resources[category] = satAdd(s.Resources[category], amount)
}

// ActiveEffect returns the first active effect for the category, if any.
func (s *EntityState) ActiveEffect(category string) (Effect, bool) {
	for _, eff := range s.Effects {
		if eff.Category == category {
			return eff, true
		}
	}
	return Effect{}, false
}
