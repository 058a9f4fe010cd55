// Package ladder holds the immutable progression ladders for each game: the
// ordered tier sequence, the per-tier advancement requirements, and the text
// pools used for flavor events. Ladders are registered once at process start
// and are read-only afterwards.
package ladder

import (
	"sync"

	"github.com/rotisserie/eris"
)

// Tier is one rung on a game's progression ladder.
type Tier struct {
	Index        int              `json:"index"`
	Key          string           `json:"key"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Gated        bool             `json:"gated"`
	Requirements map[string]int64 `json:"requirements,omitempty"`
	EventPool    []string         `json:"-"`
}

// Ladder is the ordered tier sequence for one game, plus the knobs for the
// daily flavor-event roll.
type Ladder struct {
	Game               string
	Tiers              []Tier
	EventBaseChance    int
	EventChancePerTier int
}

// Tier returns the tier at the given index.
func (l *Ladder) Tier(index int) (Tier, bool) {
	if index < 0 || index >= len(l.Tiers) {
		return Tier{}, false
	}
	return l.Tiers[index], true
}

// Next returns the tier that follows the given index. The highest tier is
// terminal and has no next.
func (l *Ladder) Next(index int) (Tier, bool) {
	return l.Tier(index + 1)
}

// Terminal reports whether the given index is the highest tier.
func (l *Ladder) Terminal(index int) bool {
	return index >= len(l.Tiers)-1
}

// EventChance is the percent chance of a flavor event firing on a day
// boundary at the given tier.
func (l *Ladder) EventChance(tierIndex int) int {
	return l.EventBaseChance + tierIndex*l.EventChancePerTier
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Ladder{}
)

// Register adds a ladder to the global registry. Ladders are registered from
// init or main before any engine runs and must not be mutated afterwards.
func Register(l *Ladder) error {
	if l.Game == "" {
		return eris.New("ladder game key must not be empty")
	}
	if len(l.Tiers) == 0 {
		return eris.Errorf("ladder %q has no tiers", l.Game)
	}
	for i, tier := range l.Tiers {
		if tier.Index != i {
			return eris.Errorf("ladder %q tier %q has index %d, want %d", l.Game, tier.Key, tier.Index, i)
		}
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[l.Game]; ok {
		return eris.Errorf("ladder %q already registered", l.Game)
	}
	registry[l.Game] = l
	return nil
}

// MustRegister is Register for static ladders defined in package init.
func MustRegister(l *Ladder) {
	if err := Register(l); err != nil {
		panic(err)
	}
}

// Get looks up a registered ladder by game key.
func Get(game string) (*Ladder, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	l, ok := registry[game]
	return l, ok
}
