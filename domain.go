package tempo

import (
	"math"

	"github.com/tempoforge/tempo/ladder"
)

// ResourceGain is a per-tick delta keyed by resource category. Values may be
// negative for categories that are consumed faster than they are produced.
type ResourceGain map[string]int64

// Scale multiplies every gain by factor, truncating toward zero.
func (g ResourceGain) Scale(factor float64) ResourceGain {
	scaled := make(ResourceGain, len(g))
	for category, amount := range g {
		scaled[category] = int64(float64(amount) * factor)
	}
	return scaled
}

// Multiply multiplies every gain by n with saturation.
func (g ResourceGain) Multiply(n int64) ResourceGain {
	scaled := make(ResourceGain, len(g))
	for category, amount := range g {
		scaled[category] = satMul(amount, n)
	}
	return scaled
}

// Add sums other into g.
func (g ResourceGain) Add(other ResourceGain) {
	for category, amount := range other {
		g[category] = satAdd(g[category], amount)
	}
}

// Clone returns an independent copy of g.
func (g ResourceGain) Clone() ResourceGain {
	cloned := make(ResourceGain, len(g))
	for category, amount := range g {
		cloned[category] = amount
	}
	return cloned
}

// Profile describes the shape of a domain's state so the engine knows which
// optional tick steps apply.
type Profile struct {
	// FoodCategory names the resource whose balance drives population growth
	// and starvation. Empty disables the population step.
	FoodCategory string
	// PeakCategories lists the resource categories tracked as all-time peaks.
	PeakCategories []string
	// ScoreKey is the peak-stat key for the domain's composite score, tracked
	// when the domain implements Scorer. Empty disables score tracking.
	ScoreKey string
	// ResearchGoal is the progress value at which a research project
	// completes. Zero disables the research step.
	ResearchGoal int64
}

// Domain supplies the game-specific rules the engine schedules. All methods
// are pure over the passed state; none may perform I/O or fail.
type Domain interface {
	// Game is the registry key, matching the domain's ladder.
	Game() string
	// Ladder is the domain's progression ladder.
	Ladder() *ladder.Ladder
	// Profile describes which optional tick steps apply to this domain.
	Profile() Profile
	// ComputeTickResources returns the base gains for one tick of the given
	// state, before boost-effect scaling.
	ComputeTickResources(st *EntityState) ResourceGain
	// ApplyResourceGains applies already-scaled gains to the state, enforcing
	// the domain's own caps and floors.
	ApplyResourceGains(st *EntityState, gains ResourceGain)
	// CanAdvanceTier reports whether the state meets the requirements of the
	// given next tier.
	CanAdvanceTier(st *EntityState, next ladder.Tier) bool
	// TierProgress is the state's fractional progress toward the next tier,
	// in [0, 1].
	TierProgress(st *EntityState) float64
	// Plateaued reports whether progression has stalled and the player should
	// be nudged toward the gated advance path.
	Plateaued(st *EntityState) bool
}

// Initializer is implemented by domains that seed fresh entities with a
// starting economy. Attrs carries creation-time picks such as a race.
type Initializer interface {
	InitEntity(st *EntityState, attrs map[string]string)
}

// Researcher is implemented by domains with a research track.
type Researcher interface {
	// ResearchRate is the per-tick progress added to an active project.
	ResearchRate(st *EntityState) int64
	// FinishResearch applies the completed project's benefit to the state.
	FinishResearch(st *EntityState, key string)
}

// GrowthRater is implemented by domains whose population grows faster or
// slower than the baseline. 100 is neutral; 200 doubles baseline growth.
type GrowthRater interface {
	GrowthRate(st *EntityState) int64
}

// Builder is implemented by domains that apply completed queue work to state.
type Builder interface {
	FinishQueueEntry(st *EntityState, entry QueueEntry)
}

// Scorer is implemented by domains with a composite score worth tracking as a
// peak stat, recorded under Profile.ScoreKey.
type Scorer interface {
	Score(st *EntityState) int64
}

// Announcer is implemented by domains that emit flavor text on tier advance.
type Announcer interface {
	AdvancementEvent(st *EntityState, tier ladder.Tier) string
}

func satAdd(a, b int64) int64 {
	sum := a + b
	if b > 0 && sum < a {
		return math.MaxInt64
	}
	if b < 0 && sum > a {
		return math.MinInt64
	}
	return sum
}

func satMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	// MinInt64 * -1 wraps straight back to MinInt64, fooling the division
	// check below.
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return math.MaxInt64
	}
	product := a * b
	if product/b != a {
		if (a > 0) == (b > 0) {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return product
}
