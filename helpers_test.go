package tempo

import (
	"time"

	"github.com/tempoforge/tempo/ladder"
)

// stubDomain is a minimal domain for engine tests: 10 energy per tick, a
// configurable food gain, tiers requiring energy.
type stubDomain struct {
	lad        *ladder.Ladder
	foodGain   int64
	growthRate int64
	research   int64
}

func newStubDomain(lad *ladder.Ladder) *stubDomain {
	return &stubDomain{lad: lad, growthRate: 100, research: 10}
}

func (d *stubDomain) Game() string           { return d.lad.Game }
func (d *stubDomain) Ladder() *ladder.Ladder { return d.lad }

func (d *stubDomain) Profile() Profile {
	return Profile{
		FoodCategory:   "food",
		PeakCategories: []string{"energy"},
		ResearchGoal:   100,
	}
}

func (d *stubDomain) ComputeTickResources(st *EntityState) ResourceGain {
	return ResourceGain{"energy": 10, "food": d.foodGain}
}

func (d *stubDomain) ApplyResourceGains(st *EntityState, gains ResourceGain) {
	for category, amount := range gains {
		st.AddResource(category, amount)
		if category != "food" && st.Resources[category] < 0 {
			st.Resources[category] = 0
		}
	}
}

func (d *stubDomain) CanAdvanceTier(st *EntityState, next ladder.Tier) bool {
	for category, required := range next.Requirements {
		if st.Resources[category] < required {
			return false
		}
	}
	return true
}

func (d *stubDomain) TierProgress(st *EntityState) float64 {
	next, ok := d.lad.Next(st.TierIndex)
	if !ok {
		return 1
	}
	required := next.Requirements["energy"]
	if required <= 0 {
		return 1
	}
	return min(float64(st.Resources["energy"])/float64(required), 1)
}

func (d *stubDomain) Plateaued(st *EntityState) bool {
	next, ok := d.lad.Next(st.TierIndex)
	return ok && next.Gated && d.CanAdvanceTier(st, next)
}

func (d *stubDomain) GrowthRate(st *EntityState) int64 { return d.growthRate }

func (d *stubDomain) ResearchRate(st *EntityState) int64 { return d.research }

func (d *stubDomain) FinishResearch(st *EntityState, key string) {
	st.Counts["science:"+key]++
}

func (d *stubDomain) FinishQueueEntry(st *EntityState, entry QueueEntry) {
	st.Counts[entry.Kind+":"+entry.Key] += entry.Count
}

// openLadder has plenty of ungated headroom for advancement tests.
func openLadder() *ladder.Ladder {
	tiers := make([]ladder.Tier, 8)
	for i := range tiers {
		tiers[i] = ladder.Tier{Index: i, Key: tierKey(i), Name: "Rank " + tierKey(i)}
		if i > 0 {
			tiers[i].Requirements = map[string]int64{"energy": int64(i) * 100}
		}
	}
	return &ladder.Ladder{Game: "stub", Tiers: tiers}
}

// gatedLadder gates the third advance.
func gatedLadder() *ladder.Ladder {
	lad := openLadder()
	lad.Tiers[3].Gated = true
	return lad
}

// omenLadder always fires the same daily event.
func omenLadder() *ladder.Ladder {
	lad := openLadder()
	for i := range lad.Tiers {
		lad.Tiers[i].EventPool = []string{"an omen"}
	}
	lad.EventBaseChance = 100
	return lad
}

func tierKey(i int) string {
	return string(rune('a' + i))
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestEngine wires a stub domain to a fake clock.
func newTestEngine(lad *ladder.Ladder) (*Engine, *stubDomain, *fakeClock) {
	domain := newStubDomain(lad)
	clock := newFakeClock()
	engine := New(domain, WithClock(clock.Now))
	return engine, domain, clock
}

// newTestState mints a state stamped at the fake clock's current time.
func newTestState(clock *fakeClock) *EntityState {
	return NewEntityState("stub", "tester", clock.Now())
}
