// Package ascension is a cultivation-style idle domain: madra accumulates
// toward a tier ladder whose milestone tiers demand a trial, elixirs boost
// cycling for a while, and progress plateaus when only a trial remains.
package ascension

import (
	"math"

	"github.com/tempoforge/tempo"
	"github.com/tempoforge/tempo/ladder"
)

// GameKey is the registry key for this domain.
const GameKey = "ascension"

// Resource categories.
const (
	Madra     = "madra"
	Stones    = "stones"
	Insight   = "insight"
	Technique = "technique"
)

// Per-tier gain scaling.
const (
	MadraPerTier     = 10
	StonesBase       = 1
	TechniquePerTier = 2
	// MadraCapFactor times the next trial's madra requirement caps the pool.
	MadraCapFactor = 2
)

// Ladder is the ascension ladder. Milestone tiers are gated behind a trial;
// the rest fall to patient cycling.
var Ladder = &ladder.Ladder{
	Game:               GameKey,
	EventBaseChance:    30,
	EventChancePerTier: 5,
	Tiers: []ladder.Tier{
		{Index: 0, Key: "unsouled", Name: "Unsouled",
			EventPool: foundationEvents},
		{Index: 1, Key: "copper", Name: "Copper",
			Requirements: map[string]int64{Madra: 1_000},
			EventPool:    foundationEvents},
		{Index: 2, Key: "iron", Name: "Iron",
			Requirements: map[string]int64{Madra: 5_000},
			EventPool:    foundationEvents},
		{Index: 3, Key: "jade", Name: "Jade", Gated: true,
			Requirements: map[string]int64{Madra: 20_000, Insight: 100},
			Description:  "The jade trial must be faced in person.",
			EventPool:    adeptEvents},
		{Index: 4, Key: "gold", Name: "Gold",
			Requirements: map[string]int64{Madra: 100_000},
			EventPool:    adeptEvents},
		{Index: 5, Key: "underlord", Name: "Underlord", Gated: true,
			Requirements: map[string]int64{Madra: 500_000, Insight: 1_000},
			Description:  "Revelation of the soul cannot be ticked through.",
			EventPool:    lordEvents},
		{Index: 6, Key: "overlord", Name: "Overlord",
			Requirements: map[string]int64{Madra: 2_000_000},
			EventPool:    lordEvents},
		{Index: 7, Key: "archlord", Name: "Archlord",
			Requirements: map[string]int64{Madra: 10_000_000},
			EventPool:    lordEvents},
		{Index: 8, Key: "sage", Name: "Sage", Gated: true,
			Requirements: map[string]int64{Madra: 50_000_000, Insight: 10_000},
			Description:  "A Sage must touch the way alone.",
			EventPool:    ascendedEvents},
		{Index: 9, Key: "monarch", Name: "Monarch",
			Requirements: map[string]int64{Madra: 250_000_000},
			EventPool:    ascendedEvents},
		{Index: 10, Key: "transcendent", Name: "Transcendent", Gated: true,
			Requirements: map[string]int64{Madra: 1_000_000_000, Insight: 100_000},
			Description:  "The final gate opens only from the far side.",
			EventPool:    ascendedEvents},
	},
}

var (
	foundationEvents = []string{
		"An elder passes by and corrects your cycling posture.",
		"You find a cracked scale with a faint aura.",
		"A rival sect's disciple challenges you and loses.",
	}
	adeptEvents = []string{
		"A remnant whispers a fragment of an old technique.",
		"Your spirit sense brushes something vast and patient.",
		"A merchant offers spirit fruit at an honest price, a rarity.",
	}
	lordEvents = []string{
		"Lesser sects send gifts and carefully worded congratulations.",
		"A dream of a mountain that is also a sword.",
		"Your name is spoken in a court you have never visited.",
	}
	ascendedEvents = []string{
		"The heavens take brief, polite notice of you.",
		"A door opens in the air and closes before you can look inside.",
		"Something ancient adjusts its plans around your existence.",
	}
)

func init() {
	ladder.MustRegister(Ladder)
}

// Domain implements the ascension rules.
type Domain struct{}

// NewDomain returns the ascension domain.
func NewDomain() *Domain { return &Domain{} }

func (d *Domain) Game() string           { return GameKey }
func (d *Domain) Ladder() *ladder.Ladder { return Ladder }

func (d *Domain) Profile() tempo.Profile {
	return tempo.Profile{
		PeakCategories: []string{Madra, Insight},
		ScoreKey:       "power",
	}
}

// InitEntity sets a fresh cultivator's starting pools.
func (d *Domain) InitEntity(st *tempo.EntityState, _ map[string]string) {
	st.Resources[Madra] = 0
	st.Resources[Stones] = 10
	st.Resources[Insight] = 0
	st.Resources[Technique] = 0
}

// ComputeTickResources is one cycle of cultivation, scaling with tier.
func (d *Domain) ComputeTickResources(st *tempo.EntityState) tempo.ResourceGain {
	tier := int64(st.TierIndex)
	return tempo.ResourceGain{
		Madra:     MadraPerTier * (tier + 1),
		Stones:    StonesBase + tier,
		Insight:   1,
		Technique: TechniquePerTier * (tier + 1),
	}
}

// ApplyResourceGains adds the gains, flooring everything at zero and capping
// madra at the pool the current tier can hold.
func (d *Domain) ApplyResourceGains(st *tempo.EntityState, gains tempo.ResourceGain) {
	for category, amount := range gains {
		st.AddResource(category, amount)
		if st.Resources[category] < 0 {
			st.Resources[category] = 0
		}
	}
	st.Resources[Madra] = min(st.Resources[Madra], d.MadraCapacity(st))
}

// MadraCapacity is how much madra the channels can hold before the next
// trial. Ungated tiers between here and the trial fall within the cap, so
// only a trial ever walls off accumulation.
func (d *Domain) MadraCapacity(st *tempo.EntityState) int64 {
	for i := st.TierIndex + 1; i < len(Ladder.Tiers); i++ {
		if Ladder.Tiers[i].Gated {
			return Ladder.Tiers[i].Requirements[Madra] * MadraCapFactor
		}
	}
	return math.MaxInt64
}

// CanAdvanceTier checks the next tier's madra and insight requirements.
func (d *Domain) CanAdvanceTier(st *tempo.EntityState, next ladder.Tier) bool {
	for category, required := range next.Requirements {
		if st.Resources[category] < required {
			return false
		}
	}
	return true
}

// TierProgress is madra held over the next tier's madra requirement.
func (d *Domain) TierProgress(st *tempo.EntityState) float64 {
	next, ok := Ladder.Next(st.TierIndex)
	if !ok {
		return 1
	}
	required := next.Requirements[Madra]
	if required <= 0 {
		return 1
	}
	return min(float64(st.Resources[Madra])/float64(required), 1)
}

// Plateaued reports a cultivator who is ready for a trial the ticks cannot
// take for them.
func (d *Domain) Plateaued(st *tempo.EntityState) bool {
	next, ok := Ladder.Next(st.TierIndex)
	return ok && next.Gated && d.CanAdvanceTier(st, next)
}

// Score ranks cultivators by tier first, peak madra second.
func (d *Domain) Score(st *tempo.EntityState) int64 {
	return int64(st.TierIndex)*1_000_000_000 + st.Peaks[Madra]
}

// AdvancementEvent is the announcement for a breakthrough.
func (d *Domain) AdvancementEvent(st *tempo.EntityState, tier ladder.Tier) string {
	return st.Name + " has broken through to " + tier.Name + "!"
}
