// Package province is a kingdom-management domain: a gold, food, and rune
// economy driven by buildings, with unit training, sciences, population, and
// a protection timer for fresh provinces.
package province

import (
	"github.com/tempoforge/tempo"
	"github.com/tempoforge/tempo/ladder"
)

// GameKey is the registry key for this domain.
const GameKey = "province"

// Resource categories.
const (
	Gold  = "gold"
	Food  = "food"
	Runes = "runes"
)

// Building keys.
const (
	Home       = "home"
	Farm       = "farm"
	Mine       = "mine"
	Tower      = "tower"
	University = "university"
)

// Unit keys.
const (
	Soldier = "soldier"
	Worker  = "worker"
)

// AttrRace is the attribute key holding the province's race pick.
const AttrRace = "race"

// Per-building output and capacity values.
const (
	FoodPerFarm      = 4
	GoldPerMine      = 6
	RunesPerTower    = 1
	CapacityPerHome  = 5
	BaseCapacity     = 20
	BaseResearchRate = 5
	ResearchGoal     = 100
	FoodPerCitizens  = 5 // one food per this many citizens
	UpkeepPerSoldier = 1
	TaxedCitizens    = 10 // one gold per this many citizens
)

// ProtectionEffect shields a fresh province; it matches no resource category
// so it only times out, never boosts.
const ProtectionEffect = "protection"

// raceGrowthRate scales baseline population growth; 100 is neutral.
var raceGrowthRate = map[string]int64{
	"human": 200,
	"elf":   125,
	"dwarf": 150,
	"orc":   300,
}

// Ladder is the province progression ladder. The final charter is granted,
// not earned by ticking.
var Ladder = &ladder.Ladder{
	Game:               GameKey,
	EventBaseChance:    30,
	EventChancePerTier: 5,
	Tiers: []ladder.Tier{
		{Index: 0, Key: "outpost", Name: "Outpost",
			EventPool: outpostEvents},
		{Index: 1, Key: "hamlet", Name: "Hamlet",
			Requirements: map[string]int64{Gold: 500, "population": 50},
			EventPool:    settlementEvents},
		{Index: 2, Key: "village", Name: "Village",
			Requirements: map[string]int64{Gold: 2_000, "population": 120},
			EventPool:    settlementEvents},
		{Index: 3, Key: "town", Name: "Town",
			Requirements: map[string]int64{Gold: 10_000, "population": 300},
			EventPool:    townEvents},
		{Index: 4, Key: "city", Name: "City",
			Requirements: map[string]int64{Gold: 50_000, "population": 800},
			EventPool:    townEvents},
		{Index: 5, Key: "capital", Name: "Capital",
			Requirements: map[string]int64{Gold: 250_000, "population": 2_000},
			EventPool:    capitalEvents},
		{Index: 6, Key: "empire", Name: "Empire", Gated: true,
			Requirements: map[string]int64{Gold: 1_000_000, "population": 5_000},
			Description:  "An imperial charter must be granted by the crown.",
			EventPool:    capitalEvents},
	},
}

var (
	outpostEvents = []string{
		"A wandering trader sells you seed grain at half price.",
		"Wolves circle the palisade but keep their distance.",
		"A scout returns with word of fertile land nearby.",
	}
	settlementEvents = []string{
		"A good harvest fills the granary.",
		"Travelling masons offer to repair the walls.",
		"A festival lifts spirits across the settlement.",
	}
	townEvents = []string{
		"Merchant caravans crowd the market square.",
		"The guilds petition for a new charter.",
		"A vein of silver is struck in the lower mine.",
	}
	capitalEvents = []string{
		"Foreign envoys arrive bearing tribute.",
		"The royal mint issues a new coin in your honor.",
		"Scholars from distant lands petition the university.",
	}
)

func init() {
	ladder.MustRegister(Ladder)
}

// Domain implements the province rules.
type Domain struct{}

// NewDomain returns the province domain.
func NewDomain() *Domain { return &Domain{} }

func (d *Domain) Game() string           { return GameKey }
func (d *Domain) Ladder() *ladder.Ladder { return Ladder }

func (d *Domain) Profile() tempo.Profile {
	return tempo.Profile{
		FoodCategory: Food,
		ScoreKey:     "networth",
		ResearchGoal: ResearchGoal,
	}
}

// InitEntity seeds a fresh province with its starting economy and a day of
// protection. The race pick comes from attrs, defaulting to human.
func (d *Domain) InitEntity(st *tempo.EntityState, attrs map[string]string) {
	race := attrs[AttrRace]
	if _, ok := raceGrowthRate[race]; !ok {
		race = "human"
	}
	st.Attributes[AttrRace] = race
	st.Resources[Gold] = 500
	st.Resources[Food] = 200
	st.Resources[Runes] = 0
	st.Counts[building(Home)] = 16
	st.Counts[building(Farm)] = 4
	st.Counts[building(Mine)] = 2
	st.Population = 100
	st.MaxPopulation = BaseCapacity + CapacityPerHome*st.Counts[building(Home)]
	st.Effects = append(st.Effects, tempo.Effect{
		Category:  ProtectionEffect,
		Remaining: tempo.TicksPerDay,
	})
}

// ComputeTickResources is the per-tick economy: mines and taxes bring gold,
// farms race against mouths to feed, towers attune runes.
func (d *Domain) ComputeTickResources(st *tempo.EntityState) tempo.ResourceGain {
	upkeep := st.Population/FoodPerCitizens + st.Counts[unit(Soldier)]*UpkeepPerSoldier
	return tempo.ResourceGain{
		Gold:  GoldPerMine*st.Counts[building(Mine)] + st.Population/TaxedCitizens,
		Food:  FoodPerFarm*st.Counts[building(Farm)] - upkeep,
		Runes: RunesPerTower * st.Counts[building(Tower)],
	}
}

// ApplyResourceGains adds the gains. Gold and runes floor at zero; food may
// go negative so the population step can read the deficit before flooring it.
func (d *Domain) ApplyResourceGains(st *tempo.EntityState, gains tempo.ResourceGain) {
	for category, amount := range gains {
		st.AddResource(category, amount)
		if category != Food && st.Resources[category] < 0 {
			st.Resources[category] = 0
		}
	}
}

// CanAdvanceTier checks gold and population against the tier requirements.
func (d *Domain) CanAdvanceTier(st *tempo.EntityState, next ladder.Tier) bool {
	for category, required := range next.Requirements {
		if category == "population" {
			if st.Population < required {
				return false
			}
			continue
		}
		if st.Resources[category] < required {
			return false
		}
	}
	return true
}

// TierProgress is gold held over the next tier's gold requirement.
func (d *Domain) TierProgress(st *tempo.EntityState) float64 {
	next, ok := Ladder.Next(st.TierIndex)
	if !ok {
		return 1
	}
	required := next.Requirements[Gold]
	if required <= 0 {
		return 1
	}
	return min(float64(st.Resources[Gold])/float64(required), 1)
}

// Plateaued reports a province that qualifies for its charter but cannot
// advance by ticking.
func (d *Domain) Plateaued(st *tempo.EntityState) bool {
	next, ok := Ladder.Next(st.TierIndex)
	return ok && next.Gated && d.CanAdvanceTier(st, next)
}

// GrowthRate is the race's population growth rate; 100 is neutral.
func (d *Domain) GrowthRate(st *tempo.EntityState) int64 {
	rate, ok := raceGrowthRate[st.Attributes[AttrRace]]
	if !ok {
		return 100
	}
	return rate
}

// ResearchRate is the per-tick science progress.
func (d *Domain) ResearchRate(st *tempo.EntityState) int64 {
	return BaseResearchRate + st.Counts[building(University)]
}

// FinishResearch records the completed science.
func (d *Domain) FinishResearch(st *tempo.EntityState, key string) {
	st.Counts[science(key)]++
}

// FinishQueueEntry lands completed construction or training.
func (d *Domain) FinishQueueEntry(st *tempo.EntityState, entry tempo.QueueEntry) {
	switch entry.Kind {
	case tempo.QueueTrain:
		st.Counts[unit(entry.Key)] += entry.Count
	default:
		st.Counts[building(entry.Key)] += entry.Count
		if entry.Key == Home {
			st.MaxPopulation += CapacityPerHome * entry.Count
		}
	}
}

// Score is the province's networth, ranked on the leaderboard and tracked as
// a peak stat.
func (d *Domain) Score(st *tempo.EntityState) int64 {
	var buildings, units int64
	for key, count := range st.Counts {
		switch {
		case isBuilding(key):
			buildings += count
		case isUnit(key):
			units += count
		}
	}
	return st.Resources[Gold] +
		st.Resources[Runes]*10 +
		buildings*100 +
		units*25 +
		st.Population
}

// AdvancementEvent is the announcement for a settlement outgrowing its tier.
func (d *Domain) AdvancementEvent(st *tempo.EntityState, tier ladder.Tier) string {
	return st.Name + " has grown into a " + tier.Name + "!"
}

func building(key string) string { return "building:" + key }
func unit(key string) string     { return "unit:" + key }
func science(key string) string  { return "science:" + key }

func isBuilding(key string) bool { return len(key) > 9 && key[:9] == "building:" }
func isUnit(key string) bool     { return len(key) > 5 && key[:5] == "unit:" }
