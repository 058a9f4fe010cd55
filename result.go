package tempo

// TickResult summarizes everything that happened over one tick, or over a
// whole catchup run when results are merged.
type TickResult struct {
	TicksProcessed int64        `json:"ticks_processed"`
	Gains          ResourceGain `json:"gains"`

	BuildingsCompleted int64 `json:"buildings_completed"`
	UnitsTrained       int64 `json:"units_trained"`
	PopulationBorn     int64 `json:"population_born"`
	PopulationStarved  int64 `json:"population_starved"`

	// AdvancedTier is the name of the highest tier reached, empty when no
	// advance happened.
	AdvancedTier string `json:"advanced_tier,omitempty"`
	TierAdvances int64  `json:"tier_advances"`

	ResearchCompleted []string `json:"research_completed,omitempty"`
	ExpiredEffects    []string `json:"expired_effects,omitempty"`

	Plateaued bool     `json:"plateaued"`
	Events    []string `json:"events,omitempty"`
}

// NewTickResult returns an empty result ready to accumulate.
func NewTickResult() TickResult {
	return TickResult{Gains: ResourceGain{}}
}

// Merge folds other into r: counters sum, gains sum, the later advanced tier
// wins, the plateau flag sticks, and events keep their order.
func (r *TickResult) Merge(other TickResult) {
	r.TicksProcessed = satAdd(r.TicksProcessed, other.TicksProcessed)
	if r.Gains == nil {
		r.Gains = ResourceGain{}
	}
	r.Gains.Add(other.Gains)
	r.BuildingsCompleted = satAdd(r.BuildingsCompleted, other.BuildingsCompleted)
	r.UnitsTrained = satAdd(r.UnitsTrained, other.UnitsTrained)
	r.PopulationBorn = satAdd(r.PopulationBorn, other.PopulationBorn)
	r.PopulationStarved = satAdd(r.PopulationStarved, other.PopulationStarved)
	if other.AdvancedTier != "" {
		r.AdvancedTier = other.AdvancedTier
	}
	r.TierAdvances = satAdd(r.TierAdvances, other.TierAdvances)
	r.ResearchCompleted = append(r.ResearchCompleted, other.ResearchCompleted...)
	r.ExpiredEffects = append(r.ExpiredEffects, other.ExpiredEffects...)
	r.Plateaued = r.Plateaued || other.Plateaued
	r.Events = append(r.Events, other.Events...)
}
