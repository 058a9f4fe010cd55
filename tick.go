package tempo

import "time"

// ProcessTick advances the entity by exactly one tick. The step order is
// fixed: queue completion, resource gains, population, research, effect
// timers, automatic tier advance, peak stats, counters.
func (e *Engine) ProcessTick(st *EntityState) TickResult {
	budget := MaxAutoAdvances
	return e.tick(st, e.clock(), &budget)
}

func (e *Engine) tick(st *EntityState, now time.Time, advanceBudget *int) TickResult {
	result := NewTickResult()

	e.completeQueueWork(st, 1, &result)

	gains := e.boostedGains(st)
	e.domain.ApplyResourceGains(st, gains)
	result.Gains = gains.Clone()

	e.stepPopulation(st, &result)
	e.stepResearch(st, 1, &result)
	e.expireEffects(st, 1, &result)
	e.autoAdvance(st, advanceBudget, &result)
	e.recordPeaks(st)

	st.TotalTicks = satAdd(st.TotalTicks, 1)
	st.LastTick = max(now.Unix(), st.LastTick+1)
	result.TicksProcessed = 1

	if st.TotalTicks%TicksPerDay == 0 {
		if event, ok := e.rollDailyEvent(st); ok {
			result.Events = append(result.Events, event)
		}
	}

	result.Plateaued = e.domain.Plateaued(st)
	return result
}

// boostedGains computes the domain's base gains for one tick and scales each
// category covered by an active effect by that effect's percentage.
func (e *Engine) boostedGains(st *EntityState) ResourceGain {
	gains := e.domain.ComputeTickResources(st)
	for _, eff := range st.Effects {
		base, ok := gains[eff.Category]
		if !ok {
			continue
		}
		gains[eff.Category] = satAdd(base, satMul(base, eff.Magnitude)/100)
	}
	return gains
}

// completeQueueWork counts down every queued order by ticks and finishes the
// ones that reach zero, preserving queue order for the rest.
func (e *Engine) completeQueueWork(st *EntityState, ticks int64, result *TickResult) {
	if len(st.Queue) == 0 {
		return
	}
	builder, _ := e.domain.(Builder)
	remaining := st.Queue[:0]
	for _, entry := range st.Queue {
		entry.Remaining -= ticks
		if entry.Remaining > 0 {
			remaining = append(remaining, entry)
			continue
		}
		if builder != nil {
			builder.FinishQueueEntry(st, entry)
		}
		switch entry.Kind {
		case QueueTrain:
			result.UnitsTrained = satAdd(result.UnitsTrained, entry.Count)
		default:
			result.BuildingsCompleted = satAdd(result.BuildingsCompleted, entry.Count)
		}
	}
	st.Queue = remaining
}

// stepResearch adds ticks worth of progress to the active project and applies
// its benefit when it completes.
func (e *Engine) stepResearch(st *EntityState, ticks int64, result *TickResult) {
	researcher, ok := e.domain.(Researcher)
	goal := e.domain.Profile().ResearchGoal
	if !ok || goal <= 0 || st.Research == nil {
		return
	}
	st.Research.Progress = satAdd(st.Research.Progress, satMul(researcher.ResearchRate(st), ticks))
	if st.Research.Progress < goal {
		return
	}
	key := st.Research.Key
	researcher.FinishResearch(st, key)
	st.Research = nil
	result.ResearchCompleted = append(result.ResearchCompleted, key)
}

// expireEffects counts every effect timer down by ticks and drops the ones
// that run out, reporting their categories in expiry order.
func (e *Engine) expireEffects(st *EntityState, ticks int64, result *TickResult) {
	if len(st.Effects) == 0 {
		return
	}
	active := st.Effects[:0]
	for _, eff := range st.Effects {
		eff.Remaining -= ticks
		if eff.Remaining > 0 {
			active = append(active, eff)
			continue
		}
		result.ExpiredEffects = append(result.ExpiredEffects, eff.Category)
	}
	st.Effects = active
	if len(st.Effects) == 0 {
		st.Effects = nil
	}
}

// autoAdvance moves the entity up one tier when the next tier is ungated, its
// requirements are met, and the catchup advance budget is not exhausted.
// Gated tiers halt automatic progression until the caller completes the gate.
func (e *Engine) autoAdvance(st *EntityState, budget *int, result *TickResult) {
	defer func() {
		st.TierProgress = e.domain.TierProgress(st)
	}()
	if *budget <= 0 {
		return
	}
	next, ok := e.lad.Next(st.TierIndex)
	if !ok || next.Gated || !e.domain.CanAdvanceTier(st, next) {
		return
	}
	st.TierIndex = next.Index
	*budget--
	result.AdvancedTier = next.Name
	result.TierAdvances = satAdd(result.TierAdvances, 1)
	if announcer, ok := e.domain.(Announcer); ok {
		result.Events = append(result.Events, announcer.AdvancementEvent(st, next))
	}
	e.logger.Info().
		Str("entity", st.ID).
		Str("tier", next.Name).
		Msg("tier advanced")
}

// recordPeaks refreshes the all-time highs for the profiled categories.
func (e *Engine) recordPeaks(st *EntityState) {
	profile := e.domain.Profile()
	if st.Peaks == nil {
		st.Peaks = map[string]int64{}
	}
	for _, category := range profile.PeakCategories {
		st.Peaks[category] = max(st.Peaks[category], st.Resources[category])
	}
	if profile.ScoreKey != "" {
		if scorer, ok := e.domain.(Scorer); ok {
			st.Peaks[profile.ScoreKey] = max(st.Peaks[profile.ScoreKey], scorer.Score(st))
		}
	}
}

// rollDailyEvent draws a flavor event from the current tier's pool. The
// chance grows with tier; a roll equal to the chance still fires.
func (e *Engine) rollDailyEvent(st *EntityState) (string, bool) {
	tier, ok := e.lad.Tier(st.TierIndex)
	if !ok || len(tier.EventPool) == 0 {
		return "", false
	}
	if e.roll(EventRollBound) > e.lad.EventChance(st.TierIndex) {
		return "", false
	}
	return tier.EventPool[e.roll(len(tier.EventPool))], true
}
