package tempo

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TicksSince converts the time elapsed since lastTick into whole ticks,
// clamped to the catchup cap. Clocks that ran backwards yield zero.
func TicksSince(lastTick int64, now time.Time) int64 {
	elapsed := now.Unix() - lastTick
	if elapsed < 0 {
		return 0
	}
	return min(elapsed/TickIntervalSeconds, MaxCatchupTicks)
}

// OfflineEfficiency is the fraction of normal gains awarded for an offline
// stretch of the given length. Short absences settle at full value; long ones
// step down so offline time never beats active play.
func OfflineEfficiency(ticks int64) float64 {
	switch {
	case ticks <= 100:
		return 1.0
	case ticks <= 1000:
		return 0.8
	case ticks <= 5000:
		return 0.5
	default:
		return 0.3
	}
}

// ProcessCatchup settles all offline time for the entity in one call,
// deriving the tick count from the engine clock.
func (e *Engine) ProcessCatchup(st *EntityState) TickResult {
	now := e.clock()
	ticks := TicksSince(st.LastTick, now)
	if ticks == 0 {
		return NewTickResult()
	}

	// A clamped catchup forfeits the excess offline time; otherwise the
	// sub-tick remainder carries over to the next call.
	clamped := now.Unix()-st.LastTick > MaxCatchupTicks*TickIntervalSeconds

	start := time.Now()
	result := e.ProcessCatchupTicks(st, ticks)
	if clamped {
		st.LastTick = now.Unix()
	}
	e.logger.Info().
		Str("entity", st.ID).
		Int64("ticks", ticks).
		Dur("took", time.Since(start)).
		Msg("catchup settled")
	return result
}

// ProcessCatchupTicks settles the given number of ticks, clamped to
// MaxCatchupTicks. Small counts are replayed tick by tick so the outcome
// matches staying online; larger ones are settled in a single batch at
// reduced efficiency. At most MaxAutoAdvances tiers are gained either way,
// and a gated tier halts automatic progression where it stands. The result
// ends with a summary event describing the aggregate gains.
func (e *Engine) ProcessCatchupTicks(st *EntityState, ticks int64) TickResult {
	ticks = min(max(ticks, 0), MaxCatchupTicks)
	if ticks == 0 {
		return NewTickResult()
	}
	var result TickResult
	if ticks <= SmallBatchThreshold {
		result = e.replayTicks(st, ticks)
	} else {
		result = e.batchTicks(st, ticks)
	}
	result.Events = append(result.Events, catchupSummary(result))
	return result
}

// catchupSummary is the aggregate-gains line appended to every catchup.
func catchupSummary(result TickResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d ticks", result.TicksProcessed)
	categories := make([]string, 0, len(result.Gains))
	for category, amount := range result.Gains {
		if amount > 0 {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)
	for i, category := range categories {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "+%s %s", FormatAmount(result.Gains[category]), category)
	}
	b.WriteString(".")
	return b.String()
}

// replayTicks runs each offline tick exactly as if the entity had been
// online, merging the per-tick results. Each replayed tick lands one tick
// interval after the previous one.
func (e *Engine) replayTicks(st *EntityState, ticks int64) TickResult {
	result := NewTickResult()
	budget := MaxAutoAdvances
	for i := int64(0); i < ticks; i++ {
		tickTime := time.Unix(st.LastTick+TickIntervalSeconds, 0)
		step := e.tick(st, tickTime, &budget)
		result.Merge(step)
	}
	return result
}

// batchTicks settles a long absence in one pass: one tick's gains multiplied
// by the efficiency-reduced tick count, with queue work, research, effect
// timers, and day boundaries advanced by the full elapsed tick count.
func (e *Engine) batchTicks(st *EntityState, ticks int64) TickResult {
	result := NewTickResult()
	effectiveTicks := int64(float64(ticks) * OfflineEfficiency(ticks))

	e.completeQueueWork(st, ticks, &result)

	gains := e.boostedGains(st).Multiply(effectiveTicks)
	e.domain.ApplyResourceGains(st, gains)
	result.Gains = gains.Clone()

	e.batchPopulation(st, effectiveTicks, &result)
	e.stepResearch(st, effectiveTicks, &result)
	e.expireEffects(st, ticks, &result)

	budget := MaxAutoAdvances
	for budget > 0 {
		before := st.TierIndex
		e.autoAdvance(st, &budget, &result)
		if st.TierIndex == before {
			break
		}
	}
	e.recordPeaks(st)

	previousTotal := st.TotalTicks
	st.TotalTicks = satAdd(st.TotalTicks, ticks)
	st.LastTick += ticks * TickIntervalSeconds
	result.TicksProcessed = ticks

	for day := previousTotal/TicksPerDay + 1; day <= st.TotalTicks/TicksPerDay; day++ {
		if event, ok := e.rollDailyEvent(st); ok {
			result.Events = append(result.Events, event)
		}
	}

	result.Plateaued = e.domain.Plateaued(st)
	return result
}

// batchPopulation is the one-shot population settlement for batch catchup: a
// deficit starves once off the final balance, a surplus grows for the
// efficiency-reduced tick count.
func (e *Engine) batchPopulation(st *EntityState, effectiveTicks int64, result *TickResult) {
	food := e.domain.Profile().FoodCategory
	if food == "" {
		return
	}
	balance := st.Resources[food]
	if balance < 0 {
		starved := min(st.Population, -balance/StarvationDivisor)
		st.Population -= starved
		st.Resources[food] = 0
		result.PopulationStarved = satAdd(result.PopulationStarved, starved)
		return
	}
	e.growPopulation(st, effectiveTicks, result)
}
