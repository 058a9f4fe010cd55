package tempo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicksSince(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	assert.Zero(t, TicksSince(now.Unix(), now))
	assert.Zero(t, TicksSince(now.Add(time.Hour).Unix(), now), "backwards clock yields zero")
	assert.Equal(t, int64(1), TicksSince(now.Add(-90*time.Second).Unix(), now))
	assert.Equal(t, int64(60), TicksSince(now.Add(-time.Hour).Unix(), now))
	assert.Equal(t, int64(MaxCatchupTicks), TicksSince(now.Add(-365*24*time.Hour).Unix(), now))
}

func TestOfflineEfficiency(t *testing.T) {
	assert.Equal(t, 1.0, OfflineEfficiency(50))
	assert.Equal(t, 1.0, OfflineEfficiency(100))
	assert.Equal(t, 0.8, OfflineEfficiency(500))
	assert.Equal(t, 0.8, OfflineEfficiency(1000))
	assert.Equal(t, 0.5, OfflineEfficiency(2000))
	assert.Equal(t, 0.5, OfflineEfficiency(5000))
	assert.Equal(t, 0.3, OfflineEfficiency(10000))
}

func TestCatchupZeroElapsed(t *testing.T) {
	engine, _, clock := newTestEngine(openLadder())
	st := newTestState(clock)
	stamp := st.LastTick

	result := engine.ProcessCatchup(st)

	assert.Zero(t, result.TicksProcessed)
	assert.Zero(t, st.TotalTicks)
	assert.Equal(t, stamp, st.LastTick)
}

func TestSmallCatchupMatchesOnlinePlay(t *testing.T) {
	replayed, _, replayClock := newTestEngine(openLadder())
	online, _, onlineClock := newTestEngine(openLadder())

	offline := newTestState(replayClock)
	active := newTestState(onlineClock)
	active.ID = offline.ID
	// timers straddling the window: two expire mid-run, one survives it
	offline.Effects = []Effect{
		{Category: "energy", Magnitude: 50, Remaining: 10},
		{Category: "food", Magnitude: 25, Remaining: 25},
		{Category: "energy", Magnitude: 10, Remaining: 60},
	}
	active.Effects = append([]Effect(nil), offline.Effects...)

	const ticks = 50
	replayClock.Advance(ticks * time.Minute)
	caught := replayed.ProcessCatchup(offline)

	merged := NewTickResult()
	for i := 0; i < ticks; i++ {
		onlineClock.Advance(time.Minute)
		merged.Merge(online.ProcessTick(active))
	}

	assert.Equal(t, int64(ticks), caught.TicksProcessed)
	assert.Equal(t, active.Resources, offline.Resources)
	assert.Equal(t, active.TotalTicks, offline.TotalTicks)
	assert.Equal(t, active.TierIndex, offline.TierIndex)
	assert.Equal(t, active.LastTick, offline.LastTick)
	assert.Equal(t, active.Effects, offline.Effects)
	assert.Equal(t, merged.Gains, caught.Gains)
	assert.Equal(t, merged.ExpiredEffects, caught.ExpiredEffects)
}

func TestCatchupPreservesSubTickRemainder(t *testing.T) {
	engine, _, clock := newTestEngine(openLadder())
	st := newTestState(clock)
	stamp := st.LastTick
	clock.Advance(90 * time.Second)

	result := engine.ProcessCatchup(st)

	assert.Equal(t, int64(1), result.TicksProcessed)
	assert.Equal(t, stamp+TickIntervalSeconds, st.LastTick)

	// the leftover 30 seconds count toward the next tick
	clock.Advance(30 * time.Second)
	result = engine.ProcessCatchup(st)
	assert.Equal(t, int64(1), result.TicksProcessed)
}

func TestBatchCatchupAppliesEfficiency(t *testing.T) {
	engine, _, clock := newTestEngine(openLadder())
	st := newTestState(clock)
	st.TierIndex = len(openLadder().Tiers) - 1 // terminal, no advances to interfere
	clock.Advance(2000 * time.Minute)

	result := engine.ProcessCatchup(st)

	assert.Equal(t, int64(2000), result.TicksProcessed)
	// 10 energy per tick at half efficiency
	assert.Equal(t, int64(10_000), result.Gains["energy"])
	assert.Equal(t, int64(10_000), st.Resources["energy"])
	assert.Equal(t, int64(2000), st.TotalTicks)
}

func TestCatchupClampsToMax(t *testing.T) {
	engine, _, clock := newTestEngine(openLadder())
	st := newTestState(clock)
	clock.Advance(30 * 24 * time.Hour)

	result := engine.ProcessCatchup(st)

	assert.Equal(t, int64(MaxCatchupTicks), result.TicksProcessed)
	assert.Equal(t, int64(MaxCatchupTicks), st.TotalTicks)
	// the excess offline time is forfeited
	assert.Equal(t, clock.Now().Unix(), st.LastTick)

	again := engine.ProcessCatchup(st)
	assert.Zero(t, again.TicksProcessed)
}

func TestCatchupAdvancesAtMostFiveTiers(t *testing.T) {
	engine, _, clock := newTestEngine(openLadder())
	st := newTestState(clock)
	st.Resources["energy"] = 1_000_000
	clock.Advance(SmallBatchThreshold * time.Minute)

	result := engine.ProcessCatchup(st)

	assert.Equal(t, int64(MaxAutoAdvances), result.TierAdvances)
	assert.Equal(t, MaxAutoAdvances, st.TierIndex)
	assert.Equal(t, "Rank f", result.AdvancedTier)
}

func TestBatchCatchupAdvancesAtMostFiveTiers(t *testing.T) {
	engine, _, clock := newTestEngine(openLadder())
	st := newTestState(clock)
	st.Resources["energy"] = 1_000_000
	clock.Advance(5000 * time.Minute)

	result := engine.ProcessCatchup(st)

	assert.Equal(t, int64(MaxAutoAdvances), result.TierAdvances)
	assert.Equal(t, MaxAutoAdvances, st.TierIndex)
}

func TestCatchupHaltsAtGatedTier(t *testing.T) {
	engine, _, clock := newTestEngine(gatedLadder())
	st := newTestState(clock)
	st.Resources["energy"] = 1_000_000
	clock.Advance(5000 * time.Minute)

	result := engine.ProcessCatchup(st)

	// two ungated advances land, then the gate holds
	assert.Equal(t, int64(2), result.TierAdvances)
	assert.Equal(t, 2, st.TierIndex)
	assert.True(t, result.Plateaued)
}

func TestBatchCatchupAdvancesQueuesByFullTicks(t *testing.T) {
	engine, _, clock := newTestEngine(openLadder())
	st := newTestState(clock)
	st.Queue = []QueueEntry{
		{Kind: QueueBuild, Key: "farm", Count: 3, Remaining: 500},
		{Kind: QueueBuild, Key: "keep", Count: 1, Remaining: 5_000},
	}
	clock.Advance(2000 * time.Minute)

	result := engine.ProcessCatchup(st)

	assert.Equal(t, int64(3), result.BuildingsCompleted)
	require.Len(t, st.Queue, 1)
	assert.Equal(t, int64(3_000), st.Queue[0].Remaining)
}

func TestBatchCatchupExpiresEffectsByFullTicks(t *testing.T) {
	engine, _, clock := newTestEngine(openLadder())
	st := newTestState(clock)
	st.Effects = []Effect{{Category: "energy", Magnitude: 50, Remaining: 300}}
	clock.Advance(2000 * time.Minute)

	result := engine.ProcessCatchup(st)

	assert.Equal(t, []string{"energy"}, result.ExpiredEffects)
	assert.Empty(t, st.Effects)
	// the boost still applied to the batch gains before expiring
	assert.Equal(t, int64(15_000), result.Gains["energy"])
}

func TestProcessCatchupTicksClampsRequest(t *testing.T) {
	engine, _, clock := newTestEngine(openLadder())
	st := newTestState(clock)

	result := engine.ProcessCatchupTicks(st, 50_000)

	assert.Equal(t, int64(MaxCatchupTicks), result.TicksProcessed)
	assert.Zero(t, engine.ProcessCatchupTicks(st, -5).TicksProcessed)
}

func TestCatchupAppendsSummaryEvent(t *testing.T) {
	engine, _, clock := newTestEngine(openLadder())
	st := newTestState(clock)
	st.TierIndex = 7 // terminal, no advancement noise
	clock.Advance(2000 * time.Minute)

	result := engine.ProcessCatchup(st)

	require.NotEmpty(t, result.Events)
	assert.Equal(t, "Processed 2000 ticks: +10.0K energy.", result.Events[len(result.Events)-1])
}

func TestMergeAccumulatesResults(t *testing.T) {
	merged := NewTickResult()
	merged.Merge(TickResult{
		TicksProcessed: 1,
		Gains:          ResourceGain{"energy": 10},
		AdvancedTier:   "Rank b",
		TierAdvances:   1,
		Events:         []string{"first"},
	})
	merged.Merge(TickResult{
		TicksProcessed: 1,
		Gains:          ResourceGain{"energy": 15, "food": 5},
		Plateaued:      true,
		Events:         []string{"second"},
	})
	merged.Merge(TickResult{
		TicksProcessed: 1,
		AdvancedTier:   "Rank c",
		TierAdvances:   1,
	})

	assert.Equal(t, int64(3), merged.TicksProcessed)
	assert.Equal(t, ResourceGain{"energy": 25, "food": 5}, merged.Gains)
	assert.Equal(t, "Rank c", merged.AdvancedTier)
	assert.Equal(t, int64(2), merged.TierAdvances)
	assert.True(t, merged.Plateaued)
	assert.Equal(t, []string{"first", "second"}, merged.Events)
}
