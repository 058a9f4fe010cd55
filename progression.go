package tempo

import "github.com/tempoforge/tempo/ladder"

// NextTier returns the tier above the entity's current one, if any.
func (e *Engine) NextTier(st *EntityState) (ladder.Tier, bool) {
	return e.lad.Next(st.TierIndex)
}

// CompleteTrial performs the externally gated tier advance. Ticks never cross
// a gated tier on their own; the caller invokes this once the player has
// passed whatever the gate demands. The advance still requires the tier's
// resource requirements to be met.
func (e *Engine) CompleteTrial(st *EntityState) (ladder.Tier, bool) {
	next, ok := e.lad.Next(st.TierIndex)
	if !ok || !next.Gated || !e.domain.CanAdvanceTier(st, next) {
		return ladder.Tier{}, false
	}
	st.TierIndex = next.Index
	st.TierProgress = e.domain.TierProgress(st)
	e.logger.Info().
		Str("entity", st.ID).
		Str("tier", next.Name).
		Msg("trial completed")
	return next, true
}
