package tempo

// stepPopulation settles the food balance after gains. A deficit starves a
// tenth of its size, capped by the living population, and the balance is
// floored to zero; a non-negative balance lets population grow by one percent
// plus the domain's bonus, capped by housing.
func (e *Engine) stepPopulation(st *EntityState, result *TickResult) {
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
	e.growPopulation(st, 1, result)
}

// growPopulation applies up to ticks worth of growth in one step and reports
// the births that actually happened after the housing cap.
func (e *Engine) growPopulation(st *EntityState, ticks int64, result *TickResult) {
	if st.Population <= 0 || st.Population >= st.MaxPopulation {
		return
	}
	perTick := st.Population / GrowthDivisor
	if rater, ok := e.domain.(GrowthRater); ok {
		perTick = max(perTick+perTick*(rater.GrowthRate(st)-100)/100, 0)
	}
	born := min(satMul(perTick, ticks), st.MaxPopulation-st.Population)
	if born <= 0 {
		return
	}
	st.Population += born
	result.PopulationBorn = satAdd(result.PopulationBorn, born)
}
