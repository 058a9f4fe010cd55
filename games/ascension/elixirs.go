package ascension

import (
	"github.com/rotisserie/eris"

	"github.com/tempoforge/tempo"
)

// Elixir grades. Each boosts madra gains by a percentage for a duration.
var elixirs = map[string]elixirSpec{
	"lesser":  {cost: 10, magnitude: 25, duration: 50},
	"greater": {cost: 100, magnitude: 50, duration: 100},
	"divine":  {cost: 1_000, magnitude: 100, duration: 200},
}

type elixirSpec struct {
	cost      int64
	magnitude int64
	duration  int64
}

// DrinkElixir spends spirit stones to boost madra cycling. Only one elixir
// works at a time; a stronger stomach is not among the tier unlocks.
func DrinkElixir(st *tempo.EntityState, grade string) error {
	spec, ok := elixirs[grade]
	if !ok {
		return eris.Errorf("unknown elixir grade %q", grade)
	}
	if _, active := st.ActiveEffect(Madra); active {
		return eris.New("an elixir is already active")
	}
	if st.Resources[Stones] < spec.cost {
		return eris.Errorf("need %d stones for a %s elixir, have %d", spec.cost, grade, st.Resources[Stones])
	}
	st.Resources[Stones] -= spec.cost
	st.Effects = append(st.Effects, tempo.Effect{
		Category:  Madra,
		Magnitude: spec.magnitude,
		Remaining: spec.duration,
	})
	return nil
}
