package province

import (
	"github.com/rotisserie/eris"

	"github.com/tempoforge/tempo"
)

// Gold costs and build times per order key.
var buildingCosts = map[string]orderSpec{
	Home:       {cost: 100, ticks: 20},
	Farm:       {cost: 150, ticks: 30},
	Mine:       {cost: 250, ticks: 40},
	Tower:      {cost: 400, ticks: 60},
	University: {cost: 1_000, ticks: 120},
}

var unitCosts = map[string]orderSpec{
	Soldier: {cost: 50, ticks: 10},
	Worker:  {cost: 25, ticks: 5},
}

type orderSpec struct {
	cost  int64
	ticks int64
}

// QueueBuilding pays for count buildings and queues their construction.
func QueueBuilding(st *tempo.EntityState, key string, count int64) error {
	return queue(st, tempo.QueueBuild, buildingCosts, key, count)
}

// QueueTraining pays for count units and queues their training.
func QueueTraining(st *tempo.EntityState, key string, count int64) error {
	return queue(st, tempo.QueueTrain, unitCosts, key, count)
}

func queue(st *tempo.EntityState, kind string, specs map[string]orderSpec, key string, count int64) error {
	if count <= 0 {
		return eris.New("order count must be positive")
	}
	spec, ok := specs[key]
	if !ok {
		return eris.Errorf("unknown order %q", key)
	}
	total := spec.cost * count
	if st.Resources[Gold] < total {
		return eris.Errorf("need %d gold for %d %s, have %d", total, count, key, st.Resources[Gold])
	}
	st.Resources[Gold] -= total
	st.Queue = append(st.Queue, tempo.QueueEntry{
		Kind:      kind,
		Key:       key,
		Count:     count,
		Remaining: spec.ticks,
	})
	return nil
}

// BeginResearch starts a science. Only one project runs at a time.
func BeginResearch(st *tempo.EntityState, key string) error {
	if st.Research != nil {
		return eris.Errorf("already researching %q", st.Research.Key)
	}
	st.Research = &tempo.Research{Key: key}
	return nil
}
