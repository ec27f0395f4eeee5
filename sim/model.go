package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/growth-sim/growth-sim/sim/config"
	"github.com/growth-sim/growth-sim/sim/record"
	"github.com/growth-sim/growth-sim/sim/state"
)

// GrowthModel produces one period's worth of raw telemetry for an entity and
// advances the entity's persistent state in place. All randomness flows
// through the *rand.Rand handed to Advance; the model holds no RNG state of
// its own.
type GrowthModel struct {
	cfg *config.Config
}

// NewGrowthModel creates a GrowthModel over the given configuration.
func NewGrowthModel(cfg *config.Config) *GrowthModel {
	return &GrowthModel{cfg: cfg}
}

// ModelOutputs bundles the growth model's outputs for one entity period.
type ModelOutputs struct {
	Size   record.SizeData
	IO     record.IOData
	Tables []record.TableData
	Events []record.AutogrowthEvent
}

// Advance computes one period of telemetry for the entity and mutates its
// state (sizes, cumulative counters, table rows, cleanup history,
// last_period). Validation happens before any mutation: on error the entity
// state is untouched and the caller skips the entity for this run.
func (m *GrowthModel) Advance(server int, database string, st *state.EntityState,
	period record.Period, rng *rand.Rand) (ModelOutputs, error) {

	if !st.GrowthPattern.Valid() {
		return ModelOutputs{}, fmt.Errorf("entity %s/%s has unknown growth pattern %q",
			record.ServerName(server), database, st.GrowthPattern)
	}
	if !st.ServerClass.Valid() {
		return ModelOutputs{}, fmt.Errorf("entity %s/%s has unknown server class %q",
			record.ServerName(server), database, st.ServerClass)
	}
	baseline, err := m.cfg.Baseline(st.ServerClass)
	if err != nil {
		return ModelOutputs{}, err
	}

	out := ModelOutputs{
		IO:     m.ioData(st, baseline.IOBaselines, period, rng),
		Size:   m.sizeData(st, period, rng),
		Tables: m.tableData(st, period, rng),
	}
	out.Events = m.autogrowthEvents(server, database, st, period, rng)

	st.CurrentSizeGB = out.Size.TotalGB
	st.DataFileGB = out.Size.DataFileGB
	st.LogFileGB = out.Size.LogFileGB
	st.LastPeriod = &period

	return out, nil
}

// uniform draws a float64 in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// randBetween draws an int in [lo, hi] inclusive.
func randBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// round3 rounds to three decimal places, matching the precision of the
// persisted records.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

const bytesPerGB = 1 << 30
