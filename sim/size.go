package sim

import (
	"math/rand"

	"github.com/growth-sim/growth-sim/sim/record"
	"github.com/growth-sim/growth-sim/sim/state"
)

// fileCountThresholdGB is the total size above which an entity is modeled
// with four storage files instead of two.
const fileCountThresholdGB = 50.0

// sizeDelta draws the raw per-period size delta in GB, branching exclusively
// on the entity's growth pattern. Jitter and floors are applied by the caller.
func sizeDelta(pattern state.GrowthPattern, periodType record.PeriodType, rng *rand.Rand) float64 {
	switch pattern {
	case state.PatternStable:
		// Cleanup offsets growth; minimal net movement.
		return uniform(rng, -0.5, 0.5)

	case state.PatternNoRetention:
		// Nothing ever deleted; monotonic creep.
		return uniform(rng, 0.5, 2.0)

	case state.PatternGrowingFast:
		return uniform(rng, 2.0, 5.0)

	case state.PatternBrokenCleanup:
		// Cleanup fails most of the time; occasional partial recovery.
		if rng.Float64() < 0.8 {
			return uniform(rng, 1.0, 3.0)
		}
		return uniform(rng, -1.0, 0.5)

	case state.PatternArchiveFail:
		// Archive job broken: night loads accumulate unchecked.
		if periodType == record.PeriodNight {
			return uniform(rng, 5.0, 15.0)
		}
		return uniform(rng, 0.5, 2.0)

	case state.PatternETLCycle:
		// Loads and archives roughly balance over time.
		if periodType == record.PeriodNight && rng.Float64() < 0.3 {
			return uniform(rng, 5.0, 10.0) // ETL load
		}
		if rng.Float64() < 0.2 {
			return uniform(rng, -8.0, -3.0) // archive
		}
		return uniform(rng, -0.5, 0.5)

	case state.PatternStatic:
		// Reference data; near-zero movement.
		return uniform(rng, -0.01, 0.01)

	default:
		return uniform(rng, -0.5, 0.5)
	}
}

// dataFileRatio returns the fraction of total size held in data files for a
// server class; the remainder is log.
func dataFileRatio(class state.ServerClass) float64 {
	switch class {
	case state.ClassOLTP:
		return 0.75
	case state.ClassAnalytics:
		return 0.90
	default:
		return 0.95
	}
}

// minSizeGB is the floor applied to total size after a delta.
func minSizeGB(class state.ServerClass) float64 {
	if class == state.ClassReference {
		return 5.0
	}
	return 10.0
}

// sizeData applies one period's size delta to the entity: pattern-based draw,
// multiplicative jitter in [0.9, 1.1], class floor, then the data/log split.
func (m *GrowthModel) sizeData(st *state.EntityState, period record.Period, rng *rand.Rand) record.SizeData {
	growth := sizeDelta(st.GrowthPattern, period.Type, rng)
	growth *= uniform(rng, 0.9, 1.1)

	newSize := st.CurrentSizeGB + growth
	if floor := minSizeGB(st.ServerClass); newSize < floor {
		newSize = floor
	}

	ratio := dataFileRatio(st.ServerClass)
	fileCount := 2
	if newSize >= fileCountThresholdGB {
		fileCount = 4
	}

	return record.SizeData{
		TotalGB:    round3(newSize),
		DataFileGB: round3(newSize * ratio),
		LogFileGB:  round3(newSize * (1 - ratio)),
		FileCount:  fileCount,
	}
}
