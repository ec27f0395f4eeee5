package sim

import (
	"math/rand"

	"github.com/growth-sim/growth-sim/sim/config"
	"github.com/growth-sim/growth-sim/sim/record"
	"github.com/growth-sim/growth-sim/sim/state"
)

// bytesPerOp is the assumed transfer size of one read or write operation.
const bytesPerOp = 8192

// ioMultipliers returns the read/write rate multipliers for a server class
// in a given period type. OLTP peaks during the day; analytics runs batch
// writes at night; reference data sees daytime lookups.
func ioMultipliers(class state.ServerClass, periodType record.PeriodType) (readMul, writeMul float64) {
	if periodType == record.PeriodDay {
		switch class {
		case state.ClassOLTP:
			return 2.8, 2.8
		case state.ClassAnalytics:
			return 0.8, 0.8
		default:
			return 3.0, 1.2
		}
	}
	switch class {
	case state.ClassOLTP:
		return 0.4, 0.4
	case state.ClassAnalytics:
		return 0.5, 4.0
	default:
		return 0.8, 0.8
	}
}

// ioData generates one period of raw I/O counts from the class baseline and
// accumulates the entity's cumulative counters. Counters only ever grow;
// there is no reset path.
func (m *GrowthModel) ioData(st *state.EntityState, baseline config.IOBaselines,
	period record.Period, rng *rand.Rand) record.IOData {

	readMul, writeMul := ioMultipliers(st.ServerClass, period.Type)
	readsPerSec := baseline.ReadsPerSecondBaseline * readMul
	writesPerSec := baseline.WritesPerSecondBaseline * writeMul

	totalSeconds := period.Duration().Seconds()
	reads := int64(readsPerSec * totalSeconds * uniform(rng, 0.85, 1.15))
	writes := int64(writesPerSec * totalSeconds * uniform(rng, 0.85, 1.15))

	st.CumulativeReads += reads
	st.CumulativeWrites += writes

	return record.IOData{
		Reads:            reads,
		Writes:           writes,
		ReadGB:           round3(float64(reads) * bytesPerOp / bytesPerGB),
		WriteGB:          round3(float64(writes) * bytesPerOp / bytesPerGB),
		CumulativeReads:  st.CumulativeReads,
		CumulativeWrites: st.CumulativeWrites,
	}
}
