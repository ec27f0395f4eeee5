package sim

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/growth-sim/growth-sim/sim/record"
	"github.com/growth-sim/growth-sim/sim/state"
)

// minTableRows is the floor on any table's row count after a period.
const minTableRows = 1000

// cleanupProbability is the per-period chance that a cleanup-enabled table
// actually runs its cleanup, keyed by the entity's growth pattern.
func cleanupProbability(pattern state.GrowthPattern) float64 {
	switch pattern {
	case state.PatternBrokenCleanup:
		return 0.2
	case state.PatternNoRetention:
		return 0.05
	case state.PatternStable:
		return 0.7
	default:
		return 0.75
	}
}

// cleanupRule is one entry of the ordered cleanup decision list. Rules are
// evaluated top to bottom; each non-terminal rule consumes its own
// probability draw, and the first rule that fires determines the deletion
// volume. The ordering and per-rule chances are part of the model contract
// and must not be re-derived as a single combined distribution.
type cleanupRule struct {
	name     string
	chance   float64 // 1.0 marks the terminal default rule
	deletion func(rng *rand.Rand, periodGrowth int64) int64
}

var cleanupRules = []cleanupRule{
	{
		// Aggressive cleanup deletes more than the period added (shrink).
		name:   "aggressive",
		chance: 0.15,
		deletion: func(rng *rand.Rand, periodGrowth int64) int64 {
			return int64(float64(periodGrowth) * uniform(rng, 1.2, 2.0))
		},
	},
	{
		// Deletion exactly offsets growth.
		name:   "balanced",
		chance: 0.10,
		deletion: func(rng *rand.Rand, periodGrowth int64) int64 {
			return periodGrowth
		},
	},
	{
		// Managed growth: cleanup trails additions.
		name:   "managed",
		chance: 1.0,
		deletion: func(rng *rand.Rand, periodGrowth int64) int64 {
			return int64(float64(periodGrowth) * uniform(rng, 0.3, 0.9))
		},
	},
}

// baseCleanupFraction picks the name-heuristic deletion fraction. Log and
// audit style tables trim a moderate share, temp and staging tables flush
// most rows, and regular business tables trim lightly. The drawn fraction is
// always superseded by the ordered rule list; the draw is kept so the RNG
// sequence matches the documented decision structure.
func baseCleanupFraction(tableName string, rng *rand.Rand) float64 {
	lower := strings.ToLower(tableName)
	switch {
	case strings.Contains(lower, "log") || strings.Contains(lower, "audit"):
		return uniform(rng, 0.20, 0.50)
	case strings.Contains(lower, "temp") || strings.Contains(lower, "staging"):
		return uniform(rng, 0.70, 0.95)
	default:
		return uniform(rng, 0.05, 0.25)
	}
}

// runCleanup decides whether cleanup happens this period for a table and how
// many rows it deletes. Deletion is capped at half the current row count and
// floored at zero.
func runCleanup(tableName string, table *state.TableState, pattern state.GrowthPattern,
	periodGrowth int64, rng *rand.Rand) (occurred bool, rowsDeleted int64) {

	if rng.Float64() > cleanupProbability(pattern) {
		return false, 0
	}

	rowsDeleted = int64(float64(table.Rows) * baseCleanupFraction(tableName, rng))

	for _, rule := range cleanupRules {
		if rule.chance >= 1.0 || rng.Float64() < rule.chance {
			rowsDeleted = rule.deletion(rng, periodGrowth)
			break
		}
	}

	if maxDeletion := table.Rows / 2; rowsDeleted > maxDeletion {
		rowsDeleted = maxDeletion
	}
	if rowsDeleted < 0 {
		rowsDeleted = 0
	}
	return true, rowsDeleted
}

// tableGrowthMultiplier scales a table's base period growth by server class
// and period type. OLTP tables fill during the day; analytics tables load at
// night; reference tables are unscaled.
func tableGrowthMultiplier(class state.ServerClass, periodType record.PeriodType) float64 {
	switch class {
	case state.ClassOLTP:
		if periodType == record.PeriodDay {
			return 1.5
		}
		return 0.3
	case state.ClassAnalytics:
		if periodType == record.PeriodDay {
			return 0.5
		}
		return 2.0
	default:
		return 1.0
	}
}

// tableData advances every table of the entity by one period: base growth of
// half the daily rate, class/period scaling, jitter in [0.7, 1.4], then the
// cleanup decision for cleanup-enabled tables. Row counts never drop below
// minTableRows. Tables are processed in name order so a fixed seed yields a
// fixed output.
func (m *GrowthModel) tableData(st *state.EntityState, period record.Period, rng *rand.Rand) []record.TableData {
	names := make([]string, 0, len(st.Tables))
	for name := range st.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]record.TableData, 0, len(names))
	for _, name := range names {
		table := st.Tables[name]
		history := st.CleanupHistoryFor(name)

		periodGrowth := int64(float64(table.DailyGrowth) * 0.5)
		periodGrowth = int64(float64(periodGrowth) * tableGrowthMultiplier(st.ServerClass, period.Type))
		periodGrowth = int64(float64(periodGrowth) * uniform(rng, 0.7, 1.4))

		history.PeriodsSinceCleanup++

		var rowsDeleted int64
		cleanupOccurred := false
		if table.HasCleanup {
			cleanupOccurred, rowsDeleted = runCleanup(name, table, st.GrowthPattern, periodGrowth, rng)
			if cleanupOccurred {
				history.PeriodsSinceCleanup = 0
				history.LastCleanupSuccess = rowsDeleted > 0
				if rowsDeleted > 0 {
					history.FailedCleanups = 0
				} else {
					history.FailedCleanups++
				}
			}
		}

		newRows := table.Rows + periodGrowth - rowsDeleted
		if newRows < minTableRows {
			newRows = minTableRows
		}

		tables = append(tables, record.TableData{
			Name:            name,
			Rows:            newRows,
			SizeGB:          round3(float64(newRows) * float64(table.AvgRowBytes) / bytesPerGB),
			RowsAdded:       periodGrowth,
			RowsDeleted:     rowsDeleted,
			AvgRowBytes:     table.AvgRowBytes,
			HasCleanup:      table.HasCleanup,
			CleanupOccurred: cleanupOccurred,
		})

		table.Rows = newRows
	}
	return tables
}
