package sim

import (
	"fmt"
	"math/rand"

	"github.com/growth-sim/growth-sim/sim/state"
)

// seedProfile pins a specific entity to a problem scenario at creation.
type seedProfile struct {
	pattern     state.GrowthPattern
	startSizeGB float64
}

// problemEntities designates the scripted problem scenarios of the demo
// environment. All other entities get class-default behavior.
var problemEntities = map[string]seedProfile{
	"Server1/TransactionLog_DB": {state.PatternNoRetention, 400},
	"Server2/PrimaryStore_DB":   {state.PatternGrowingFast, 500},
	"Server2/CustomerCore_DB":   {state.PatternBrokenCleanup, 450},
	"Server3/DataWarehouse_DB":  {state.PatternArchiveFail, 600},
}

// EntityID formats the canonical Server/Database identity string.
func EntityID(server int, database string) string {
	return fmt.Sprintf("Server%d/%s", server, database)
}

// classDefaults returns the default pattern, starting-size range, and table
// count range for entities without a scripted problem profile.
func classDefaults(class state.ServerClass, rng *rand.Rand) (pattern state.GrowthPattern, sizeGB float64, tableCount int) {
	switch class {
	case state.ClassOLTP:
		return state.PatternStable, uniform(rng, 250.0, 350.0), randBetween(rng, 15, 25)
	case state.ClassAnalytics:
		return state.PatternETLCycle, uniform(rng, 300.0, 500.0), randBetween(rng, 8, 15)
	default:
		return state.PatternStatic, uniform(rng, 10.0, 30.0), randBetween(rng, 5, 10)
	}
}

// tableCountFor returns the table count range for a class; problem entities
// share the class ranges even though their size and pattern are pinned.
func tableCountFor(class state.ServerClass, rng *rand.Rand) int {
	switch class {
	case state.ClassOLTP:
		return randBetween(rng, 15, 25)
	case state.ClassAnalytics:
		return randBetween(rng, 8, 15)
	default:
		return randBetween(rng, 5, 10)
	}
}

// cleanupChance is the probability that a newly created table has a cleanup
// job, per server class.
func cleanupChance(class state.ServerClass) float64 {
	switch class {
	case state.ClassOLTP:
		return 0.8
	case state.ClassAnalytics:
		return 0.7
	default:
		return 0
	}
}

// NewEntityState initializes the state of a first-seen entity: growth
// pattern and starting size (scripted for problem entities, class defaults
// otherwise) plus a randomized but plausible set of tables. The growth
// pattern assigned here is immutable for the entity's lifetime.
func NewEntityState(server int, database string, class state.ServerClass, rng *rand.Rand) *state.EntityState {
	var pattern state.GrowthPattern
	var baseSize float64
	var tableCount int

	if profile, ok := problemEntities[EntityID(server, database)]; ok {
		pattern = profile.pattern
		baseSize = profile.startSizeGB
		tableCount = tableCountFor(class, rng)
	} else {
		pattern, baseSize, tableCount = classDefaults(class, rng)
	}

	tables := make(map[string]*state.TableState, tableCount)
	for i := 1; i <= tableCount; i++ {
		name := fmt.Sprintf("Table_%02d", i)

		var dailyGrowth int64
		if class == state.ClassReference {
			dailyGrowth = int64(randBetween(rng, 1, 10))
		} else {
			dailyGrowth = int64(randBetween(rng, 1000, 10000))
		}

		tables[name] = &state.TableState{
			Name:        name,
			Rows:        int64(randBetween(rng, 10000, 1000000)),
			DailyGrowth: dailyGrowth,
			AvgRowBytes: int64(randBetween(rng, 128, 512)),
			HasCleanup:  rng.Float64() < cleanupChance(class),
		}
	}

	return &state.EntityState{
		DatabaseName:  database,
		ServerClass:   class,
		CurrentSizeGB: baseSize,
		DataFileGB:    baseSize * 0.75,
		LogFileGB:     baseSize * 0.25,
		GrowthPattern: pattern,
		Tables:        tables,
	}
}
