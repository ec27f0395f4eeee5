package sim

import (
	"math/rand"
	"time"

	"github.com/growth-sim/growth-sim/sim/config"
	"github.com/growth-sim/growth-sim/sim/record"
	"github.com/growth-sim/growth-sim/sim/state"
)

// testRNG returns a deterministic RNG for a test seed.
func testRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func testDayPeriod() record.Period {
	start := time.Date(2025, 5, 1, 6, 0, 0, 0, time.UTC)
	return record.Period{Start: start, End: start.Add(12 * time.Hour), Type: record.PeriodDay}
}

func testNightPeriod() record.Period {
	start := time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)
	return record.Period{Start: start, End: start.Add(12 * time.Hour), Type: record.PeriodNight}
}

// testEntity builds a minimal entity with two tables, one cleanup-enabled.
func testEntity(class state.ServerClass, pattern state.GrowthPattern, sizeGB float64) *state.EntityState {
	return &state.EntityState{
		DatabaseName:  "Test_DB",
		ServerClass:   class,
		CurrentSizeGB: sizeGB,
		DataFileGB:    sizeGB * 0.75,
		LogFileGB:     sizeGB * 0.25,
		GrowthPattern: pattern,
		Tables: map[string]*state.TableState{
			"Table_01": {Name: "Table_01", Rows: 500000, DailyGrowth: 5000, AvgRowBytes: 256, HasCleanup: true},
			"Table_02": {Name: "Table_02", Rows: 200000, DailyGrowth: 2000, AvgRowBytes: 128, HasCleanup: false},
		},
	}
}

func testModel() *GrowthModel {
	return NewGrowthModel(config.Default())
}
