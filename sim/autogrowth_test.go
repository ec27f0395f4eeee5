package sim

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growth-sim/growth-sim/sim/record"
	"github.com/growth-sim/growth-sim/sim/state"
)

func TestEventCount_Ranges(t *testing.T) {
	tests := []struct {
		name       string
		pattern    state.GrowthPattern
		periodType record.PeriodType
		min, max   int
	}{
		{"growing_fast", state.PatternGrowingFast, record.PeriodDay, 10, 30},
		{"no_retention", state.PatternNoRetention, record.PeriodDay, 10, 30},
		{"broken_cleanup", state.PatternBrokenCleanup, record.PeriodDay, 10, 30},
		{"stable", state.PatternStable, record.PeriodDay, 0, 5},
		{"archive_failure", state.PatternArchiveFail, record.PeriodNight, 5, 20},
		{"etl_cycle night", state.PatternETLCycle, record.PeriodNight, 20, 40},
		{"etl_cycle day", state.PatternETLCycle, record.PeriodDay, 5, 15},
		{"static", state.PatternStatic, record.PeriodDay, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := testRNG(21)
			entity := testEntity(state.ClassOLTP, tt.pattern, 100)
			for i := 0; i < 1000; i++ {
				count := eventCount(false, entity, tt.periodType, rng)
				require.GreaterOrEqual(t, count, tt.min)
				require.LessOrEqual(t, count, tt.max)
			}
		})
	}
}

func TestAutogrowthEvents_TimestampsInPeriodAndSorted(t *testing.T) {
	model := testModel()
	period := testNightPeriod()
	entity := testEntity(state.ClassOLTP, state.PatternGrowingFast, 500)

	for seed := int64(0); seed < 10; seed++ {
		events := model.autogrowthEvents(1, "OrderProcessing_DB", entity, period, testRNG(seed))
		require.NotEmpty(t, events)

		for _, event := range events {
			require.False(t, event.Timestamp.Before(period.Start), "event before period start")
			require.True(t, event.Timestamp.Before(period.End), "event at/after period end")
		}
		require.True(t, sort.SliceIsSorted(events, func(i, j int) bool {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}))
	}
}

func TestAutogrowthEvents_AnomalyEntityAlwaysBursts(t *testing.T) {
	// The anomaly entity (Server2/PrimaryStore_DB in the default config)
	// produces 180–250 small-increment events regardless of pattern.
	model := testModel()
	entity := testEntity(state.ClassOLTP, state.PatternStable, 500)

	allowed := map[int]bool{8: true, 16: true, 32: true, 64: true, 128: true}
	for seed := int64(0); seed < 10; seed++ {
		events := model.autogrowthEvents(2, "PrimaryStore_DB", entity, testDayPeriod(), testRNG(seed))
		require.GreaterOrEqual(t, len(events), 180)
		require.LessOrEqual(t, len(events), 250)
		for _, event := range events {
			require.True(t, allowed[event.IncrementMB], "unexpected increment %d", event.IncrementMB)
		}
	}
}

func TestAutogrowthEvents_NormalIncrementMenus(t *testing.T) {
	model := testModel()
	entity := testEntity(state.ClassOLTP, state.PatternGrowingFast, 500)

	events := model.autogrowthEvents(1, "OrderProcessing_DB", entity, testDayPeriod(), testRNG(33))
	require.NotEmpty(t, events)
	for _, event := range events {
		switch event.FileType {
		case "data":
			assert.Contains(t, []int{256, 512}, event.IncrementMB)
			assert.GreaterOrEqual(t, event.PreviousMB, 5000)
			assert.LessOrEqual(t, event.PreviousMB, 20000)
		case "log":
			assert.Contains(t, []int{64, 128}, event.IncrementMB)
			assert.GreaterOrEqual(t, event.PreviousMB, 500)
			assert.LessOrEqual(t, event.PreviousMB, 2000)
		default:
			t.Fatalf("unexpected file type %q", event.FileType)
		}
		assert.Equal(t, event.PreviousMB+event.IncrementMB, event.NewMB)
		if event.Blocking {
			assert.GreaterOrEqual(t, event.BlockedProcesses, 1)
		} else {
			assert.Zero(t, event.BlockedProcesses)
		}
	}
}

func TestEventDurationMS_Tiers(t *testing.T) {
	rng := testRNG(8)
	for i := 0; i < 500; i++ {
		d := eventDurationMS(16, rng)
		require.GreaterOrEqual(t, d, 100)
		require.LessOrEqual(t, d, 500)

		d = eventDurationMS(128, rng)
		require.GreaterOrEqual(t, d, 300)
		require.LessOrEqual(t, d, 1000)

		d = eventDurationMS(512, rng)
		require.GreaterOrEqual(t, d, 800)
		require.LessOrEqual(t, d, 2000)
	}
}
