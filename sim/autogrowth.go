package sim

import (
	"math/rand"
	"sort"
	"time"

	"github.com/growth-sim/growth-sim/sim/record"
	"github.com/growth-sim/growth-sim/sim/state"
)

// eventCount draws the number of autogrowth events for one entity period.
// The anomaly entity is always a high-frequency emitter, regardless of its
// nominal growth pattern.
func eventCount(isAnomaly bool, st *state.EntityState, periodType record.PeriodType, rng *rand.Rand) int {
	if isAnomaly {
		return randBetween(rng, 180, 250)
	}
	switch st.GrowthPattern {
	case state.PatternGrowingFast, state.PatternNoRetention, state.PatternBrokenCleanup:
		return randBetween(rng, 10, 30)
	case state.PatternStable:
		return randBetween(rng, 0, 5)
	case state.PatternArchiveFail:
		return randBetween(rng, 5, 20)
	case state.PatternETLCycle:
		if periodType == record.PeriodNight {
			return randBetween(rng, 20, 40)
		}
		return randBetween(rng, 5, 15)
	case state.PatternStatic:
		return randBetween(rng, 0, 3)
	default:
		// Unrecognized pattern (legacy state): fall back on class behavior.
		switch st.ServerClass {
		case state.ClassReference:
			return randBetween(rng, 0, 5)
		case state.ClassAnalytics:
			return randBetween(rng, 15, 30)
		default:
			return randBetween(rng, 30, 60)
		}
	}
}

// incrementMB draws the growth increment for one event. The anomaly entity
// mostly grows in small misconfigured steps; normal data files use the
// standard 256/512 MB increments and log files grow in smaller steps.
func incrementMB(isAnomaly bool, fileType string, rng *rand.Rand) int {
	if isAnomaly {
		if rng.Float64() < 0.8 {
			return []int{8, 16, 32}[rng.Intn(3)]
		}
		return []int{64, 128}[rng.Intn(2)]
	}
	if fileType == "data" {
		return []int{256, 512}[rng.Intn(2)]
	}
	return []int{64, 128}[rng.Intn(2)]
}

// eventDurationMS derives the event duration from the increment size tier.
func eventDurationMS(increment int, rng *rand.Rand) int {
	switch {
	case increment <= 32:
		return randBetween(rng, 100, 500)
	case increment <= 128:
		return randBetween(rng, 300, 1000)
	default:
		return randBetween(rng, 800, 2000)
	}
}

// autogrowthEvents generates the period's batch of simulated storage-file
// growth events, sorted by timestamp ascending. Every timestamp falls within
// [period start, period end).
func (m *GrowthModel) autogrowthEvents(server int, database string, st *state.EntityState,
	period record.Period, rng *rand.Rand) []record.AutogrowthEvent {

	isAnomaly := m.cfg.IsAnomaly(server, database)
	count := eventCount(isAnomaly, st, period.Type, rng)
	if count == 0 {
		return nil
	}

	totalSeconds := period.Duration().Seconds()
	events := make([]record.AutogrowthEvent, 0, count)

	for i := 0; i < count; i++ {
		offset := uniform(rng, 0, totalSeconds)
		timestamp := period.Start.Add(time.Duration(offset * float64(time.Second)))

		fileType := "data"
		if rng.Float64() >= 0.7 {
			fileType = "log"
		}

		increment := incrementMB(isAnomaly, fileType, rng)

		var previousMB int
		if fileType == "data" {
			previousMB = randBetween(rng, 5000, 20000)
		} else {
			previousMB = randBetween(rng, 500, 2000)
		}

		blocking := rng.Float64() < 0.7
		blockedProcesses := 0
		if blocking {
			blockedProcesses = randBetween(rng, 1, 10)
		}

		events = append(events, record.AutogrowthEvent{
			Timestamp:        timestamp,
			FileType:         fileType,
			PreviousMB:       previousMB,
			IncrementMB:      increment,
			NewMB:            previousMB + increment,
			DurationMS:       eventDurationMS(increment, rng),
			Blocking:         blocking,
			IOWaitMS:         randBetween(rng, 50, 500),
			BlockedProcesses: blockedProcesses,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events
}
