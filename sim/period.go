package sim

import (
	"time"

	"github.com/growth-sim/growth-sim/sim/record"
	"github.com/growth-sim/growth-sim/sim/state"
)

// PeriodDuration is the fixed length of every simulation window.
const PeriodDuration = 12 * time.Hour

// Clock computes the next 12-hour simulation window for a server's entities.
// Windows alternate day (06:00–18:00) and night (18:00–06:00), anchored to a
// configured epoch. Advancement is always exactly one step per invocation;
// there is no catch-up to wall-clock time. Forcibly overwriting recorded
// periods is an exceptional repair operation, not part of normal progression.
type Clock struct {
	epoch time.Time
}

// NewClock creates a Clock anchored at 06:00 on the given epoch date.
func NewClock(epoch time.Time) Clock {
	anchored := time.Date(epoch.Year(), epoch.Month(), epoch.Day(), 6, 0, 0, 0, epoch.Location())
	return Clock{epoch: anchored}
}

// Epoch returns the start of the clock's first day period.
func (c Clock) Epoch() time.Time {
	return c.epoch
}

// NextPeriod returns the window following the given period end. A nil prior
// end yields the epoch window [epoch 06:00, epoch 18:00), type day. A prior
// end at hour 6 yields the day window ending at 18:00; a prior end at hour
// 18 yields the night window ending at 06:00 the next calendar day.
func (c Clock) NextPeriod(priorEnd *time.Time) record.Period {
	if priorEnd == nil {
		return record.Period{
			Start: c.epoch,
			End:   c.epoch.Add(PeriodDuration),
			Type:  record.PeriodDay,
		}
	}

	start := *priorEnd
	if start.Hour() == 6 {
		return record.Period{
			Start: start,
			End:   start.Add(PeriodDuration),
			Type:  record.PeriodDay,
		}
	}
	return record.Period{
		Start: start,
		End:   start.Add(PeriodDuration),
		Type:  record.PeriodNight,
	}
}

// ReconstructPeriod rebuilds the 12-hour period that ends at the given
// timestamp: an end at hour 18 closes a day window, anything else a night
// window. Used by the repair operation to align a straggler entity's record
// with its siblings'.
func ReconstructPeriod(end time.Time) record.Period {
	periodType := record.PeriodNight
	if end.Hour() == 18 {
		periodType = record.PeriodDay
	}
	return record.Period{
		Start: end.Add(-PeriodDuration),
		End:   end,
		Type:  periodType,
	}
}

// LatestPeriodEnd returns the maximum last_period.period_end across all
// entities in a server's state map, or nil when no entity has a recorded
// period. This is the Clock's documented tie-break contract: all entities on
// a server advance from the server-wide latest end, not from their own
// history, so entities added late (or skipped by a failed run) converge to
// the same cadence as their siblings instead of drifting.
func LatestPeriodEnd(states map[string]*state.EntityState) *time.Time {
	var latest *time.Time
	for _, entity := range states {
		if entity == nil || entity.LastPeriod == nil {
			continue
		}
		end := entity.LastPeriod.End
		if latest == nil || end.After(*latest) {
			latest = &end
		}
	}
	return latest
}
