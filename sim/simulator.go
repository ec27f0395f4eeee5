package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/growth-sim/growth-sim/sim/config"
	"github.com/growth-sim/growth-sim/sim/record"
	"github.com/growth-sim/growth-sim/sim/state"
)

// Simulator runs one simulation step: for every configured server it loads
// prior state, advances every entity by exactly one 12-hour period, persists
// snapshot and autogrowth records, and overwrites the server's state file.
//
// Single-threaded and synchronous. Per-entity failures are logged and
// skipped so one bad entity does not abort the run; the Clock's server-wide
// latest-end tie-break brings a skipped entity back into lockstep on the
// next run.
type Simulator struct {
	cfg   *config.Config
	store *state.Store
	clock Clock
	model *GrowthModel
	rng   *PartitionedRNG
}

// ServerResult summarizes one server's slice of a run.
type ServerResult struct {
	Server    int
	Class     state.ServerClass
	Period    record.Period
	Processed []string
	Skipped   []string
}

// RunSummary aggregates the results of one full run.
type RunSummary struct {
	Period  record.Period // the first server's period, for display
	Servers []ServerResult
}

// SnapshotCount returns the total number of snapshots the run produced.
func (r *RunSummary) SnapshotCount() int {
	total := 0
	for _, s := range r.Servers {
		total += len(s.Processed)
	}
	return total
}

// NewSimulator wires a Simulator from validated configuration, a state store
// rooted at dataDir, and an injectable partitioned RNG.
func NewSimulator(cfg *config.Config, dataDir string, rng *PartitionedRNG) (*Simulator, error) {
	epoch, err := cfg.Epoch()
	if err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:   cfg,
		store: state.NewStore(dataDir),
		clock: NewClock(epoch),
		model: NewGrowthModel(cfg),
		rng:   rng,
	}, nil
}

// Store exposes the simulator's state store (used by diagnostics).
func (s *Simulator) Store() *state.Store {
	return s.store
}

// Clock exposes the simulator's period clock.
func (s *Simulator) Clock() Clock {
	return s.clock
}

// Run processes all configured servers sequentially and returns a summary.
// Only configuration problems abort the run; state corruption, per-entity
// model errors, and output-write failures degrade locally.
func (s *Simulator) Run() (*RunSummary, error) {
	assignments, err := s.cfg.Assignments()
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{}
	for server := 1; server <= s.cfg.ServerCount(); server++ {
		result := s.simulateServer(server, assignments[server])
		if server == 1 {
			summary.Period = result.Period
		}
		summary.Servers = append(summary.Servers, result)
	}
	return summary, nil
}

// simulateServer advances every entity on one server by one period and
// persists the outcome. The period is computed once per server from the
// latest recorded period end across all of the server's entities, so all
// entities advance on the same window regardless of their own history.
func (s *Simulator) simulateServer(server int, class state.ServerClass) ServerResult {
	states := s.store.Load(server)
	period := s.clock.NextPeriod(LatestPeriodEnd(states))

	result := ServerResult{Server: server, Class: class, Period: period}

	for _, database := range s.cfg.NamesFor(class) {
		entity, ok := states[database]
		if !ok {
			entity = NewEntityState(server, database, class,
				s.rng.ForSubsystem(EntityInitSubsystem(server, database)))
			states[database] = entity
			logrus.Infof("Initialized new database: %s", EntityID(server, database))
		}

		rng := s.rng.ForSubsystem(EntityPeriodSubsystem(server, database, period.Start))
		out, err := s.model.Advance(server, database, entity, period, rng)
		if err != nil {
			logrus.Errorf("Error processing %s: %v", EntityID(server, database), err)
			result.Skipped = append(result.Skipped, database)
			continue
		}

		snapshot := record.BuildSnapshot(server, database, string(class), period,
			out.Size, out.IO, out.Tables)
		if err := s.writeSnapshot(server, snapshot); err != nil {
			logrus.Errorf("Error saving snapshot for %s: %v", EntityID(server, database), err)
		}

		if batch := record.BuildAutogrowthBatch(server, database, period, out.Events); batch != nil {
			if err := s.writeAutogrowthBatch(server, batch); err != nil {
				logrus.Errorf("Error saving autogrowth events for %s: %v", EntityID(server, database), err)
			}
		}

		result.Processed = append(result.Processed, database)
	}

	s.store.Save(server, states)
	return result
}
