// Package sim provides the core growth simulation engine: the period clock,
// the per-entity growth model, and the run orchestrator.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - period.go: the 12-hour day/night period clock and its lockstep contract
//   - model.go: GrowthModel.Advance, the single state transition per entity per run
//   - simulator.go: the servers × entities loop and error recovery
//
// # Architecture
//
// The sim package holds the algorithms; supporting concerns live in
// sub-packages:
//   - sim/config/: YAML configuration (server class ranges, baselines, names)
//   - sim/state/: persisted entity state schema and the per-server JSON store
//   - sim/record/: pure snapshot / autogrowth-batch record types and assembly
//
// All randomness is drawn from a PartitionedRNG (rng.go) seeded once per
// run, with streams derived per entity and per period so sibling entities
// cannot perturb each other's sequences.
package sim
