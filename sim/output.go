package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/growth-sim/growth-sim/sim/record"
)

// fileTimestamp is the layout used in output file names.
const fileTimestamp = "20060102_150405"

// writeJSON marshals v with indentation and writes it under dir, creating
// the directory as needed.
func writeJSON(dir, name string, v any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// writeSnapshot persists one snapshot record, named by database and period
// end timestamp.
func (s *Simulator) writeSnapshot(server int, snapshot record.Snapshot) error {
	dir := filepath.Join(s.store.ServerDir(server), "growth_data", "snapshots")
	name := fmt.Sprintf("%s_snapshot_%s.json",
		snapshot.DatabaseName, snapshot.PeriodEnd.Format(fileTimestamp))
	return writeJSON(dir, name, snapshot)
}

// writeAutogrowthBatch persists one event batch, named by database and
// period start timestamp.
func (s *Simulator) writeAutogrowthBatch(server int, batch *record.AutogrowthBatch) error {
	dir := filepath.Join(s.store.ServerDir(server), "growth_data", "autogrowth_events")
	name := fmt.Sprintf("%s_autogrowth_%s.json",
		batch.DatabaseName, batch.PeriodStart.Format(fileTimestamp))
	return writeJSON(dir, name, batch)
}
