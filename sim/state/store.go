package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Store loads and persists per-server entity state as a flat JSON file under
// <root>/ServerN/growth_data/server_state.json.
//
// Not safe for concurrent writers to the same server's state: the discipline
// is whole-file read-then-overwrite with no locking. Single writer at a time
// is an invariant the caller must uphold.
type Store struct {
	Root string
}

// NewStore creates a Store rooted at the given data directory.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// StateFile returns the path of the state file for a server.
func (s *Store) StateFile(server int) string {
	return filepath.Join(s.ServerDir(server), "growth_data", "server_state.json")
}

// ServerDir returns the directory holding a server's simulated data.
func (s *Store) ServerDir(server int) string {
	return filepath.Join(s.Root, fmt.Sprintf("Server%d", server))
}

// Load reads a server's entity state map. A missing file, unreadable file, or
// malformed JSON degrades to "no prior state": Load returns an empty map and
// never an error. Corruption is logged as a warning. A legacy top-level
// "metadata" key is stripped; individual entity entries that fail to decode
// are skipped.
func (s *Store) Load(server int) map[string]*EntityState {
	states := make(map[string]*EntityState)

	data, err := os.ReadFile(s.StateFile(server))
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("Error loading state for Server%d: %v", server, err)
		}
		return states
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logrus.Warnf("Corrupt state file for Server%d, starting fresh: %v", server, err)
		return states
	}

	for name, msg := range raw {
		if name == "metadata" {
			continue
		}
		var entity EntityState
		if err := json.Unmarshal(msg, &entity); err != nil {
			logrus.Warnf("Skipping unreadable state entry %q on Server%d: %v", name, server, err)
			continue
		}
		states[name] = &entity
	}
	return states
}

// Save persists a server's entity state map, overwriting the previous file
// wholesale. Best-effort: persistence failures are logged, not propagated,
// since the run already computed its in-memory results.
func (s *Store) Save(server int, states map[string]*EntityState) {
	dir := filepath.Dir(s.StateFile(server))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logrus.Errorf("Error creating state directory for Server%d: %v", server, err)
		return
	}

	data, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		logrus.Errorf("Error encoding state for Server%d: %v", server, err)
		return
	}

	if err := os.WriteFile(s.StateFile(server), data, 0o644); err != nil {
		logrus.Errorf("Error saving state for Server%d: %v", server, err)
	}
}
