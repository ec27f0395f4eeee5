// Package state defines the persisted per-entity simulation state and the
// per-server JSON state store. An entity is one simulated database on one
// simulated server; its state is created on first reference and mutated
// exactly once per run.
package state

import "github.com/growth-sim/growth-sim/sim/record"

// GrowthPattern is the immutable behavioral class governing an entity's
// size, cleanup, and autogrowth dynamics. Assigned once at entity creation.
type GrowthPattern string

const (
	PatternStable        GrowthPattern = "stable"
	PatternNoRetention   GrowthPattern = "no_retention"
	PatternGrowingFast   GrowthPattern = "growing_fast"
	PatternBrokenCleanup GrowthPattern = "broken_cleanup"
	PatternArchiveFail   GrowthPattern = "archive_failure"
	PatternETLCycle      GrowthPattern = "etl_cycle"
	PatternStatic        GrowthPattern = "static"
)

// validPatterns maps recognized growth patterns.
var validPatterns = map[GrowthPattern]bool{
	PatternStable:        true,
	PatternNoRetention:   true,
	PatternGrowingFast:   true,
	PatternBrokenCleanup: true,
	PatternArchiveFail:   true,
	PatternETLCycle:      true,
	PatternStatic:        true,
}

// Valid returns true if p is a recognized growth pattern.
func (p GrowthPattern) Valid() bool {
	return validPatterns[p]
}

// ServerClass is the workload class assigned to a server; every entity on a
// server shares the server's class.
type ServerClass string

const (
	ClassOLTP      ServerClass = "oltp_production"
	ClassAnalytics ServerClass = "reporting_analytics"
	ClassReference ServerClass = "reference_config"
)

// validClasses maps recognized server classes.
var validClasses = map[ServerClass]bool{
	ClassOLTP:      true,
	ClassAnalytics: true,
	ClassReference: true,
}

// Valid returns true if c is a recognized server class.
func (c ServerClass) Valid() bool {
	return validClasses[c]
}

// TableState is the persisted state of one table within an entity.
// DailyGrowth and AvgRowBytes are fixed at entity creation; Rows is mutated
// every period (non-decreasing except for cleanup deletions).
type TableState struct {
	Name        string `json:"name"`
	Rows        int64  `json:"rows"`
	DailyGrowth int64  `json:"daily_growth"`
	AvgRowBytes int64  `json:"avg_row_bytes"`
	HasCleanup  bool   `json:"has_cleanup"`
}

// CleanupHistory tracks per-table cleanup outcomes across periods.
type CleanupHistory struct {
	LastCleanupSuccess  bool `json:"last_cleanup_success"`
	FailedCleanups      int  `json:"failed_cleanups"`
	PeriodsSinceCleanup int  `json:"periods_since_cleanup"`
}

// EntityState is the persisted state of one simulated database.
type EntityState struct {
	DatabaseName        string                     `json:"database_name"`
	ServerClass         ServerClass                `json:"server_type"`
	CurrentSizeGB       float64                    `json:"current_size_gb"`
	DataFileGB          float64                    `json:"data_file_gb"`
	LogFileGB           float64                    `json:"log_file_gb"`
	CumulativeReads     int64                      `json:"cumulative_reads"`
	CumulativeWrites    int64                      `json:"cumulative_writes"`
	GrowthPattern       GrowthPattern              `json:"growth_pattern"`
	Tables              map[string]*TableState     `json:"tables"`
	TableCleanupHistory map[string]*CleanupHistory `json:"table_cleanup_history,omitempty"`
	LastPeriod          *record.Period             `json:"last_period"`
}

// CleanupHistoryFor returns the cleanup history for a table, creating it on
// first reference.
func (e *EntityState) CleanupHistoryFor(table string) *CleanupHistory {
	if e.TableCleanupHistory == nil {
		e.TableCleanupHistory = make(map[string]*CleanupHistory)
	}
	h, ok := e.TableCleanupHistory[table]
	if !ok {
		h = &CleanupHistory{LastCleanupSuccess: true}
		e.TableCleanupHistory[table] = h
	}
	return h
}
