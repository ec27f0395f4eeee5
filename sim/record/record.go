// Package record provides the persisted record types for the growth simulator.
// This package has no dependencies on sim/ or sim/state/; it stores pure data types.
package record

import "time"

// PeriodType labels a simulation window as a day or night shift.
type PeriodType string

const (
	// PeriodDay is the 06:00–18:00 window.
	PeriodDay PeriodType = "day"
	// PeriodNight is the 18:00–06:00 window.
	PeriodNight PeriodType = "night"
)

// Period is one 12-hour simulation window. Periods are contiguous and
// non-overlapping across an entity's lifetime: each period starts exactly
// where the previous one ended.
type Period struct {
	Start time.Time  `json:"period_start"`
	End   time.Time  `json:"period_end"`
	Type  PeriodType `json:"period_type"`
}

// Duration returns the span of the period (always 12 hours for well-formed periods).
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// SizeData is the size output of the growth model for one period.
type SizeData struct {
	TotalGB    float64 `json:"total_gb"`
	DataFileGB float64 `json:"data_file_gb"`
	LogFileGB  float64 `json:"log_file_gb"`
	FileCount  int     `json:"file_count"`
}

// IOData is the I/O output of the growth model for one period.
// Cumulative counters carry across periods and never decrease.
type IOData struct {
	Reads            int64   `json:"reads"`
	Writes           int64   `json:"writes"`
	ReadGB           float64 `json:"read_gb"`
	WriteGB          float64 `json:"write_gb"`
	CumulativeReads  int64   `json:"cumulative_reads"`
	CumulativeWrites int64   `json:"cumulative_writes"`
}

// TableData is the per-table output of the growth model for one period.
type TableData struct {
	Name            string  `json:"name"`
	Rows            int64   `json:"rows"`
	SizeGB          float64 `json:"size_gb"`
	RowsAdded       int64   `json:"rows_added"`
	RowsDeleted     int64   `json:"rows_deleted"`
	AvgRowBytes     int64   `json:"avg_row_bytes"`
	HasCleanup      bool    `json:"has_cleanup"`
	CleanupOccurred bool    `json:"cleanup_occurred"`
}

// AutogrowthEvent records one simulated storage-file growth occurrence.
type AutogrowthEvent struct {
	Timestamp        time.Time `json:"timestamp"`
	FileType         string    `json:"file_type"`
	PreviousMB       int       `json:"previous_mb"`
	IncrementMB      int       `json:"increment_mb"`
	NewMB            int       `json:"new_mb"`
	DurationMS       int       `json:"duration_ms"`
	Blocking         bool      `json:"blocking"`
	IOWaitMS         int       `json:"io_wait_ms"`
	BlockedProcesses int       `json:"blocked_processes"`
}

// Snapshot combines entity identity, the simulation period, and the growth
// model outputs produced for that period. Immutable once built.
type Snapshot struct {
	Timestamp    time.Time  `json:"timestamp"`
	ServerName   string     `json:"server_name"`
	ServerNumber int        `json:"server_number"`
	ServerType   string     `json:"server_type"`
	DatabaseName string     `json:"database_name"`
	PeriodStart  time.Time  `json:"period_start"`
	PeriodEnd    time.Time  `json:"period_end"`
	PeriodType   PeriodType `json:"period_type"`

	Size   SizeData    `json:"size"`
	IO     IOData      `json:"io"`
	Tables []TableData `json:"tables"`
}

// AutogrowthBatch is the per-entity, per-period batch of autogrowth events,
// ordered by timestamp ascending.
type AutogrowthBatch struct {
	ServerName   string            `json:"server_name"`
	ServerNumber int               `json:"server_number"`
	DatabaseName string            `json:"database_name"`
	PeriodStart  time.Time         `json:"period_start"`
	PeriodEnd    time.Time         `json:"period_end"`
	Events       []AutogrowthEvent `json:"events"`
}
