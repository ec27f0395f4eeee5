package record

import "fmt"

// ServerName formats the canonical display name for a server number.
func ServerName(server int) string {
	return fmt.Sprintf("Server%d", server)
}

// BuildSnapshot assembles a Snapshot from entity identity, the period, and
// the growth model outputs. Pure assembly: no randomness, no state mutation,
// idempotent given identical inputs.
func BuildSnapshot(server int, database, serverType string, period Period,
	size SizeData, io IOData, tables []TableData) Snapshot {
	return Snapshot{
		Timestamp:    period.End,
		ServerName:   ServerName(server),
		ServerNumber: server,
		ServerType:   serverType,
		DatabaseName: database,
		PeriodStart:  period.Start,
		PeriodEnd:    period.End,
		PeriodType:   period.Type,
		Size:         size,
		IO:           io,
		Tables:       tables,
	}
}

// BuildAutogrowthBatch assembles the per-period event batch. Returns nil when
// the period produced no events; a nil batch is not persisted.
func BuildAutogrowthBatch(server int, database string, period Period, events []AutogrowthEvent) *AutogrowthBatch {
	if len(events) == 0 {
		return nil
	}
	return &AutogrowthBatch{
		ServerName:   ServerName(server),
		ServerNumber: server,
		DatabaseName: database,
		PeriodStart:  period.Start,
		PeriodEnd:    period.End,
		Events:       events,
	}
}
