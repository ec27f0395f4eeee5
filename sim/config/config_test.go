package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growth-sim/growth-sim/sim/state"
)

func TestParseServerRange(t *testing.T) {
	tests := []struct {
		spec    string
		start   int
		end     int
		wantErr bool
	}{
		{"servers_1_4", 1, 4, false},
		{"servers_5_5", 5, 5, false},
		{"servers_2_10", 2, 10, false},
		{"servers_4_2", 0, 0, true},
		{"servers_0_3", 0, 0, true},
		{"servers_1", 0, 0, true},
		{"hosts_1_4", 0, 0, true},
		{"servers_a_b", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			start, end, err := ParseServerRange(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.ServerCount())
	assert.True(t, cfg.IsAnomaly(2, "PrimaryStore_DB"))
	assert.False(t, cfg.IsAnomaly(1, "PrimaryStore_DB"))
}

func TestAssignments_ExpandsRangesAndDefaults(t *testing.T) {
	cfg := Default()
	cfg.ServerIntegration.DefaultServerCount = 5
	cfg.ServerIntegration.ServerTypeAssignments = map[string]string{
		"servers_1_2": string(state.ClassOLTP),
		"servers_3_3": string(state.ClassAnalytics),
	}
	cfg.ServerIntegration.UnassignedServerDefault = string(state.ClassReference)

	assignments, err := cfg.Assignments()
	require.NoError(t, err)
	assert.Equal(t, state.ClassOLTP, assignments[1])
	assert.Equal(t, state.ClassOLTP, assignments[2])
	assert.Equal(t, state.ClassAnalytics, assignments[3])
	assert.Equal(t, state.ClassReference, assignments[4])
	assert.Equal(t, state.ClassReference, assignments[5])
}

func TestAssignments_TruncatesRangesPastServerCount(t *testing.T) {
	cfg := Default()
	cfg.ServerIntegration.DefaultServerCount = 2
	cfg.ServerIntegration.ServerTypeAssignments = map[string]string{
		"servers_1_6": string(state.ClassOLTP),
	}

	assignments, err := cfg.Assignments()
	require.NoError(t, err)
	assert.Len(t, assignments, 2)
}

func TestEpoch(t *testing.T) {
	cfg := Default()
	epoch, err := cfg.Epoch()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 1, 6, 0, 0, 0, time.UTC), epoch)

	cfg.ScheduleStartDate = "2026-01-15"
	epoch, err = cfg.Epoch()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 15, 6, 0, 0, 0, time.UTC), epoch)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero server count", func(c *Config) { c.ServerIntegration.DefaultServerCount = 0 }},
		{"bad range", func(c *Config) { c.ServerIntegration.ServerTypeAssignments["servers_9_1"] = string(state.ClassOLTP) }},
		{"bad class in range", func(c *Config) { c.ServerIntegration.ServerTypeAssignments["servers_1_1"] = "mainframe" }},
		{"bad default class", func(c *Config) { c.ServerIntegration.UnassignedServerDefault = "mainframe" }},
		{"bad baseline class", func(c *Config) { c.BaselineTemplates["mainframe"] = BaselineTemplate{} }},
		{"negative baseline", func(c *Config) {
			c.BaselineTemplates[string(state.ClassOLTP)] = BaselineTemplate{IOBaselines: IOBaselines{ReadsPerSecondBaseline: -1}}
		}},
		{"bad names class", func(c *Config) { c.DatabaseNames = map[string][]string{"mainframe": {"X_DB"}} }},
		{"bad anomaly", func(c *Config) { c.AnomalyEntity = &EntityRef{Server: 0, Database: ""} }},
		{"bad date", func(c *Config) { c.ScheduleStartDate = "05/01/2025" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNamesFor_FallsBackToDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"PrimaryStore_DB", "CustomerCore_DB", "OrderProcessing_DB"}, cfg.NamesFor(state.ClassOLTP))
	assert.Len(t, cfg.NamesFor(state.ClassReference), 2)

	cfg.DatabaseNames = map[string][]string{string(state.ClassOLTP): {"Custom_DB"}}
	assert.Equal(t, []string{"Custom_DB"}, cfg.NamesFor(state.ClassOLTP))
}

func TestLoad_FromYAML(t *testing.T) {
	payload := `
schedule_start_date: "2025-06-01"
server_integration:
  default_server_count: 4
  server_type_assignments:
    servers_1_2: oltp_production
    servers_3_3: reporting_analytics
  unassigned_server_default: reference_config
baseline_templates:
  oltp_production:
    io_baselines:
      reads_per_second_baseline: 500
      writes_per_second_baseline: 200
  reporting_analytics:
    io_baselines:
      reads_per_second_baseline: 300
      writes_per_second_baseline: 150
  reference_config:
    io_baselines:
      reads_per_second_baseline: 50
      writes_per_second_baseline: 10
anomaly_entity:
  server: 2
  database: PrimaryStore_DB
`
	path := filepath.Join(t.TempDir(), "growth_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ServerCount())
	assert.Equal(t, "2025-06-01", cfg.ScheduleStartDate)

	baseline, err := cfg.Baseline(state.ClassOLTP)
	require.NoError(t, err)
	assert.Equal(t, 500.0, baseline.IOBaselines.ReadsPerSecondBaseline)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	payload := `
server_integration:
  default_server_count: 3
  server_type_assignmnets: {}
`
	path := filepath.Join(t.TempDir(), "growth_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestBaseline_MissingClass(t *testing.T) {
	cfg := Default()
	delete(cfg.BaselineTemplates, string(state.ClassReference))
	_, err := cfg.Baseline(state.ClassReference)
	require.Error(t, err)
}
