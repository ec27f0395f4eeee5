// Package config loads and validates the growth simulator configuration:
// server class assignments, per-class I/O baselines, database name lists,
// and the schedule epoch. Configuration errors are fatal to a run; the
// caller receives them before any entity is touched.
package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/growth-sim/growth-sim/sim/state"
)

// DefaultEpochDate is the schedule start used when the config omits one.
// The first period of a fresh state store is [epoch 06:00, epoch 18:00).
const DefaultEpochDate = "2025-05-01"

// EntityRef identifies one entity by server number and database name.
type EntityRef struct {
	Server   int    `yaml:"server"`
	Database string `yaml:"database"`
}

// IOBaselines holds the per-class baseline operation rates.
type IOBaselines struct {
	ReadsPerSecondBaseline  float64 `yaml:"reads_per_second_baseline"`
	WritesPerSecondBaseline float64 `yaml:"writes_per_second_baseline"`
}

// BaselineTemplate groups the baseline parameters for one server class.
type BaselineTemplate struct {
	IOBaselines IOBaselines `yaml:"io_baselines"`
}

// ServerIntegration configures how many servers exist and which class each
// one is assigned. Assignments use range keys like "servers_1_4"; servers
// not covered by any range get the unassigned default class.
type ServerIntegration struct {
	DefaultServerCount      int               `yaml:"default_server_count"`
	ServerTypeAssignments   map[string]string `yaml:"server_type_assignments"`
	UnassignedServerDefault string            `yaml:"unassigned_server_default"`
}

// Config is the top-level growth simulator configuration.
// Loaded from YAML via Load(path).
type Config struct {
	ScheduleStartDate string                      `yaml:"schedule_start_date,omitempty"`
	ServerIntegration ServerIntegration           `yaml:"server_integration"`
	BaselineTemplates map[string]BaselineTemplate `yaml:"baseline_templates"`
	DatabaseNames     map[string][]string         `yaml:"database_names,omitempty"`
	AnomalyEntity     *EntityRef                  `yaml:"anomaly_entity,omitempty"`
}

// defaultDatabaseNames backs NamesFor when the config carries no name lists.
var defaultDatabaseNames = map[state.ServerClass][]string{
	state.ClassOLTP:      {"PrimaryStore_DB", "CustomerCore_DB", "OrderProcessing_DB"},
	state.ClassAnalytics: {"DataWarehouse_DB", "Analytics_DB", "Reporting_DB"},
	state.ClassReference: {"ReferenceData_DB", "ConfigStore_DB"},
}

// Default returns a ready-to-run configuration: three servers, one per
// class, default baselines, and the PrimaryStore_DB anomaly entity.
func Default() *Config {
	return &Config{
		ScheduleStartDate: DefaultEpochDate,
		ServerIntegration: ServerIntegration{
			DefaultServerCount: 3,
			ServerTypeAssignments: map[string]string{
				"servers_1_1": string(state.ClassOLTP),
				"servers_2_2": string(state.ClassOLTP),
				"servers_3_3": string(state.ClassAnalytics),
			},
			UnassignedServerDefault: string(state.ClassReference),
		},
		BaselineTemplates: map[string]BaselineTemplate{
			string(state.ClassOLTP):      {IOBaselines: IOBaselines{ReadsPerSecondBaseline: 450, WritesPerSecondBaseline: 180}},
			string(state.ClassAnalytics): {IOBaselines: IOBaselines{ReadsPerSecondBaseline: 250, WritesPerSecondBaseline: 120}},
			string(state.ClassReference): {IOBaselines: IOBaselines{ReadsPerSecondBaseline: 40, WritesPerSecondBaseline: 10}},
		},
		AnomalyEntity: &EntityRef{Server: 2, Database: "PrimaryStore_DB"},
	}
}

// Load reads a Config from a YAML file with strict field checking, then
// validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading growth config: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing growth config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that all fields in the config are consistent.
func (c *Config) Validate() error {
	if c.ServerIntegration.DefaultServerCount <= 0 {
		return fmt.Errorf("default_server_count must be positive, got %d", c.ServerIntegration.DefaultServerCount)
	}
	if d := c.ServerIntegration.UnassignedServerDefault; d != "" && !state.ServerClass(d).Valid() {
		return fmt.Errorf("unknown unassigned_server_default %q; valid: oltp_production, reporting_analytics, reference_config", d)
	}
	for rangeSpec, class := range c.ServerIntegration.ServerTypeAssignments {
		if _, _, err := ParseServerRange(rangeSpec); err != nil {
			return err
		}
		if !state.ServerClass(class).Valid() {
			return fmt.Errorf("unknown server class %q for range %q", class, rangeSpec)
		}
	}
	for class, tmpl := range c.BaselineTemplates {
		if !state.ServerClass(class).Valid() {
			return fmt.Errorf("baseline template for unknown server class %q", class)
		}
		if tmpl.IOBaselines.ReadsPerSecondBaseline < 0 || tmpl.IOBaselines.WritesPerSecondBaseline < 0 {
			return fmt.Errorf("io baselines for %q must be non-negative", class)
		}
	}
	for class := range c.DatabaseNames {
		if !state.ServerClass(class).Valid() {
			return fmt.Errorf("database names for unknown server class %q", class)
		}
	}
	if c.AnomalyEntity != nil {
		if c.AnomalyEntity.Server <= 0 || c.AnomalyEntity.Database == "" {
			return fmt.Errorf("anomaly_entity requires a positive server number and a database name")
		}
	}
	if c.ScheduleStartDate != "" {
		if _, err := time.Parse("2006-01-02", c.ScheduleStartDate); err != nil {
			return fmt.Errorf("invalid schedule_start_date %q: %w", c.ScheduleStartDate, err)
		}
	}
	return nil
}

// ParseServerRange parses a range key like "servers_1_4" into its inclusive
// bounds (1, 4). Pure; validated independently of the growth model.
func ParseServerRange(spec string) (start, end int, err error) {
	parts := strings.Split(spec, "_")
	if len(parts) != 3 || parts[0] != "servers" {
		return 0, 0, fmt.Errorf("invalid server range %q (expected servers_X_Y)", spec)
	}
	start, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid server range %q: %w", spec, err)
	}
	end, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid server range %q: %w", spec, err)
	}
	if start < 1 || start > end {
		return 0, 0, fmt.Errorf("invalid server range %q: start must satisfy 1 <= start <= end", spec)
	}
	return start, end, nil
}

// ServerCount returns the configured number of servers.
func (c *Config) ServerCount() int {
	return c.ServerIntegration.DefaultServerCount
}

// Assignments expands the range assignments into a class per server number,
// applying the unassigned default (reference_config when unset) to servers
// no range covers. Ranges extending past the server count are truncated.
func (c *Config) Assignments() (map[int]state.ServerClass, error) {
	count := c.ServerCount()
	assigned := make(map[int]state.ServerClass, count)

	// Deterministic iteration so overlap resolution does not depend on map order.
	specs := make([]string, 0, len(c.ServerIntegration.ServerTypeAssignments))
	for spec := range c.ServerIntegration.ServerTypeAssignments {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	for _, spec := range specs {
		start, end, err := ParseServerRange(spec)
		if err != nil {
			return nil, err
		}
		class := state.ServerClass(c.ServerIntegration.ServerTypeAssignments[spec])
		for server := start; server <= end && server <= count; server++ {
			assigned[server] = class
		}
	}

	fallback := state.ServerClass(c.ServerIntegration.UnassignedServerDefault)
	if fallback == "" {
		fallback = state.ClassReference
	}
	for server := 1; server <= count; server++ {
		if _, ok := assigned[server]; !ok {
			assigned[server] = fallback
		}
	}
	return assigned, nil
}

// Epoch returns the schedule start date at 06:00 UTC.
func (c *Config) Epoch() (time.Time, error) {
	date := c.ScheduleStartDate
	if date == "" {
		date = DefaultEpochDate
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule_start_date %q: %w", date, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 6, 0, 0, 0, time.UTC), nil
}

// Baseline returns the baseline template for a class, or an error when the
// config carries none (taxonomy: configuration error, fatal to the run).
func (c *Config) Baseline(class state.ServerClass) (BaselineTemplate, error) {
	tmpl, ok := c.BaselineTemplates[string(class)]
	if !ok {
		return BaselineTemplate{}, fmt.Errorf("no baseline template for server class %q", class)
	}
	return tmpl, nil
}

// NamesFor returns the database names for a class, falling back to the
// built-in defaults when the config has no list for it.
func (c *Config) NamesFor(class state.ServerClass) []string {
	if names, ok := c.DatabaseNames[string(class)]; ok && len(names) > 0 {
		return names
	}
	return defaultDatabaseNames[class]
}

// IsAnomaly reports whether the given entity is the designated anomalous
// high-frequency autogrowth emitter.
func (c *Config) IsAnomaly(server int, database string) bool {
	return c.AnomalyEntity != nil && c.AnomalyEntity.Server == server && c.AnomalyEntity.Database == database
}
