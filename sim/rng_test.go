package sim

import (
	"math"
	"testing"
	"time"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// Same key+name produces the same sequence.
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	name := EntityInitSubsystem(1, "PrimaryStore_DB")
	for i := 0; i < 5; i++ {
		v1 := rng1.ForSubsystem(name).Float64()
		v2 := rng2.ForSubsystem(name).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// Drawing from one entity's stream doesn't affect another's.
	periodStart := time.Date(2025, 5, 1, 6, 0, 0, 0, time.UTC)
	a := EntityPeriodSubsystem(1, "CustomerCore_DB", periodStart)
	b := EntityPeriodSubsystem(1, "OrderProcessing_DB", periodStart)

	rngA := NewPartitionedRNG(NewSimulationKey(42))
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(a).Float64()
	}
	drained := rngA.ForSubsystem(b).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	expected := fresh.ForSubsystem(b).Float64()

	if drained != expected {
		t.Errorf("Subsystem %q first value = %v, want %v (isolation broken)", b, drained, expected)
	}
}

func TestPartitionedRNG_CachesInstances(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(7))
	name := EntityInitSubsystem(3, "Analytics_DB")
	if rng.ForSubsystem(name) != rng.ForSubsystem(name) {
		t.Error("ForSubsystem returned different instances for the same name")
	}
}

func TestPartitionedRNG_DifferentSeedsDiffer(t *testing.T) {
	name := EntityInitSubsystem(1, "PrimaryStore_DB")
	v1 := NewPartitionedRNG(NewSimulationKey(1)).ForSubsystem(name).Float64()
	v2 := NewPartitionedRNG(NewSimulationKey(2)).ForSubsystem(name).Float64()
	if v1 == v2 {
		t.Error("different seeds produced identical first values")
	}
}

func TestEntityPeriodSubsystem_VariesByPeriodAndServer(t *testing.T) {
	start1 := time.Date(2025, 5, 1, 6, 0, 0, 0, time.UTC)
	start2 := start1.Add(12 * time.Hour)
	if EntityPeriodSubsystem(1, "db", start1) == EntityPeriodSubsystem(1, "db", start2) {
		t.Error("subsystem names for different periods must differ")
	}
	if EntityPeriodSubsystem(1, "db", start1) == EntityPeriodSubsystem(2, "db", start1) {
		t.Error("subsystem names for different servers must differ")
	}
}
