package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/growth-sim/growth-sim/sim"
)

var seed int64 // master seed for all random generation

// runCmd advances every configured server by one 12-hour simulation period.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Advance all servers by one 12-hour simulation period",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := loadConfig()

		simulator, err := sim.NewSimulator(cfg, dataDir, sim.NewPartitionedRNG(sim.NewSimulationKey(seed)))
		if err != nil {
			logrus.Fatalf("Configuration error: %v", err)
		}

		summary, err := simulator.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		fmt.Println("DATABASE GROWTH SIMULATOR")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("Simulation Period: %s → %s (%s)\n",
			summary.Period.Start.Format("2006-01-02 15:04"),
			summary.Period.End.Format("15:04"),
			summary.Period.Type)
		for _, server := range summary.Servers {
			fmt.Printf("Server%d (%s): %d databases processed", server.Server, server.Class, len(server.Processed))
			if len(server.Skipped) > 0 {
				fmt.Printf(", %d skipped (%s)", len(server.Skipped), strings.Join(server.Skipped, ", "))
			}
			fmt.Println()
		}
		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("Complete: %d database snapshots generated\n", summary.SnapshotCount())
	},
}

func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random data generation")
	rootCmd.AddCommand(runCmd)
}
