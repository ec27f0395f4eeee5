package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/growth-sim/growth-sim/sim"
	"github.com/growth-sim/growth-sim/sim/state"
)

// statusCmd inspects the state files on disk and reports, per server, the
// entities tracked, their last recorded periods, and the next period the
// clock would produce. Read-only.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-server simulation state and the next period",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := loadConfig()

		epoch, err := cfg.Epoch()
		if err != nil {
			fmt.Printf("Configuration error: %v\n", err)
			return
		}
		clock := sim.NewClock(epoch)
		store := state.NewStore(dataDir)

		assignments, err := cfg.Assignments()
		if err != nil {
			fmt.Printf("Configuration error: %v\n", err)
			return
		}

		fmt.Println("SIMULATION STATE")
		fmt.Println(strings.Repeat("=", 50))
		for server := 1; server <= cfg.ServerCount(); server++ {
			states := store.Load(server)
			fmt.Printf("Server%d (%s): %d databases tracked\n", server, assignments[server], len(states))

			names := make([]string, 0, len(states))
			for name := range states {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				entity := states[name]
				if entity.LastPeriod == nil {
					fmt.Printf("  - %s: no periods recorded\n", name)
					continue
				}
				fmt.Printf("  - %s: last period ended %s (%s)\n",
					name, entity.LastPeriod.End.Format("2006-01-02 15:04"), entity.LastPeriod.Type)
			}

			next := clock.NextPeriod(sim.LatestPeriodEnd(states))
			fmt.Printf("  next period: %s → %s (%s)\n",
				next.Start.Format("2006-01-02 15:04"), next.End.Format("2006-01-02 15:04"), next.Type)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
