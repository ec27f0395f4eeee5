package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/growth-sim/growth-sim/sim"
	"github.com/growth-sim/growth-sim/sim/state"
)

var (
	repairServer int  // 0 = all servers
	repairReset  bool // drop recorded periods so the clock restarts at the epoch
	repairAlign  bool // copy the server's latest period onto stragglers
)

// repairCmd forcibly overwrites recorded periods. This is the exceptional
// operation outside normal progression: normal runs only ever advance one
// period at a time and never rewrite history.
var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Forcibly reset or align recorded simulation periods",
	Long: "Reset drops every entity's recorded period so the next run restarts from the epoch " +
		"window; align copies the server's latest recorded period onto entities that fell behind " +
		"(for example after repeated skipped runs). Entity sizes, tables, and counters are kept.",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := loadConfig()

		if repairReset == repairAlign {
			logrus.Fatalf("exactly one of --reset or --align is required")
		}

		store := state.NewStore(dataDir)
		servers := make([]int, 0, cfg.ServerCount())
		if repairServer > 0 {
			servers = append(servers, repairServer)
		} else {
			for server := 1; server <= cfg.ServerCount(); server++ {
				servers = append(servers, server)
			}
		}

		for _, server := range servers {
			states := store.Load(server)
			if len(states) == 0 {
				fmt.Printf("Server%d: no state to repair\n", server)
				continue
			}

			changed := 0
			if repairReset {
				for _, entity := range states {
					if entity.LastPeriod != nil {
						entity.LastPeriod = nil
						changed++
					}
				}
			} else {
				latest := sim.LatestPeriodEnd(states)
				if latest == nil {
					fmt.Printf("Server%d: no recorded periods to align to\n", server)
					continue
				}
				for _, entity := range states {
					if entity.LastPeriod == nil || entity.LastPeriod.End.Before(*latest) {
						aligned := sim.ReconstructPeriod(*latest)
						entity.LastPeriod = &aligned
						changed++
					}
				}
			}

			store.Save(server, states)
			fmt.Printf("Server%d: %d entities repaired\n", server, changed)
		}
	},
}

func init() {
	repairCmd.Flags().IntVar(&repairServer, "server", 0, "Server number to repair (default: all)")
	repairCmd.Flags().BoolVar(&repairReset, "reset", false, "Drop recorded periods; next run restarts from the epoch")
	repairCmd.Flags().BoolVar(&repairAlign, "align", false, "Align stragglers to the server's latest recorded period")
	rootCmd.AddCommand(repairCmd)
}
