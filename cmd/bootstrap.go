package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// bootstrapCmd creates the per-server directory trees the simulator writes
// into. Running it is optional (the run command creates directories on
// demand) but it gives dashboards a complete tree to watch before the
// first period is generated.
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the ServerN output directory trees",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := loadConfig()

		for server := 1; server <= cfg.ServerCount(); server++ {
			base := filepath.Join(dataDir, fmt.Sprintf("Server%d", server), "growth_data")
			for _, sub := range []string{"snapshots", "autogrowth_events"} {
				if err := os.MkdirAll(filepath.Join(base, sub), 0o755); err != nil {
					logrus.Fatalf("Failed to create %s: %v", filepath.Join(base, sub), err)
				}
			}
		}
		fmt.Printf("Created directories for %d servers\n", cfg.ServerCount())
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}
