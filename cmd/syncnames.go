package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var syncNamesOut string

// syncNamesCmd writes the flat database-name list derived from the server
// class assignments. A sibling error-log simulator consumes the flat file,
// so both tools emit telemetry for the same set of databases.
var syncNamesCmd = &cobra.Command{
	Use:   "sync-names",
	Short: "Write the flat database name list for companion simulators",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := loadConfig()

		assignments, err := cfg.Assignments()
		if err != nil {
			logrus.Fatalf("Configuration error: %v", err)
		}

		var names []string
		seen := make(map[string]bool)
		for server := 1; server <= cfg.ServerCount(); server++ {
			for _, name := range cfg.NamesFor(assignments[server]) {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}

		out := syncNamesOut
		if !filepath.IsAbs(out) {
			out = filepath.Join(dataDir, out)
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			logrus.Fatalf("Failed to create output directory: %v", err)
		}
		if err := os.WriteFile(out, []byte(strings.Join(names, "\n")+"\n"), 0o644); err != nil {
			logrus.Fatalf("Failed to write database names: %v", err)
		}
		fmt.Printf("Synchronized %d database names to %s\n", len(names), out)
	},
}

func init() {
	syncNamesCmd.Flags().StringVar(&syncNamesOut, "out", filepath.Join("data", "database_names.txt"), "Output path for the flat name list")
	rootCmd.AddCommand(syncNamesCmd)
}
