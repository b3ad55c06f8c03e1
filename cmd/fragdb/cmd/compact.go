package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamNilotpal/fragdb/pkg/fragdb"
)

var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Force an immediate compaction pass",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := fragdb.Open(dataDir)
		if err != nil {
			exitWithError("failed to open store", err)
		}
		defer store.Close()

		if err := store.Compact(); err != nil {
			exitWithError("failed to compact store", err)
		}
		fmt.Println("OK")
	},
}
