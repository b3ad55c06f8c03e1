package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamNilotpal/fragdb/pkg/fragdb"
)

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a key to a value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := fragdb.Open(dataDir)
		if err != nil {
			exitWithError("failed to open store", err)
		}
		defer store.Close()

		if err := store.Set(args[0], args[1]); err != nil {
			exitWithError("failed to set key", err)
		}
		fmt.Println("OK")
	},
}
