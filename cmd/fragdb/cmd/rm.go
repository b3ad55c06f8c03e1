package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamNilotpal/fragdb/pkg/fragdb"
)

var rmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Remove a key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := fragdb.Open(dataDir)
		if err != nil {
			exitWithError("failed to open store", err)
		}
		defer store.Close()

		if err := store.Remove(args[0]); err != nil {
			if fragdb.IsNotFound(err) {
				exitWithError("Key not found", nil)
			}
			exitWithError("failed to remove key", err)
		}
		fmt.Println("OK")
	},
}
