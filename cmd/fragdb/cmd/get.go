package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamNilotpal/fragdb/pkg/fragdb"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get the value for a key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := fragdb.Open(dataDir)
		if err != nil {
			exitWithError("failed to open store", err)
		}
		defer store.Close()

		value, ok, err := store.Get(args[0])
		if err != nil {
			exitWithError("failed to get key", err)
		}
		if !ok {
			exitWithError("Key not found", nil)
		}
		fmt.Println(value)
	},
}
