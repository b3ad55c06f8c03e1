// Package cmd implements the fragdb CLI commands using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dataDir string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "fragdb",
	Short:   "fragdb - a log-structured key-value store",
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "/var/lib/fragdb", "store directory")

	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(compactCmd)
}

func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
