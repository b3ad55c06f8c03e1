// Command fragdb is a thin CLI front-end over pkg/fragdb. It is not part of
// the engine's core surface — a process bootstrap exists only to give
// external collaborators a way to drive the store from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/iamNilotpal/fragdb/cmd/fragdb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
