// Command neurosync runs the NeuroSync calm room client core, either as a
// JSON API (serve) or through one-shot subcommands over the same store.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
