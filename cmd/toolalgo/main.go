// Command toolalgo serves the search and sort operations as MCP tools.
//
// Usage:
//
//	toolalgo serve [--transport stdio|http] [--addr :8080] [--config toolalgo.yaml]
//	toolalgo list
//	toolalgo call quicksort '{"numbers":[3,1,2]}'
//
// Settings come from the config file, then TOOLALGO_* variables, then flags.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
