// Command scopcalc computes EN 14825 seasonal heat pump performance
// metrics from declared test-point measurements.
package main

import (
	"os"

	"github.com/SharodX/keymark-heat-pumps/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}
