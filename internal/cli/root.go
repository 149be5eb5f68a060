// Package cli wires the scopcalc commands: single-unit calculation,
// batch runs over a measurement corpus, and climate table inspection.
package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root command for the scopcalc CLI.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scopcalc",
		Short: "EN 14825 seasonal heat pump performance calculator",
		Long: `scopcalc computes SCOP, SCOPon, SCOPnet and the seasonal space-heating
efficiency of heat pumps with the EN 14825:2018 bin method, from declared
test-point measurements.`,
		Version: version,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Optional .env for local overrides; absence is fine.
			_ = godotenv.Load()
			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to config file (YAML)")
	cmd.AddCommand(newCalculateCmd(), newBatchCmd(), newClimatesCmd())

	return cmd
}

const rootCmdExample = `  # Calculate seasonal performance for one unit
  scopcalc calculate --input unit.yaml

  # Same, exporting the per-bin table as JSON
  scopcalc calculate --input unit.yaml --output json

  # Browse the bin table interactively
  scopcalc calculate --input unit.yaml --tui

  # Run the whole measurement corpus and write a results CSV
  scopcalc batch --measurements corpus.csv --output results.csv

  # Restrict a batch run to one dimension with more workers
  scopcalc batch --measurements corpus.csv --dimensions 4_3_0_0 --concurrency 8

  # Show the reference climates
  scopcalc climates`
