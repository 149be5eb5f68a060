package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SharodX/keymark-heat-pumps/internal/batch"
	"github.com/SharodX/keymark-heat-pumps/internal/config"
	"github.com/SharodX/keymark-heat-pumps/internal/engine"
	"github.com/SharodX/keymark-heat-pumps/internal/ingest"
	"github.com/SharodX/keymark-heat-pumps/internal/report"
)

// batchParams holds the flag values of the batch command.
type batchParams struct {
	measurementsPath   string
	outputPath         string
	dimensions         []string
	includeNonstandard bool
	limit              int
	unitType           string
	concurrency        int
	progressInterval   int
}

// newBatchCmd creates the "batch" subcommand that runs the calculation
// across a measurement corpus.
func newBatchCmd() *cobra.Command {
	var params batchParams

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run the calculation across a measurement corpus",
		Long: `Run the seasonal performance calculation for every variant/dimension
combination in a measurement corpus CSV and write a results CSV.

Combos with missing required EN codes or unusable dimensions are recorded
with a per-row status and never abort the run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeBatch(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.measurementsPath, "measurements", "", "Path to the measurement corpus CSV (required)")
	cmd.Flags().StringVar(&params.outputPath, "output", "scop_results.csv", "Destination results CSV")
	cmd.Flags().StringArrayVar(&params.dimensions, "dimensions", nil,
		"Exact dimension tokens to include (e.g. 4_2_0_0); repeatable")
	cmd.Flags().BoolVar(&params.includeNonstandard, "include-nonstandard", false,
		"Include dimensions outside the [456]_[123]_0_0 pattern")
	cmd.Flags().IntVar(&params.limit, "limit", 0, "Max number of combos to process (0 = all)")
	cmd.Flags().StringVar(&params.unitType, "unit-type", "", "Unit type: air or water_brine (default from configuration)")
	cmd.Flags().IntVar(&params.concurrency, "concurrency", batch.DefaultConcurrency, "Number of combos calculated in parallel")
	cmd.Flags().IntVar(&params.progressInterval, "progress-interval", 25, "Log progress every N combos (0 = never)")
	_ = cmd.MarkFlagRequired("measurements")

	return cmd
}

func executeBatch(cmd *cobra.Command, params batchParams) error {
	ctx := cmd.Context()
	appCfg := config.FromContext(ctx)

	if params.progressInterval < 0 {
		return fmt.Errorf("progress-interval must be >= 0, got %d", params.progressInterval)
	}

	unitType := engine.UnitType(appCfg.Defaults.UnitType)
	if params.unitType != "" {
		unitType = engine.UnitType(params.unitType)
	}
	if unitType != engine.UnitAir && unitType != engine.UnitWaterBrine {
		return fmt.Errorf("unknown unit type %q (expected air or water_brine)", unitType)
	}

	f, err := os.Open(params.measurementsPath)
	if err != nil {
		return fmt.Errorf("opening measurements: %w", err)
	}
	defer f.Close()

	combos, err := ingest.LoadMeasurementsCSV(ctx, f)
	if err != nil {
		return err
	}

	rep, err := batch.Run(ctx, combos, batch.Options{
		UnitType:           unitType,
		Dimensions:         params.dimensions,
		IncludeNonstandard: params.includeNonstandard,
		Limit:              params.limit,
		Concurrency:        params.concurrency,
		ProgressInterval:   params.progressInterval,
	})
	if err != nil {
		return err
	}

	out, err := os.Create(params.outputPath)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer out.Close()

	if err := report.WriteBatchCSV(out, rep); err != nil {
		return err
	}

	cmd.Printf("Finished run %s: successes=%d failures=%d. Results saved to %s\n",
		rep.RunID, rep.Successes, rep.Failures, params.outputPath)
	return nil
}
