// Package batch runs the seasonal performance calculation across a
// measurement corpus, one variant/dimension combo at a time. Combos are
// independent, so the run parallelizes freely; a failing combo is
// recorded as a result row and never aborts the run.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/SharodX/keymark-heat-pumps/internal/climate"
	"github.com/SharodX/keymark-heat-pumps/internal/engine"
	"github.com/SharodX/keymark-heat-pumps/internal/ingest"
	"github.com/SharodX/keymark-heat-pumps/internal/logging"
)

// Row status values.
const (
	StatusOK          = "ok"
	StatusMissingData = "missing-data"
	StatusError       = "error"
)

// DefaultConcurrency bounds the worker pool when the caller does not.
const DefaultConcurrency = 4

// Options configures a batch run.
type Options struct {
	// UnitType is passed to every calculation (affects the eta_s
	// correction only).
	UnitType engine.UnitType

	// Dimensions restricts the run to exact dimension strings. Empty
	// means all standard space-heating dimensions.
	Dimensions []string

	// IncludeNonstandard also processes dimensions outside the
	// [456]_[123]_0_0 pattern.
	IncludeNonstandard bool

	// Limit caps the number of combos processed; zero means no cap.
	Limit int

	// Concurrency bounds the worker pool; zero means DefaultConcurrency.
	Concurrency int

	// ProgressInterval logs progress every N combos; zero disables.
	ProgressInterval int

	// Registry overrides the climate registry; nil means the default.
	Registry *climate.Registry
}

// Row is the outcome for one combo. Pointer fields are nil when the
// underlying reported value is absent or a delta is undefined.
type Row struct {
	Manufacturer     string
	Model            string
	Variant          string
	Dimension        string
	ApplicationLabel string
	ClimateLabel     string
	UnitType         string

	ReportedDesignLoadKW *float64
	InferredDesignLoadKW *float64
	BivalentTempC        *float64
	OperatingLimitC      *float64

	OffPowerKW           *float64
	ThermostatOffPowerKW *float64
	StandbyPowerKW       *float64
	CrankcasePowerKW     *float64

	ReportedSCOP   *float64
	CalculatedSCOP *float64
	DeltaSCOPPct   *float64

	ReportedEtaPct   *float64
	CalculatedEtaPct *float64
	DeltaEtaPct      *float64

	ReportedAnnualEnergyKWH   *float64
	CalculatedActiveEnergyKWH *float64
	DeltaAnnualEnergyPct      *float64

	SCOPNet                *float64
	SCOPOn                 *float64
	HeatingDemandKWH       *float64
	SupplementaryEnergyKWH *float64
	OffModeEnergyKWH       *float64

	MissingRequiredCodes []string
	MissingOptionalCodes []string

	Status        string
	StatusMessage string
	Timestamp     time.Time
}

// Report is the result of one batch run.
type Report struct {
	// RunID is a ULID minted at run start, echoed into exports so result
	// files from different runs stay distinguishable.
	RunID string

	Rows      []Row
	Successes int
	Failures  int
	Elapsed   time.Duration
}

// Run calculates every selected combo and returns the per-combo rows in
// corpus order.
func Run(ctx context.Context, combos []ingest.ComboMeasurements, opts Options) (*Report, error) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "batch")
	start := time.Now()

	runID := ulid.Make().String()

	selected := filterCombos(combos, opts)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no variant/dimension combinations matched the filters")
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	log.Info().
		Str("run_id", runID).
		Int("combos", len(selected)).
		Int("concurrency", concurrency).
		Msg("starting batch run")

	rows := make([]Row, len(selected))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, cm := range selected {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			rows[i] = processCombo(gctx, cm, opts)

			n := done.Add(1)
			if opts.ProgressInterval > 0 && (n%int64(opts.ProgressInterval) == 0 || n == int64(len(selected))) {
				log.Info().
					Str("run_id", runID).
					Int64("processed", n).
					Int("total", len(selected)).
					Msg("batch progress")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{RunID: runID, Rows: rows, Elapsed: time.Since(start)}
	for _, row := range rows {
		if row.Status == StatusOK {
			report.Successes++
		} else {
			report.Failures++
		}
	}

	log.Info().
		Str("run_id", runID).
		Int("successes", report.Successes).
		Int("failures", report.Failures).
		Dur("elapsed", report.Elapsed).
		Msg("batch run complete")

	return report, nil
}

// filterCombos applies the dimension filters and the limit.
func filterCombos(combos []ingest.ComboMeasurements, opts Options) []ingest.ComboMeasurements {
	exact := make(map[string]bool, len(opts.Dimensions))
	for _, d := range opts.Dimensions {
		exact[d] = true
	}

	var out []ingest.ComboMeasurements
	for _, cm := range combos {
		switch {
		case len(exact) > 0:
			if !exact[cm.Combo.Dimension.String()] {
				continue
			}
		case !opts.IncludeNonstandard && !cm.Combo.Dimension.Standard():
			continue
		}
		out = append(out, cm)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}

// processCombo runs one combo end to end, folding any failure into the
// row status.
func processCombo(ctx context.Context, cm ingest.ComboMeasurements, opts Options) Row {
	row := Row{
		Manufacturer:     cm.Combo.Manufacturer,
		Model:            cm.Combo.Model,
		Variant:          cm.Combo.Variant,
		Dimension:        cm.Combo.Dimension.String(),
		ApplicationLabel: cm.Combo.Dimension.ApplicationLabel(),
		ClimateLabel:     "Unknown",
		UnitType:         string(opts.UnitType),
		Timestamp:        time.Now().UTC(),
	}

	zone, ok := cm.Combo.Dimension.Zone()
	if !ok {
		row.Status = StatusError
		row.StatusMessage = fmt.Sprintf("unsupported climate digit in dimension %s", row.Dimension)
		return row
	}
	row.ClimateLabel = string(zone)

	row.MissingRequiredCodes = cm.Measurements.MissingRequired(zone)
	row.MissingOptionalCodes = cm.Measurements.MissingOptional()
	if len(row.MissingRequiredCodes) > 0 {
		row.Status = StatusMissingData
		row.StatusMessage = "missing required EN codes"
		return row
	}

	cfg, err := cm.Measurements.BuildConfig(zone, opts.UnitType)
	if err != nil {
		row.Status = StatusError
		row.StatusMessage = err.Error()
		return row
	}

	calcOpts := []engine.Option{}
	if opts.Registry != nil {
		calcOpts = append(calcOpts, engine.WithRegistry(opts.Registry))
	}
	calc, err := engine.New(cfg, calcOpts...)
	if err != nil {
		row.Status = StatusError
		row.StatusMessage = err.Error()
		return row
	}

	metrics, _ := calc.Calculate(ctx)
	fillRow(&row, cm.Measurements, cfg, calc, metrics)
	row.Status = StatusOK
	return row
}

// fillRow copies the calculated metrics and the reported reference
// values into the result row.
func fillRow(row *Row, m ingest.MeasurementSet, cfg engine.Config, calc *engine.Calculator, metrics engine.SeasonalMetrics) {
	row.ReportedDesignLoadKW = lookup(m, ingest.CodeRatedLoad)
	row.InferredDesignLoadKW = ptr(calc.DesignLoad())
	row.BivalentTempC = cfg.BivalentTemp
	row.OperatingLimitC = cfg.OperatingLimit
	row.OffPowerKW = ptr(cfg.OffPower)
	row.ThermostatOffPowerKW = ptr(cfg.ThermostatOffPower)
	row.StandbyPowerKW = ptr(cfg.StandbyPower)
	row.CrankcasePowerKW = ptr(cfg.CrankcasePower)

	row.ReportedSCOP = lookup(m, ingest.CodeReportedSCOP)
	row.CalculatedSCOP = ptr(metrics.SCOP)
	row.DeltaSCOPPct = percentDelta(metrics.SCOP, row.ReportedSCOP)

	row.ReportedEtaPct = lookup(m, ingest.CodeReportedEfficiency)
	row.CalculatedEtaPct = ptr(metrics.SeasonalEfficiencyPct)
	row.DeltaEtaPct = percentDelta(metrics.SeasonalEfficiencyPct, row.ReportedEtaPct)

	row.ReportedAnnualEnergyKWH = lookup(m, ingest.CodeReportedAnnualEnergy)
	row.CalculatedActiveEnergyKWH = ptr(metrics.ActiveEnergy)
	row.DeltaAnnualEnergyPct = percentDelta(metrics.ActiveEnergy, row.ReportedAnnualEnergyKWH)

	row.SCOPNet = ptr(metrics.SCOPNet)
	row.SCOPOn = ptr(metrics.SCOPOn)
	row.HeatingDemandKWH = ptr(metrics.HeatingDemand)
	row.SupplementaryEnergyKWH = ptr(metrics.SupplementaryEnergy)
	row.OffModeEnergyKWH = ptr(metrics.OffModeEnergy)
}

// percentDelta returns (calculated - reported) / reported * 100, or nil
// when the reported value is absent or zero.
func percentDelta(calculated float64, reported *float64) *float64 {
	if reported == nil || *reported == 0 {
		return nil
	}
	return ptr((calculated - *reported) / *reported * 100)
}

func lookup(m ingest.MeasurementSet, code string) *float64 {
	if v, ok := m.Value(code); ok {
		return &v
	}
	return nil
}

func ptr(v float64) *float64 { return &v }
