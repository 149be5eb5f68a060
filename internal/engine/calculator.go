package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/SharodX/keymark-heat-pumps/internal/climate"
	"github.com/SharodX/keymark-heat-pumps/internal/logging"
)

// Seasonal efficiency corrections (EN 14825 formula 14).
const (
	// elecConversionCoeff converts electrical to primary energy.
	elecConversionCoeff = 2.5

	// controlsCorrection is F(1), the temperature-controls correction.
	controlsCorrection = 0.03

	// pumpCorrection is F(2), applied to water/brine source units.
	pumpCorrection = 0.05
)

// labeledPoint pairs a test point with its data-sheet label so the bin
// loop can resolve test-point matches deterministically.
type labeledPoint struct {
	Label string
	TestPoint
}

// Calculator runs the bin method for one unit in one climate. A
// calculator is immutable after construction and safe for concurrent
// use; construct one per configuration.
type Calculator struct {
	cfg       Config
	profile   climate.Profile
	points    []labeledPoint
	defaultCd float64

	// designLoad is the resolved Pdesignh: either supplied or inferred
	// from the bivalent-temperature test point.
	designLoad float64

	copBinTable   *linearTable
	copTable      *linearTable
	capacityTable *linearTable
	cdTable       *linearTable
}

// Option customizes calculator construction.
type Option func(*options)

type options struct {
	registry *climate.Registry
}

// WithRegistry substitutes the climate registry, letting tests inject
// synthetic climates.
func WithRegistry(reg *climate.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// New builds a calculator from cfg. It fails only for configuration
// errors: unknown climate, no test points, or a design load that is
// neither supplied nor inferable from the bivalent temperature.
func New(cfg Config, opts ...Option) (*Calculator, error) {
	o := options{registry: climate.DefaultRegistry()}
	for _, opt := range opts {
		opt(&o)
	}

	profile, err := o.registry.Lookup(cfg.Climate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if len(cfg.TestPoints) == 0 {
		return nil, ErrNoTestPoints
	}

	defaultCd := cfg.DegradationCoeff
	if defaultCd == 0 {
		defaultCd = DefaultDegradationCoeff
	}
	if defaultCd < 0 || defaultCd > 1 {
		return nil, fmt.Errorf("%w: degradation coefficient %v outside (0, 1]", ErrInvalidConfig, cfg.DegradationCoeff)
	}

	points := make([]labeledPoint, 0, len(cfg.TestPoints))
	for label, p := range cfg.TestPoints {
		points = append(points, labeledPoint{Label: label, TestPoint: p})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })

	c := &Calculator{
		cfg:       cfg,
		profile:   profile,
		points:    points,
		defaultCd: defaultCd,
	}

	if cfg.DesignLoad != nil {
		c.designLoad = *cfg.DesignLoad
	} else if err := c.inferDesignLoad(); err != nil {
		return nil, err
	}

	c.buildInterpolants()
	return c, nil
}

// DesignLoad returns the resolved design heating load Pdesignh in kW.
func (c *Calculator) DesignLoad() float64 { return c.designLoad }

// Profile returns the climate profile the calculator runs against.
func (c *Calculator) Profile() climate.Profile { return c.profile }

// inferDesignLoad derives Pdesignh from the test point declared at the
// bivalent temperature: at Tbiv the declared capacity equals the bin
// heating load by definition, so Pdesignh = Pdh(Tbiv) / pl(Tbiv).
func (c *Calculator) inferDesignLoad() error {
	if c.cfg.BivalentTemp == nil {
		return ErrDesignLoadRequired
	}
	tbiv := *c.cfg.BivalentTemp

	pl := (tbiv - referenceTemp) / (c.profile.DesignTemp - referenceTemp)
	if math.Abs(pl) < tempTolerance {
		return fmt.Errorf("%w: part-load ratio at bivalent temperature %.1f is zero", ErrDesignLoadInfer, tbiv)
	}

	for _, p := range c.points {
		if math.Abs(p.Temperature-tbiv) < tempTolerance {
			c.designLoad = p.Capacity / pl
			return nil
		}
	}
	return fmt.Errorf("%w: no test point at bivalent temperature %.1f", ErrDesignLoadInfer, tbiv)
}

// matchPoint returns the first test point (in label order) declared at
// the given temperature, or nil.
func (c *Calculator) matchPoint(temp float64) *labeledPoint {
	for i := range c.points {
		if math.Abs(c.points[i].Temperature-temp) < tempTolerance {
			return &c.points[i]
		}
	}
	return nil
}

// Calculate runs the bin method and derives the seasonal metrics. It is
// a pure function of the construction inputs and never fails: degenerate
// numeric conditions contribute zero energy instead of raising.
func (c *Calculator) Calculate(ctx context.Context) (SeasonalMetrics, BinTable) {
	log := logging.FromContext(ctx)
	start := time.Now()

	log.Debug().
		Str("component", "engine").
		Str("operation", "calculate").
		Str("climate", string(c.profile.Zone)).
		Float64("design_load_kw", c.designLoad).
		Int("test_points", len(c.points)).
		Msg("starting seasonal calculation")

	var table BinTable
	for _, bin := range c.profile.Bins {
		row := c.computeBin(bin)
		table.Rows = append(table.Rows, row)
		table.Total.Hours += row.Hours
		table.Total.HeatingDemand += row.HeatingDemand
		table.Total.SupplementaryEnergy += row.SupplementaryEnergy
		table.Total.ActiveEnergy += row.ActiveEnergy
	}

	metrics := c.deriveMetrics(table.Total)

	log.Debug().
		Str("component", "engine").
		Str("operation", "calculate").
		Float64("scop", metrics.SCOP).
		Float64("scop_on", metrics.SCOPOn).
		Int64("duration_us", time.Since(start).Microseconds()).
		Msg("seasonal calculation complete")

	return metrics, table
}

// computeBin evaluates one climate bin.
func (c *Calculator) computeBin(bin climate.Bin) BinRow {
	row := BinRow{
		Index:             bin.Index,
		Temperature:       bin.Temperature,
		Hours:             bin.Hours,
		DeclaredCapacity:  math.NaN(),
		DeclaredCOP:       math.NaN(),
		DegradationCoeff:  math.NaN(),
		CapacityRatio:     math.NaN(),
		CyclingCorrection: math.NaN(),
	}

	row.PartLoadRatio = c.PartLoadRatio(bin.Temperature)
	row.HeatingLoad = c.HeatingLoad(bin.Temperature)
	row.COPBin = c.COPBinAt(bin.Temperature)

	// Bins that coincide with a declared test point surface that point's
	// raw values, and the COPbin is recomputed from the point's own
	// degradation coefficient so the displayed CR and CC are consistent.
	if p := c.matchPoint(bin.Temperature); p != nil {
		row.DeclaredCapacity = p.Capacity
		row.DeclaredCOP = p.COP
		if p.DegradationCoeff != nil {
			row.DegradationCoeff = *p.DegradationCoeff
		}
		res := binCOP(p.COP, p.Capacity, row.HeatingLoad, c.effectiveCd(p.TestPoint))
		row.COPBin = res.COPBin
		row.CapacityRatio = res.CapacityRatio
		row.CyclingCorrection = res.CyclingCorrection
	}

	// No supplementary heat at or above the bivalent temperature; that
	// is the contractual definition of Tbiv. Below it the backup heater
	// covers the capacity deficit.
	if c.cfg.BivalentTemp != nil && bin.Temperature >= *c.cfg.BivalentTemp {
		row.SupplementaryCapacity = 0
	} else {
		row.SupplementaryCapacity = math.Max(0, row.HeatingLoad-c.CapacityAt(bin.Temperature))
	}

	hours := float64(bin.Hours)
	row.HeatingDemand = hours * row.HeatingLoad
	row.SupplementaryEnergy = hours * row.SupplementaryCapacity

	// The supplementary portion is consumed at unit efficiency; the heat
	// pump portion at COPbin. A non-positive COPbin contributes zero.
	if row.SupplementaryCapacity > 0 {
		if row.COPBin > 0 {
			row.ActiveEnergy = hours*(row.HeatingLoad-row.SupplementaryCapacity)/row.COPBin + hours*row.SupplementaryCapacity
		} else {
			row.ActiveEnergy = hours * row.SupplementaryCapacity
		}
	} else if row.COPBin > 0 {
		row.ActiveEnergy = hours * row.HeatingLoad / row.COPBin
	}

	return row
}

// deriveMetrics derives the seasonal metrics from the accumulated energy
// totals (EN 14825 formulas 14, 18 and 19).
func (c *Calculator) deriveMetrics(totals TableTotals) SeasonalMetrics {
	hpEnergy := totals.ActiveEnergy - totals.SupplementaryEnergy

	offModeEnergy := float64(c.profile.OffHours)*c.cfg.OffPower +
		float64(c.profile.ThermostatOffHours)*c.cfg.ThermostatOffPower +
		float64(c.profile.StandbyHours)*c.cfg.StandbyPower +
		float64(c.profile.CrankcaseHours)*c.cfg.CrankcasePower

	totalEnergy := totals.ActiveEnergy + offModeEnergy

	m := SeasonalMetrics{
		HeatingDemand:       totals.HeatingDemand,
		HeatPumpEnergy:      hpEnergy,
		ActiveEnergy:        totals.ActiveEnergy,
		SupplementaryEnergy: totals.SupplementaryEnergy,
		OffModeEnergy:       offModeEnergy,
		TotalEnergy:         totalEnergy,
		F1:                  controlsCorrection,
		OffHours:            c.profile.OffHours,
		ThermostatOffHours:  c.profile.ThermostatOffHours,
		StandbyHours:        c.profile.StandbyHours,
		CrankcaseHours:      c.profile.CrankcaseHours,
		OffPower:            c.cfg.OffPower,
		ThermostatOffPower:  c.cfg.ThermostatOffPower,
		StandbyPower:        c.cfg.StandbyPower,
		CrankcasePower:      c.cfg.CrankcasePower,
	}

	if hpEnergy > 0 {
		m.SCOPNet = totals.HeatingDemand / hpEnergy
	}
	if totals.ActiveEnergy > 0 {
		m.SCOPOn = totals.HeatingDemand / totals.ActiveEnergy
	}
	if totalEnergy > 0 {
		m.SCOP = totals.HeatingDemand / totalEnergy
	}
	if sum := hpEnergy + totals.SupplementaryEnergy + offModeEnergy; sum > 0 {
		m.SCOPFromNet = totals.HeatingDemand / sum
	}

	if c.cfg.UnitType == UnitWaterBrine {
		m.F2 = pumpCorrection
	}
	m.SeasonalEfficiencyPct = ((1/elecConversionCoeff)*m.SCOP - (m.F1 + m.F2)) * 100

	return m
}
