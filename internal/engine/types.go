// Package engine implements the EN 14825:2018 bin method for seasonal
// space-heating performance of heat pumps. Given a handful of declared
// test-point measurements and a reference climate, it reconstructs the
// annual energy balance bin by bin and derives SCOP, SCOPon, SCOPnet and
// the seasonal space-heating efficiency.
package engine

import (
	"errors"

	"github.com/SharodX/keymark-heat-pumps/internal/climate"
)

// UnitType selects the heat source medium, which affects the F(2)
// correction in the seasonal efficiency formula.
type UnitType string

// Supported unit types.
const (
	UnitAir        UnitType = "air"
	UnitWaterBrine UnitType = "water_brine"
)

// DefaultDegradationCoeff is the degradation coefficient assumed when a
// unit declares none (EN 14825 table default).
const DefaultDegradationCoeff = 0.9

// tempTolerance is the tolerance used when matching bin temperatures
// against declared test-point temperatures.
const tempTolerance = 1e-6

// Configuration errors raised at construction or inference time. The
// calculation itself never fails for a well-formed configuration.
var (
	ErrNoTestPoints       = errors.New("no test points supplied")
	ErrDesignLoadRequired = errors.New("design load missing and bivalent temperature not set")
	ErrDesignLoadInfer    = errors.New("cannot infer design load")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// TestPoint is one declared steady-state measurement from the unit's
// certification data sheet.
type TestPoint struct {
	// Temperature is the outdoor dry-bulb temperature Tj in degC.
	Temperature float64

	// Capacity is the declared heating capacity Pdh in kW.
	Capacity float64

	// COP is the declared coefficient of performance COPd.
	COP float64

	// DegradationCoeff is the point-specific degradation coefficient.
	// Nil means the engine-wide default applies.
	DegradationCoeff *float64
}

// Config is the caller-supplied input for one seasonal calculation.
type Config struct {
	// Climate names the reference climate zone.
	Climate climate.Zone

	// DesignLoad is the design heating load Pdesignh in kW. Nil requests
	// inference from the test point at the bivalent temperature.
	DesignLoad *float64

	// TestPoints maps a label (conventionally A through F plus optional
	// extras) to a declared measurement.
	TestPoints map[string]TestPoint

	// BivalentTemp is the bivalent temperature Tbiv in degC. Below it a
	// supplementary heater may engage; at or above it none is allowed.
	BivalentTemp *float64

	// OperatingLimit is the operating limit temperature TOL in degC.
	OperatingLimit *float64

	// DegradationCoeff is the default degradation coefficient Cd applied
	// to test points that carry none. Zero means DefaultDegradationCoeff.
	DegradationCoeff float64

	// OffPower, ThermostatOffPower, StandbyPower and CrankcasePower are
	// the standby electrical powers POFF, PTO, PSB and PCK in kW.
	OffPower           float64
	ThermostatOffPower float64
	StandbyPower       float64
	CrankcasePower     float64

	// UnitType selects the F(2) efficiency correction. Empty means air.
	UnitType UnitType
}

// BinRow is the computed result for one climate bin. Declared values
// (Capacity, COP, CapacityRatio, CyclingCorrection, DegradationCoeff)
// are NaN unless the bin temperature coincides with a test point.
type BinRow struct {
	// Index, Temperature and Hours echo the climate bin.
	Index       int
	Temperature float64
	Hours       int

	// PartLoadRatio is pl(Tj); may be negative or exceed 1 at extreme
	// bins, which the linear load model allows.
	PartLoadRatio float64

	// HeatingLoad is Ph(Tj) in kW.
	HeatingLoad float64

	// DeclaredCapacity and DeclaredCOP surface the matching test point's
	// raw Pdh and COPd for the output table.
	DeclaredCapacity float64
	DeclaredCOP      float64

	// DegradationCoeff is the matching point's explicit Cd, if any.
	DegradationCoeff float64

	// CapacityRatio and CyclingCorrection are the CR and CC terms of the
	// cycling model at a matched test point.
	CapacityRatio     float64
	CyclingCorrection float64

	// COPBin is the cycling-corrected COP used in the energy balance.
	COPBin float64

	// SupplementaryCapacity is the electric backup heater capacity
	// elbu(Tj) in kW.
	SupplementaryCapacity float64

	// HeatingDemand, SupplementaryEnergy and ActiveEnergy are the annual
	// energy terms hj*Ph, hj*elbu and the bin electrical energy, in kWh.
	HeatingDemand       float64
	SupplementaryEnergy float64
	ActiveEnergy        float64
}

// TableTotals is the synthesized TOTAL row of the bin table.
type TableTotals struct {
	Hours               int
	HeatingDemand       float64
	SupplementaryEnergy float64
	ActiveEnergy        float64
}

// BinTable is the per-bin breakdown returned alongside the metrics.
type BinTable struct {
	Rows  []BinRow
	Total TableTotals
}

// SeasonalMetrics is the standardized output of one calculation, with
// the underlying energy totals and echoed inputs for traceability.
type SeasonalMetrics struct {
	// SCOPNet excludes supplementary heater energy (heat pump only).
	SCOPNet float64

	// SCOPOn is the active-mode SCOP (EN 14825 formula 19).
	SCOPOn float64

	// SCOP includes off-mode consumption (formula 18).
	SCOP float64

	// SCOPFromNet re-derives SCOP from the component energies as a
	// cross-check; it must agree with SCOP within floating point noise.
	SCOPFromNet float64

	// SeasonalEfficiencyPct is the seasonal space-heating efficiency
	// eta_s,h (formula 14) as a percentage.
	SeasonalEfficiencyPct float64

	// Energy totals in kWh/year.
	HeatingDemand       float64 // QH
	HeatPumpEnergy      float64 // active energy minus supplementary
	ActiveEnergy        float64 // heat pump plus supplementary
	SupplementaryEnergy float64 // QSUP
	OffModeEnergy       float64
	TotalEnergy         float64 // active plus off-mode

	// F1 and F2 are the efficiency corrections applied in formula 14.
	F1 float64
	F2 float64

	// Echoed climate hour counts and configured standby powers.
	OffHours           int
	ThermostatOffHours int
	StandbyHours       int
	CrankcaseHours     int
	OffPower           float64
	ThermostatOffPower float64
	StandbyPower       float64
	CrankcasePower     float64
}
