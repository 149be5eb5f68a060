package ingest

import (
	"fmt"

	"github.com/SharodX/keymark-heat-pumps/internal/climate"
	"github.com/SharodX/keymark-heat-pumps/internal/engine"
)

// wattsPerKilowatt converts the corpus standby powers (declared in W)
// to the kW the engine expects.
const wattsPerKilowatt = 1000.0

// Combo identifies one variant/dimension combination in the corpus.
type Combo struct {
	Manufacturer string
	Model        string
	Variant      string
	Dimension    Dimension
}

// MeasurementSet holds the EN-code keyed values declared for one combo.
type MeasurementSet map[string]float64

// Value returns the value for a code and whether it is present.
func (m MeasurementSet) Value(code string) (float64, bool) {
	v, ok := m[code]
	return v, ok
}

// valueOr returns the value for a code, or fallback when absent.
func (m MeasurementSet) valueOr(code string, fallback float64) float64 {
	if v, ok := m[code]; ok {
		return v
	}
	return fallback
}

// MissingRequired lists the required codes (for the given climate) the
// set lacks, in registry order.
func (m MeasurementSet) MissingRequired(zone climate.Zone) []string {
	var missing []string
	for _, code := range RequiredCodes(zone) {
		if _, ok := m[code]; !ok {
			missing = append(missing, code)
		}
	}
	return missing
}

// MissingOptional lists absent optional codes, in registry order.
func (m MeasurementSet) MissingOptional() []string {
	var missing []string
	for _, code := range OptionalCodes() {
		if _, ok := m[code]; !ok {
			missing = append(missing, code)
		}
	}
	return missing
}

// BuildConfig assembles an engine configuration from a measurement set.
// The design load is left for the engine to infer from the bivalent
// point, mirroring certification practice where the declared Prated is
// kept for comparison rather than fed back into the calculation.
//
// Callers must check MissingRequired first; BuildConfig only validates
// the structural minimum (Tbiv, TOL and their test points).
func (m MeasurementSet) BuildConfig(zone climate.Zone, unitType engine.UnitType) (engine.Config, error) {
	tbiv, ok := m[CodeBivalentTemp]
	if !ok {
		return engine.Config{}, fmt.Errorf("measurement set has no bivalent temperature (%s)", CodeBivalentTemp)
	}
	tol, ok := m[CodeOperatingLimit]
	if !ok {
		return engine.Config{}, fmt.Errorf("measurement set has no operating limit (%s)", CodeOperatingLimit)
	}

	points := make(map[string]engine.TestPoint)

	addPoint := func(label string, temp float64, capCode, copCode, cdCode string) {
		capacity, haveCap := m[capCode]
		cop, haveCOP := m[copCode]
		if !haveCap || !haveCOP {
			return
		}
		p := engine.TestPoint{Temperature: temp, Capacity: capacity, COP: cop}
		if cdCode != "" {
			cd := m.valueOr(cdCode, engine.DefaultDegradationCoeff)
			p.DegradationCoeff = &cd
		}
		points[label] = p
	}

	addPoint("A", -7, CodeCapacityMinus7, CodeCOPMinus7, CodeCdMinus7)
	addPoint("B", 2, CodeCapacityPlus2, CodeCOPPlus2, CodeCdPlus2)
	addPoint("C", 7, CodeCapacityPlus7, CodeCOPPlus7, CodeCdPlus7)
	addPoint("D", 12, CodeCapacityPlus12, CodeCOPPlus12, CodeCdPlus12)
	addPoint("E", tol, CodeCapacityTOL, CodeCOPTOL, CodeCdTOL)

	// The Tbiv point has no dedicated Cd code; the engine interpolates.
	addPoint("F", tbiv, CodeCapacityTbiv, CodeCOPTbiv, "")

	// Optional -15 degC point, mainly declared for the Colder climate.
	addPoint("G", -15, CodeCapacityMinus15, CodeCOPMinus15, CodeCdMinus15)

	if len(points) == 0 {
		return engine.Config{}, fmt.Errorf("measurement set has no usable test points")
	}

	return engine.Config{
		Climate:            zone,
		TestPoints:         points,
		BivalentTemp:       &tbiv,
		OperatingLimit:     &tol,
		DegradationCoeff:   engine.DefaultDegradationCoeff,
		OffPower:           m.valueOr(CodeOffPower, 0) / wattsPerKilowatt,
		ThermostatOffPower: m.valueOr(CodeThermostatOffPower, 0) / wattsPerKilowatt,
		StandbyPower:       m.valueOr(CodeStandbyPower, 0) / wattsPerKilowatt,
		CrankcasePower:     m.valueOr(CodeCrankcasePower, 0) / wattsPerKilowatt,
		UnitType:           unitType,
	}, nil
}
