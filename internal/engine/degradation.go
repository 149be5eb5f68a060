package engine

import "math"

// crTolerance guards the capacity-ratio division in the cycling model.
const crTolerance = 1e-9

// cyclingResult carries the cycling-corrected COP for a test point plus
// the intermediate terms surfaced in the output table.
type cyclingResult struct {
	COPBin            float64
	CapacityRatio     float64
	CyclingCorrection float64
}

// binCOP converts a declared steady-state COP into the cycling-corrected
// bin COP for one test point.
//
// Branches, in order:
//   - declared capacity exactly zero: COPbin 0 (degenerate data appears
//     in real certification corpora; the standard leaves this undefined)
//   - Cd == 1: fully modulating equipment, no cycling loss
//   - capacity below load: the unit runs continuously, no cycling
//   - otherwise CC = (CR*Cd + (1-Cd)) / CR and COPbin = COPd / CC
//
// The function operates only at declared test-point temperatures; bin
// temperatures in between get an interpolated COPbin instead.
func binCOP(declaredCOP, capacity, load, degradationCoeff float64) cyclingResult {
	res := cyclingResult{
		CapacityRatio:     math.NaN(),
		CyclingCorrection: math.NaN(),
	}

	if capacity == 0 {
		return res
	}

	res.CapacityRatio = load / capacity

	if math.Abs(degradationCoeff-1.0) < crTolerance {
		res.COPBin = declaredCOP
		res.CyclingCorrection = 1.0
		return res
	}

	if capacity < load {
		res.COPBin = declaredCOP
		res.CyclingCorrection = 1.0
		return res
	}

	if math.Abs(res.CapacityRatio) < crTolerance {
		res.COPBin = declaredCOP
		res.CyclingCorrection = 1.0
		return res
	}

	res.CyclingCorrection = (res.CapacityRatio*degradationCoeff + (1 - degradationCoeff)) / res.CapacityRatio
	res.COPBin = declaredCOP / res.CyclingCorrection
	return res
}
