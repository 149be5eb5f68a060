package ingest

import "github.com/SharodX/keymark-heat-pumps/internal/climate"

// EN 14825 measurement codes used by the calculation. The corpus stores
// every declared value under one of these identifiers; the engine itself
// is agnostic to the naming and only this package knows the mapping.
const (
	CodeReportedEfficiency = "EN14825_001" // reported eta_s (%)
	CodeRatedLoad          = "EN14825_002" // Prated / Pdesignh (kW)
	CodeReportedSCOP       = "EN14825_003"
	CodeBivalentTemp       = "EN14825_004" // Tbiv (degC)
	CodeOperatingLimit     = "EN14825_005" // TOL (degC)

	CodeCapacityMinus7 = "EN14825_008" // Pdh at -7 degC (kW)
	CodeCOPMinus7      = "EN14825_009"
	CodeCapacityPlus2  = "EN14825_010"
	CodeCOPPlus2       = "EN14825_011"
	CodeCapacityPlus7  = "EN14825_012"
	CodeCOPPlus7       = "EN14825_013"
	CodeCapacityPlus12 = "EN14825_014"
	CodeCOPPlus12      = "EN14825_015"
	CodeCapacityTbiv   = "EN14825_016"
	CodeCOPTbiv        = "EN14825_017"
	CodeCapacityTOL    = "EN14825_018"
	CodeCOPTOL         = "EN14825_019"

	CodeCdTOL = "EN14825_021"

	CodeOffPower           = "EN14825_023" // POFF (W)
	CodeThermostatOffPower = "EN14825_024" // PTO (W)
	CodeStandbyPower       = "EN14825_025" // PSB (W)
	CodeCrankcasePower     = "EN14825_026" // PCK (W)

	CodeReportedAnnualEnergy = "EN14825_029" // reported Qhe (kWh/year)

	CodeCapacityMinus15 = "EN14825_044"
	CodeCOPMinus15      = "EN14825_045"

	CodeCdMinus7  = "EN14825_047"
	CodeCdPlus2   = "EN14825_048"
	CodeCdPlus7   = "EN14825_049"
	CodeCdPlus12  = "EN14825_050"
	CodeCdMinus15 = "EN14825_051"
)

// baseRequiredCodes are the codes a combo must carry before the
// calculation is attempted.
var baseRequiredCodes = []string{
	CodeRatedLoad,
	CodeReportedSCOP,
	CodeBivalentTemp,
	CodeOperatingLimit,
	CodeCapacityMinus7, CodeCOPMinus7,
	CodeCapacityPlus2, CodeCOPPlus2,
	CodeCapacityPlus7, CodeCOPPlus7,
	CodeCapacityPlus12, CodeCOPPlus12,
	CodeCapacityTbiv, CodeCOPTbiv,
	CodeCapacityTOL, CodeCOPTOL,
	CodeOffPower, CodeThermostatOffPower, CodeStandbyPower, CodeCrankcasePower,
	CodeReportedAnnualEnergy,
}

// optionalCodes enrich the calculation when present but never block it.
var optionalCodes = []string{
	CodeReportedEfficiency,
	CodeCdTOL,
	CodeCdMinus7, CodeCdPlus2, CodeCdPlus7, CodeCdPlus12, CodeCdMinus15,
	CodeCapacityMinus15, CodeCOPMinus15,
}

// RequiredCodes returns the measurement codes a combo needs for the
// given climate. The Warmer climate has no bins below +2 degC, so its
// data sheets omit the -7 degC pair.
func RequiredCodes(zone climate.Zone) []string {
	codes := make([]string, 0, len(baseRequiredCodes))
	for _, code := range baseRequiredCodes {
		if zone == climate.ZoneWarmer && (code == CodeCapacityMinus7 || code == CodeCOPMinus7) {
			continue
		}
		codes = append(codes, code)
	}
	return codes
}

// OptionalCodes returns the codes that enrich a calculation when present.
func OptionalCodes() []string {
	out := make([]string, len(optionalCodes))
	copy(out, optionalCodes)
	return out
}
