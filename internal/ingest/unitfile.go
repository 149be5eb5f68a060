package ingest

import (
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/SharodX/keymark-heat-pumps/internal/climate"
	"github.com/SharodX/keymark-heat-pumps/internal/engine"
)

// UnitFile is the YAML input document for a single-unit calculation.
type UnitFile struct {
	Climate          string   `yaml:"climate" validate:"required,oneof=Average Warmer Colder"`
	DesignLoadKW     *float64 `yaml:"design_load_kw" validate:"omitempty,gt=0"`
	BivalentTempC    *float64 `yaml:"bivalent_temp_c"`
	OperatingLimitC  *float64 `yaml:"operating_limit_c"`
	DegradationCoeff float64  `yaml:"degradation_coeff" validate:"omitempty,gt=0,lte=1"`
	UnitType         string   `yaml:"unit_type" validate:"omitempty,oneof=air water_brine"`

	StandbyPowerKW struct {
		Off           float64 `yaml:"off" validate:"gte=0"`
		ThermostatOff float64 `yaml:"thermostat_off" validate:"gte=0"`
		Standby       float64 `yaml:"standby" validate:"gte=0"`
		Crankcase     float64 `yaml:"crankcase" validate:"gte=0"`
	} `yaml:"standby_power_kw"`

	TestPoints map[string]UnitTestPoint `yaml:"test_points" validate:"required,min=1,dive"`
}

// UnitTestPoint is one declared measurement in a unit file.
type UnitTestPoint struct {
	TemperatureC     float64  `yaml:"temperature_c"`
	CapacityKW       float64  `yaml:"capacity_kw" validate:"gte=0"`
	COP              float64  `yaml:"cop" validate:"gte=0"`
	DegradationCoeff *float64 `yaml:"degradation_coeff" validate:"omitempty,gt=0,lte=1"`
}

// LoadUnitFile parses and validates a YAML unit document.
func LoadUnitFile(r io.Reader) (*UnitFile, error) {
	var unit UnitFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&unit); err != nil {
		return nil, fmt.Errorf("parsing unit file: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&unit); err != nil {
		return nil, fmt.Errorf("validating unit file: %w", err)
	}

	return &unit, nil
}

// EngineConfig converts the document into an engine configuration.
func (u *UnitFile) EngineConfig() engine.Config {
	points := make(map[string]engine.TestPoint, len(u.TestPoints))
	for label, p := range u.TestPoints {
		points[label] = engine.TestPoint{
			Temperature:      p.TemperatureC,
			Capacity:         p.CapacityKW,
			COP:              p.COP,
			DegradationCoeff: p.DegradationCoeff,
		}
	}

	unitType := engine.UnitAir
	if u.UnitType == string(engine.UnitWaterBrine) {
		unitType = engine.UnitWaterBrine
	}

	return engine.Config{
		Climate:            climate.Zone(u.Climate),
		DesignLoad:         u.DesignLoadKW,
		TestPoints:         points,
		BivalentTemp:       u.BivalentTempC,
		OperatingLimit:     u.OperatingLimitC,
		DegradationCoeff:   u.DegradationCoeff,
		OffPower:           u.StandbyPowerKW.Off,
		ThermostatOffPower: u.StandbyPowerKW.ThermostatOff,
		StandbyPower:       u.StandbyPowerKW.Standby,
		CrankcasePower:     u.StandbyPowerKW.Crankcase,
		UnitType:           unitType,
	}
}
