package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SharodX/keymark-heat-pumps/internal/climate"
)

func ptrFloat(v float64) *float64 { return &v }

// annexHConfig returns the worked example from EN 14825:2018 Annex H:
// an air-to-water unit in the average climate with six declared points.
func annexHConfig() Config {
	return Config{
		Climate:    climate.ZoneAverage,
		DesignLoad: ptrFloat(11.46),
		TestPoints: map[string]TestPoint{
			"A": {Temperature: -7, Capacity: 9.55, COP: 3.26},
			"B": {Temperature: 2, Capacity: 11.17, COP: 4.00},
			"C": {Temperature: 7, Capacity: 12.66, COP: 4.91},
			"D": {Temperature: 12, Capacity: 14.3, COP: 5.5},
			"E": {Temperature: -10, Capacity: 7.8, COP: 2.6},
			"F": {Temperature: -6, Capacity: 9.7, COP: 3.3},
		},
		BivalentTemp:     ptrFloat(-6),
		OperatingLimit:   ptrFloat(-10),
		DegradationCoeff: 0.9,
		UnitType:         UnitAir,
	}
}

func TestCalculateAnnexHReference(t *testing.T) {
	calc, err := New(annexHConfig())
	require.NoError(t, err)

	metrics, table := calc.Calculate(context.Background())

	// The published Annex H result is SCOPon = 3.598.
	assert.InDelta(t, 3.598, metrics.SCOPOn, 0.003)
	assert.InDelta(t, 3.59757, metrics.SCOPOn, 1e-4)
	assert.InDelta(t, 3.66482, metrics.SCOPNet, 1e-4)

	assert.InDelta(t, 23671.95, metrics.HeatingDemand, 0.01)
	assert.InDelta(t, 120.733, metrics.SupplementaryEnergy, 0.001)
	assert.InDelta(t, 6579.98, metrics.ActiveEnergy, 0.01)

	// Without standby powers the off-mode term vanishes and SCOP
	// collapses to SCOPon.
	assert.Zero(t, metrics.OffModeEnergy)
	assert.InDelta(t, metrics.SCOPOn, metrics.SCOP, 1e-12)
	assert.InDelta(t, metrics.SCOP, metrics.SCOPFromNet, 1e-9)

	require.Len(t, table.Rows, 26)
	assert.Equal(t, 4910, table.Total.Hours)
}

func TestCalculateWithStandbyPowers(t *testing.T) {
	cfg := annexHConfig()
	cfg.OffPower = 0.015
	cfg.ThermostatOffPower = 0.02
	cfg.StandbyPower = 0.015
	cfg.CrankcasePower = 0.01

	calc, err := New(cfg)
	require.NoError(t, err)

	metrics, _ := calc.Calculate(context.Background())

	profile := calc.Profile()
	wantOffMode := float64(profile.OffHours)*cfg.OffPower +
		float64(profile.ThermostatOffHours)*cfg.ThermostatOffPower +
		float64(profile.StandbyHours)*cfg.StandbyPower +
		float64(profile.CrankcaseHours)*cfg.CrankcasePower

	assert.InDelta(t, wantOffMode, metrics.OffModeEnergy, 1e-9)
	assert.Less(t, metrics.SCOP, metrics.SCOPOn)
	assert.InDelta(t, metrics.SCOP, metrics.SCOPFromNet, 1e-9)
	assert.InDelta(t, (metrics.SCOP/2.5-0.03)*100, metrics.SeasonalEfficiencyPct, 1e-9)
}

func TestSeasonalEfficiencyWaterBrineCorrection(t *testing.T) {
	cfg := annexHConfig()
	cfg.UnitType = UnitWaterBrine

	calc, err := New(cfg)
	require.NoError(t, err)

	metrics, _ := calc.Calculate(context.Background())
	assert.Equal(t, 0.05, metrics.F2)
	assert.InDelta(t, (metrics.SCOP/2.5-0.08)*100, metrics.SeasonalEfficiencyPct, 1e-9)
}

func TestDesignLoadInference(t *testing.T) {
	cfg := annexHConfig()
	cfg.DesignLoad = nil

	calc, err := New(cfg)
	require.NoError(t, err)

	// Pdh(Tbiv) / pl(Tbiv) = 9.7 / (22/26)
	assert.InDelta(t, 11.46364, calc.DesignLoad(), 1e-5)

	metrics, _ := calc.Calculate(context.Background())
	assert.InDelta(t, 3.598, metrics.SCOPOn, 0.003)
}

func TestDesignLoadInferenceErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name: "no bivalent temperature",
			mutate: func(cfg *Config) {
				cfg.BivalentTemp = nil
			},
			wantErr: ErrDesignLoadRequired,
		},
		{
			name: "no test point at bivalent temperature",
			mutate: func(cfg *Config) {
				cfg.BivalentTemp = ptrFloat(-5)
			},
			wantErr: ErrDesignLoadInfer,
		},
		{
			name: "zero part-load ratio at bivalent temperature",
			mutate: func(cfg *Config) {
				cfg.BivalentTemp = ptrFloat(16)
			},
			wantErr: ErrDesignLoadInfer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := annexHConfig()
			cfg.DesignLoad = nil
			tt.mutate(&cfg)

			_, err := New(cfg)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewValidation(t *testing.T) {
	t.Run("unknown climate", func(t *testing.T) {
		cfg := annexHConfig()
		cfg.Climate = climate.Zone("tropical")

		_, err := New(cfg)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("no test points", func(t *testing.T) {
		cfg := annexHConfig()
		cfg.TestPoints = nil

		_, err := New(cfg)
		require.ErrorIs(t, err, ErrNoTestPoints)
	})

	t.Run("degradation coefficient out of range", func(t *testing.T) {
		cfg := annexHConfig()
		cfg.DegradationCoeff = 1.5

		_, err := New(cfg)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("zero degradation coefficient falls back to default", func(t *testing.T) {
		cfg := annexHConfig()
		cfg.DegradationCoeff = 0

		calc, err := New(cfg)
		require.NoError(t, err)
		assert.Equal(t, DefaultDegradationCoeff, calc.DegradationCoeffAt(0))
	})
}

func TestNoSupplementaryHeatAboveBivalentTemperature(t *testing.T) {
	calc, err := New(annexHConfig())
	require.NoError(t, err)

	_, table := calc.Calculate(context.Background())

	for _, row := range table.Rows {
		if row.Temperature >= -6 {
			assert.Zerof(t, row.SupplementaryCapacity,
				"bin %d at %.0f degC must not use the backup heater", row.Index, row.Temperature)
		} else {
			want := math.Max(0, row.HeatingLoad-calc.CapacityAt(row.Temperature))
			assert.InDelta(t, want, row.SupplementaryCapacity, 1e-9)
		}
	}
}

func TestHeatingLoadAtDesignTemperature(t *testing.T) {
	reg := climate.DefaultRegistry()

	for _, zone := range reg.Zones() {
		t.Run(string(zone), func(t *testing.T) {
			cfg := annexHConfig()
			cfg.Climate = zone
			cfg.BivalentTemp = nil
			cfg.OperatingLimit = nil

			calc, err := New(cfg)
			require.NoError(t, err)

			// pl(Tdesignh) is exactly 1 by construction.
			assert.InDelta(t, 1.0, calc.PartLoadRatio(calc.Profile().DesignTemp), 1e-12)
			assert.InDelta(t, calc.DesignLoad(), calc.HeatingLoad(calc.Profile().DesignTemp), 1e-9)
		})
	}
}

func TestBinTableTotalsMatchRows(t *testing.T) {
	calc, err := New(annexHConfig())
	require.NoError(t, err)

	_, table := calc.Calculate(context.Background())

	var hours int
	var demand, sup, active float64
	for _, row := range table.Rows {
		hours += row.Hours
		demand += row.HeatingDemand
		sup += row.SupplementaryEnergy
		active += row.ActiveEnergy
	}

	assert.Equal(t, hours, table.Total.Hours)
	assert.InDelta(t, demand, table.Total.HeatingDemand, 1e-9)
	assert.InDelta(t, sup, table.Total.SupplementaryEnergy, 1e-9)
	assert.InDelta(t, active, table.Total.ActiveEnergy, 1e-9)
}

func TestMatchedBinSurfacesDeclaredValues(t *testing.T) {
	calc, err := New(annexHConfig())
	require.NoError(t, err)

	_, table := calc.Calculate(context.Background())

	var matched, unmatched *BinRow
	for i := range table.Rows {
		switch table.Rows[i].Temperature {
		case -7:
			matched = &table.Rows[i]
		case -3:
			unmatched = &table.Rows[i]
		}
	}
	require.NotNil(t, matched)
	require.NotNil(t, unmatched)

	assert.Equal(t, 9.55, matched.DeclaredCapacity)
	assert.Equal(t, 3.26, matched.DeclaredCOP)
	assert.False(t, math.IsNaN(matched.CapacityRatio))
	assert.False(t, math.IsNaN(matched.CyclingCorrection))

	assert.True(t, math.IsNaN(unmatched.DeclaredCapacity))
	assert.True(t, math.IsNaN(unmatched.DeclaredCOP))
	assert.True(t, math.IsNaN(unmatched.CapacityRatio))
}

func TestFullyModulatingUnitSkipsCyclingCorrection(t *testing.T) {
	cfg := annexHConfig()
	cfg.DegradationCoeff = 1.0

	calc, err := New(cfg)
	require.NoError(t, err)

	_, table := calc.Calculate(context.Background())

	for _, row := range table.Rows {
		if math.IsNaN(row.DeclaredCOP) {
			continue
		}
		assert.InDeltaf(t, row.DeclaredCOP, row.COPBin, 1e-12,
			"Cd=1 must leave the declared COP untouched at %.0f degC", row.Temperature)
		assert.InDelta(t, 1.0, row.CyclingCorrection, 1e-12)
	}
}

func TestPointSpecificDegradationOverridesDefault(t *testing.T) {
	cfg := annexHConfig()
	pt := cfg.TestPoints["E"]
	pt.DegradationCoeff = ptrFloat(0.95)
	cfg.TestPoints["E"] = pt

	calc, err := New(cfg)
	require.NoError(t, err)

	_, table := calc.Calculate(context.Background())

	for _, row := range table.Rows {
		if row.Temperature == -10 {
			assert.Equal(t, 0.95, row.DegradationCoeff)
			return
		}
	}
	t.Fatal("no bin at the operating limit temperature")
}

func TestAllPointsAtOneTemperature(t *testing.T) {
	// A unit whose bivalent temperature equals the operating limit can
	// declare every point at the same temperature; after collapsing
	// them the interpolants hold a single knot and every bin gets the
	// same COPbin.
	cfg := Config{
		Climate:    climate.ZoneAverage,
		DesignLoad: ptrFloat(10.0),
		TestPoints: map[string]TestPoint{
			"E": {Temperature: -7, Capacity: 9.0, COP: 3.0},
			"F": {Temperature: -7, Capacity: 9.4, COP: 3.2},
		},
		DegradationCoeff: 0.9,
	}

	calc, err := New(cfg)
	require.NoError(t, err)

	metrics, table := calc.Calculate(context.Background())
	require.Len(t, table.Rows, 26)

	constant := calc.COPBinAt(0)
	for _, row := range table.Rows {
		if row.Temperature == -7 {
			// The matched bin is recomputed from the first point in
			// label order and may differ from the collapsed average.
			continue
		}
		assert.InDeltaf(t, constant, row.COPBin, 1e-12,
			"bin at %.0f degC must carry the collapsed COPbin", row.Temperature)
	}
	assert.Positive(t, metrics.SCOPOn)
	assert.Positive(t, metrics.HeatingDemand)
}

func TestSingleBinClimate(t *testing.T) {
	reg, err := climate.NewRegistry(climate.Profile{
		Zone:       climate.Zone("single"),
		DesignTemp: -10,
		Bins:       []climate.Bin{{Index: 1, Temperature: -10, Hours: 100}},
	})
	require.NoError(t, err)

	cfg := annexHConfig()
	cfg.Climate = climate.Zone("single")

	calc, err := New(cfg, WithRegistry(reg))
	require.NoError(t, err)

	metrics, table := calc.Calculate(context.Background())

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.InDelta(t, 11.46, row.HeatingLoad, 1e-9)
	assert.InDelta(t, 100*row.HeatingLoad, metrics.HeatingDemand, 1e-9)
	assert.Positive(t, metrics.SCOPOn)
}

func TestWarmerClimateWithoutBackupHeater(t *testing.T) {
	// Warmer-climate unit with the operating limit at the coldest bin
	// and the bivalent temperature above it; capacities cover the load
	// everywhere, so the backup heater never engages.
	cfg := Config{
		Climate:    climate.ZoneWarmer,
		DesignLoad: ptrFloat(8.0),
		TestPoints: map[string]TestPoint{
			"A": {Temperature: 2, Capacity: 9.0, COP: 3.8},
			"B": {Temperature: 7, Capacity: 10.5, COP: 4.6},
			"C": {Temperature: 12, Capacity: 12.0, COP: 5.4},
			"F": {Temperature: 5, Capacity: 9.6, COP: 4.1},
		},
		BivalentTemp:     ptrFloat(5),
		OperatingLimit:   ptrFloat(2),
		DegradationCoeff: 0.9,
		UnitType:         UnitAir,
	}

	calc, err := New(cfg)
	require.NoError(t, err)

	metrics, _ := calc.Calculate(context.Background())

	// Capacity exceeds the load in every bin, so no supplementary heat
	// and SCOPnet equals SCOPon.
	assert.Zero(t, metrics.SupplementaryEnergy)
	assert.InDelta(t, metrics.SCOPOn, metrics.SCOPNet, 1e-12)
	assert.InDelta(t, metrics.SCOPOn, metrics.SCOP, 1e-12)
	assert.InDelta(t, 40*metrics.SCOP-3, metrics.SeasonalEfficiencyPct, 1e-9)
}
