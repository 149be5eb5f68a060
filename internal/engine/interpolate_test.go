package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SharodX/keymark-heat-pumps/internal/climate"
)

func TestLinearTableEval(t *testing.T) {
	table := newLinearTable([]float64{0, 10, 20}, []float64{1, 2, 4})

	tests := []struct {
		name string
		temp float64
		want float64
	}{
		{"exact knot", 10, 2},
		{"midpoint of first segment", 5, 1.5},
		{"midpoint of second segment", 15, 3},
		{"clamped below the span", -5, 1},
		{"clamped above the span", 25, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, table.eval(tt.temp), 1e-12)
		})
	}
}

func TestLinearTableEvalExtrapolate(t *testing.T) {
	table := newLinearTable([]float64{0, 10, 20}, []float64{1, 2, 4})

	tests := []struct {
		name string
		temp float64
		want float64
	}{
		{"interior behaves like eval", 15, 3},
		{"below the span extends the first slope", -5, 0.5},
		{"above the span extends the last slope", 25, 5},
		{"exact knot returns the stored value", 20, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, table.evalExtrapolate(tt.temp), 1e-12)
		})
	}
}

func TestLinearTableCollapsesCoincidingTemperatures(t *testing.T) {
	// Two points at -10 (bivalent temperature equals the operating
	// limit) collapse into their average.
	table := newLinearTable([]float64{-10, -10, 0}, []float64{2, 4, 5})

	require.Equal(t, 2, table.size())
	assert.InDelta(t, 3, table.eval(-10), 1e-12)
	assert.InDelta(t, 4, table.eval(-5), 1e-12)
}

func TestLinearTableSinglePointIsConstant(t *testing.T) {
	table := newLinearTable([]float64{7}, []float64{4.5})

	assert.Equal(t, 4.5, table.eval(-20))
	assert.Equal(t, 4.5, table.eval(40))
	assert.Equal(t, 4.5, table.evalExtrapolate(-20))
}

func TestInterpolantsAreExactAtTestPoints(t *testing.T) {
	calc, err := New(annexHConfig())
	require.NoError(t, err)

	for label, p := range annexHConfig().TestPoints {
		res := binCOP(p.COP, p.Capacity, calc.HeatingLoad(p.Temperature), DefaultDegradationCoeff)
		assert.InDeltaf(t, res.COPBin, calc.COPBinAt(p.Temperature), 1e-9,
			"COPbin interpolant must reproduce point %s exactly", label)
		assert.InDeltaf(t, p.COP, calc.DeclaredCOPAt(p.Temperature), 1e-9,
			"declared COP interpolant must reproduce point %s exactly", label)
		assert.InDeltaf(t, p.Capacity, calc.CapacityAt(p.Temperature), 1e-9,
			"capacity interpolant must reproduce point %s exactly", label)
	}
}

func TestCOPBinExtrapolatesBeyondColdestPoint(t *testing.T) {
	cfg := annexHConfig()
	cfg.Climate = climate.ZoneColder
	cfg.BivalentTemp = ptrFloat(-15)

	calc, err := New(cfg)
	require.NoError(t, err)

	// Coldest declared points are E (-10) and A (-7); at -15 the slope
	// between them is extended downward.
	copE := calc.COPBinAt(-10)
	copA := calc.COPBinAt(-7)
	slope := (copA - copE) / 3
	assert.InDelta(t, copE+slope*(-5), calc.COPBinAt(-15), 1e-9)
	assert.Less(t, calc.COPBinAt(-15), copE)
}

func TestExplicitCdShapesInterpolatedCOPBin(t *testing.T) {
	base, err := New(annexHConfig())
	require.NoError(t, err)

	cfg := annexHConfig()
	pt := cfg.TestPoints["B"]
	pt.DegradationCoeff = ptrFloat(1.0)
	cfg.TestPoints["B"] = pt

	modulating, err := New(cfg)
	require.NoError(t, err)

	// Point B cycles under the default coefficient, so its table entry
	// sits below the declared COP; with its own Cd=1 the declared COP
	// passes through untouched.
	assert.Less(t, base.COPBinAt(2), 4.0)
	assert.InDelta(t, 4.0, modulating.COPBinAt(2), 1e-12)
}

func TestDegradationCoeffInterpolation(t *testing.T) {
	cfg := annexHConfig()
	for _, label := range []string{"A", "B"} {
		pt := cfg.TestPoints[label]
		cd := 0.9
		if label == "B" {
			cd = 0.8
		}
		pt.DegradationCoeff = &cd
		cfg.TestPoints[label] = pt
	}

	calc, err := New(cfg)
	require.NoError(t, err)

	// Midway between A (-7, 0.9) and B (2, 0.8).
	assert.InDelta(t, 0.85, calc.DegradationCoeffAt(-2.5), 1e-12)
	// Clamped outside the declared span.
	assert.InDelta(t, 0.9, calc.DegradationCoeffAt(-20), 1e-12)
	assert.InDelta(t, 0.8, calc.DegradationCoeffAt(10), 1e-12)
}
