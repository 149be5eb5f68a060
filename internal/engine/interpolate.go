package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// linearTable is a piecewise-linear interpolant over (temperature, value)
// pairs with strictly distinct temperatures. Inside the span it delegates
// to gonum's PiecewiseLinear; outside it either clamps to the boundary
// value (eval) or continues the slope of the two nearest boundary points
// (evalExtrapolate), which is the standard's tangent-line convention.
type linearTable struct {
	temps  []float64
	values []float64
	pl     interp.PiecewiseLinear
}

// newLinearTable builds a table from unsorted pairs. Pairs whose
// temperatures coincide within tempTolerance are collapsed by averaging
// their values: extrapolation slopes need strictly distinct abscissae,
// and coinciding points are legitimate input (a unit whose bivalent
// temperature equals its operating limit declares both points there).
func newLinearTable(temps, values []float64) *linearTable {
	type pair struct{ t, v float64 }
	pairs := make([]pair, len(temps))
	for i := range temps {
		pairs[i] = pair{temps[i], values[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].t < pairs[j].t })

	t := &linearTable{}
	for i := 0; i < len(pairs); {
		sum := pairs[i].v
		n := 1
		j := i + 1
		for j < len(pairs) && math.Abs(pairs[j].t-pairs[i].t) < tempTolerance {
			sum += pairs[j].v
			n++
			j++
		}
		t.temps = append(t.temps, pairs[i].t)
		t.values = append(t.values, sum/float64(n))
		i = j
	}

	if len(t.temps) >= 2 {
		// Fit cannot fail: temperatures are strictly increasing here.
		if err := t.pl.Fit(t.temps, t.values); err != nil {
			panic(err)
		}
	}
	return t
}

func (t *linearTable) size() int { return len(t.temps) }

// eval interpolates linearly inside the span and clamps to the boundary
// values outside it.
func (t *linearTable) eval(temp float64) float64 {
	if len(t.temps) == 1 {
		return t.values[0]
	}
	return t.pl.Predict(temp)
}

// evalExtrapolate behaves like eval inside the span but extends the
// slope between the two nearest boundary points beyond it. A query at a
// known temperature returns that temperature's value exactly.
func (t *linearTable) evalExtrapolate(temp float64) float64 {
	if len(t.temps) == 1 {
		return t.values[0]
	}

	for i, known := range t.temps {
		if math.Abs(temp-known) < tempTolerance {
			return t.values[i]
		}
	}

	last := len(t.temps) - 1
	switch {
	case temp > t.temps[last]:
		slope := (t.values[last] - t.values[last-1]) / (t.temps[last] - t.temps[last-1])
		return t.values[last] + slope*(temp-t.temps[last])
	case temp < t.temps[0]:
		slope := (t.values[1] - t.values[0]) / (t.temps[1] - t.temps[0])
		return t.values[0] + slope*(temp-t.temps[0])
	default:
		return t.pl.Predict(temp)
	}
}

// buildInterpolants precomputes the four interpolants over the declared
// test points. Requires the design load to be resolved first: the COPbin
// values at the test points depend on the heating load there.
func (c *Calculator) buildInterpolants() {
	temps := make([]float64, len(c.points))
	copBins := make([]float64, len(c.points))
	cops := make([]float64, len(c.points))
	caps := make([]float64, len(c.points))

	var cdTemps, cdValues []float64

	for i, p := range c.points {
		temps[i] = p.Temperature
		cops[i] = p.COP
		caps[i] = p.Capacity

		res := binCOP(p.COP, p.Capacity, c.HeatingLoad(p.Temperature), c.effectiveCd(p.TestPoint))
		copBins[i] = res.COPBin

		if p.DegradationCoeff != nil {
			cdTemps = append(cdTemps, p.Temperature)
			cdValues = append(cdValues, *p.DegradationCoeff)
		}
	}

	c.copBinTable = newLinearTable(temps, copBins)
	c.copTable = newLinearTable(temps, cops)
	c.capacityTable = newLinearTable(temps, caps)
	if len(cdTemps) > 0 {
		c.cdTable = newLinearTable(cdTemps, cdValues)
	}
}

// effectiveCd returns the point-specific degradation coefficient, or the
// engine default when the point declares none.
func (c *Calculator) effectiveCd(p TestPoint) float64 {
	if p.DegradationCoeff != nil {
		return *p.DegradationCoeff
	}
	return c.defaultCd
}

// COPBinAt interpolates the cycling-corrected COP at a bin temperature.
// Beyond the outermost test points the boundary slope is extended.
func (c *Calculator) COPBinAt(temp float64) float64 {
	return c.copBinTable.evalExtrapolate(temp)
}

// DeclaredCOPAt interpolates the declared COP. Display only; the energy
// balance always uses COPBinAt.
func (c *Calculator) DeclaredCOPAt(temp float64) float64 {
	return c.copTable.eval(temp)
}

// CapacityAt interpolates the declared heating capacity, used for the
// supplementary-heater split below the bivalent temperature.
func (c *Calculator) CapacityAt(temp float64) float64 {
	return c.capacityTable.eval(temp)
}

// DegradationCoeffAt interpolates the degradation coefficient. When no
// test point declares an explicit coefficient the engine default is
// returned unconditionally.
func (c *Calculator) DegradationCoeffAt(temp float64) float64 {
	if c.cdTable == nil {
		return c.defaultCd
	}
	return c.cdTable.eval(temp)
}
