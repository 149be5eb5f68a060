// Package ingest bridges the Keymark measurement corpus and the
// calculation engine: it parses dimension strings into typed records,
// maps EN 14825 measurement codes onto engine test-point fields, and
// loads measurement corpora and single-unit input files.
package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SharodX/keymark-heat-pumps/internal/climate"
)

// dimensionTokens is the number of underscore-separated fields in a
// dimension string.
const dimensionTokens = 4

// Dimension is the typed form of a measurement dimension string
// "{application}_{climate}_{indoor}_{hptype}". The corpus keys every
// measurement by such a string; it is parsed once at the boundary so
// the engine never sees raw dimension text.
type Dimension struct {
	// Application is the supply-temperature application digit
	// (4 low, 5 medium, 6 high).
	Application int

	// Climate is the climate zone digit (1 Warmer, 2 Colder, 3 Average).
	Climate int

	// Indoor and HPType are equipment-variant digits, usually zero.
	Indoor int
	HPType int
}

// ParseDimension parses a dimension string of four integer tokens.
func ParseDimension(s string) (Dimension, error) {
	tokens := strings.Split(s, "_")
	if len(tokens) != dimensionTokens {
		return Dimension{}, fmt.Errorf("dimension %q: expected %d underscore-separated tokens, got %d",
			s, dimensionTokens, len(tokens))
	}

	values := make([]int, dimensionTokens)
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return Dimension{}, fmt.Errorf("dimension %q: token %d is not an integer: %w", s, i+1, err)
		}
		values[i] = n
	}

	return Dimension{
		Application: values[0],
		Climate:     values[1],
		Indoor:      values[2],
		HPType:      values[3],
	}, nil
}

// String renders the dimension back to its corpus form.
func (d Dimension) String() string {
	return fmt.Sprintf("%d_%d_%d_%d", d.Application, d.Climate, d.Indoor, d.HPType)
}

// Zone maps the climate digit to a reference climate zone. The second
// return is false for digits outside the 1..3 range.
func (d Dimension) Zone() (climate.Zone, bool) {
	switch d.Climate {
	case 1:
		return climate.ZoneWarmer, true
	case 2:
		return climate.ZoneColder, true
	case 3:
		return climate.ZoneAverage, true
	default:
		return "", false
	}
}

// ApplicationLabel describes the supply-temperature application digit.
func (d Dimension) ApplicationLabel() string {
	switch d.Application {
	case 4:
		return "Low temp (35°C)"
	case 5:
		return "Medium temp (55°C)"
	case 6:
		return "High temp (65°C)"
	default:
		return "Unknown"
	}
}

// Standard reports whether the dimension matches the space-heating
// pattern [456]_[123]_0_0 the batch driver processes by default.
func (d Dimension) Standard() bool {
	return d.Application >= 4 && d.Application <= 6 &&
		d.Climate >= 1 && d.Climate <= 3 &&
		d.Indoor == 0 && d.HPType == 0
}
