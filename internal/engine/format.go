package engine

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatEnergy formats an annual energy value in kWh as a whole number
// with thousand separators, the precision Annex H uses for the energy
// columns. NaN renders as a dash.
func FormatEnergy(kwh float64) string {
	if math.IsNaN(kwh) {
		return "-"
	}
	return printer.Sprintf("%d", int64(math.Round(kwh)))
}

// formatCell formats a table value with the given number of decimals,
// rendering NaN as a dash. Precision per column family follows the
// published Annex H table layout.
func formatCell(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// FormatMetric formats a dimensionless metric (SCOP family) with two
// decimals, the precision the label regulation reports.
func FormatMetric(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
