package engine

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Column precision per family, matching the published Annex H layout:
// temperatures 0dp, part-load ratio 3dp, powers and COPs 2dp,
// degradation coefficient 3dp, energies whole kWh.
const (
	tempDecimals  = 0
	ratioDecimals = 3
	powerDecimals = 2
	copDecimals   = 2
	cdDecimals    = 3
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// RenderBinTable writes the per-bin breakdown as an ASCII table,
// including the synthesized TOTAL row. Formatting is presentation only;
// the underlying BinTable values are not modified.
func RenderBinTable(w io.Writer, table BinTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', tabwriter.AlignRight)

	header := "j\tTj\thj\tpl(Tj)\tPh(Tj)\tPdh(Tj)\tCOPd(Tj)\tCdh\tCR\tCC\tCOPbin(Tj)\telbu(Tj)\tQelbu\tQH\tEelec\t"
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range table.Rows {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.Index,
			formatCell(row.Temperature, tempDecimals),
			row.Hours,
			formatCell(row.PartLoadRatio, ratioDecimals),
			formatCell(row.HeatingLoad, powerDecimals),
			formatCell(row.DeclaredCapacity, powerDecimals),
			formatCell(row.DeclaredCOP, copDecimals),
			formatCell(row.DegradationCoeff, cdDecimals),
			formatCell(row.CapacityRatio, copDecimals),
			formatCell(row.CyclingCorrection, copDecimals),
			formatCell(row.COPBin, copDecimals),
			formatCell(row.SupplementaryCapacity, powerDecimals),
			FormatEnergy(row.SupplementaryEnergy),
			FormatEnergy(row.HeatingDemand),
			FormatEnergy(row.ActiveEnergy),
		); err != nil {
			return fmt.Errorf("writing row %d: %w", row.Index, err)
		}
	}

	if _, err := fmt.Fprintf(tw, "TOTAL\t\t%d\t\t\t\t\t\t\t\t\t\t%s\t%s\t%s\t\n",
		table.Total.Hours,
		FormatEnergy(table.Total.SupplementaryEnergy),
		FormatEnergy(table.Total.HeatingDemand),
		FormatEnergy(table.Total.ActiveEnergy),
	); err != nil {
		return fmt.Errorf("writing total row: %w", err)
	}

	return tw.Flush()
}
