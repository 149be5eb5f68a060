// Package report serializes calculation results for export: JSON and
// CSV for single-unit runs, and the batch results CSV consumed by
// downstream regression tooling.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/SharodX/keymark-heat-pumps/internal/engine"
)

// metricsDoc is the JSON export shape for one calculation.
type metricsDoc struct {
	SCOPNet               float64 `json:"scop_net"`
	SCOPOn                float64 `json:"scop_on"`
	SCOP                  float64 `json:"scop"`
	SeasonalEfficiencyPct float64 `json:"eta_sh_percent"`

	HeatingDemandKWH       float64 `json:"qh_kwh"`
	HeatPumpEnergyKWH      float64 `json:"qhe_hp_only_kwh"`
	ActiveEnergyKWH        float64 `json:"qhe_active_kwh"`
	SupplementaryEnergyKWH float64 `json:"qsup_kwh"`
	OffModeEnergyKWH       float64 `json:"q_offmode_kwh"`
	TotalEnergyKWH         float64 `json:"q_total_kwh"`

	F1 float64 `json:"f1"`
	F2 float64 `json:"f2"`

	Bins  []binDoc `json:"bins"`
	Total totalDoc `json:"total"`
}

type binDoc struct {
	Index              int      `json:"j"`
	TemperatureC       float64  `json:"tj_c"`
	Hours              int      `json:"hj"`
	PartLoadRatio      float64  `json:"part_load_ratio"`
	HeatingLoadKW      float64  `json:"ph_kw"`
	DeclaredCapacityKW *float64 `json:"pdh_kw,omitempty"`
	DeclaredCOP        *float64 `json:"copd,omitempty"`
	DegradationCoeff   *float64 `json:"cdh,omitempty"`
	CapacityRatio      *float64 `json:"cr,omitempty"`
	CyclingCorrection  *float64 `json:"cc,omitempty"`
	COPBin             float64  `json:"copbin"`
	SupplementaryKW    float64  `json:"elbu_kw"`
	SupplementaryKWH   float64  `json:"qelbu_kwh"`
	HeatingDemandKWH   float64  `json:"qh_kwh"`
	ActiveEnergyKWH    float64  `json:"eelec_kwh"`
}

type totalDoc struct {
	Hours                  int     `json:"hours"`
	HeatingDemandKWH       float64 `json:"qh_kwh"`
	SupplementaryEnergyKWH float64 `json:"qelbu_kwh"`
	ActiveEnergyKWH        float64 `json:"eelec_kwh"`
}

// WriteJSON exports the metrics and bin table as an indented JSON doc.
// NaN placeholders (bins that do not coincide with a test point) become
// omitted fields, keeping the output valid JSON.
func WriteJSON(w io.Writer, metrics engine.SeasonalMetrics, table engine.BinTable) error {
	doc := metricsDoc{
		SCOPNet:                metrics.SCOPNet,
		SCOPOn:                 metrics.SCOPOn,
		SCOP:                   metrics.SCOP,
		SeasonalEfficiencyPct:  metrics.SeasonalEfficiencyPct,
		HeatingDemandKWH:       metrics.HeatingDemand,
		HeatPumpEnergyKWH:      metrics.HeatPumpEnergy,
		ActiveEnergyKWH:        metrics.ActiveEnergy,
		SupplementaryEnergyKWH: metrics.SupplementaryEnergy,
		OffModeEnergyKWH:       metrics.OffModeEnergy,
		TotalEnergyKWH:         metrics.TotalEnergy,
		F1:                     metrics.F1,
		F2:                     metrics.F2,
		Total: totalDoc{
			Hours:                  table.Total.Hours,
			HeatingDemandKWH:       table.Total.HeatingDemand,
			SupplementaryEnergyKWH: table.Total.SupplementaryEnergy,
			ActiveEnergyKWH:        table.Total.ActiveEnergy,
		},
	}

	for _, row := range table.Rows {
		doc.Bins = append(doc.Bins, binDoc{
			Index:              row.Index,
			TemperatureC:       row.Temperature,
			Hours:              row.Hours,
			PartLoadRatio:      row.PartLoadRatio,
			HeatingLoadKW:      row.HeatingLoad,
			DeclaredCapacityKW: dropNaN(row.DeclaredCapacity),
			DeclaredCOP:        dropNaN(row.DeclaredCOP),
			DegradationCoeff:   dropNaN(row.DegradationCoeff),
			CapacityRatio:      dropNaN(row.CapacityRatio),
			CyclingCorrection:  dropNaN(row.CyclingCorrection),
			COPBin:             row.COPBin,
			SupplementaryKW:    row.SupplementaryCapacity,
			SupplementaryKWH:   row.SupplementaryEnergy,
			HeatingDemandKWH:   row.HeatingDemand,
			ActiveEnergyKWH:    row.ActiveEnergy,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// binCSVColumns is the header of the per-bin CSV export.
var binCSVColumns = []string{
	"j", "tj_c", "hj", "part_load_ratio", "ph_kw", "pdh_kw", "copd",
	"cdh", "cr", "cc", "copbin", "elbu_kw", "qelbu_kwh", "qh_kwh", "eelec_kwh",
}

// WriteBinTableCSV exports the bin table, one row per bin plus a final
// TOTAL row. Values are written at full precision; display rounding is
// the renderer's business, not the exporter's.
func WriteBinTableCSV(w io.Writer, table engine.BinTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(binCSVColumns); err != nil {
		return fmt.Errorf("writing bin header: %w", err)
	}

	for _, row := range table.Rows {
		record := []string{
			strconv.Itoa(row.Index),
			floatField(row.Temperature),
			strconv.Itoa(row.Hours),
			floatField(row.PartLoadRatio),
			floatField(row.HeatingLoad),
			floatField(row.DeclaredCapacity),
			floatField(row.DeclaredCOP),
			floatField(row.DegradationCoeff),
			floatField(row.CapacityRatio),
			floatField(row.CyclingCorrection),
			floatField(row.COPBin),
			floatField(row.SupplementaryCapacity),
			floatField(row.SupplementaryEnergy),
			floatField(row.HeatingDemand),
			floatField(row.ActiveEnergy),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing bin %d: %w", row.Index, err)
		}
	}

	total := []string{
		"TOTAL", "", strconv.Itoa(table.Total.Hours), "", "", "", "", "", "", "", "", "",
		floatField(table.Total.SupplementaryEnergy),
		floatField(table.Total.HeatingDemand),
		floatField(table.Total.ActiveEnergy),
	}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("writing total row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// dropNaN converts a NaN placeholder to nil so JSON omits the field.
func dropNaN(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// floatField renders a float for CSV, leaving NaN cells empty.
func floatField(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
