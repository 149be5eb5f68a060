package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SharodX/keymark-heat-pumps/internal/batch"
)

// batchCSVColumns is the results-file layout downstream regression
// tooling expects, plus the run identifier.
var batchCSVColumns = []string{
	"run_id",
	"manufacturer_name", "model_name", "variant_name", "dimension",
	"application_label", "climate_label", "unit_type",
	"pdesignh_reported_kw", "pdesignh_inferred_kw",
	"tbiv_c", "tol_c",
	"poff_kw", "pto_kw", "psb_kw", "pck_kw",
	"reported_scop", "calculated_scop", "delta_scop_pct",
	"reported_eta_percent", "calculated_eta_percent", "delta_eta_pct",
	"reported_qhe_kwh", "calculated_qhe_active_kwh", "delta_qhe_pct",
	"scopnet", "scopon", "calc_qh_kwh", "q_sup_kwh", "q_offmode_kwh",
	"missing_required_en_codes", "missing_optional_en_codes",
	"status", "status_message", "timestamp_utc",
}

// WriteBatchCSV exports a batch report, one row per combo in corpus
// order. Absent values render as empty cells.
func WriteBatchCSV(w io.Writer, rep *batch.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(batchCSVColumns); err != nil {
		return fmt.Errorf("writing batch header: %w", err)
	}

	for i, row := range rep.Rows {
		record := []string{
			rep.RunID,
			row.Manufacturer, row.Model, row.Variant, row.Dimension,
			row.ApplicationLabel, row.ClimateLabel, row.UnitType,
			optField(row.ReportedDesignLoadKW), optField(row.InferredDesignLoadKW),
			optField(row.BivalentTempC), optField(row.OperatingLimitC),
			optField(row.OffPowerKW), optField(row.ThermostatOffPowerKW),
			optField(row.StandbyPowerKW), optField(row.CrankcasePowerKW),
			optField(row.ReportedSCOP), optField(row.CalculatedSCOP), optField(row.DeltaSCOPPct),
			optField(row.ReportedEtaPct), optField(row.CalculatedEtaPct), optField(row.DeltaEtaPct),
			optField(row.ReportedAnnualEnergyKWH), optField(row.CalculatedActiveEnergyKWH), optField(row.DeltaAnnualEnergyPct),
			optField(row.SCOPNet), optField(row.SCOPOn),
			optField(row.HeatingDemandKWH), optField(row.SupplementaryEnergyKWH), optField(row.OffModeEnergyKWH),
			strings.Join(row.MissingRequiredCodes, ";"),
			strings.Join(row.MissingOptionalCodes, ";"),
			row.Status, row.StatusMessage,
			row.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing batch row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// optField renders an optional float, leaving absent values empty.
func optField(v *float64) string {
	if v == nil {
		return ""
	}
	return floatField(*v)
}
