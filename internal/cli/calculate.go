package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SharodX/keymark-heat-pumps/internal/config"
	"github.com/SharodX/keymark-heat-pumps/internal/engine"
	"github.com/SharodX/keymark-heat-pumps/internal/ingest"
	"github.com/SharodX/keymark-heat-pumps/internal/report"
	"github.com/SharodX/keymark-heat-pumps/internal/tui"
)

// calculateParams holds the flag values of the calculate command.
type calculateParams struct {
	inputPath string
	output    string
	unitType  string
	showTUI   bool
}

// newCalculateCmd creates the "calculate" subcommand for single-unit
// seasonal performance calculations.
func newCalculateCmd() *cobra.Command {
	var params calculateParams

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate seasonal performance for one unit",
		Long: `Calculate SCOP, SCOPon, SCOPnet and the seasonal space-heating
efficiency for a single unit described by a YAML input file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalculate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.inputPath, "input", "", "Path to the unit YAML file (required)")
	cmd.Flags().StringVar(&params.output, "output", "", "Output format: table, json, or csv (default from configuration)")
	cmd.Flags().StringVar(&params.unitType, "unit-type", "", "Override unit type: air or water_brine")
	cmd.Flags().BoolVar(&params.showTUI, "tui", false, "Browse the bin table interactively")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func executeCalculate(cmd *cobra.Command, params calculateParams) error {
	ctx := cmd.Context()
	appCfg := config.FromContext(ctx)

	f, err := os.Open(params.inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	unit, err := ingest.LoadUnitFile(f)
	if err != nil {
		return err
	}

	engineCfg := unit.EngineConfig()
	applyDefaults(&engineCfg, appCfg, params.unitType)

	calc, err := engine.New(engineCfg)
	if err != nil {
		return err
	}

	metrics, table := calc.Calculate(ctx)

	logger.Info().
		Str("input", params.inputPath).
		Str("climate", string(engineCfg.Climate)).
		Float64("scop", metrics.SCOP).
		Msg("calculation complete")

	if params.showTUI {
		if !isTerminal(os.Stdout) {
			return fmt.Errorf("--tui requires an interactive terminal")
		}
		return tui.Run(metrics, table)
	}

	output := params.output
	if output == "" {
		output = appCfg.Defaults.OutputFormat
	}

	switch output {
	case "table":
		renderSummary(cmd, calc, metrics)
		cmd.Println()
		return engine.RenderBinTable(cmd.OutOrStdout(), table)
	case "json":
		return report.WriteJSON(cmd.OutOrStdout(), metrics, table)
	case "csv":
		return report.WriteBinTableCSV(cmd.OutOrStdout(), table)
	default:
		return fmt.Errorf("unknown output format %q (expected table, json, or csv)", output)
	}
}

// applyDefaults overlays configuration defaults and flag overrides on
// fields the input document left unset.
func applyDefaults(engineCfg *engine.Config, appCfg config.Config, unitTypeFlag string) {
	if engineCfg.DegradationCoeff == 0 && appCfg.Defaults.DegradationCoeff > 0 {
		engineCfg.DegradationCoeff = appCfg.Defaults.DegradationCoeff
	}
	if engineCfg.UnitType == "" {
		engineCfg.UnitType = engine.UnitType(appCfg.Defaults.UnitType)
	}
	if unitTypeFlag != "" {
		engineCfg.UnitType = engine.UnitType(unitTypeFlag)
	}
}

// renderSummary prints the headline metrics and energy breakdown.
func renderSummary(cmd *cobra.Command, calc *engine.Calculator, metrics engine.SeasonalMetrics) {
	titleStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	if !isTerminal(os.Stdout) {
		titleStyle = lipgloss.NewStyle()
		labelStyle = lipgloss.NewStyle()
	}

	profile := calc.Profile()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Seasonal performance ("+string(profile.Zone)+" climate)") + "\n")
	b.WriteString(fmt.Sprintf("  %s %.2f kW (design temperature %.0f °C)\n",
		labelStyle.Render("Design load:"), calc.DesignLoad(), profile.DesignTemp))
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s\n",
		labelStyle.Render("SCOP:"), engine.FormatMetric(metrics.SCOP),
		labelStyle.Render("SCOPon:"), engine.FormatMetric(metrics.SCOPOn),
		labelStyle.Render("SCOPnet:"), engine.FormatMetric(metrics.SCOPNet)))
	b.WriteString(fmt.Sprintf("  %s %.1f %%\n",
		labelStyle.Render("ηs,h:"), metrics.SeasonalEfficiencyPct))
	b.WriteString(fmt.Sprintf("  %s QH %s   HP %s   supplementary %s   off-mode %s kWh/year\n",
		labelStyle.Render("Energy:"),
		engine.FormatEnergy(metrics.HeatingDemand),
		engine.FormatEnergy(metrics.HeatPumpEnergy),
		engine.FormatEnergy(metrics.SupplementaryEnergy),
		engine.FormatEnergy(metrics.OffModeEnergy)))

	cmd.Print(b.String())
}
