// Package tui provides an interactive terminal viewer for the per-bin
// calculation breakdown.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SharodX/keymark-heat-pumps/internal/engine"
)

// Initial viewport dimensions, replaced by the first window size message.
const (
	defaultViewportWidth  = 100
	defaultViewportHeight = 20
)

// chromeRows is the number of screen rows taken by the metrics header,
// the column header and the footer around the viewport.
const chromeRows = 4

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// BinViewerModel scrolls the bin table with the seasonal metrics pinned
// above it.
type BinViewerModel struct {
	metrics  engine.SeasonalMetrics
	viewport viewport.Model
}

// NewBinViewerModel builds the viewer for one calculation result.
func NewBinViewerModel(metrics engine.SeasonalMetrics, table engine.BinTable) BinViewerModel {
	vp := viewport.New(defaultViewportWidth, defaultViewportHeight)
	vp.SetContent(renderRows(table))
	return BinViewerModel{metrics: metrics, viewport: vp}
}

// Init implements tea.Model.
func (m BinViewerModel) Init() tea.Cmd { return nil }

// Update handles quit keys and window resizes; everything else goes to
// the viewport for scrolling.
func (m BinViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeRows)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the metrics header, the viewport and a key-hint footer.
func (m BinViewerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf(
		"SCOP %s   SCOPon %s   SCOPnet %s   ηs,h %.1f%%",
		engine.FormatMetric(m.metrics.SCOP),
		engine.FormatMetric(m.metrics.SCOPOn),
		engine.FormatMetric(m.metrics.SCOPNet),
		m.metrics.SeasonalEfficiencyPct,
	)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%5s %6s %5s %7s %8s %8s %8s %10s %10s %10s %10s",
		"j", "Tj", "hj", "pl", "Ph", "Pdh", "COPbin", "elbu", "Qelbu", "QH", "Eelec")))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf(
		"%3.0f%%  ↑/↓ scroll  q quit", m.viewport.ScrollPercent()*100)))
	return b.String()
}

// renderRows formats every bin row plus the TOTAL row at fixed widths.
func renderRows(table engine.BinTable) string {
	var lines []string
	for _, row := range table.Rows {
		lines = append(lines, fmt.Sprintf("%5d %6.0f %5d %7.3f %8.2f %8s %8.2f %10.2f %10s %10s %10s",
			row.Index,
			row.Temperature,
			row.Hours,
			row.PartLoadRatio,
			row.HeatingLoad,
			naCell(row.DeclaredCapacity),
			row.COPBin,
			row.SupplementaryCapacity,
			engine.FormatEnergy(row.SupplementaryEnergy),
			engine.FormatEnergy(row.HeatingDemand),
			engine.FormatEnergy(row.ActiveEnergy),
		))
	}
	lines = append(lines, fmt.Sprintf("%5s %6s %5d %7s %8s %8s %8s %10s %10s %10s %10s",
		"TOTAL", "", table.Total.Hours, "", "", "", "", "",
		engine.FormatEnergy(table.Total.SupplementaryEnergy),
		engine.FormatEnergy(table.Total.HeatingDemand),
		engine.FormatEnergy(table.Total.ActiveEnergy)))
	return strings.Join(lines, "\n")
}

func naCell(v float64) string {
	if v != v {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

// Run starts the viewer and blocks until the user quits.
func Run(metrics engine.SeasonalMetrics, table engine.BinTable) error {
	program := tea.NewProgram(NewBinViewerModel(metrics, table), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
