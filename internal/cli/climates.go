package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SharodX/keymark-heat-pumps/internal/climate"
)

// newClimatesCmd creates the "climates" subcommand listing the
// reference climate profiles.
func newClimatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "climates",
		Short: "List the EN 14825 reference climates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := climate.DefaultRegistry()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CLIMATE\tTDESIGNH\tBINS\tBIN HOURS\tHOFF\tHTO\tHSB\tHCK")
			for _, zone := range reg.Zones() {
				p, err := reg.Lookup(zone)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%.0f °C\t%d\t%d\t%d\t%d\t%d\t%d\n",
					p.Zone, p.DesignTemp, len(p.Bins), p.TotalBinHours(),
					p.OffHours, p.ThermostatOffHours, p.StandbyHours, p.CrankcaseHours)
			}
			return tw.Flush()
		},
	}
}
