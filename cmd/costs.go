package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/garage/app"
	"github.com/kilianp07/garage/core/garage"
)

var costsCmd = &cobra.Command{
	Use:   "costs [vehicle]",
	Short: "Summarize completed maintenance spending, fleet-wide or per vehicle",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			var (
				s   garage.CostSummary
				err error
			)
			if len(args) == 1 {
				s, err = svc.Garage.VehicleCosts(args[0])
				if err != nil {
					return err
				}
			} else {
				s = svc.Garage.FleetCosts()
			}
			if s.Records == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No completed maintenance costs recorded.")
				return nil
			}
			fmtr := svc.Garage.Formatter()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Records: %d\n", s.Records)
			fmt.Fprintf(out, "Total:   %s\n", fmtr.Cost(&s.Total))
			fmt.Fprintf(out, "Mean:    %s\n", fmtr.Cost(&s.Mean))
			fmt.Fprintf(out, "Max:     %s\n", fmtr.Cost(&s.Max))
			fmt.Fprintf(out, "StdDev:  %s\n", fmtr.Cost(&s.StdDev))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(costsCmd)
}
