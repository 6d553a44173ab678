package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/garage/app"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List registered vehicles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			keys := svc.Garage.Keys()
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The garage is empty.")
				return nil
			}
			for _, key := range keys {
				v, _ := svc.Garage.Vehicle(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", key, v.Info())
			}
			return nil
		})
	},
}

var fleetDescribeCmd = &cobra.Command{
	Use:   "describe [vehicle]",
	Short: "Show the detail view of one vehicle or the whole fleet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			if len(args) == 1 {
				out, err := svc.Garage.Describe(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.Garage.DescribeFleet())
			return nil
		})
	},
}

func init() {
	fleetCmd.AddCommand(fleetLsCmd, fleetDescribeCmd)
	rootCmd.AddCommand(fleetCmd)
}
