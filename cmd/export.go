package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/garage/app"
	"github.com/kilianp07/garage/core/garage"
	"github.com/kilianp07/garage/pkg/export"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export [vehicle]",
	Short: "Export maintenance history as CSV or JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			var (
				entries []garage.HistoryEntry
				err     error
			)
			if len(args) == 1 {
				entries, err = svc.Garage.VehicleHistory(args[0])
				if err != nil {
					return err
				}
			} else {
				entries = svc.Garage.FleetHistory()
			}
			switch exportFormat {
			case "csv":
				return export.WriteCSV(cmd.OutOrStdout(), entries)
			case "json":
				return export.WriteJSON(cmd.OutOrStdout(), entries)
			default:
				return fmt.Errorf("unknown export format %q", exportFormat)
			}
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or json")
	rootCmd.AddCommand(exportCmd)
}
