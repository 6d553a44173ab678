package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/garage/app"
	"github.com/kilianp07/garage/core/maintenance"
)

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Record and list maintenance",
}

var (
	recDate        string
	recType        string
	recCost        float64
	recDescription string
	recTime        string
	recStatus      string
)

var maintenanceAddCmd = &cobra.Command{
	Use:   "add <vehicle>",
	Short: "Add a maintenance record",
	Long: "Completed records need a date, a service type and a cost. Scheduled\n" +
		"records may leave the cost out and may carry a time of day.",
	Args: cobra.ExactArgs(1),
	RunE: runMaintenanceAdd,
}

var maintenanceLsCmd = &cobra.Command{
	Use:   "ls <vehicle>",
	Short: "List every record of a vehicle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			v, ok := svc.Garage.Vehicle(args[0])
			if !ok {
				return fmt.Errorf("no vehicle under key %s", args[0])
			}
			hist := v.History()
			if len(hist) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no records)")
				return nil
			}
			fmtr := svc.Garage.Formatter()
			for _, rec := range hist {
				fmt.Fprintln(cmd.OutOrStdout(), fmtr.Format(rec))
			}
			return nil
		})
	},
}

func init() {
	maintenanceAddCmd.Flags().StringVar(&recDate, "date", "", "service date, YYYY-MM-DD")
	maintenanceAddCmd.Flags().StringVar(&recType, "type", "", "service type")
	maintenanceAddCmd.Flags().Float64Var(&recCost, "cost", 0, "cost amount")
	maintenanceAddCmd.Flags().StringVar(&recDescription, "description", "", "free-form note")
	maintenanceAddCmd.Flags().StringVar(&recTime, "time", "", "time of day, HH:MM")
	maintenanceAddCmd.Flags().StringVar(&recStatus, "status", string(maintenance.StatusCompleted), "completed or scheduled")

	maintenanceCmd.AddCommand(maintenanceAddCmd, maintenanceLsCmd)
	rootCmd.AddCommand(maintenanceCmd)
}

func runMaintenanceAdd(cmd *cobra.Command, args []string) error {
	in := maintenance.Input{
		Date:        recDate,
		ServiceType: recType,
		Description: recDescription,
		TimeOfDay:   recTime,
		Status:      recStatus,
	}
	// A cost of zero is a real amount, so only a set flag carries one.
	if cmd.Flags().Changed("cost") {
		in.Cost = &recCost
	}
	return withService(func(ctx context.Context, svc *app.Service) error {
		if err := svc.Garage.AddMaintenance(ctx, args[0], in); err != nil {
			return err
		}
		v, _ := svc.Garage.Vehicle(args[0])
		hist := v.History()
		fmt.Fprintln(cmd.OutOrStdout(), svc.Garage.Formatter().Format(hist[len(hist)-1]))
		return nil
	})
}
