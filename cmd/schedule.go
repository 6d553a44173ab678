package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/garage/app"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Upcoming maintenance",
}

var scheduleLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List upcoming maintenance across the fleet, soonest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			lines := svc.Garage.ScheduleLines()
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No upcoming maintenance.")
				return nil
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		})
	},
}

func init() {
	scheduleCmd.AddCommand(scheduleLsCmd)
	rootCmd.AddCommand(scheduleCmd)
}
