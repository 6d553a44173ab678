package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/garage/app"
	"github.com/kilianp07/garage/core/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the operation journal",
}

var (
	journalVehicle string
	journalOp      string
	journalFailed  bool
)

var journalLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List journaled operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			entries, err := svc.Journal().Query(ctx, journal.Query{
				VehicleKey: journalVehicle,
				Op:         journalOp,
				FailedOnly: journalFailed,
			})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Journal is empty. Enable it under journal.enabled in the configuration.")
				return nil
			}
			for _, e := range entries {
				line := fmt.Sprintf("%s %s %s", e.Time.Format(time.RFC3339), e.Op, e.VehicleKey)
				if e.Detail != "" {
					line += " " + e.Detail
				}
				if e.Error != "" {
					line += " error: " + e.Error
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		})
	},
}

func init() {
	journalLsCmd.Flags().StringVar(&journalVehicle, "vehicle", "", "filter by vehicle key")
	journalLsCmd.Flags().StringVar(&journalOp, "op", "", "filter by operation")
	journalLsCmd.Flags().BoolVar(&journalFailed, "failed", false, "only failed operations")

	journalCmd.AddCommand(journalLsCmd)
	rootCmd.AddCommand(journalCmd)
}
