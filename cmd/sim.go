package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/garage/core/garage"
	"github.com/kilianp07/garage/infra/logger"
	"github.com/kilianp07/garage/infra/storage"
	"github.com/kilianp07/garage/sim"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run scripted scenarios",
}

var simRunCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Run a scenario against a throwaway in-memory garage",
	Long: "The scenario runs against its own in-memory garage, so the stored\n" +
		"fleet is never touched.",
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.AddCommand(simRunCmd)
	rootCmd.AddCommand(simCmd)
}

func runSim(cmd *cobra.Command, args []string) error {
	sc, err := sim.Load(args[0])
	if err != nil {
		return err
	}
	g := garage.New(storage.NewMemory(0))
	runner := sim.NewRunner(g, logger.New("sim"))
	res, err := runner.Run(context.Background(), sc)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.Summary())
	for _, msg := range res.Failures {
		fmt.Fprintln(out, "  "+msg)
	}
	if !res.OK() {
		return fmt.Errorf("scenario %s failed", sc.Name)
	}
	return nil
}
