// Package cmd implements the garage command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/garage/app"
	"github.com/kilianp07/garage/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "garage",
	Short: "Vehicle garage management",
	Long: "garage keeps a small fleet of vehicles, their driving state and their\n" +
		"maintenance history, persisted between invocations.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML or JSON), defaults apply when omitted")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// withService loads the configuration, wires the service around the stored
// fleet and hands it to fn, closing everything afterwards.
func withService(fn func(ctx context.Context, svc *app.Service) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "service close: %v\n", cerr)
		}
	}()
	return fn(ctx, svc)
}
