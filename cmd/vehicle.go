package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kilianp07/garage/app"
	"github.com/kilianp07/garage/core/garage"
	"github.com/kilianp07/garage/core/vehicle"
)

var vehicleCmd = &cobra.Command{
	Use:   "vehicle",
	Short: "Create and drive vehicles",
}

var (
	createModel    string
	createColor    string
	createCapacity float64
	driveTimes     int
)

var vehicleCreateCmd = &cobra.Command{
	Use:   "create <kind>",
	Short: "Create a vehicle, or update the one already in the kind's slot",
	Long: "Each kind (car, sports_car, truck, motorcycle) owns one slot. Creating\n" +
		"into an occupied slot updates model, color and, for trucks, capacity\n" +
		"while driving state and maintenance history stay.",
	Args: cobra.ExactArgs(1),
	RunE: runVehicleCreate,
}

var vehicleOnCmd = &cobra.Command{
	Use:   "on <vehicle>",
	Short: "Start the engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			if err := svc.Garage.TurnOn(ctx, args[0]); err != nil {
				return err
			}
			return printStatus(cmd, svc, args[0])
		})
	},
}

var vehicleOffCmd = &cobra.Command{
	Use:   "off <vehicle>",
	Short: "Brake to a stop and cut the ignition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			if err := svc.Garage.TurnOff(ctx, args[0]); err != nil {
				return err
			}
			return printStatus(cmd, svc, args[0])
		})
	},
}

var vehicleAccelerateCmd = &cobra.Command{
	Use:   "accelerate <vehicle>",
	Short: "Apply acceleration steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			for i := 0; i < driveTimes; i++ {
				if err := svc.Garage.Accelerate(ctx, args[0]); err != nil {
					return err
				}
			}
			return printSpeed(cmd, svc, args[0])
		})
	},
}

var vehicleBrakeCmd = &cobra.Command{
	Use:   "brake <vehicle>",
	Short: "Apply braking steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			for i := 0; i < driveTimes; i++ {
				if err := svc.Garage.Brake(ctx, args[0]); err != nil {
					return err
				}
			}
			return printSpeed(cmd, svc, args[0])
		})
	},
}

var vehiclePaintCmd = &cobra.Command{
	Use:   "paint <vehicle> <color>",
	Short: "Repaint a vehicle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			if err := svc.Garage.Paint(ctx, args[0], args[1]); err != nil {
				return err
			}
			return printInfo(cmd, svc, args[0])
		})
	},
}

var vehicleTurboCmd = &cobra.Command{
	Use:   "turbo <vehicle> <on|off>",
	Short: "Toggle the sports car turbo",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			var err error
			switch args[1] {
			case "on":
				err = svc.Garage.EnableTurbo(ctx, args[0])
			case "off":
				err = svc.Garage.DisableTurbo(ctx, args[0])
			default:
				return fmt.Errorf("turbo takes on or off, got %q", args[1])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Turbo %s\n", args[1])
			return nil
		})
	},
}

var vehicleLoadCmd = &cobra.Command{
	Use:   "load <vehicle> <kg>",
	Short: "Load cargo onto the truck",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCargo(cmd, args, true)
	},
}

var vehicleUnloadCmd = &cobra.Command{
	Use:   "unload <vehicle> <kg>",
	Short: "Unload cargo off the truck",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCargo(cmd, args, false)
	},
}

func init() {
	vehicleCreateCmd.Flags().StringVar(&createModel, "model", "", "model name")
	vehicleCreateCmd.Flags().StringVar(&createColor, "color", "", "color")
	vehicleCreateCmd.Flags().Float64Var(&createCapacity, "capacity", 0, "cargo capacity in kg (trucks)")
	vehicleAccelerateCmd.Flags().IntVar(&driveTimes, "times", 1, "number of steps")
	vehicleBrakeCmd.Flags().IntVar(&driveTimes, "times", 1, "number of steps")

	vehicleCmd.AddCommand(vehicleCreateCmd, vehicleOnCmd, vehicleOffCmd,
		vehicleAccelerateCmd, vehicleBrakeCmd, vehiclePaintCmd,
		vehicleTurboCmd, vehicleLoadCmd, vehicleUnloadCmd)
	rootCmd.AddCommand(vehicleCmd)
}

func runVehicleCreate(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		kind, err := vehicle.ParseKind(args[0])
		if err != nil {
			return err
		}
		v, err := svc.Garage.Create(ctx, kind, garage.CreateParams{
			Model:         createModel,
			Color:         createColor,
			CargoCapacity: createCapacity,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v.Info())
		return nil
	})
}

func runCargo(cmd *cobra.Command, args []string, load bool) error {
	weight, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("weight %q is not a number", args[1])
	}
	return withService(func(ctx context.Context, svc *app.Service) error {
		if load {
			err = svc.Garage.LoadCargo(ctx, args[0], weight)
		} else {
			err = svc.Garage.UnloadCargo(ctx, args[0], weight)
		}
		if err != nil {
			return err
		}
		v, _ := svc.Garage.Vehicle(args[0])
		if t, ok := v.(*vehicle.Truck); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Cargo: %.0f / %.0f kg\n", t.CurrentCargo(), t.CargoCapacity())
		}
		return nil
	})
}

func printStatus(cmd *cobra.Command, svc *app.Service, key string) error {
	v, ok := svc.Garage.Vehicle(key)
	if !ok {
		return fmt.Errorf("no vehicle under key %s", key)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", v.DisplayName(), v.Status())
	return nil
}

func printSpeed(cmd *cobra.Command, svc *app.Service, key string) error {
	v, ok := svc.Garage.Vehicle(key)
	if !ok {
		return fmt.Errorf("no vehicle under key %s", key)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, fuel %.0f%%\n", v.DisplayName(), v.SpeedDisplay(), v.Fuel())
	return nil
}

func printInfo(cmd *cobra.Command, svc *app.Service, key string) error {
	v, ok := svc.Garage.Vehicle(key)
	if !ok {
		return fmt.Errorf("no vehicle under key %s", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.Info())
	return nil
}
