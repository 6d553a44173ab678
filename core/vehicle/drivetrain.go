package vehicle

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/looplab/fsm"
)

// Ignition lifecycle states. The stopping state only exists inside a
// TurnOff or an empty-tank shutdown; both run the brake loop to completion
// before returning, so callers never observe it.
const (
	stateParked   = "parked"
	stateRunning  = "running"
	stateStopping = "stopping"
)

const (
	eventStart = "start"
	eventStop  = "stop"
	eventHalt  = "halt"
)

// drivetrain owns the kinematic state every variant shares: ignition
// lifecycle, speed and fuel. Variants feed it their tuning numbers per call.
type drivetrain struct {
	machine   *fsm.FSM
	speed     float64
	maxSpeed  float64
	fuel      float64
	stepDelay time.Duration
}

func newDrivetrain(maxSpeed float64) *drivetrain {
	d := &drivetrain{maxSpeed: maxSpeed, fuel: FullTank}
	d.machine = fsm.NewFSM(
		stateParked,
		fsm.Events{
			{Name: eventStart, Src: []string{stateParked}, Dst: stateRunning},
			{Name: eventStop, Src: []string{stateRunning}, Dst: stateStopping},
			{Name: eventHalt, Src: []string{stateStopping}, Dst: stateParked},
		},
		fsm.Callbacks{
			// The ignition may only cut once the vehicle stands still.
			"before_" + eventHalt: func(_ context.Context, e *fsm.Event) {
				if d.speed > 0 {
					e.Cancel(fmt.Errorf("still moving at %.0f km/h", d.speed))
				}
			},
		},
	)
	return d
}

func (d *drivetrain) running() bool { return d.machine.Current() == stateRunning }
func (d *drivetrain) parked() bool  { return d.machine.Current() == stateParked }

// start turns the ignition on. Already running is a no-op; an empty tank
// refuses the start.
func (d *drivetrain) start() error {
	if d.running() {
		return nil
	}
	if d.fuel <= 0 {
		return ErrNoFuel
	}
	return d.machine.Event(context.Background(), eventStart)
}

// stop brakes the vehicle down to zero and then cuts the ignition, exactly
// once, on the step where speed first reaches zero. brakeStep is consulted
// per iteration so load-dependent variants decelerate realistically. Already
// parked is a no-op.
func (d *drivetrain) stop(brakeStep func() float64) error {
	if !d.running() {
		return nil
	}
	if err := d.machine.Event(context.Background(), eventStop); err != nil {
		return err
	}
	for d.speed > 0 {
		d.brake(brakeStep())
		if d.speed > 0 && d.stepDelay > 0 {
			time.Sleep(d.stepDelay)
		}
	}
	return d.machine.Event(context.Background(), eventHalt)
}

// accelerate applies one speed increment, capped at the variant's top speed,
// and burns fuel down to a floor of zero. Draining the tank on this call
// brings the vehicle to a stop and shuts it down before returning.
func (d *drivetrain) accelerate(step, burn float64, brakeStep func() float64) error {
	if !d.running() {
		return ErrIgnitionOff
	}
	if d.fuel <= 0 {
		return ErrNoFuel
	}
	d.speed = math.Min(d.speed+step, d.maxSpeed)
	d.fuel = math.Max(d.fuel-burn, 0)
	if d.fuel == 0 {
		return d.stop(brakeStep)
	}
	return nil
}

// brake sheds one decrement of speed, floored at zero.
func (d *drivetrain) brake(step float64) {
	d.speed = math.Max(d.speed-step, 0)
}

// forceState is used when rehydrating a persisted vehicle: the stored
// ignition flag is restored without replaying transitions.
func (d *drivetrain) forceState(running bool) {
	if running {
		d.machine.SetState(stateRunning)
	} else {
		d.machine.SetState(stateParked)
	}
}
