package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/kilianp07/garage/core/garage"
	"github.com/kilianp07/garage/core/logger"
	"github.com/kilianp07/garage/core/vehicle"
)

// Result summarizes one scenario run. Failed expectations and unexpected step
// outcomes land in Failures; structural scenario mistakes abort the run with
// an error instead.
type Result struct {
	RunID    string
	Scenario string
	Steps    int
	Failures []string
}

// OK reports whether the scenario passed.
func (r *Result) OK() bool { return len(r.Failures) == 0 }

// Summary renders a one-line verdict.
func (r *Result) Summary() string {
	status := "PASS"
	if !r.OK() {
		status = "FAIL"
	}
	return fmt.Sprintf("%s %s: %d steps, %d failures (run %s)", status, r.Scenario, r.Steps, len(r.Failures), r.RunID)
}

// Runner executes scenarios against a garage.
type Runner struct {
	g   *garage.Garage
	log logger.Logger
}

// NewRunner creates a Runner over g.
func NewRunner(g *garage.Garage, log logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop{}
	}
	return &Runner{g: g, log: log}
}

// Run creates the scenario's fleet, applies every step and checks the
// expectations. The returned error covers malformed scenarios; operation
// rejections and unmet expectations are reported through the Result.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	if err := validate(sc); err != nil {
		return nil, err
	}
	res := &Result{RunID: uuid.NewString(), Scenario: sc.Name}
	r.log.Infof("scenario %s: run %s starting", sc.Name, res.RunID)

	for _, def := range sc.Vehicles {
		kind, err := vehicle.ParseKind(def.Kind)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		p := garage.CreateParams{Model: def.Model, Color: def.Color, CargoCapacity: def.Capacity}
		if _, err := r.g.Create(ctx, kind, p); err != nil {
			return nil, fmt.Errorf("scenario %s: create %s: %w", sc.Name, def.Kind, err)
		}
	}

	for i, step := range sc.Steps {
		times := step.Times
		if times <= 0 {
			times = 1
		}
		for n := 0; n < times; n++ {
			err := r.apply(ctx, step)
			res.Steps++
			switch {
			case step.WantError && err == nil:
				res.Failures = append(res.Failures, fmt.Sprintf("step %d (%s %s): expected an error", i+1, step.Op, step.Vehicle))
			case !step.WantError && err != nil:
				res.Failures = append(res.Failures, fmt.Sprintf("step %d (%s %s): %v", i+1, step.Op, step.Vehicle, err))
			}
		}
	}

	for _, e := range sc.Expected {
		res.Failures = append(res.Failures, r.check(e)...)
	}
	r.log.Infof("scenario %s: %s", sc.Name, res.Summary())
	return res, nil
}

func (r *Runner) apply(ctx context.Context, step StepDef) error {
	switch step.Op {
	case "turn_on":
		return r.g.TurnOn(ctx, step.Vehicle)
	case "turn_off":
		return r.g.TurnOff(ctx, step.Vehicle)
	case "accelerate":
		return r.g.Accelerate(ctx, step.Vehicle)
	case "brake":
		return r.g.Brake(ctx, step.Vehicle)
	case "paint":
		return r.g.Paint(ctx, step.Vehicle, step.Color)
	case "enable_turbo":
		return r.g.EnableTurbo(ctx, step.Vehicle)
	case "disable_turbo":
		return r.g.DisableTurbo(ctx, step.Vehicle)
	case "load_cargo":
		return r.g.LoadCargo(ctx, step.Vehicle, step.Weight)
	case "unload_cargo":
		return r.g.UnloadCargo(ctx, step.Vehicle, step.Weight)
	case "add_maintenance":
		return r.g.AddMaintenance(ctx, step.Vehicle, step.Record.toRecord())
	}
	return fmt.Errorf("unknown op %q", step.Op)
}

func (r *Runner) check(e ExpectDef) []string {
	v, ok := r.g.Vehicle(e.Vehicle)
	if !ok {
		return []string{fmt.Sprintf("expected vehicle %q is not in the garage", e.Vehicle)}
	}
	var fails []string
	note := func(format string, args ...interface{}) {
		fails = append(fails, fmt.Sprintf("%s: ", e.Vehicle)+fmt.Sprintf(format, args...))
	}
	if e.Speed != nil && !near(v.Speed(), *e.Speed) {
		note("speed = %v, want %v", v.Speed(), *e.Speed)
	}
	if e.Fuel != nil && !near(v.Fuel(), *e.Fuel) {
		note("fuel = %v, want %v", v.Fuel(), *e.Fuel)
	}
	if e.Running != nil && v.Running() != *e.Running {
		note("running = %v, want %v", v.Running(), *e.Running)
	}
	if e.History != nil && len(v.History()) != *e.History {
		note("history length = %d, want %d", len(v.History()), *e.History)
	}
	if e.Cargo != nil {
		t, ok := v.(*vehicle.Truck)
		if !ok {
			note("cargo expected on a %s", v.Kind())
		} else if !near(t.CurrentCargo(), *e.Cargo) {
			note("cargo = %v, want %v", t.CurrentCargo(), *e.Cargo)
		}
	}
	if e.Turbo != nil {
		s, ok := v.(*vehicle.SportsCar)
		if !ok {
			note("turbo expected on a %s", v.Kind())
		} else if s.TurboEngaged() != *e.Turbo {
			note("turbo = %v, want %v", s.TurboEngaged(), *e.Turbo)
		}
	}
	return fails
}

// validate rejects structural mistakes before anything runs, so a typo does
// not leave a scenario half applied.
func validate(sc *Scenario) error {
	if len(sc.Vehicles) == 0 {
		return fmt.Errorf("scenario %s creates no vehicles", sc.Name)
	}
	slots := make(map[string]bool, len(sc.Vehicles))
	for _, def := range sc.Vehicles {
		if _, err := vehicle.ParseKind(def.Kind); err != nil {
			return fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		slots[def.Kind] = true
	}
	for i, step := range sc.Steps {
		if !knownOp(step.Op) {
			return fmt.Errorf("scenario %s: step %d has unknown op %q", sc.Name, i+1, step.Op)
		}
		if !slots[step.Vehicle] {
			return fmt.Errorf("scenario %s: step %d targets unknown vehicle %q", sc.Name, i+1, step.Vehicle)
		}
		if step.Op == "add_maintenance" && step.Record == nil {
			return fmt.Errorf("scenario %s: step %d has no record", sc.Name, i+1)
		}
		if step.Times < 0 {
			return fmt.Errorf("scenario %s: step %d has negative times", sc.Name, i+1)
		}
	}
	for i, e := range sc.Expected {
		if !slots[e.Vehicle] {
			return fmt.Errorf("scenario %s: expectation %d targets unknown vehicle %q", sc.Name, i+1, e.Vehicle)
		}
	}
	return nil
}

func knownOp(op string) bool {
	switch op {
	case "turn_on", "turn_off", "accelerate", "brake", "paint",
		"enable_turbo", "disable_turbo", "load_cargo", "unload_cargo", "add_maintenance":
		return true
	}
	return false
}

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }
