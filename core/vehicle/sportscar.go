package vehicle

import (
	"errors"
	"fmt"
	"strings"
)

// Turbo tuning. While engaged, every Accelerate call trades a much larger
// fuel burn for a bigger speed step.
const (
	turboAccelStep = 50.0
	turboAccelBurn = 15.0
	turboMinFuel   = 20.0
)

var (
	ErrTurboEngaged    = errors.New("vehicle: turbo already engaged")
	ErrTurboNotEngaged = errors.New("vehicle: turbo not engaged")
	ErrLowFuel         = errors.New("vehicle: fuel too low")
)

// SportsCar is a car with a switchable turbo.
type SportsCar struct {
	base
	turbo bool
}

// NewSportsCar builds a parked sports car with a full tank and the turbo off.
func NewSportsCar(model, color string, opts ...Option) *SportsCar {
	return &SportsCar{base: newBase(KindSportsCar, model, color, opts...)}
}

// TurboEngaged reports whether the turbo is currently on.
func (s *SportsCar) TurboEngaged() bool { return s.turbo }

// EnableTurbo engages the turbo. The engine must be running and the tank at
// least at the turbo threshold.
func (s *SportsCar) EnableTurbo() error {
	if !s.drive.running() {
		return ErrIgnitionOff
	}
	if s.turbo {
		return ErrTurboEngaged
	}
	if s.drive.fuel < turboMinFuel {
		return fmt.Errorf("%w: turbo needs at least %.0f%% fuel, have %.0f%%", ErrLowFuel, turboMinFuel, s.drive.fuel)
	}
	s.turbo = true
	return nil
}

// DisableTurbo disengages the turbo.
func (s *SportsCar) DisableTurbo() error {
	if !s.turbo {
		return ErrTurboNotEngaged
	}
	s.turbo = false
	return nil
}

func (s *SportsCar) Accelerate() error {
	step, burn := s.profile.AccelStep, s.profile.AccelBurn
	if s.turbo {
		step, burn = turboAccelStep, turboAccelBurn
	}
	return s.drive.accelerate(step, burn, s.brakeStep)
}

func (s *SportsCar) Describe() string {
	lines := s.describeLines()
	turbo := "off"
	if s.turbo {
		turbo = "engaged"
	}
	lines = append(lines, "Turbo: "+turbo)
	return strings.Join(append(lines, s.describeTail()...), "\n")
}
