package vehicle

import (
	"errors"
	"strings"
	"testing"
)

func TestSportsCarTurboRun(t *testing.T) {
	s := NewSportsCar("GT", "red")

	if err := s.EnableTurbo(); !errors.Is(err, ErrIgnitionOff) {
		t.Fatalf("EnableTurbo while parked = %v, want ErrIgnitionOff", err)
	}
	if err := s.TurnOn(); err != nil {
		t.Fatalf("TurnOn: %v", err)
	}
	if err := s.EnableTurbo(); err != nil {
		t.Fatalf("EnableTurbo: %v", err)
	}
	if !s.TurboEngaged() {
		t.Fatal("turbo not engaged after EnableTurbo")
	}
	if err := s.EnableTurbo(); !errors.Is(err, ErrTurboEngaged) {
		t.Fatalf("second EnableTurbo = %v, want ErrTurboEngaged", err)
	}

	for i, wantSpeed := range []float64{50, 100, 150} {
		if err := s.Accelerate(); err != nil {
			t.Fatalf("Accelerate #%d: %v", i+1, err)
		}
		if s.Speed() != wantSpeed {
			t.Fatalf("Speed() after turbo accelerate #%d = %v, want %v", i+1, s.Speed(), wantSpeed)
		}
	}
	if s.Fuel() != 55 {
		t.Fatalf("Fuel() = %v, want 55 after three turbo burns", s.Fuel())
	}

	if err := s.DisableTurbo(); err != nil {
		t.Fatalf("DisableTurbo: %v", err)
	}
	if err := s.DisableTurbo(); !errors.Is(err, ErrTurboNotEngaged) {
		t.Fatalf("second DisableTurbo = %v, want ErrTurboNotEngaged", err)
	}
	if err := s.Accelerate(); err != nil {
		t.Fatalf("Accelerate: %v", err)
	}
	if s.Speed() != 170 || s.Fuel() != 45 {
		t.Fatalf("after plain accelerate: speed %v fuel %v, want 170 and 45", s.Speed(), s.Fuel())
	}
}

func TestSportsCarTurboNeedsFuelHeadroom(t *testing.T) {
	s := NewSportsCar("GT", "red")
	if err := s.TurnOn(); err != nil {
		t.Fatalf("TurnOn: %v", err)
	}
	s.drive.fuel = 19
	if err := s.EnableTurbo(); !errors.Is(err, ErrLowFuel) {
		t.Fatalf("EnableTurbo at 19%% fuel = %v, want ErrLowFuel", err)
	}
	s.drive.fuel = 20
	if err := s.EnableTurbo(); err != nil {
		t.Fatalf("EnableTurbo at exactly 20%% fuel: %v", err)
	}
}

func TestSportsCarTurboSpeedCap(t *testing.T) {
	s := NewSportsCar("GT", "red")
	if err := s.TurnOn(); err != nil {
		t.Fatalf("TurnOn: %v", err)
	}
	if err := s.EnableTurbo(); err != nil {
		t.Fatalf("EnableTurbo: %v", err)
	}
	for i := 0; i < 6; i++ {
		if err := s.Accelerate(); err != nil {
			t.Fatalf("Accelerate #%d: %v", i+1, err)
		}
	}
	if s.Speed() != 300 {
		t.Fatalf("Speed() = %v, want 300 after six turbo steps", s.Speed())
	}
	// Top up so the capping step does not drain the tank first.
	s.drive.fuel = FullTank
	if err := s.Accelerate(); err != nil {
		t.Fatalf("Accelerate: %v", err)
	}
	if s.Speed() != 320 {
		t.Fatalf("Speed() = %v, want capped at 320", s.Speed())
	}
}

func TestSportsCarDescribeShowsTurbo(t *testing.T) {
	s := NewSportsCar("GT", "red")
	if !strings.Contains(s.Describe(), "Turbo: off") {
		t.Fatalf("Describe() missing turbo line:\n%s", s.Describe())
	}
	if err := s.TurnOn(); err != nil {
		t.Fatalf("TurnOn: %v", err)
	}
	if err := s.EnableTurbo(); err != nil {
		t.Fatalf("EnableTurbo: %v", err)
	}
	if !strings.Contains(s.Describe(), "Turbo: engaged") {
		t.Fatalf("Describe() missing engaged turbo:\n%s", s.Describe())
	}
}
