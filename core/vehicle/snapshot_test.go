package vehicle

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/kilianp07/garage/core/maintenance"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewSportsCar("GT", "red")
	if err := s.TurnOn(); err != nil {
		t.Fatalf("TurnOn: %v", err)
	}
	if err := s.EnableTurbo(); err != nil {
		t.Fatalf("EnableTurbo: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.Accelerate(); err != nil {
			t.Fatalf("Accelerate: %v", err)
		}
	}
	rec := maintenance.Record{Date: "2023-10-05", ServiceType: "Oil change", Cost: f64(80), Status: maintenance.StatusCompleted}
	if err := s.AddMaintenance(rec); err != nil {
		t.Fatalf("AddMaintenance: %v", err)
	}

	raw, err := json.Marshal(TakeSnapshot(s))
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	restored, err := FromSnapshot(snap)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	back, ok := restored.(*SportsCar)
	if !ok {
		t.Fatalf("restored type = %T, want *SportsCar", restored)
	}
	if back.Model() != "GT" || back.Color() != "red" {
		t.Fatalf("identity = %q %q", back.Model(), back.Color())
	}
	if back.Speed() != 100 || back.Fuel() != 70 || !back.Running() {
		t.Fatalf("kinematics = speed %v fuel %v running %v", back.Speed(), back.Fuel(), back.Running())
	}
	if !back.TurboEngaged() {
		t.Fatal("turbo flag lost in round trip")
	}
	hist := back.History()
	if len(hist) != 1 || hist[0].ServiceType != rec.ServiceType || hist[0].Date != rec.Date || hist[0].Status != rec.Status {
		t.Fatalf("history = %+v", hist)
	}
	if hist[0].Cost == nil || *hist[0].Cost != 80 {
		t.Fatalf("history cost = %v, want 80", hist[0].Cost)
	}
}

func TestSnapshotTruckRoundTrip(t *testing.T) {
	tr := mustTruck(t, 1500)
	if err := tr.Load(400); err != nil {
		t.Fatalf("Load: %v", err)
	}
	restored, err := FromSnapshot(TakeSnapshot(tr))
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	back, ok := restored.(*Truck)
	if !ok {
		t.Fatalf("restored type = %T, want *Truck", restored)
	}
	if back.CargoCapacity() != 1500 || back.CurrentCargo() != 400 {
		t.Fatalf("cargo = %v / %v", back.CurrentCargo(), back.CargoCapacity())
	}
}

func TestSnapshotDefaults(t *testing.T) {
	restored, err := FromSnapshot(Snapshot{Type: "car", Model: "Uno", Color: "blue"})
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if restored.Fuel() != FullTank || restored.Speed() != 0 || restored.Running() {
		t.Fatalf("defaults = fuel %v speed %v running %v", restored.Fuel(), restored.Speed(), restored.Running())
	}
	if restored.MaxSpeed() != 180 {
		t.Fatalf("MaxSpeed() = %v, want the car profile default", restored.MaxSpeed())
	}

	truck, err := FromSnapshot(Snapshot{Type: "truck", Model: "Atego", Color: "white"})
	if err != nil {
		t.Fatalf("FromSnapshot(truck): %v", err)
	}
	if truck.(*Truck).CargoCapacity() != defaultTruckCapacity {
		t.Fatalf("capacity = %v, want default", truck.(*Truck).CargoCapacity())
	}
}

func TestSnapshotClampsStoredKinematics(t *testing.T) {
	restored, err := FromSnapshot(Snapshot{
		Type:  "car",
		Model: "Uno",
		Color: "blue",
		Fuel:  f64(250),
		Speed: f64(900),
	})
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if restored.Fuel() != FullTank {
		t.Fatalf("Fuel() = %v, want clamped to full", restored.Fuel())
	}
	if restored.Speed() != restored.MaxSpeed() {
		t.Fatalf("Speed() = %v, want clamped to max %v", restored.Speed(), restored.MaxSpeed())
	}
}

func TestSnapshotUnknownKind(t *testing.T) {
	if _, err := FromSnapshot(Snapshot{Type: "hovercraft"}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("FromSnapshot(hovercraft) = %v, want ErrUnknownKind", err)
	}
}
