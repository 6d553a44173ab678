package vehicle

import (
	"math"

	"github.com/kilianp07/garage/core/maintenance"
)

// defaultTruckCapacity backs trucks rehydrated from documents that predate
// the capacity field.
const defaultTruckCapacity = 1000.0

// Snapshot is the wire form of one vehicle in the stored fleet document. The
// type tag discriminates the variant so loading can rebuild the right
// concrete type. Kinematic fields are pointers: documents written by older
// surfaces may omit them and still load with factory defaults.
type Snapshot struct {
	Type  string `json:"type"`
	Model string `json:"model"`
	Color string `json:"color"`

	Fuel     *float64 `json:"fuel,omitempty"`
	Speed    *float64 `json:"speed,omitempty"`
	MaxSpeed *float64 `json:"maxSpeed,omitempty"`
	Ignition *bool    `json:"ignition,omitempty"`

	TurboEnabled  *bool    `json:"turboEnabled,omitempty"`
	CargoCapacity *float64 `json:"cargoCapacity,omitempty"`
	CurrentCargo  *float64 `json:"currentCargo,omitempty"`

	MaintenanceHistory []maintenance.Record `json:"maintenanceHistory"`
}

// TakeSnapshot captures the persistent state of v in wire form.
func TakeSnapshot(v Vehicle) Snapshot {
	s := Snapshot{
		Type:               string(v.Kind()),
		Model:              v.Model(),
		Color:              v.Color(),
		Fuel:               ptr(v.Fuel()),
		Speed:              ptr(v.Speed()),
		MaxSpeed:           ptr(v.MaxSpeed()),
		Ignition:           ptr(v.Running()),
		MaintenanceHistory: v.History(),
	}
	switch x := v.(type) {
	case *SportsCar:
		s.TurboEnabled = ptr(x.TurboEngaged())
	case *Truck:
		s.CargoCapacity = ptr(x.CargoCapacity())
		s.CurrentCargo = ptr(x.CurrentCargo())
	}
	return s
}

// FromSnapshot rebuilds the variant a snapshot describes. The type tag picks
// the concrete Go type; unknown tags report ErrUnknownKind so callers can
// skip the entry instead of failing the whole load. Absent kinematic fields
// fall back to factory state: full tank, standing still, ignition off.
func FromSnapshot(s Snapshot, opts ...Option) (Vehicle, error) {
	kind, err := ParseKind(s.Type)
	if err != nil {
		return nil, err
	}
	if s.MaxSpeed != nil {
		opts = append(opts, WithMaxSpeed(*s.MaxSpeed))
	}
	var v Vehicle
	var b *base
	switch kind {
	case KindCar:
		c := NewCar(s.Model, s.Color, opts...)
		v, b = c, &c.base
	case KindSportsCar:
		sc := NewSportsCar(s.Model, s.Color, opts...)
		if s.TurboEnabled != nil {
			sc.turbo = *s.TurboEnabled
		}
		v, b = sc, &sc.base
	case KindTruck:
		capacity := defaultTruckCapacity
		if s.CargoCapacity != nil && *s.CargoCapacity > 0 {
			capacity = *s.CargoCapacity
		}
		t, err := NewTruck(s.Model, s.Color, capacity, opts...)
		if err != nil {
			return nil, err
		}
		if s.CurrentCargo != nil {
			t.cargo = clamp(*s.CurrentCargo, 0, t.capacity)
		}
		v, b = t, &t.base
	case KindMotorcycle:
		m := NewMotorcycle(s.Model, s.Color, opts...)
		v, b = m, &m.base
	}
	if s.Fuel != nil {
		b.drive.fuel = clamp(*s.Fuel, 0, FullTank)
	}
	if s.Speed != nil {
		b.drive.speed = clamp(*s.Speed, 0, b.drive.maxSpeed)
	}
	if s.Ignition != nil {
		b.drive.forceState(*s.Ignition)
	}
	if len(s.MaintenanceHistory) > 0 {
		b.history = append([]maintenance.Record(nil), s.MaintenanceHistory...)
	}
	return v, nil
}

func clamp(v, lo, hi float64) float64 { return math.Min(math.Max(v, lo), hi) }

func ptr[T any](v T) *T { return &v }
