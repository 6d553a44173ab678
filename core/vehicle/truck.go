package vehicle

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrBadCapacity = errors.New("vehicle: cargo capacity must be positive")
	ErrBadWeight   = errors.New("vehicle: cargo weight must be positive")
)

// Truck is the load-carrying variant. Its kinematics degrade with the cargo
// ratio: a full truck accelerates at half the empty step, burns half again
// as much fuel and needs markedly longer to brake.
type Truck struct {
	base
	capacity float64
	cargo    float64
}

// NewTruck builds a parked, empty truck with a full tank. Capacity is in kg
// and must be positive.
func NewTruck(model, color string, capacity float64, opts ...Option) (*Truck, error) {
	if capacity <= 0 || math.IsNaN(capacity) || math.IsInf(capacity, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadCapacity, capacity)
	}
	t := &Truck{base: newBase(KindTruck, model, color, opts...), capacity: capacity}
	t.brakeFn = t.loadedBrakeStep
	return t, nil
}

// CargoCapacity returns the maximum load in kg.
func (t *Truck) CargoCapacity() float64 { return t.capacity }

// CurrentCargo returns the load currently on board in kg.
func (t *Truck) CurrentCargo() float64 { return t.cargo }

// cargoRatio is the load fraction in [0, 1] that the kinematic formulas key
// off.
func (t *Truck) cargoRatio() float64 { return t.cargo / t.capacity }

func (t *Truck) loadedAccelStep() float64 { return math.Max(5, 10*(1-t.cargoRatio()/2)) }
func (t *Truck) loadedAccelBurn() float64 { return 8 + 4*t.cargoRatio() }
func (t *Truck) loadedBrakeStep() float64 { return math.Max(10/(1+t.cargoRatio()), 2) }

// Load puts weight kg on board. The load may fill the truck exactly but
// never beyond capacity.
func (t *Truck) Load(weight float64) error {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: %v", ErrBadWeight, weight)
	}
	if t.cargo+weight > t.capacity {
		return fmt.Errorf("cannot load %.0f kg: only %.0f of %.0f kg capacity free", weight, t.capacity-t.cargo, t.capacity)
	}
	t.cargo += weight
	return nil
}

// Unload takes weight kg off board.
func (t *Truck) Unload(weight float64) error {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: %v", ErrBadWeight, weight)
	}
	if weight > t.cargo {
		return fmt.Errorf("cannot unload %.0f kg: only %.0f kg on board", weight, t.cargo)
	}
	t.cargo -= weight
	return nil
}

// SetCapacity replaces the cargo capacity. Changing it invalidates whatever
// load plan produced the current cargo, so the cargo resets to zero.
func (t *Truck) SetCapacity(capacity float64) error {
	if capacity <= 0 || math.IsNaN(capacity) || math.IsInf(capacity, 0) {
		return fmt.Errorf("%w: %v", ErrBadCapacity, capacity)
	}
	if capacity != t.capacity {
		t.capacity = capacity
		t.cargo = 0
	}
	return nil
}

func (t *Truck) Accelerate() error {
	return t.drive.accelerate(t.loadedAccelStep(), t.loadedAccelBurn(), t.brakeStep)
}

func (t *Truck) Describe() string {
	lines := t.describeLines()
	lines = append(lines, fmt.Sprintf("Cargo: %.0f / %.0f kg", t.cargo, t.capacity))
	return strings.Join(append(lines, t.describeTail()...), "\n")
}
