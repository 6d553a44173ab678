// Package events defines the notifications the garage publishes for
// presentation layers: which display surface of which vehicle went stale and
// how persistence rounds turned out.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Surface identifies one presentation surface of a vehicle.
type Surface string

const (
	// SurfaceDetail is the full Describe view.
	SurfaceDetail Surface = "detail"
	// SurfaceStatus is the ignition status widget.
	SurfaceStatus Surface = "status"
	// SurfaceSpeed is the speed readout.
	SurfaceSpeed Surface = "speed"
	// SurfaceInfo is the one-line summary.
	SurfaceInfo Surface = "info"
)

// Event is implemented by every notification published on the garage bus.
type Event interface {
	EventID() string
}

// Refresh tells a presentation layer that one surface of one vehicle is
// stale and should re-read its value. Surfaces pull the new state; the event
// deliberately carries none, so a missed delivery costs nothing.
type Refresh struct {
	ID         string
	VehicleKey string
	Surface    Surface
	At         time.Time
}

func (e Refresh) EventID() string { return e.ID }

// NewRefresh stamps a refresh notification with a fresh id.
func NewRefresh(vehicleKey string, surface Surface) Refresh {
	return Refresh{ID: uuid.NewString(), VehicleKey: vehicleKey, Surface: surface, At: time.Now()}
}

// Persistence reports the outcome of one save or load of the fleet slot.
type Persistence struct {
	ID    string
	Op    string // "save" or "load"
	Err   string // empty on success
	Bytes int
	At    time.Time
}

func (e Persistence) EventID() string { return e.ID }

// NewPersistence stamps a persistence notification with a fresh id.
func NewPersistence(op string, bytes int, err error) Persistence {
	p := Persistence{ID: uuid.NewString(), Op: op, Bytes: bytes, At: time.Now()}
	if err != nil {
		p.Err = err.Error()
	}
	return p
}
