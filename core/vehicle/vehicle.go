// Package vehicle models the garage's vehicle variants. Every variant shares
// one drivetrain for ignition, speed and fuel; what distinguishes a variant
// is its tuning profile, a couple of kind-specific operations and its wording
// on display surfaces.
package vehicle

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kilianp07/garage/core/maintenance"
)

// Kind discriminates vehicle variants, both in memory and on the wire: the
// stored fleet document tags every vehicle with its kind so loading can
// rebuild the right variant.
type Kind string

const (
	KindCar        Kind = "car"
	KindSportsCar  Kind = "sports_car"
	KindTruck      Kind = "truck"
	KindMotorcycle Kind = "motorcycle"
)

// Kinds lists every known kind in display order.
func Kinds() []Kind { return []Kind{KindCar, KindSportsCar, KindTruck, KindMotorcycle} }

// ParseKind maps s onto a known Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCar, KindSportsCar, KindTruck, KindMotorcycle:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

var (
	ErrIgnitionOff = errors.New("vehicle: ignition is off")
	ErrNoFuel      = errors.New("vehicle: fuel tank is empty")
	ErrBlankColor  = errors.New("vehicle: color must not be blank")
	ErrBlankModel  = errors.New("vehicle: model must not be blank")
	ErrUnknownKind = errors.New("vehicle: unknown kind")
)

// Vehicle is the behavior every variant exposes to the garage. Variant
// extras such as turbo or cargo handling stay on the concrete types.
type Vehicle interface {
	Kind() Kind
	Key() string
	// AssignKey records the garage slot, once, on registration.
	AssignKey(key string)
	DisplayName() string
	Model() string
	Color() string
	Speed() float64
	MaxSpeed() float64
	Fuel() float64
	Running() bool

	TurnOn() error
	TurnOff() error
	Accelerate() error
	Brake() error
	Paint(color string) error
	Rename(model string) error

	AddMaintenance(rec interface{}) error
	History() []maintenance.Record

	// Display surfaces. Describe is the detail view; Status, SpeedDisplay
	// and Info back the smaller widgets.
	Describe() string
	Status() string
	SpeedDisplay() string
	Info() string
}

// Option adjusts a vehicle at construction time.
type Option func(*base)

// WithFormatter sets the record formatter used on display surfaces.
func WithFormatter(f *maintenance.Formatter) Option {
	return func(b *base) {
		if f != nil {
			b.fmtr = f
		}
	}
}

// WithMaxSpeed overrides the variant's default top speed.
func WithMaxSpeed(v float64) Option {
	return func(b *base) {
		if v > 0 {
			b.drive.maxSpeed = v
		}
	}
}

// WithStopDelay inserts a pause between the brake steps of an engine stop,
// for surfaces that animate the slowdown.
func WithStopDelay(d time.Duration) Option {
	return func(b *base) {
		if d > 0 {
			b.drive.stepDelay = d
		}
	}
}

// base carries the state and behavior shared by every variant. Variants
// embed it and add their kind-specific operations on top.
type base struct {
	kind    Kind
	key     string
	model   string
	color   string
	profile Profile
	drive   *drivetrain
	// brakeFn overrides the profile's static brake step when set; trucks use
	// it to brake against their current load.
	brakeFn func() float64
	history []maintenance.Record
	fmtr    *maintenance.Formatter
}

func newBase(kind Kind, model, color string, opts ...Option) base {
	p := DefaultProfile(kind)
	b := base{kind: kind, model: model, color: color, profile: p, fmtr: maintenance.DefaultFormatter}
	b.drive = newDrivetrain(p.MaxSpeed)
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) brakeStep() float64 {
	if b.brakeFn != nil {
		return b.brakeFn()
	}
	return b.profile.BrakeStep
}

func (b *base) Kind() Kind  { return b.kind }
func (b *base) Key() string { return b.key }

func (b *base) AssignKey(key string) {
	if b.key == "" {
		b.key = key
	}
}

func (b *base) DisplayName() string { return b.profile.Label + " " + b.model }
func (b *base) Model() string       { return b.model }
func (b *base) Color() string       { return b.color }
func (b *base) Speed() float64      { return b.drive.speed }
func (b *base) MaxSpeed() float64   { return b.drive.maxSpeed }
func (b *base) Fuel() float64       { return b.drive.fuel }
func (b *base) Running() bool       { return b.drive.running() }

func (b *base) TurnOn() error  { return b.drive.start() }
func (b *base) TurnOff() error { return b.drive.stop(b.brakeStep) }

func (b *base) Brake() error {
	b.drive.brake(b.brakeStep())
	return nil
}

// Paint recolors the vehicle. Blank colors are refused so display surfaces
// never render an empty swatch.
func (b *base) Paint(color string) error {
	if strings.TrimSpace(color) == "" {
		return ErrBlankColor
	}
	b.color = color
	return nil
}

// Rename replaces the model name.
func (b *base) Rename(model string) error {
	if strings.TrimSpace(model) == "" {
		return ErrBlankModel
	}
	b.model = model
	return nil
}

// AddMaintenance promotes rec into a maintenance record and appends it to
// the history when it classifies as valid for its status. Rejected records
// leave the history untouched and the error lists every counted violation.
func (b *base) AddMaintenance(rec interface{}) error {
	r, err := maintenance.Promote(rec)
	if err != nil {
		return err
	}
	if errs := r.Violations(); len(errs) > 0 {
		return fmt.Errorf("maintenance record rejected: %w", errors.Join(errs...))
	}
	b.history = append(b.history, r)
	return nil
}

// History returns a copy of the full maintenance history, valid and invalid
// records alike, in insertion order.
func (b *base) History() []maintenance.Record {
	out := make([]maintenance.Record, len(b.history))
	copy(out, b.history)
	return out
}

func (b *base) Status() string {
	if b.drive.running() {
		return b.profile.RunningLabel
	}
	return b.profile.StoppedLabel
}

// SpeedDisplay renders the speed surface.
func (b *base) SpeedDisplay() string {
	return fmt.Sprintf("%.0f km/h (max %.0f km/h)", b.drive.speed, b.drive.maxSpeed)
}

// Info renders the one-line summary surface.
func (b *base) Info() string {
	return fmt.Sprintf("%s, %s, fuel %.0f%%", b.DisplayName(), b.color, b.drive.fuel)
}

// describeLines assembles the shared part of the detail surface: identity,
// fuel and the completed service history, most recent first. Records that do
// not classify as valid are counted instead of rendered.
func (b *base) describeLines() []string {
	lines := []string{
		b.DisplayName(),
		"Model: " + b.model,
		"Color: " + b.color,
		fmt.Sprintf("Fuel: %.0f%%", b.drive.fuel),
		"Completed maintenance:",
	}
	var completed []maintenance.Record
	invalid := 0
	for _, r := range b.history {
		if !r.IsValid() {
			invalid++
			continue
		}
		if r.Status == maintenance.StatusCompleted {
			completed = append(completed, r)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		ti, iok := completed[i].ResolvedAt()
		tj, jok := completed[j].ResolvedAt()
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return ti.After(tj)
	})
	if len(completed) == 0 {
		lines = append(lines, "  (none)")
	}
	for _, r := range completed {
		lines = append(lines, "  "+b.fmtr.Format(r))
	}
	switch {
	case invalid == 1:
		lines = append(lines, "  (1 invalid record not shown)")
	case invalid > 1:
		lines = append(lines, fmt.Sprintf("  (%d invalid records not shown)", invalid))
	}
	return lines
}

func (b *base) describeTail() []string {
	return []string{"Status: " + b.Status(), "Speed: " + b.SpeedDisplay()}
}
