// Package garage implements the fleet registry: one vehicle per kind slot,
// persisted as a single JSON document after every successful mutation and
// rebuilt from that document on startup.
package garage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kilianp07/garage/core/events"
	"github.com/kilianp07/garage/core/journal"
	"github.com/kilianp07/garage/core/logger"
	"github.com/kilianp07/garage/core/maintenance"
	"github.com/kilianp07/garage/core/metrics"
	"github.com/kilianp07/garage/core/storage"
	"github.com/kilianp07/garage/core/vehicle"
	"github.com/kilianp07/garage/internal/eventbus"
)

// StorageKey is the fixed slot the whole fleet document lives under.
const StorageKey = "garage.fleet"

var (
	// ErrNoVehicle reports an operation against an empty slot.
	ErrNoVehicle = errors.New("garage: no vehicle under key")
	// ErrNotPersisted marks operations that changed the fleet in memory but
	// could not write it to storage.
	ErrNotPersisted = errors.New("garage: fleet not persisted")
	// ErrUnsupportedOp reports a variant-specific operation sent to a
	// vehicle of the wrong variant.
	ErrUnsupportedOp = errors.New("garage: vehicle does not support operation")
)

// Garage owns the fleet. Every mutation runs under one lock, is journaled
// and measured, and is followed by a save of the whole fleet document so
// storage never trails memory by more than the operation in flight.
type Garage struct {
	mu    sync.RWMutex
	fleet map[string]vehicle.Vehicle

	store storage.Store
	log   logger.Logger
	sink  metrics.Sink
	jrnl  journal.Journal
	bus   *eventbus.Bus[events.Event]
	fmtr  *maintenance.Formatter
	now   func() time.Time

	vehicleOpts []vehicle.Option
}

// Option configures a Garage.
type Option func(*Garage)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(g *Garage) {
		if l != nil {
			g.log = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(s metrics.Sink) Option {
	return func(g *Garage) {
		if s != nil {
			g.sink = s
		}
	}
}

// WithJournal sets the operation journal.
func WithJournal(j journal.Journal) Option {
	return func(g *Garage) {
		if j != nil {
			g.jrnl = j
		}
	}
}

// WithBus sets the bus refresh and persistence events are published on.
func WithBus(b *eventbus.Bus[events.Event]) Option {
	return func(g *Garage) { g.bus = b }
}

// WithFormatter sets the record formatter handed to every vehicle.
func WithFormatter(f *maintenance.Formatter) Option {
	return func(g *Garage) {
		if f != nil {
			g.fmtr = f
			g.vehicleOpts = append(g.vehicleOpts, vehicle.WithFormatter(f))
		}
	}
}

// WithStopDelay sets the pause between brake steps of an engine stop.
func WithStopDelay(d time.Duration) Option {
	return func(g *Garage) {
		if d > 0 {
			g.vehicleOpts = append(g.vehicleOpts, vehicle.WithStopDelay(d))
		}
	}
}

// WithClock overrides the time source, mainly for schedule tests.
func WithClock(now func() time.Time) Option {
	return func(g *Garage) {
		if now != nil {
			g.now = now
		}
	}
}

// New creates a garage persisting to store. Call Load to pick up a
// previously stored fleet.
func New(store storage.Store, opts ...Option) *Garage {
	g := &Garage{
		fleet: make(map[string]vehicle.Vehicle),
		store: store,
		log:   logger.Nop{},
		sink:  metrics.NopSink{},
		jrnl:  journal.Nop{},
		fmtr:  maintenance.DefaultFormatter,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load replaces the in-memory fleet with the stored document. A missing
// document is a fresh start. A document that does not decode is discarded
// and its slot cleared, so one corrupt write cannot brick every later
// session; entries whose kind tag is unknown are skipped with a warning and
// the rest of the fleet still loads.
func (g *Garage) Load(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	doc, err := g.store.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		g.fleet = make(map[string]vehicle.Vehicle)
		g.recordPersistence("load", "missing", 0)
		return nil
	}
	if err != nil {
		g.recordPersistence("load", "error", 0)
		return fmt.Errorf("read fleet slot: %w", err)
	}
	var snaps map[string]vehicle.Snapshot
	if err := json.Unmarshal(doc, &snaps); err != nil {
		g.log.Warnf("stored fleet document is corrupt, starting empty: %v", err)
		if derr := g.store.Delete(ctx, StorageKey); derr != nil {
			g.log.Errorf("clear corrupt fleet slot: %v", derr)
		}
		g.fleet = make(map[string]vehicle.Vehicle)
		g.recordPersistence("load", "corrupt", len(doc))
		g.publish(events.NewPersistence("load", len(doc), err))
		g.journalEntry(ctx, "load", "", fmt.Errorf("corrupt document discarded: %w", err), "")
		return nil
	}
	fleet := make(map[string]vehicle.Vehicle, len(snaps))
	for _, key := range sortedKeys(snaps) {
		v, err := vehicle.FromSnapshot(snaps[key], g.vehicleOpts...)
		if err != nil {
			g.log.Warnf("skipping stored vehicle %q: %v", key, err)
			continue
		}
		v.AssignKey(key)
		fleet[key] = v
	}
	g.fleet = fleet
	g.recordPersistence("load", "ok", len(doc))
	g.recordFleetSize()
	g.publish(events.NewPersistence("load", len(doc), nil))
	g.journalEntry(ctx, "load", "", nil, fmt.Sprintf("%d vehicles", len(fleet)))
	return nil
}

// Save writes the whole fleet document to the slot. Mutating operations call
// it implicitly; it is exported for explicit flushes such as shutdown.
func (g *Garage) Save(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saveLocked(ctx)
}

func (g *Garage) saveLocked(ctx context.Context) error {
	snaps := make(map[string]vehicle.Snapshot, len(g.fleet))
	for key, v := range g.fleet {
		snaps[key] = vehicle.TakeSnapshot(v)
	}
	doc, err := json.Marshal(snaps)
	if err != nil {
		g.recordPersistence("save", "error", 0)
		return fmt.Errorf("encode fleet: %w", err)
	}
	if err := g.store.Put(ctx, StorageKey, doc); err != nil {
		g.recordPersistence("save", "error", len(doc))
		g.publish(events.NewPersistence("save", len(doc), err))
		return fmt.Errorf("store fleet: %w", err)
	}
	g.recordPersistence("save", "ok", len(doc))
	g.publish(events.NewPersistence("save", len(doc), nil))
	return nil
}

// CreateParams carries the user-supplied fields for Create.
type CreateParams struct {
	Model string
	Color string
	// CargoCapacity applies to trucks only, in kg. Zero keeps the current
	// capacity when updating an existing truck.
	CargoCapacity float64
}

// Create registers a vehicle under its kind's slot, or updates the vehicle
// already there in place: model, color and, for trucks, capacity are
// replaced while kinematic state and maintenance history stay untouched.
func (g *Garage) Create(ctx context.Context, kind vehicle.Kind, p CreateParams) (vehicle.Vehicle, error) {
	if _, err := vehicle.ParseKind(string(kind)); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	key := string(kind)
	if existing, ok := g.fleet[key]; ok {
		if err := updateInPlace(existing, p); err != nil {
			g.opRejected(ctx, "create", key, kind, err)
			return nil, err
		}
		return existing, g.opDone(ctx, "create", key, kind, "updated "+p.Model,
			events.SurfaceDetail, events.SurfaceInfo)
	}
	v, err := g.buildVehicle(kind, p)
	if err != nil {
		g.opRejected(ctx, "create", key, kind, err)
		return nil, err
	}
	v.AssignKey(key)
	g.fleet[key] = v
	g.recordFleetSize()
	return v, g.opDone(ctx, "create", key, kind, p.Model,
		events.SurfaceDetail, events.SurfaceStatus, events.SurfaceSpeed, events.SurfaceInfo)
}

func (g *Garage) buildVehicle(kind vehicle.Kind, p CreateParams) (vehicle.Vehicle, error) {
	if strings.TrimSpace(p.Model) == "" {
		return nil, vehicle.ErrBlankModel
	}
	if strings.TrimSpace(p.Color) == "" {
		return nil, vehicle.ErrBlankColor
	}
	switch kind {
	case vehicle.KindCar:
		return vehicle.NewCar(p.Model, p.Color, g.vehicleOpts...), nil
	case vehicle.KindSportsCar:
		return vehicle.NewSportsCar(p.Model, p.Color, g.vehicleOpts...), nil
	case vehicle.KindTruck:
		return vehicle.NewTruck(p.Model, p.Color, p.CargoCapacity, g.vehicleOpts...)
	case vehicle.KindMotorcycle:
		return vehicle.NewMotorcycle(p.Model, p.Color, g.vehicleOpts...), nil
	}
	return nil, vehicle.ErrUnknownKind
}

// updateInPlace validates before touching anything so a rejected update
// leaves the vehicle exactly as it was.
func updateInPlace(v vehicle.Vehicle, p CreateParams) error {
	if strings.TrimSpace(p.Model) == "" {
		return vehicle.ErrBlankModel
	}
	if strings.TrimSpace(p.Color) == "" {
		return vehicle.ErrBlankColor
	}
	if t, ok := v.(*vehicle.Truck); ok && p.CargoCapacity != 0 {
		if err := t.SetCapacity(p.CargoCapacity); err != nil {
			return err
		}
	}
	if err := v.Rename(p.Model); err != nil {
		return err
	}
	return v.Paint(p.Color)
}

// TurnOn starts the vehicle under key.
func (g *Garage) TurnOn(ctx context.Context, key string) error {
	return g.mutate(ctx, "turn_on", key, "", vehicle.Vehicle.TurnOn,
		events.SurfaceStatus, events.SurfaceDetail)
}

// TurnOff brakes the vehicle under key to a stop and cuts the ignition.
func (g *Garage) TurnOff(ctx context.Context, key string) error {
	return g.mutate(ctx, "turn_off", key, "", vehicle.Vehicle.TurnOff,
		events.SurfaceStatus, events.SurfaceSpeed, events.SurfaceDetail)
}

// Accelerate applies one acceleration step to the vehicle under key.
func (g *Garage) Accelerate(ctx context.Context, key string) error {
	return g.mutate(ctx, "accelerate", key, "", vehicle.Vehicle.Accelerate,
		events.SurfaceSpeed, events.SurfaceStatus, events.SurfaceDetail)
}

// Brake applies one braking step to the vehicle under key.
func (g *Garage) Brake(ctx context.Context, key string) error {
	return g.mutate(ctx, "brake", key, "", vehicle.Vehicle.Brake,
		events.SurfaceSpeed, events.SurfaceDetail)
}

// Paint recolors the vehicle under key.
func (g *Garage) Paint(ctx context.Context, key, color string) error {
	return g.mutate(ctx, "paint", key, color, func(v vehicle.Vehicle) error {
		return v.Paint(color)
	}, events.SurfaceDetail, events.SurfaceInfo)
}

// EnableTurbo engages the turbo of the sports car under key.
func (g *Garage) EnableTurbo(ctx context.Context, key string) error {
	return g.mutate(ctx, "enable_turbo", key, "", func(v vehicle.Vehicle) error {
		s, ok := v.(*vehicle.SportsCar)
		if !ok {
			return fmt.Errorf("%w: %s has no turbo", ErrUnsupportedOp, v.DisplayName())
		}
		return s.EnableTurbo()
	}, events.SurfaceDetail, events.SurfaceStatus)
}

// DisableTurbo disengages the turbo of the sports car under key.
func (g *Garage) DisableTurbo(ctx context.Context, key string) error {
	return g.mutate(ctx, "disable_turbo", key, "", func(v vehicle.Vehicle) error {
		s, ok := v.(*vehicle.SportsCar)
		if !ok {
			return fmt.Errorf("%w: %s has no turbo", ErrUnsupportedOp, v.DisplayName())
		}
		return s.DisableTurbo()
	}, events.SurfaceDetail, events.SurfaceStatus)
}

// LoadCargo puts weight kg onto the truck under key.
func (g *Garage) LoadCargo(ctx context.Context, key string, weight float64) error {
	return g.mutate(ctx, "load_cargo", key, fmt.Sprintf("%.0f kg", weight), func(v vehicle.Vehicle) error {
		t, ok := v.(*vehicle.Truck)
		if !ok {
			return fmt.Errorf("%w: %s carries no cargo", ErrUnsupportedOp, v.DisplayName())
		}
		return t.Load(weight)
	}, events.SurfaceDetail)
}

// UnloadCargo takes weight kg off the truck under key.
func (g *Garage) UnloadCargo(ctx context.Context, key string, weight float64) error {
	return g.mutate(ctx, "unload_cargo", key, fmt.Sprintf("%.0f kg", weight), func(v vehicle.Vehicle) error {
		t, ok := v.(*vehicle.Truck)
		if !ok {
			return fmt.Errorf("%w: %s carries no cargo", ErrUnsupportedOp, v.DisplayName())
		}
		return t.Unload(weight)
	}, events.SurfaceDetail)
}

// AddMaintenance validates rec and appends it to the history of the vehicle
// under key. Accepted records are also counted by the metrics sink.
func (g *Garage) AddMaintenance(ctx context.Context, key string, rec interface{}) error {
	r, err := maintenance.Promote(rec)
	if err != nil {
		g.journalEntry(ctx, "add_maintenance", key, err, "")
		return err
	}
	detail := fmt.Sprintf("%s %s on %s", r.Status, r.ServiceType, r.Date)
	err = g.mutate(ctx, "add_maintenance", key, detail, func(v vehicle.Vehicle) error {
		return v.AddMaintenance(r)
	}, events.SurfaceDetail, events.SurfaceInfo)
	if err != nil {
		return err
	}
	ev := metrics.MaintenanceEvent{VehicleKey: key, Status: string(r.Status), Time: g.now()}
	if r.Cost != nil {
		ev.Cost, ev.CostInformed = *r.Cost, true
	}
	if mr, ok := g.sink.(metrics.MaintenanceRecorder); ok {
		if merr := mr.RecordMaintenance(ev); merr != nil {
			g.log.Debugf("record maintenance metric: %v", merr)
		}
	}
	return nil
}

// mutate runs fn against the vehicle under key and, on success, journals the
// operation, persists the fleet and publishes refreshes for the surfaces the
// operation touched.
func (g *Garage) mutate(ctx context.Context, op, key, detail string, fn func(vehicle.Vehicle) error, surfaces ...events.Surface) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.fleet[key]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrNoVehicle, key)
		g.journalEntry(ctx, op, key, err, detail)
		return err
	}
	if err := fn(v); err != nil {
		g.opRejected(ctx, op, key, v.Kind(), err)
		return err
	}
	return g.opDone(ctx, op, key, v.Kind(), detail, surfaces...)
}

func (g *Garage) opRejected(ctx context.Context, op, key string, kind vehicle.Kind, err error) {
	g.journalEntry(ctx, op, key, err, "")
	g.recordOp(op, key, kind, true)
}

// opDone finishes a successful mutation. The in-memory fleet has already
// advanced; a failing save is reported as ErrNotPersisted without rolling
// the operation back.
func (g *Garage) opDone(ctx context.Context, op, key string, kind vehicle.Kind, detail string, surfaces ...events.Surface) error {
	g.journalEntry(ctx, op, key, nil, detail)
	g.recordOp(op, key, kind, false)
	for _, s := range surfaces {
		g.publish(events.NewRefresh(key, s))
	}
	if err := g.saveLocked(ctx); err != nil {
		g.log.Errorf("persist fleet after %s: %v", op, err)
		return fmt.Errorf("%w after %s: %w", ErrNotPersisted, op, err)
	}
	return nil
}

// Formatter returns the record formatter the garage renders with.
func (g *Garage) Formatter() *maintenance.Formatter { return g.fmtr }

// Vehicle returns the vehicle under key. Mutations should go through the
// garage operations so they are journaled and persisted.
func (g *Garage) Vehicle(key string) (vehicle.Vehicle, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.fleet[key]
	return v, ok
}

// Keys returns the occupied slots in sorted order.
func (g *Garage) Keys() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedKeys(g.fleet)
}

// Size returns the number of registered vehicles.
func (g *Garage) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.fleet)
}

// Describe renders the detail surface of the vehicle under key.
func (g *Garage) Describe(key string) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.fleet[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoVehicle, key)
	}
	return v.Describe(), nil
}

// DescribeFleet renders every vehicle's detail surface in slot order.
func (g *Garage) DescribeFleet() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if len(g.fleet) == 0 {
		return "The garage is empty."
	}
	var b strings.Builder
	for i, key := range sortedKeys(g.fleet) {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(g.fleet[key].Describe())
	}
	return b.String()
}

func (g *Garage) journalEntry(ctx context.Context, op, key string, opErr error, detail string) {
	e := journal.Entry{Time: g.now(), Op: op, VehicleKey: key, Detail: detail}
	if opErr != nil {
		e.Error = opErr.Error()
	}
	if err := g.jrnl.Append(ctx, e); err != nil {
		g.log.Debugf("journal %s: %v", op, err)
	}
}

func (g *Garage) recordOp(op, key string, kind vehicle.Kind, rejected bool) {
	ev := metrics.VehicleOpEvent{Op: op, VehicleKey: key, Kind: string(kind), Rejected: rejected, Time: g.now()}
	if err := g.sink.RecordVehicleOp(ev); err != nil {
		g.log.Debugf("record op metric: %v", err)
	}
}

func (g *Garage) recordPersistence(op, outcome string, bytes int) {
	rec, ok := g.sink.(metrics.PersistenceRecorder)
	if !ok {
		return
	}
	ev := metrics.PersistenceEvent{Op: op, Outcome: outcome, Bytes: bytes, Time: g.now()}
	if err := rec.RecordPersistence(ev); err != nil {
		g.log.Debugf("record persistence metric: %v", err)
	}
}

func (g *Garage) recordFleetSize() {
	rec, ok := g.sink.(metrics.FleetSizeRecorder)
	if !ok {
		return
	}
	if err := rec.RecordFleetSize(len(g.fleet)); err != nil {
		g.log.Debugf("record fleet size metric: %v", err)
	}
}

func (g *Garage) publish(e events.Event) {
	if g.bus != nil {
		g.bus.Publish(e)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
