package metrics

import "time"

// VehicleOpEvent records one vehicle operation and its outcome.
type VehicleOpEvent struct {
	Op         string
	VehicleKey string
	Kind       string
	Rejected   bool
	Time       time.Time
}

// Sink records garage activity for observability purposes.
type Sink interface {
	RecordVehicleOp(ev VehicleOpEvent) error
}

// PersistenceEvent captures one save or load of the fleet slot.
type PersistenceEvent struct {
	Op      string // "save" or "load"
	Outcome string // "ok", "error", "corrupt" or "missing"
	Bytes   int
	Time    time.Time
}

// PersistenceRecorder is implemented by sinks able to record persistence
// rounds.
type PersistenceRecorder interface {
	RecordPersistence(ev PersistenceEvent) error
}

// MaintenanceEvent records one accepted maintenance record.
type MaintenanceEvent struct {
	VehicleKey   string
	Status       string
	Cost         float64
	CostInformed bool
	Time         time.Time
}

// MaintenanceRecorder is implemented by sinks able to record accepted
// maintenance records.
type MaintenanceRecorder interface {
	RecordMaintenance(ev MaintenanceEvent) error
}

// FleetSizeRecorder records the number of vehicles registered in the garage.
type FleetSizeRecorder interface {
	RecordFleetSize(size int) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordVehicleOp(VehicleOpEvent) error     { return nil }
func (NopSink) RecordPersistence(PersistenceEvent) error { return nil }
func (NopSink) RecordMaintenance(MaintenanceEvent) error { return nil }
func (NopSink) RecordFleetSize(int) error                { return nil }
