package metrics

import coremetrics "github.com/kilianp07/garage/core/metrics"

// MultiSink fans every event out to several sinks. Optional recorders are
// forwarded only to the sinks that implement them.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink over the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordVehicleOp forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordVehicleOp(ev coremetrics.VehicleOpEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordVehicleOp(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPersistence forwards persistence rounds to capable sinks.
func (m *MultiSink) RecordPersistence(ev coremetrics.PersistenceEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.PersistenceRecorder); ok {
			if err := rec.RecordPersistence(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordMaintenance forwards accepted records to capable sinks.
func (m *MultiSink) RecordMaintenance(ev coremetrics.MaintenanceEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.MaintenanceRecorder); ok {
			if err := rec.RecordMaintenance(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordFleetSize forwards the fleet size to capable sinks.
func (m *MultiSink) RecordFleetSize(size int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.FleetSizeRecorder); ok {
			if err := rec.RecordFleetSize(size); err != nil {
				return err
			}
		}
	}
	return nil
}
