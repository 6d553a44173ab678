// Package metrics provides the concrete sinks behind core/metrics: a
// Prometheus-backed sink and a fan-out over several sinks.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/garage/core/metrics"
)

// PromSink records garage activity as Prometheus metrics. The registry is
// exposed by the embedding application; this sink only populates it.
type PromSink struct {
	ops           *prometheus.CounterVec
	persistence   *prometheus.CounterVec
	maintenance   *prometheus.CounterVec
	persistedSize prometheus.Gauge
	fleetSize     prometheus.Gauge
}

// NewPromSink registers the garage metrics on reg. A nil registerer defaults
// to the global Prometheus registerer. Registering twice on the same
// registry reuses the existing collectors.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "garage_vehicle_ops_total",
		Help: "Vehicle operations handled by the garage",
	}, []string{"op", "kind", "rejected"})
	persistence := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "garage_persistence_total",
		Help: "Fleet slot saves and loads by outcome",
	}, []string{"op", "outcome"})
	maintenance := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "garage_maintenance_records_total",
		Help: "Accepted maintenance records",
	}, []string{"status", "cost_informed"})
	persistedSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "garage_persisted_bytes",
		Help: "Size of the last stored fleet document",
	})
	fleetSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "garage_fleet_vehicles",
		Help: "Vehicles currently registered in the garage",
	})

	if err := reg.Register(ops); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			ops = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(persistence); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			persistence = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(maintenance); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			maintenance = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(persistedSize); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			persistedSize = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(fleetSize); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fleetSize = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		ops:           ops,
		persistence:   persistence,
		maintenance:   maintenance,
		persistedSize: persistedSize,
		fleetSize:     fleetSize,
	}, nil
}

// RecordVehicleOp counts one vehicle operation.
func (s *PromSink) RecordVehicleOp(ev coremetrics.VehicleOpEvent) error {
	s.ops.WithLabelValues(ev.Op, ev.Kind, strconv.FormatBool(ev.Rejected)).Inc()
	return nil
}

// RecordPersistence counts one persistence round and tracks the stored size.
func (s *PromSink) RecordPersistence(ev coremetrics.PersistenceEvent) error {
	s.persistence.WithLabelValues(ev.Op, ev.Outcome).Inc()
	if ev.Op == "save" && ev.Outcome == "ok" {
		s.persistedSize.Set(float64(ev.Bytes))
	}
	return nil
}

// RecordMaintenance counts one accepted maintenance record.
func (s *PromSink) RecordMaintenance(ev coremetrics.MaintenanceEvent) error {
	s.maintenance.WithLabelValues(ev.Status, strconv.FormatBool(ev.CostInformed)).Inc()
	return nil
}

// RecordFleetSize sets the fleet gauge.
func (s *PromSink) RecordFleetSize(size int) error {
	s.fleetSize.Set(float64(size))
	return nil
}
