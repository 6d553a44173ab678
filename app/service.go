// Package app wires the configuration into a running garage service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/garage/config"
	"github.com/kilianp07/garage/core/events"
	"github.com/kilianp07/garage/core/garage"
	corejournal "github.com/kilianp07/garage/core/journal"
	"github.com/kilianp07/garage/core/maintenance"
	coremetrics "github.com/kilianp07/garage/core/metrics"
	corestorage "github.com/kilianp07/garage/core/storage"
	"github.com/kilianp07/garage/infra/logger"
	"github.com/kilianp07/garage/infra/metrics"
	"github.com/kilianp07/garage/infra/storage"
	"github.com/kilianp07/garage/internal/eventbus"
)

// Service owns the wired garage and the resources behind it.
type Service struct {
	Garage *garage.Garage
	// Registry carries the Prometheus collectors when metrics are enabled,
	// nil otherwise. Exposing it over HTTP is the embedder's concern.
	Registry *prometheus.Registry

	log   logger.Logger
	store corestorage.Store
	jrnl  corejournal.Journal
	bus   *eventbus.Bus[events.Event]
}

// New creates a Service from the configuration and loads the stored fleet.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.NewWithConfig("garage", cfg.Logging)

	var store corestorage.Store
	switch cfg.Storage.Backend {
	case "memory":
		store = storage.NewMemory(cfg.Storage.Quota())
	default:
		fs, err := storage.NewFile(cfg.Storage.Path, cfg.Storage.Quota())
		if err != nil {
			return nil, fmt.Errorf("file store: %w", err)
		}
		store = fs
	}

	jrnl := corejournal.Journal(corejournal.Nop{})
	if cfg.Journal.Enabled {
		r, err := corejournal.NewRotating(cfg.Journal.Path, cfg.Journal.MaxSizeMB, cfg.Journal.MaxBackups, cfg.Journal.MaxAgeDays)
		if err != nil {
			closeQuietly(logg, store)
			return nil, fmt.Errorf("journal: %w", err)
		}
		jrnl = r
	}

	fmtr, err := maintenance.NewFormatter(cfg.Display.Locale)
	if err != nil {
		closeQuietly(logg, store, jrnl)
		return nil, fmt.Errorf("display locale: %w", err)
	}

	sink := coremetrics.Sink(coremetrics.NopSink{})
	var registry *prometheus.Registry
	if cfg.Metrics.PrometheusEnabled {
		registry = prometheus.NewRegistry()
		prom, err := metrics.NewPromSink(registry)
		if err != nil {
			closeQuietly(logg, store, jrnl)
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = prom
	}

	bus := eventbus.New[events.Event]()
	g := garage.New(store,
		garage.WithLogger(logg),
		garage.WithMetrics(sink),
		garage.WithJournal(jrnl),
		garage.WithBus(bus),
		garage.WithFormatter(fmtr),
		garage.WithStopDelay(time.Duration(cfg.Vehicles.StopStepDelayMS)*time.Millisecond),
	)
	if err := g.Load(ctx); err != nil {
		bus.Close()
		closeQuietly(logg, store, jrnl)
		return nil, fmt.Errorf("load fleet: %w", err)
	}
	return &Service{Garage: g, Registry: registry, log: logg, store: store, jrnl: jrnl, bus: bus}, nil
}

// Journal exposes the operation journal for query commands.
func (s *Service) Journal() corejournal.Journal { return s.jrnl }

// Bus exposes the event bus presentation layers subscribe on.
func (s *Service) Bus() *eventbus.Bus[events.Event] { return s.bus }

// Close releases the resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	var firstErr error
	if err := s.jrnl.Close(); err != nil {
		firstErr = err
	}
	if err := s.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func closeQuietly(log logger.Logger, closers ...interface{ Close() error }) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Warnf("close during setup unwind: %v", err)
		}
	}
}
