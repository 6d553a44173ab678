// Package journal persists an append-only record of garage operations so a
// session's activity can be inspected after the fact.
package journal

import (
	"context"
	"time"
)

// Entry is one journaled garage operation. Failed operations carry the
// error text; successful ones leave it empty.
type Entry struct {
	Time       time.Time `json:"time"`
	Op         string    `json:"op"`
	VehicleKey string    `json:"vehicleKey,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Query filters journal reads. Zero fields match everything.
type Query struct {
	Start      time.Time
	End        time.Time
	VehicleKey string
	Op         string
	FailedOnly bool
}

func (q Query) matches(e Entry) bool {
	if !q.Start.IsZero() && e.Time.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && e.Time.After(q.End) {
		return false
	}
	if q.VehicleKey != "" && e.VehicleKey != q.VehicleKey {
		return false
	}
	if q.Op != "" && e.Op != q.Op {
		return false
	}
	if q.FailedOnly && e.Error == "" {
		return false
	}
	return true
}

// Journal persists entries and reads them back.
type Journal interface {
	Append(ctx context.Context, e Entry) error
	Query(ctx context.Context, q Query) ([]Entry, error)
	Close() error
}

// Nop discards appends and answers queries with nothing. It stands in when
// journaling is disabled.
type Nop struct{}

func (Nop) Append(context.Context, Entry) error           { return nil }
func (Nop) Query(context.Context, Query) ([]Entry, error) { return nil, nil }
func (Nop) Close() error                                  { return nil }
