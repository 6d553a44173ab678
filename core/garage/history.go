package garage

import (
	"fmt"

	"github.com/kilianp07/garage/core/maintenance"
	"github.com/kilianp07/garage/core/vehicle"
)

// HistoryEntry pairs one maintenance record with the vehicle that owns it,
// the flattened form consumed by exports.
type HistoryEntry struct {
	VehicleKey  string             `json:"vehicleKey"`
	VehicleName string             `json:"vehicle"`
	Record      maintenance.Record `json:"record"`
}

// FleetHistory flattens every maintenance record in the garage, vehicles in
// slot order, each vehicle's records in the order they were added.
func (g *Garage) FleetHistory() []HistoryEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []HistoryEntry
	for _, key := range sortedKeys(g.fleet) {
		out = append(out, historyOf(key, g.fleet[key])...)
	}
	return out
}

// VehicleHistory returns the flattened records of a single vehicle. Missing
// keys report ErrNoVehicle.
func (g *Garage) VehicleHistory(key string) ([]HistoryEntry, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.fleet[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoVehicle, key)
	}
	return historyOf(key, v), nil
}

func historyOf(key string, v vehicle.Vehicle) []HistoryEntry {
	recs := v.History()
	out := make([]HistoryEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, HistoryEntry{
			VehicleKey:  key,
			VehicleName: v.DisplayName(),
			Record:      r,
		})
	}
	return out
}
