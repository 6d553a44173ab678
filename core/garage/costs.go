package garage

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/garage/core/maintenance"
)

// CostSummary aggregates the informed costs of valid completed records.
type CostSummary struct {
	Records int
	Total   float64
	Mean    float64
	StdDev  float64
	Max     float64
}

// FleetCosts summarizes completed maintenance spending across the garage.
func (g *Garage) FleetCosts() CostSummary {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return summarize(g.collectCosts(""))
}

// VehicleCosts summarizes completed maintenance spending of the vehicle
// under key.
func (g *Garage) VehicleCosts(key string) (CostSummary, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.fleet[key]; !ok {
		return CostSummary{}, fmt.Errorf("%w: %s", ErrNoVehicle, key)
	}
	return summarize(g.collectCosts(key)), nil
}

func (g *Garage) collectCosts(onlyKey string) []float64 {
	var costs []float64
	for key, v := range g.fleet {
		if onlyKey != "" && key != onlyKey {
			continue
		}
		for _, r := range v.History() {
			if r.Status != maintenance.StatusCompleted || !r.IsValid() || r.Cost == nil {
				continue
			}
			costs = append(costs, *r.Cost)
		}
	}
	return costs
}

func summarize(costs []float64) CostSummary {
	s := CostSummary{Records: len(costs)}
	if len(costs) == 0 {
		return s
	}
	s.Total = floats.Sum(costs)
	s.Mean = stat.Mean(costs, nil)
	s.Max = floats.Max(costs)
	// StdDev needs at least two samples; gonum returns NaN below that.
	if len(costs) > 1 {
		s.StdDev = stat.StdDev(costs, nil)
	}
	return s
}
