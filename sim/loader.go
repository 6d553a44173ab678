// Package sim runs scripted garage scenarios described in YAML: a fleet to
// create, operations to apply and the state expected afterwards.
package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/garage/core/maintenance"
)

// VehicleDef describes one vehicle the scenario creates before its steps run.
type VehicleDef struct {
	Kind     string  `yaml:"kind"`
	Model    string  `yaml:"model"`
	Color    string  `yaml:"color"`
	Capacity float64 `yaml:"capacity,omitempty"`
}

// RecordDef is the YAML form of a maintenance record.
type RecordDef struct {
	Date        string   `yaml:"date"`
	ServiceType string   `yaml:"service_type"`
	Cost        *float64 `yaml:"cost,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Time        string   `yaml:"time,omitempty"`
	Status      string   `yaml:"status"`
}

func (r RecordDef) toRecord() maintenance.Record {
	return maintenance.Record{
		Date:        r.Date,
		ServiceType: r.ServiceType,
		Cost:        r.Cost,
		Description: r.Description,
		TimeOfDay:   r.Time,
		Status:      maintenance.Status(r.Status),
	}
}

// StepDef is one operation applied to one vehicle. Times repeats the
// operation; WantError flips the step's expectation so rejections can be part
// of a scenario.
type StepDef struct {
	Op        string     `yaml:"op"`
	Vehicle   string     `yaml:"vehicle"`
	Times     int        `yaml:"times,omitempty"`
	Color     string     `yaml:"color,omitempty"`
	Weight    float64    `yaml:"weight,omitempty"`
	Record    *RecordDef `yaml:"record,omitempty"`
	WantError bool       `yaml:"want_error,omitempty"`
}

// ExpectDef asserts on the state of one vehicle after the steps. Only set
// fields are checked.
type ExpectDef struct {
	Vehicle string   `yaml:"vehicle"`
	Speed   *float64 `yaml:"speed,omitempty"`
	Fuel    *float64 `yaml:"fuel,omitempty"`
	Running *bool    `yaml:"running,omitempty"`
	Cargo   *float64 `yaml:"cargo,omitempty"`
	Turbo   *bool    `yaml:"turbo,omitempty"`
	History *int     `yaml:"history,omitempty"`
}

// Scenario is one scripted garage session.
type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Vehicles    []VehicleDef `yaml:"vehicles"`
	Steps       []StepDef    `yaml:"steps"`
	Expected    []ExpectDef  `yaml:"expected"`
}

// Load reads and decodes the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	return &sc, nil
}
