package config

import "fmt"

// VehiclesConfig tunes vehicle behavior shared by every variant.
type VehiclesConfig struct {
	// StopStepDelayMS pauses between the brake steps of an engine stop so
	// surfaces can animate the slowdown. Zero stops instantly.
	StopStepDelayMS int `json:"stop_step_delay_ms"`
}

// Validate checks mandatory fields.
func (c VehiclesConfig) Validate() error {
	if c.StopStepDelayMS < 0 {
		return fmt.Errorf("stop step delay must not be negative")
	}
	return nil
}
