package garage

import (
	"fmt"
	"sort"
	"time"

	"github.com/kilianp07/garage/core/maintenance"
)

// Appointment is one upcoming scheduled service.
type Appointment struct {
	VehicleKey  string
	VehicleName string
	Record      maintenance.Record
	At          time.Time
}

// UpcomingMaintenance lists every valid scheduled record resolving at or
// after the current moment, fleet-wide, soonest first. Invalid records and
// records whose moment has passed never produce reminders.
func (g *Garage) UpcomingMaintenance() []Appointment {
	g.mu.RLock()
	defer g.mu.RUnlock()
	now := g.now()
	var out []Appointment
	for _, key := range sortedKeys(g.fleet) {
		v := g.fleet[key]
		for _, r := range v.History() {
			if r.Status != maintenance.StatusScheduled || !r.IsValid() {
				continue
			}
			at, ok := r.ResolvedAt()
			if !ok || at.Before(now) {
				continue
			}
			out = append(out, Appointment{
				VehicleKey:  key,
				VehicleName: v.DisplayName(),
				Record:      r,
				At:          at,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// ScheduleLines renders the upcoming appointments for display, one line per
// reminder.
func (g *Garage) ScheduleLines() []string {
	apps := g.UpcomingMaintenance()
	lines := make([]string, 0, len(apps))
	for _, a := range apps {
		lines = append(lines, fmt.Sprintf("%s: %s", a.VehicleName, g.fmtr.Format(a.Record)))
	}
	return lines
}
