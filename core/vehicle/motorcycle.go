package vehicle

import "strings"

// Motorcycle is the light variant: quick off the line, frugal on fuel, and
// its status surface speaks of an engine rather than an ignition.
type Motorcycle struct {
	base
}

// NewMotorcycle builds a parked motorcycle with a full tank.
func NewMotorcycle(model, color string, opts ...Option) *Motorcycle {
	return &Motorcycle{base: newBase(KindMotorcycle, model, color, opts...)}
}

func (m *Motorcycle) Accelerate() error {
	return m.drive.accelerate(m.profile.AccelStep, m.profile.AccelBurn, m.brakeStep)
}

func (m *Motorcycle) Describe() string {
	return strings.Join(append(m.describeLines(), m.describeTail()...), "\n")
}
