package vehicle

import "strings"

// Car is the baseline variant: static tuning, no extras.
type Car struct {
	base
}

// NewCar builds a parked car with a full tank.
func NewCar(model, color string, opts ...Option) *Car {
	return &Car{base: newBase(KindCar, model, color, opts...)}
}

func (c *Car) Accelerate() error {
	return c.drive.accelerate(c.profile.AccelStep, c.profile.AccelBurn, c.brakeStep)
}

func (c *Car) Describe() string {
	return strings.Join(append(c.describeLines(), c.describeTail()...), "\n")
}
