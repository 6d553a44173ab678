package vehicle

// Profile holds the tuning constants of one vehicle variant. Variants are
// plain data plus a little per-kind behavior, not a type hierarchy: the
// drivetrain applies whatever numbers the variant feeds it, and trucks
// override the static numbers with load-dependent ones at call time.
type Profile struct {
	// Label is the human form of the kind, used on display surfaces.
	Label string
	// AccelStep is the speed gained per Accelerate call, in km/h.
	AccelStep float64
	// AccelBurn is the fuel consumed per Accelerate call, in percent.
	AccelBurn float64
	// BrakeStep is the speed shed per Brake call or stop iteration.
	BrakeStep float64
	// MaxSpeed is the variant's top speed in km/h.
	MaxSpeed float64
	// RunningLabel and StoppedLabel are the ignition status texts.
	RunningLabel string
	StoppedLabel string
}

// FullTank is the fuel level every vehicle starts with, in percent.
const FullTank = 100.0

var profiles = map[Kind]Profile{
	KindCar: {
		Label:        "Car",
		AccelStep:    10,
		AccelBurn:    5,
		BrakeStep:    10,
		MaxSpeed:     180,
		RunningLabel: "ignition on",
		StoppedLabel: "ignition off",
	},
	KindSportsCar: {
		Label:        "Sports car",
		AccelStep:    20,
		AccelBurn:    10,
		BrakeStep:    20,
		MaxSpeed:     320,
		RunningLabel: "ignition on",
		StoppedLabel: "ignition off",
	},
	KindTruck: {
		Label:        "Truck",
		AccelStep:    10,
		AccelBurn:    8,
		BrakeStep:    10,
		MaxSpeed:     120,
		RunningLabel: "ignition on",
		StoppedLabel: "ignition off",
	},
	KindMotorcycle: {
		Label:        "Motorcycle",
		AccelStep:    15,
		AccelBurn:    3,
		BrakeStep:    15,
		MaxSpeed:     220,
		RunningLabel: "engine running",
		StoppedLabel: "engine stopped",
	},
}

// DefaultProfile returns the tuning constants for kind. Unknown kinds return
// the zero Profile; constructors only ever pass known kinds.
func DefaultProfile(kind Kind) Profile { return profiles[kind] }
