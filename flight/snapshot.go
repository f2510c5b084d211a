package flight

// Snapshot is the read-only telemetry projection produced once per step and
// shared with presentation layers. It is a plain value; mutating a copy has
// no effect on the model.
type Snapshot struct {
	Time float64 // accumulated sim time, seconds

	Speed    float64
	Throttle float64
	Thrust   float64 // m/s^2 along the nose, afterburner included
	Alpha    float64 // angle of attack, rad
	Beta     float64 // sideslip, rad
	GForce   float64 // smoothed load factor

	// Aerodynamic coefficients and the accelerations they produced.
	CL        float64
	CD        float64
	CY        float64
	LiftAccel float64
	DragAccel float64
	SideAccel float64

	StallFraction float64 // 0 = clean, 1 = fully stalled
	Authority     float64 // control authority factor
	PitchInput    float64 // shaped pitch command, for HUD

	PitchRate float64
	RollRate  float64
	YawRate   float64

	AfterburnerFuel   float64
	AfterburnerActive bool
	Altitude          float64
}
