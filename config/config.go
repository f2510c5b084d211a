// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters. Gains, limits and
// rates are enumerated here so the physical model stays auditable and tests
// can substitute exaggerated constants without touching engine logic.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Vehicle   VehicleConfig   `yaml:"vehicle"`
	Aero      AeroConfig      `yaml:"aero"`
	Control   ControlConfig   `yaml:"control"`
	Input     InputConfig     `yaml:"input"`
	GForce    GForceConfig    `yaml:"gforce"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Wind      WindConfig      `yaml:"wind"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT      float64 `yaml:"dt"`      // fixed step used by headless runs
	MaxDT   float64 `yaml:"max_dt"`  // per-step clamp on host frame deltas
	Gravity float64 `yaml:"gravity"` // m/s^2, downward
}

// VehicleConfig holds the speed envelope, propulsion and initial state.
type VehicleConfig struct {
	MinSpeed         float64 `yaml:"min_speed"`         // hard floor after integration
	CruiseSpeed      float64 `yaml:"cruise_speed"`      // authority reference speed
	MaxSpeed         float64 `yaml:"max_speed"`         // dry-thrust equilibrium target
	AfterburnerSpeed float64 `yaml:"afterburner_speed"` // speed clamp is 1.1x this

	ThrustIdle        float64 `yaml:"thrust_idle"`        // m/s^2 at zero throttle
	ThrustMax         float64 `yaml:"thrust_max"`         // m/s^2 at full throttle
	AfterburnerThrust float64 `yaml:"afterburner_thrust"` // bonus while boosting
	ThrottleRate      float64 `yaml:"throttle_rate"`      // throttle change per second

	BurnRate  float64 `yaml:"burn_rate"`  // afterburner fuel drain per second
	RegenRate float64 `yaml:"regen_rate"` // fuel regeneration per second
	FuelFloor float64 `yaml:"fuel_floor"` // boost cuts out at or below this

	InitialAltitude float64 `yaml:"initial_altitude"`
	InitialThrottle float64 `yaml:"initial_throttle"` // cruise trim setting
	TrimPitch       float64 `yaml:"trim_pitch"`       // initial nose-up attitude, rad
}

// AeroConfig holds the aerodynamic coefficient model and force gains.
type AeroConfig struct {
	CL0           float64 `yaml:"cl0"`             // lift coefficient at zero alpha
	CLAlpha       float64 `yaml:"cl_alpha"`        // lift slope per radian
	CLMax         float64 `yaml:"cl_max"`          // symmetric lift clamp
	StallAlpha    float64 `yaml:"stall_alpha"`     // fade begins past this alpha, rad
	StallFade     float64 `yaml:"stall_fade"`      // fade band width, rad
	StallLiftLoss float64 `yaml:"stall_lift_loss"` // lift fraction lost when fully stalled

	CD0         float64 `yaml:"cd0"`          // parasitic drag
	CDAlpha     float64 `yaml:"cd_alpha"`     // drag per radian of |alpha|
	InducedDrag float64 `yaml:"induced_drag"` // k in k*cl^2
	StallDrag   float64 `yaml:"stall_drag"`   // added drag when fully stalled

	SideSlope float64 `yaml:"side_slope"` // side-force coefficient per radian of beta
	SideMax   float64 `yaml:"side_max"`   // symmetric side clamp

	LiftGain float64 `yaml:"lift_gain"` // accel = gain * coefficient * speed^2
	DragGain float64 `yaml:"drag_gain"`
	SideGain float64 `yaml:"side_gain"`

	AlignRate float64 `yaml:"align_rate"` // velocity-toward-nose helper, 1/s
}

// ControlConfig holds the rate-command control law gains and limits.
type ControlConfig struct {
	MaxPitchRate float64 `yaml:"max_pitch_rate"` // rad/s
	MaxRollRate  float64 `yaml:"max_roll_rate"`
	MaxYawRate   float64 `yaml:"max_yaw_rate"`

	PitchResponse float64 `yaml:"pitch_response"` // rate-tracking gain, 1/s
	RollResponse  float64 `yaml:"roll_response"`
	YawResponse   float64 `yaml:"yaw_response"`

	RollLevelGain    float64 `yaml:"roll_level_gain"`    // restoring toward wings level
	RollDamping      float64 `yaml:"roll_damping"`       // -rate damping
	AlphaTrimGain    float64 `yaml:"alpha_trim_gain"`    // weathercock toward trim
	PitchDamping     float64 `yaml:"pitch_damping"`      // -rate damping
	BetaGain         float64 `yaml:"beta_gain"`          // sideslip restoring
	YawDamping       float64 `yaml:"yaw_damping"`        // -rate damping
	TurnCoordination float64 `yaml:"turn_coordination"`  // roll rate to yaw coupling
	PathHoldGain     float64 `yaml:"path_hold_gain"`     // flight-path-angle hold
	PathHoldBlend    float64 `yaml:"path_hold_blend"`    // pitch input that fully disables hold
	AlphaLimit       float64 `yaml:"alpha_limit"`        // AoA limiter threshold, rad
	AlphaLimiterGain float64 `yaml:"alpha_limiter_gain"` // restoring past the limit

	AuthorityMin float64 `yaml:"authority_min"` // control authority band
	AuthorityMax float64 `yaml:"authority_max"`
}

// InputConfig holds virtual-stick shaping parameters.
type InputConfig struct {
	Deadzone    float64 `yaml:"deadzone"`    // stick magnitude treated as zero
	Expo        float64 `yaml:"expo"`        // shaping exponent: sign(x)*|x|^(1+expo)
	StickDecay  float64 `yaml:"stick_decay"` // re-centering time constant, seconds
	Sensitivity float64 `yaml:"sensitivity"` // stick units per pointer pixel
}

// GForceConfig holds G estimate smoothing and display clamping.
type GForceConfig struct {
	ClampMin  float64 `yaml:"clamp_min"`
	ClampMax  float64 `yaml:"clamp_max"`
	Smoothing float64 `yaml:"smoothing"` // exponential approach rate, 1/s
}

// TerrainConfig holds elevation synthesis and ground-contact parameters.
type TerrainConfig struct {
	BaseScale      float64 `yaml:"base_scale"`
	BaseAmplitude  float64 `yaml:"base_amplitude"`
	Octaves        int     `yaml:"octaves"`
	RidgeScale     float64 `yaml:"ridge_scale"`
	RidgeAmplitude float64 `yaml:"ridge_amplitude"`
	MinAltitude    float64 `yaml:"min_altitude"` // ground clearance clamp, meters

	// Presentation-only: elevation sample window drawn around the vehicle.
	GridStep   float64 `yaml:"grid_step"`   // meters between grid samples
	GridRadius int     `yaml:"grid_radius"` // samples each side of the vehicle
}

// WindConfig holds the gust disturbance field parameters.
type WindConfig struct {
	Amplitude float64 `yaml:"amplitude"`  // gust acceleration, m/s^2 (0 = calm)
	Scale     float64 `yaml:"scale"`      // spatial frequency
	TimeScale float64 `yaml:"time_scale"` // temporal frequency
}

// CameraConfig holds camera rig smoothing parameters. Framing offsets are
// fixed per mode in the camera package.
type CameraConfig struct {
	PositionTau      float64 `yaml:"position_tau"` // position damping time constant
	FOVTau           float64 `yaml:"fov_tau"`
	BaseFOV          float64 `yaml:"base_fov"` // degrees
	AfterburnerFOV   float64 `yaml:"afterburner_fov"`
	ChaseSensitivity float64 `yaml:"chase_sensitivity"` // pointer scale per mode
	CloseSensitivity float64 `yaml:"close_sensitivity"`
	SideSensitivity  float64 `yaml:"side_sensitivity"`
}

// TelemetryConfig holds telemetry aggregation parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SpeedCeiling float64 // AfterburnerSpeed * 1.1, the hard velocity clamp
	TicksPerStat int32   // stats window length in fixed-dt ticks
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present
		// in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SpeedCeiling = c.Vehicle.AfterburnerSpeed * 1.1

	ticks := int32(c.Telemetry.StatsWindow / c.Physics.DT)
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.TicksPerStat = ticks
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
