package telemetry

import "github.com/halcyon-labs/aloft/flight"

// Collector accumulates flight snapshots within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	speeds    []float64
	gs        []float64
	alphas    []float64
	altitudes []float64
	stallMax  float64
	burnSteps int
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick, for tick-to-time conversion.
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record adds one step's snapshot to the current window.
func (c *Collector) Record(snap flight.Snapshot) {
	c.speeds = append(c.speeds, snap.Speed)
	c.gs = append(c.gs, snap.GForce)
	c.alphas = append(c.alphas, snap.Alpha)
	c.altitudes = append(c.altitudes, snap.Altitude)
	if snap.StallFraction > c.stallMax {
		c.stallMax = snap.StallFraction
	}
	if snap.AfterburnerActive {
		c.burnSteps++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the accumulated samples and resets the
// collector for the next window. last is the most recent snapshot, used for
// the sampled-at-window-end fields.
func (c *Collector) Flush(currentTick int32, last flight.Snapshot) WindowStats {
	speed := ComputeSeriesStats(c.speeds)
	g := ComputeSeriesStats(c.gs)
	alpha := ComputeSeriesStats(c.alphas)
	alt := ComputeSeriesStats(c.altitudes)

	var burnFrac float64
	if len(c.speeds) > 0 {
		burnFrac = float64(c.burnSteps) / float64(len(c.speeds))
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Steps:           len(c.speeds),

		SpeedMean: speed.Mean,
		SpeedMin:  speed.Min,
		SpeedMax:  speed.Max,
		SpeedP50:  speed.P50,

		GMean: g.Mean,
		GMin:  g.Min,
		GMax:  g.Max,

		AlphaMean: alpha.Mean,
		AlphaMax:  alpha.Max,
		StallMax:  c.stallMax,

		AltitudeMean: alt.Mean,
		AltitudeMin:  alt.Min,

		Throttle:       last.Throttle,
		Fuel:           last.AfterburnerFuel,
		BurnerFraction: burnFrac,
	}

	c.windowStartTick = currentTick
	c.speeds = c.speeds[:0]
	c.gs = c.gs[:0]
	c.alphas = c.alphas[:0]
	c.altitudes = c.altitudes[:0]
	c.stallMax = 0
	c.burnSteps = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
