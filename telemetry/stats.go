// Package telemetry aggregates per-step flight snapshots into windowed
// statistics, logs them via slog and writes them to CSV.
package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated flight statistics for one time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Steps           int     `csv:"steps"`

	SpeedMean float64 `csv:"speed_mean"`
	SpeedMin  float64 `csv:"speed_min"`
	SpeedMax  float64 `csv:"speed_max"`
	SpeedP50  float64 `csv:"speed_p50"`

	GMean float64 `csv:"g_mean"`
	GMin  float64 `csv:"g_min"`
	GMax  float64 `csv:"g_max"`

	AlphaMean float64 `csv:"alpha_mean"`
	AlphaMax  float64 `csv:"alpha_max"`
	StallMax  float64 `csv:"stall_max"`

	AltitudeMean float64 `csv:"altitude_mean"`
	AltitudeMin  float64 `csv:"altitude_min"`

	// Sampled at window end.
	Throttle float64 `csv:"throttle"`
	Fuel     float64 `csv:"fuel"`

	// Fraction of steps the afterburner was lit.
	BurnerFraction float64 `csv:"burner_fraction"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SeriesStats summarizes a series of samples.
type SeriesStats struct {
	Mean, Min, Max, P50 float64
}

// ComputeSeriesStats calculates mean, min, max and median of a sample series.
func ComputeSeriesStats(values []float64) SeriesStats {
	n := len(values)
	if n == 0 {
		return SeriesStats{}
	}

	var sum float64
	min, max := values[0], values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return SeriesStats{
		Mean: sum / float64(n),
		Min:  min,
		Max:  max,
		P50:  Percentile(sorted, 0.50),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("steps", s.Steps),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_min", s.SpeedMin),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("g_mean", s.GMean),
		slog.Float64("g_min", s.GMin),
		slog.Float64("g_max", s.GMax),
		slog.Float64("alpha_mean", s.AlphaMean),
		slog.Float64("alpha_max", s.AlphaMax),
		slog.Float64("stall_max", s.StallMax),
		slog.Float64("altitude_mean", s.AltitudeMean),
		slog.Float64("altitude_min", s.AltitudeMin),
		slog.Float64("throttle", s.Throttle),
		slog.Float64("fuel", s.Fuel),
		slog.Float64("burner_fraction", s.BurnerFraction),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"speed_mean", s.SpeedMean,
		"speed_min", s.SpeedMin,
		"speed_max", s.SpeedMax,
		"g_mean", s.GMean,
		"g_max", s.GMax,
		"alpha_mean", s.AlphaMean,
		"alpha_max", s.AlphaMax,
		"stall_max", s.StallMax,
		"altitude_mean", s.AltitudeMean,
		"throttle", s.Throttle,
		"fuel", s.Fuel,
		"burner_fraction", s.BurnerFraction,
	)
}
