package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []float64{7}, 0.5, 7},
		{"below range", []float64{1, 2, 3}, -0.1, 1},
		{"above range", []float64{1, 2, 3}, 1.5, 3},
		{"median odd", []float64{1, 2, 3}, 0.5, 2},
		{"median even interpolates", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, 0.9, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSeriesStats(t *testing.T) {
	s := ComputeSeriesStats([]float64{120, 118, 124, 122, 116})

	if math.Abs(s.Mean-120) > 1e-9 {
		t.Errorf("mean = %v, want 120", s.Mean)
	}
	if s.Min != 116 || s.Max != 124 {
		t.Errorf("min/max = %v/%v, want 116/124", s.Min, s.Max)
	}
	if s.P50 != 120 {
		t.Errorf("p50 = %v, want 120", s.P50)
	}
}

func TestComputeSeriesStatsEmpty(t *testing.T) {
	if s := ComputeSeriesStats(nil); s != (SeriesStats{}) {
		t.Errorf("expected zero stats for empty input, got %+v", s)
	}
}

func TestComputeSeriesStatsDoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	ComputeSeriesStats(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input slice was reordered: %v", in)
	}
}
