package pattern

import (
	"math"
	"testing"
)

func TestFinalizeDedupLastWriterWins(t *testing.T) {
	samples := []samplePoint{
		{Time: 1, Value: 0.2},
		{Time: 0, Value: 0.1},
		{Time: 1, Value: 0.9},
	}

	curve := finalize(samples, Options{Gain: 1}, false)

	if len(curve.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(curve.Points))
	}
	if curve.Points[0].Time != 0 || curve.Points[1].Time != 1 {
		t.Errorf("times = %v, %v, want 0, 1", curve.Points[0].Time, curve.Points[1].Time)
	}
	if curve.Points[1].Value != 0.9 {
		t.Errorf("colliding time kept value %v, want last-written 0.9", curve.Points[1].Value)
	}
}

// Unity gain without inversion must reproduce the input values exactly.
func TestFinalizeUnityIsIdentity(t *testing.T) {
	samples := []samplePoint{
		{Time: 0, Value: 0.25},
		{Time: 0.5, Value: 0.75},
		{Time: 2, Value: 1},
	}

	curve := finalize(samples, Options{Gain: 1}, false)

	for i, s := range samples {
		if curve.Points[i].Value != s.Value {
			t.Errorf("point %d value = %v, want %v", i, curve.Points[i].Value, s.Value)
		}
	}
}

func TestFinalizeEmptyInput(t *testing.T) {
	curve := finalize(nil, Options{Gain: 1}, true)
	if !curve.Empty() {
		t.Errorf("got %d points, want empty curve", len(curve.Points))
	}
}

func TestFinalizeClampsRange(t *testing.T) {
	samples := []samplePoint{
		{Time: 0, Value: 0.9},
		{Time: 1, Value: 0.1},
	}

	curve := finalize(samples, Options{Gain: 5}, false)
	if curve.Points[0].Value != 1 {
		t.Errorf("overdriven value = %v, want clamped 1", curve.Points[0].Value)
	}
	if curve.Points[1].Value != 0.5 {
		t.Errorf("scaled value = %v, want 0.5", curve.Points[1].Value)
	}

	inverted := finalize(samples, Options{Gain: 5, Invert: true}, false)
	if inverted.Points[0].Value != 0 {
		t.Errorf("inverted overdriven value = %v, want clamped 0", inverted.Points[0].Value)
	}
}

func TestClassifyStepEdges(t *testing.T) {
	samples := []samplePoint{
		{Time: 0, Value: 0},
		{Time: 0.001, Value: 0.8}, // guard gap: held edge
		{Time: 1, Value: 0.8},
	}

	curve := finalize(samples, Options{Gain: 1}, true)

	p := curve.Points
	if p[0].RightMode != Step {
		t.Error("point 0 right side should be Step")
	}
	if p[0].LeftMode != Step {
		t.Error("point 0 left side should inherit Step from its right side")
	}
	if p[1].LeftMode != Step {
		t.Error("point 1 left side should be Step")
	}
	if p[1].RightMode != Smooth {
		t.Error("point 1 right side should be Smooth")
	}
	if p[2].LeftMode != Smooth || p[2].RightMode != Smooth {
		t.Error("point 2 should be Smooth on both sides")
	}
}

func TestClassifyDisabledForEnvelope(t *testing.T) {
	samples := []samplePoint{
		{Time: 0, Value: 0},
		{Time: 0.001, Value: 1},
	}

	curve := finalize(samples, Options{Gain: 1}, false)
	for i, p := range curve.Points {
		if p.LeftMode != Smooth || p.RightMode != Smooth {
			t.Errorf("point %d modes = %v/%v, want Smooth/Smooth", i, p.LeftMode, p.RightMode)
		}
	}
}

func TestClassifyGapThreshold(t *testing.T) {
	// 1.5*epsilon is the inclusive boundary between held and linear edges.
	tests := []struct {
		name string
		gap  float64
		want InterpMode
	}{
		{"inside guard distance", 0.0014, Step},
		{"at guard distance", 1.5 * edgeEpsilon, Step},
		{"beyond guard distance", 0.002, Smooth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := []samplePoint{
				{Time: 0, Value: 0},
				{Time: tt.gap, Value: 1},
			}
			curve := finalize(samples, Options{Gain: 1}, true)
			if got := curve.Points[0].RightMode; got != tt.want {
				t.Errorf("gap %v classified %v, want %v", tt.gap, got, tt.want)
			}
		})
	}
}

func TestFinalizeMonotonicAfterDedup(t *testing.T) {
	samples := []samplePoint{
		{Time: 0.3, Value: 0.1},
		{Time: 0.1, Value: 0.2},
		{Time: 0.2, Value: 0.3},
		{Time: 0.1, Value: 0.4},
	}

	curve := finalize(samples, Options{Gain: 1}, true)
	for i := 1; i < len(curve.Points); i++ {
		if curve.Points[i].Time <= curve.Points[i-1].Time {
			t.Fatalf("times not strictly increasing: %v", curve.Points)
		}
	}
	if math.Abs(curve.Points[0].Value-0.4) > 1e-9 {
		t.Errorf("duplicate time 0.1 kept %v, want 0.4", curve.Points[0].Value)
	}
}
