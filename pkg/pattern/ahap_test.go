package pattern

import (
	"math"
	"testing"
)

// Two overlapping continuous events with flat intensities 0.4 and 0.7 must
// yield 0.7 in the shared window — maximum wins, never their sum or average.
func TestAHAPMaxMixNotSum(t *testing.T) {
	doc := `{"Version":1,"Pattern":[
		{"Event":{"Time":0,"EventType":"HapticContinuous","EventDuration":1,"EventParameters":[{"ParameterID":"HapticIntensity","ParameterValue":0.4}]}},
		{"Event":{"Time":0,"EventType":"HapticContinuous","EventDuration":1,"EventParameters":[{"ParameterID":"HapticIntensity","ParameterValue":0.7}]}}
	]}`

	curve, err := Synthesize([]byte(doc), ".ahap", DefaultOptions())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	wantTimes := []float64{0, 1, 1.001}
	wantValues := []float64{0.7, 0.7, 0}
	if len(curve.Points) != len(wantTimes) {
		t.Fatalf("got %d points, want %d", len(curve.Points), len(wantTimes))
	}
	for i, p := range curve.Points {
		if math.Abs(p.Time-wantTimes[i]) > 1e-9 {
			t.Errorf("point %d time = %v, want %v", i, p.Time, wantTimes[i])
		}
		if math.Abs(p.Value-wantValues[i]) > 1e-9 {
			t.Errorf("point %d value = %v, want %v", i, p.Value, wantValues[i])
		}
	}
}

func TestAHAPTransientWidth(t *testing.T) {
	doc := `{"Pattern":[
		{"Event":{"Time":2.0,"EventType":"HapticTransient","EventParameters":[{"ParameterID":"HapticIntensity","ParameterValue":0.9}]}}
	]}`

	curve, err := Synthesize([]byte(doc), ".ahap", DefaultOptions())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	// Guard samples epsilon outside the [2.0, 2.004] window plus the window
	// edges themselves must all appear.
	wantTimes := []float64{0, 1.999, 2.0, 2.004, 2.005}
	wantValues := []float64{0, 0, 0.9, 0.9, 0}
	if len(curve.Points) != len(wantTimes) {
		t.Fatalf("got %d points, want %d: %+v", len(curve.Points), len(wantTimes), curve.Points)
	}
	for i, p := range curve.Points {
		if math.Abs(p.Time-wantTimes[i]) > 1e-9 {
			t.Errorf("point %d time = %v, want %v", i, p.Time, wantTimes[i])
		}
		if math.Abs(p.Value-wantValues[i]) > 1e-9 {
			t.Errorf("point %d value = %v, want %v", i, p.Value, wantValues[i])
		}
	}

	// The held edges around the window render as steps.
	if curve.Points[1].RightMode != Step || curve.Points[2].LeftMode != Step {
		t.Error("leading window edge should be classified Step")
	}
	if curve.Points[3].RightMode != Step || curve.Points[4].LeftMode != Step {
		t.Error("trailing window edge should be classified Step")
	}

	// Inside the window the evaluator holds the transient's intensity;
	// outside it contributes nothing.
	parsed, err := parseAHAP([]byte(doc))
	if err != nil {
		t.Fatalf("parseAHAP() error = %v", err)
	}
	if v := parsed.valueAt(2.002); math.Abs(v-0.9) > 1e-9 {
		t.Errorf("valueAt(2.002) = %v, want 0.9", v)
	}
	if v := parsed.valueAt(1.0); v != 0 {
		t.Errorf("valueAt(1.0) = %v, want 0", v)
	}
}

func TestAHAPDefaultIntensities(t *testing.T) {
	// No HapticIntensity parameter: continuous defaults to 0, transient to 1.
	doc := `{"Pattern":[
		{"Event":{"Time":0,"EventType":"HapticContinuous","EventDuration":1}},
		{"Event":{"Time":5,"EventType":"HapticTransient"}}
	]}`

	parsed, err := parseAHAP([]byte(doc))
	if err != nil {
		t.Fatalf("parseAHAP() error = %v", err)
	}
	if v := parsed.valueAt(0.5); v != 0 {
		t.Errorf("continuous default = %v, want 0", v)
	}
	if v := parsed.valueAt(5.002); v != 1 {
		t.Errorf("transient default = %v, want 1", v)
	}
}

func TestAHAPCurveModulatesContinuous(t *testing.T) {
	doc := `{"Pattern":[
		{"Event":{"Time":0,"EventType":"HapticContinuous","EventDuration":2,"EventParameters":[{"ParameterID":"HapticIntensity","ParameterValue":0.5}]}},
		{"ParameterCurve":{"ParameterID":"HapticIntensityControl","Time":0,"ParameterCurveControlPoints":[
			{"Time":0,"ParameterValue":0},{"Time":1,"ParameterValue":1}
		]}}
	]}`

	parsed, err := parseAHAP([]byte(doc))
	if err != nil {
		t.Fatalf("parseAHAP() error = %v", err)
	}

	tests := []struct {
		time float64
		want float64
	}{
		{0, 0},
		{0.5, 0.5},  // linear interpolation inside the curve
		{1, 1},
		{1.5, 0.5},  // curve range ended: fall back to the flat parameter
	}
	for _, tt := range tests {
		if v := parsed.valueAt(tt.time); math.Abs(v-tt.want) > 1e-9 {
			t.Errorf("valueAt(%v) = %v, want %v", tt.time, v, tt.want)
		}
	}
}

func TestAHAPCurveOffsetShiftsRange(t *testing.T) {
	doc := `{"Pattern":[
		{"Event":{"Time":0,"EventType":"HapticContinuous","EventDuration":4,"EventParameters":[{"ParameterID":"HapticIntensity","ParameterValue":0.2}]}},
		{"ParameterCurve":{"ParameterID":"HapticIntensityControl","Time":2,"ParameterCurveControlPoints":[
			{"Time":0,"ParameterValue":0.8},{"Time":1,"ParameterValue":0.8}
		]}}
	]}`

	parsed, err := parseAHAP([]byte(doc))
	if err != nil {
		t.Fatalf("parseAHAP() error = %v", err)
	}

	// Curve is active over absolute [2,3] only.
	if v := parsed.valueAt(1); math.Abs(v-0.2) > 1e-9 {
		t.Errorf("valueAt(1) = %v, want flat 0.2", v)
	}
	if v := parsed.valueAt(2.5); math.Abs(v-0.8) > 1e-9 {
		t.Errorf("valueAt(2.5) = %v, want curve 0.8", v)
	}
}

func TestAHAPIgnoresNonIntensityCurves(t *testing.T) {
	doc := `{"Pattern":[
		{"Event":{"Time":0,"EventType":"HapticContinuous","EventDuration":1,"EventParameters":[{"ParameterID":"HapticIntensity","ParameterValue":0.3}]}},
		{"ParameterCurve":{"ParameterID":"HapticSharpnessControl","Time":0,"ParameterCurveControlPoints":[
			{"Time":0,"ParameterValue":1},{"Time":1,"ParameterValue":1}
		]}}
	]}`

	parsed, err := parseAHAP([]byte(doc))
	if err != nil {
		t.Fatalf("parseAHAP() error = %v", err)
	}
	if len(parsed.curves) != 0 {
		t.Fatalf("got %d curves, want 0 (sharpness must not participate)", len(parsed.curves))
	}
	if v := parsed.valueAt(0.5); math.Abs(v-0.3) > 1e-9 {
		t.Errorf("valueAt(0.5) = %v, want 0.3", v)
	}
}

func TestAHAPReversedDurationNormalized(t *testing.T) {
	doc := `{"Pattern":[
		{"Event":{"Time":2,"EventType":"HapticContinuous","EventDuration":-1,"EventParameters":[{"ParameterID":"HapticIntensity","ParameterValue":0.6}]}}
	]}`

	parsed, err := parseAHAP([]byte(doc))
	if err != nil {
		t.Fatalf("parseAHAP() error = %v", err)
	}
	ev := parsed.events[0]
	if ev.start != 1 || ev.end != 2 {
		t.Errorf("event range = [%v,%v], want [1,2]", ev.start, ev.end)
	}
	if v := parsed.valueAt(1.5); math.Abs(v-0.6) > 1e-9 {
		t.Errorf("valueAt(1.5) = %v, want 0.6", v)
	}
}

func TestAHAPSkipsUnknownEventTypes(t *testing.T) {
	doc := `{"Pattern":[
		{"Event":{"Time":0,"EventType":"AudioCustom","EventDuration":3}},
		{"Event":{"Time":0,"EventType":"HapticTransient"}}
	]}`

	parsed, err := parseAHAP([]byte(doc))
	if err != nil {
		t.Fatalf("parseAHAP() error = %v", err)
	}
	if len(parsed.events) != 1 {
		t.Errorf("got %d events, want 1", len(parsed.events))
	}
	if parsed.events[0].kind != kindTransient {
		t.Error("remaining event should be the transient")
	}
}

func TestAHAPEmptyPatternIsValid(t *testing.T) {
	curve, err := Synthesize([]byte(`{"Pattern":[]}`), ".ahap", DefaultOptions())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	// Only the origin sample remains, at intensity 0.
	if len(curve.Points) != 1 || curve.Points[0].Value != 0 {
		t.Errorf("got %+v, want single zero point", curve.Points)
	}
}
