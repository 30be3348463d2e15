// Package pattern decodes haptic authoring files and synthesizes a unified
// intensity curve from them
package pattern

import "encoding/json"

// InterpMode is a rendering hint for one side of a control point
type InterpMode int

const (
	// Smooth renders the segment as a linear ramp
	Smooth InterpMode = iota
	// Step renders the segment as a held value until the next point
	Step
)

// String returns the mode name
func (m InterpMode) String() string {
	if m == Step {
		return "step"
	}
	return "smooth"
}

// MarshalJSON encodes the mode as its name
func (m InterpMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a mode name
func (m *InterpMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "step" {
		*m = Step
	} else {
		*m = Smooth
	}
	return nil
}

// ControlPoint is one point of an intensity curve
type ControlPoint struct {
	Time      float64    `json:"time"`      // seconds, >= 0
	Value     float64    `json:"value"`     // normalized intensity in [0,1]
	LeftMode  InterpMode `json:"leftMode"`  // segment arriving at this point
	RightMode InterpMode `json:"rightMode"` // segment leaving this point
}

// IntensityCurve is a time-ordered piecewise intensity function. Times are
// strictly increasing with no duplicates; values are clamped to [0,1].
type IntensityCurve struct {
	Points []ControlPoint `json:"points"`
}

// Empty reports whether the curve has no control points
func (c IntensityCurve) Empty() bool {
	return len(c.Points) == 0
}

// Duration returns the time of the last control point, 0 for an empty curve
func (c IntensityCurve) Duration() float64 {
	if len(c.Points) == 0 {
		return 0
	}
	return c.Points[len(c.Points)-1].Time
}

// Peak returns the highest intensity in the curve
func (c IntensityCurve) Peak() float64 {
	peak := 0.0
	for _, p := range c.Points {
		if p.Value > peak {
			peak = p.Value
		}
	}
	return peak
}

// Options controls the final scaling pass of a synthesis call
type Options struct {
	Gain   float64 // multiplier applied to every value, unconstrained sign
	Invert bool    // output 1 - value*gain instead of value*gain
}

// DefaultOptions returns unity gain without inversion
func DefaultOptions() Options {
	return Options{Gain: 1.0}
}

// samplePoint is a raw (time, value) pair used by every intermediate
// representation before finalization
type samplePoint struct {
	Time  float64
	Value float64
}
