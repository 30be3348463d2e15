package pattern

import (
	"encoding/json"
	"fmt"
)

// AHAP parameter and event type identifiers
const (
	eventTypeContinuous = "HapticContinuous"
	eventTypeTransient  = "HapticTransient"
	paramIntensity      = "HapticIntensity"
	paramIntensityCurve = "HapticIntensityControl"
)

type eventKind int

const (
	kindContinuous eventKind = iota
	kindTransient
)

// hapticEvent is one event of an .ahap pattern. For continuous events start
// and end hold the normalized time range; for transients start is the firing
// time and end is start + transientWidth.
type hapticEvent struct {
	kind   eventKind
	start  float64
	end    float64
	params map[string]float64
}

// intensity returns the event's flat intensity parameter. Continuous events
// default to 0, transients to 1.
func (ev hapticEvent) intensity() float64 {
	if v, ok := ev.params[paramIntensity]; ok {
		return v
	}
	if ev.kind == kindTransient {
		return 1
	}
	return 0
}

// paramCurve is an intensity parameter curve: local control points shifted
// by an absolute time offset
type paramCurve struct {
	offset float64
	points []samplePoint
}

// activeAt reports whether t falls inside the curve's absolute range
func (c paramCurve) activeAt(t float64) bool {
	if len(c.points) == 0 {
		return false
	}
	first := c.offset + c.points[0].Time
	last := c.offset + c.points[len(c.points)-1].Time
	return contains(first, last, t)
}

// eval evaluates the curve at absolute time t with clamped linear
// interpolation in curve-local time
func (c paramCurve) eval(t float64) float64 {
	return evalKeyframes(c.points, t-c.offset)
}

// eventDoc is the parsed form of an .ahap file
type eventDoc struct {
	events []hapticEvent
	curves []paramCurve
}

// .ahap JSON schema (Apple Haptic Audio Pattern)
type ahapFile struct {
	Version float64     `json:"Version"`
	Pattern []ahapEntry `json:"Pattern"`
}

type ahapEntry struct {
	Event          *ahapEvent `json:"Event"`
	ParameterCurve *ahapCurve `json:"ParameterCurve"`
}

type ahapEvent struct {
	Time            float64         `json:"Time"`
	EventType       string          `json:"EventType"`
	EventDuration   float64         `json:"EventDuration"`
	EventParameters []ahapParameter `json:"EventParameters"`
}

type ahapParameter struct {
	ParameterID    string  `json:"ParameterID"`
	ParameterValue float64 `json:"ParameterValue"`
}

type ahapCurve struct {
	ParameterID string           `json:"ParameterID"`
	Time        float64          `json:"Time"`
	Points      []ahapCurvePoint `json:"ParameterCurveControlPoints"`
}

type ahapCurvePoint struct {
	Time           float64 `json:"Time"`
	ParameterValue float64 `json:"ParameterValue"`
}

func parseAHAP(data []byte) (*eventDoc, error) {
	var f ahapFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Field: "Pattern", Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if f.Pattern == nil {
		return nil, &ParseError{Field: "Pattern"}
	}

	doc := &eventDoc{}
	for _, entry := range f.Pattern {
		if entry.Event != nil {
			ev, ok := decodeAHAPEvent(entry.Event)
			if ok {
				doc.events = append(doc.events, ev)
			}
		}
		// Only the intensity-control parameter participates in mixing;
		// sharpness and other curves are ignored.
		if entry.ParameterCurve != nil && entry.ParameterCurve.ParameterID == paramIntensityCurve {
			c := paramCurve{offset: entry.ParameterCurve.Time}
			for _, p := range entry.ParameterCurve.Points {
				c.points = append(c.points, samplePoint{Time: p.Time, Value: p.ParameterValue})
			}
			if len(c.points) > 0 {
				doc.curves = append(doc.curves, c)
			}
		}
	}
	return doc, nil
}

// decodeAHAPEvent converts a raw event, normalizing reversed continuous
// ranges. Event types other than haptic continuous/transient are skipped.
func decodeAHAPEvent(raw *ahapEvent) (hapticEvent, bool) {
	params := make(map[string]float64, len(raw.EventParameters))
	for _, p := range raw.EventParameters {
		params[p.ParameterID] = p.ParameterValue
	}

	switch raw.EventType {
	case eventTypeContinuous:
		start, end := raw.Time, raw.Time+raw.EventDuration
		if start > end {
			start, end = end, start
		}
		return hapticEvent{kind: kindContinuous, start: start, end: end, params: params}, true
	case eventTypeTransient:
		return hapticEvent{kind: kindTransient, start: raw.Time, end: raw.Time + transientWidth, params: params}, true
	default:
		return hapticEvent{}, false
	}
}

// criticalTimes collects every edge the output must preserve: guarded event
// boundaries and every curve keyframe's absolute time
func (d *eventDoc) criticalTimes() []float64 {
	set := newTimeSet()
	for _, ev := range d.events {
		set.addRange(ev.start, ev.end)
	}
	for _, c := range d.curves {
		for _, p := range c.points {
			set.add(c.offset + p.Time)
		}
	}
	return set.sorted()
}

// valueAt mixes every active contribution at time t with a maximum-wins
// policy: simultaneous haptic contributions never exceed the strongest one.
func (d *eventDoc) valueAt(t float64) float64 {
	// Intensity curves modulate every continuous event active at t, so their
	// combined value is computed once.
	curveActive := false
	curveVal := 0.0
	for _, c := range d.curves {
		if c.activeAt(t) {
			curveActive = true
			if v := c.eval(t); v > curveVal {
				curveVal = v
			}
		}
	}

	contVal, transVal := 0.0, 0.0
	for _, ev := range d.events {
		if !contains(ev.start, ev.end, t) {
			continue
		}
		switch ev.kind {
		case kindContinuous:
			v := ev.intensity()
			if curveActive {
				v = curveVal
			}
			if v > contVal {
				contVal = v
			}
		case kindTransient:
			if v := ev.intensity(); v > transVal {
				transVal = v
			}
		}
	}

	if transVal > contVal {
		return clamp01(transVal)
	}
	return clamp01(contVal)
}
