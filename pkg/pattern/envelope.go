package pattern

import (
	"encoding/json"
	"fmt"
)

// envelopeDoc is the parsed form of a .haptic file: author-supplied,
// time-ordered amplitude samples plus a frequency envelope that is parsed
// and retained but never folded into the intensity value.
type envelopeDoc struct {
	Amplitude []samplePoint
	Frequency []samplePoint
}

// .haptic JSON schema (Lofelt-style envelope file)
type hapticFile struct {
	Signals *struct {
		Continuous *struct {
			Envelopes *struct {
				Amplitude []hapticBreakpoint `json:"amplitude"`
				Frequency []hapticBreakpoint `json:"frequency"`
			} `json:"envelopes"`
		} `json:"continuous"`
	} `json:"signals"`
}

type hapticBreakpoint struct {
	Time      float64  `json:"time"`
	Amplitude *float64 `json:"amplitude"`
	Frequency *float64 `json:"frequency"`
}

func parseEnvelope(data []byte) (*envelopeDoc, error) {
	var f hapticFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Field: "signals", Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if f.Signals == nil {
		return nil, &ParseError{Field: "signals"}
	}
	if f.Signals.Continuous == nil {
		return nil, &ParseError{Field: "signals.continuous"}
	}
	if f.Signals.Continuous.Envelopes == nil {
		return nil, &ParseError{Field: "signals.continuous.envelopes"}
	}
	env := f.Signals.Continuous.Envelopes
	if env.Amplitude == nil {
		return nil, &ParseError{Field: "signals.continuous.envelopes.amplitude"}
	}

	doc := &envelopeDoc{
		Amplitude: make([]samplePoint, 0, len(env.Amplitude)),
		Frequency: make([]samplePoint, 0, len(env.Frequency)),
	}
	for _, bp := range env.Amplitude {
		v := 0.0
		if bp.Amplitude != nil {
			v = *bp.Amplitude
		}
		doc.Amplitude = append(doc.Amplitude, samplePoint{Time: bp.Time, Value: v})
	}
	for _, bp := range env.Frequency {
		v := 0.0
		if bp.Frequency != nil {
			v = *bp.Frequency
		}
		doc.Frequency = append(doc.Frequency, samplePoint{Time: bp.Time, Value: v})
	}
	return doc, nil
}
