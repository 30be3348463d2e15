package pattern

import (
	"encoding/json"
	"fmt"
)

// note is one playable unit of a .haps material. gain is the cumulative
// product of root, vibration, melody and note gains. Keyframes are authored
// in absolute/global time, not re-zeroed per note: candidates for
// interpolation are the note's entire keyframe list even when a keyframe
// lies outside [start, end], so a boundary sample can still be anchored by
// its out-of-window neighbors.
type note struct {
	start     float64
	end       float64
	gain      float64
	keyframes []samplePoint
}

// noteDoc is the parsed form of a .haps file
type noteDoc struct {
	notes []note
}

// .haps JSON schema (Interhaptics-style haptic material)
type hapsFile struct {
	Gain      *float64       `json:"m_gain"`
	Vibration *hapsVibration `json:"m_vibration"`
}

type hapsVibration struct {
	Gain     *float64     `json:"m_gain"`
	Melodies []hapsMelody `json:"m_melodies"`
}

type hapsMelody struct {
	Gain  *float64   `json:"m_gain"`
	Mute  bool       `json:"m_mute"`
	Notes []hapsNote `json:"m_notes"`
}

type hapsNote struct {
	StartingPoint float64     `json:"m_startingPoint"`
	Length        float64     `json:"m_length"`
	Gain          *float64    `json:"m_gain"`
	HapticEffect  *hapsEffect `json:"m_hapticEffect"`
}

type hapsEffect struct {
	AmplitudeModulation *hapsModulation `json:"m_amplitudeModulation"`
}

type hapsModulation struct {
	Keyframes []hapsKeyframe `json:"m_keyframes"`
}

type hapsKeyframe struct {
	Time      float64 `json:"m_time"`
	Amplitude float64 `json:"m_amplitude"`
}

func gainOrUnity(g *float64) float64 {
	if g == nil {
		return 1
	}
	return *g
}

func parseHaps(data []byte) (*noteDoc, error) {
	var f hapsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Field: "m_vibration", Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if f.Vibration == nil {
		return nil, &ParseError{Field: "m_vibration"}
	}
	if f.Vibration.Melodies == nil {
		return nil, &ParseError{Field: "m_vibration.m_melodies"}
	}

	rootGain := gainOrUnity(f.Gain)
	vibGain := gainOrUnity(f.Vibration.Gain)

	doc := &noteDoc{}
	for _, melody := range f.Vibration.Melodies {
		if melody.Notes == nil {
			return nil, &ParseError{Field: "m_vibration.m_melodies.m_notes"}
		}
		if melody.Mute {
			continue
		}
		melGain := gainOrUnity(melody.Gain)
		for _, raw := range melody.Notes {
			n := note{
				start: raw.StartingPoint,
				end:   raw.StartingPoint + raw.Length,
				gain:  rootGain * vibGain * melGain * gainOrUnity(raw.Gain),
			}
			if n.start > n.end {
				n.start, n.end = n.end, n.start
			}
			if raw.HapticEffect != nil && raw.HapticEffect.AmplitudeModulation != nil {
				for _, kf := range raw.HapticEffect.AmplitudeModulation.Keyframes {
					n.keyframes = append(n.keyframes, samplePoint{Time: kf.Time, Value: kf.Amplitude})
				}
			}
			doc.notes = append(doc.notes, n)
		}
	}
	return doc, nil
}

// criticalTimes collects guarded note boundaries plus every keyframe time
func (d *noteDoc) criticalTimes() []float64 {
	set := newTimeSet()
	for _, n := range d.notes {
		set.addRange(n.start, n.end)
		for _, kf := range n.keyframes {
			set.add(kf.Time)
		}
	}
	return set.sorted()
}

// valueAt mixes all notes active at t, maximum wins. A curve-backed note
// contributes its interpolated keyframe value scaled by the cumulative gain;
// a note without keyframes is a flat rectangle of height clamp01(gain).
func (d *noteDoc) valueAt(t float64) float64 {
	best := 0.0
	for _, n := range d.notes {
		if !contains(n.start, n.end, t) {
			continue
		}
		var v float64
		if len(n.keyframes) > 0 {
			v = clamp01(evalKeyframes(n.keyframes, t) * n.gain)
		} else {
			v = clamp01(n.gain)
		}
		if v > best {
			best = v
		}
	}
	return clamp01(best)
}
