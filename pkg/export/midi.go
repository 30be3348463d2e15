// Package export renders synthesized intensity curves into interchange
// formats for downstream haptic tooling
package export

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/hapticlab/hapticsynth/pkg/pattern"
)

const (
	ticksPerQuarter = 480
	fixedTempo      = 120.0
	// at 120 BPM with 480 TPQ one second is exactly 960 ticks
	ticksPerSecond = 960.0
	// smooth segments are densified at this interval so MIDI haptic bridges
	// see a continuous ramp rather than a single jump
	rampInterval = 0.010
)

// DefaultController is CC 11 (expression), the conventional channel for
// amplitude automation
const DefaultController uint8 = 11

// MIDIOptions selects the CC lane the curve is written to
type MIDIOptions struct {
	Controller uint8
	Channel    uint8
}

// DefaultMIDIOptions writes CC 11 on channel 0
func DefaultMIDIOptions() MIDIOptions {
	return MIDIOptions{Controller: DefaultController}
}

// ToMIDI renders the curve as a single-track Standard MIDI File carrying CC
// automation. Intensity [0,1] maps linearly to CC value [0,127]; the file
// uses a fixed 120 BPM tempo so wall-clock times survive the round trip.
func ToMIDI(curve pattern.IntensityCurve, opts MIDIOptions) ([]byte, error) {
	if curve.Empty() {
		return nil, errors.New("empty curve")
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track

	microsecondsPerBeat := uint32(60000000.0 / fixedTempo)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	var lastTick uint32
	emit := func(t, v float64) {
		tick := uint32(math.Round(t * ticksPerSecond))
		if tick < lastTick {
			tick = lastTick
		}
		cc := uint8(math.Round(math.Max(0, math.Min(1, v)) * 127))
		track.Add(tick-lastTick, midi.ControlChange(opts.Channel, opts.Controller, cc))
		lastTick = tick
	}

	points := curve.Points
	for i, p := range points {
		emit(p.Time, p.Value)
		if i == len(points)-1 {
			break
		}
		next := points[i+1]
		// Held edges keep their value until the next point; only smooth
		// segments get intermediate ramp samples.
		if p.RightMode != pattern.Smooth || next.Value == p.Value {
			continue
		}
		span := next.Time - p.Time
		for t := p.Time + rampInterval; t < next.Time-rampInterval/2; t += rampInterval {
			frac := (t - p.Time) / span
			emit(t, p.Value+(next.Value-p.Value)*frac)
		}
	}

	track.Close(0)
	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}
