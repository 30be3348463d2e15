package pattern

import (
	"math"
	"sort"
)

// timeSet collects the critical times of a document: the minimal set of
// points at which the output must be evaluated so that every event start/end,
// curve keyframe and note boundary appears exactly in the final curve.
//
// Times are rounded to 3 decimal places before insertion so deduplication
// happens by value rather than by floating bit pattern.
type timeSet struct {
	seen map[float64]struct{}
}

func newTimeSet() *timeSet {
	s := &timeSet{seen: make(map[float64]struct{})}
	s.add(0)
	return s
}

func (s *timeSet) add(t float64) {
	if t < 0 {
		t = 0
	}
	s.seen[round3(t)] = struct{}{}
}

// addRange inserts both boundaries plus a guard point epsilon outside each,
// so the curve steps sharply at the boundary instead of ramping across it.
// Reversed ranges are normalized.
func (s *timeSet) addRange(start, end float64) {
	if start > end {
		start, end = end, start
	}
	s.add(start - edgeEpsilon)
	s.add(start)
	s.add(end)
	s.add(end + edgeEpsilon)
}

// sorted returns the collected times in increasing order
func (s *timeSet) sorted() []float64 {
	times := make([]float64, 0, len(s.seen))
	for t := range s.seen {
		times = append(times, t)
	}
	sort.Float64s(times)
	return times
}

func round3(t float64) float64 {
	return math.Round(t*1000) / 1000
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// contains reports whether t lies in [start, end] within float tolerance
func contains(start, end, t float64) bool {
	return t >= start-containTolerance && t <= end+containTolerance
}

// evalKeyframes evaluates a sorted keyframe list at time t: clamped to the
// first/last value outside the list, linearly interpolated between the
// bracketing pair inside it
func evalKeyframes(points []samplePoint, t float64) float64 {
	if len(points) == 0 {
		return 0
	}
	if t <= points[0].Time {
		return points[0].Value
	}
	last := points[len(points)-1]
	if t >= last.Time {
		return last.Value
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if t > b.Time {
			continue
		}
		span := b.Time - a.Time
		if span <= 0 {
			return b.Value
		}
		frac := (t - a.Time) / span
		return a.Value + (b.Value-a.Value)*frac
	}
	return last.Value
}
