package pattern

import "sort"

// finalize turns raw max-mixed samples into the finished curve: dedup and
// sort by time (last writer wins on a time collision), apply gain/invert,
// clamp, and classify each point's interpolation modes.
//
// markSteps is set for the event and note formats, where guard samples
// epsilon away from a boundary mark held edges; the envelope format is
// always fully linear. finalize performs no I/O and cannot fail; empty
// input yields an empty curve.
func finalize(samples []samplePoint, opts Options, markSteps bool) IntensityCurve {
	if len(samples) == 0 {
		return IntensityCurve{}
	}

	byTime := make(map[float64]float64, len(samples))
	for _, s := range samples {
		byTime[s.Time] = s.Value
	}
	times := make([]float64, 0, len(byTime))
	for t := range byTime {
		times = append(times, t)
	}
	sort.Float64s(times)

	points := make([]ControlPoint, 0, len(times))
	for _, t := range times {
		v := byTime[t] * opts.Gain
		if opts.Invert {
			v = 1 - v
		}
		points = append(points, ControlPoint{Time: t, Value: clamp01(v)})
	}

	classify(points, markSteps)
	return IntensityCurve{Points: points}
}

// classify assigns Step to any side whose gap to the neighbor is within the
// guard distance, Smooth otherwise. Endpoints inherit the classification of
// their only neighboring side.
func classify(points []ControlPoint, markSteps bool) {
	if !markSteps || len(points) == 0 {
		return
	}
	const stepGap = 1.5 * edgeEpsilon

	for i := range points {
		if i > 0 && points[i].Time-points[i-1].Time <= stepGap {
			points[i].LeftMode = Step
		}
		if i < len(points)-1 && points[i+1].Time-points[i].Time <= stepGap {
			points[i].RightMode = Step
		}
	}
	points[0].LeftMode = points[0].RightMode
	points[len(points)-1].RightMode = points[len(points)-1].LeftMode
}
