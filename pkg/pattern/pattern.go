package pattern

import (
	"path/filepath"
	"strings"
)

// Format represents a haptic authoring file format
type Format string

const (
	FormatEnvelope Format = "haptic" // pre-sampled amplitude/frequency envelopes
	FormatAHAP     Format = "ahap"   // event pattern with parameter curves
	FormatHaps     Format = "haps"   // hierarchical melody/note material
	FormatUnknown  Format = "unknown"
)

// Timing constants shared by the critical-time builder and the evaluators.
const (
	// edgeEpsilon is inserted just before/after a feature boundary so the
	// output steps sharply instead of interpolating across it
	edgeEpsilon = 0.001
	// transientWidth is the active duration of a transient event
	transientWidth = 0.004
	// containTolerance absorbs float error in range-containment checks
	containTolerance = 1e-6
)

// DetectFormat detects the format of a file based on its extension
func DetectFormat(filename string) Format {
	return DetectFormatExt(filepath.Ext(filename))
}

// DetectFormatExt maps an extension (with or without the leading dot,
// case-insensitive) to a format
func DetectFormatExt(ext string) Format {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "haptic":
		return FormatEnvelope
	case "ahap":
		return FormatAHAP
	case "haps":
		return FormatHaps
	default:
		return FormatUnknown
	}
}

// SupportedExtensions returns the recognized file extensions
func SupportedExtensions() []string {
	return []string{".haptic", ".ahap", ".haps"}
}

// Synthesize decodes a haptic document and produces its intensity curve.
//
// On any parse failure the returned curve is empty and the error describes
// the failure; callers are expected to log it and continue, never to treat
// it as fatal. The call is pure: no I/O, no state shared between calls.
func Synthesize(data []byte, ext string, opts Options) (IntensityCurve, error) {
	switch DetectFormatExt(ext) {
	case FormatEnvelope:
		doc, err := parseEnvelope(data)
		if err != nil {
			return IntensityCurve{}, err
		}
		// The amplitude list is already the raw sample set; no critical-time
		// pass, and every segment renders as a linear ramp.
		return finalize(doc.Amplitude, opts, false), nil

	case FormatAHAP:
		doc, err := parseAHAP(data)
		if err != nil {
			return IntensityCurve{}, err
		}
		samples := sampleAt(doc.criticalTimes(), doc.valueAt)
		return finalize(samples, opts, true), nil

	case FormatHaps:
		doc, err := parseHaps(data)
		if err != nil {
			return IntensityCurve{}, err
		}
		samples := sampleAt(doc.criticalTimes(), doc.valueAt)
		return finalize(samples, opts, true), nil

	default:
		return IntensityCurve{}, &UnsupportedFormatError{Ext: ext}
	}
}

// SynthesizeFile is a convenience wrapper that dispatches on a filename
// instead of a bare extension
func SynthesizeFile(filename string, data []byte, opts Options) (IntensityCurve, error) {
	return Synthesize(data, filepath.Ext(filename), opts)
}

// sampleAt evaluates a document at every critical time
func sampleAt(times []float64, valueAt func(float64) float64) []samplePoint {
	samples := make([]samplePoint, 0, len(times))
	for _, t := range times {
		samples = append(samples, samplePoint{Time: t, Value: valueAt(t)})
	}
	return samples
}
