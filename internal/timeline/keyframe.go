// Package timeline provides keyframe tracks and a small playback loop
// driven by the host frame clock.
//
// A Timeline is an explicit list of (time, value) pairs per animated
// property. Times are normalized to [0, 1] and scaled by the timeline
// duration at playback.
package timeline

import (
	"math"
	"math/rand"

	"github.com/gonewx/diary/pkg/utils"
)

// Interpolation names accepted by Evaluate.
const (
	Linear        = "Linear"
	EaseIn        = "EaseIn"
	EaseOut       = "EaseOut"
	FastInOutWeak = "FastInOutWeak"
)

// Keyframe is a single point of an animation curve.
type Keyframe struct {
	Time  float64 // Normalized time (0-1)
	Value float64 // Value at this keyframe
}

// Keyframes zips parallel time and value slices into keyframes.
// Extra entries in the longer slice are ignored.
func Keyframes(times, values []float64) []Keyframe {
	n := len(times)
	if len(values) < n {
		n = len(values)
	}
	out := make([]Keyframe, n)
	for i := 0; i < n; i++ {
		out[i] = Keyframe{Time: times[i], Value: values[i]}
	}
	return out
}

// EvenlySpaced spreads values over [0, 1] with equal gaps, the way a
// keyframe list without explicit times is played.
func EvenlySpaced(values []float64) []Keyframe {
	out := make([]Keyframe, len(values))
	if len(values) == 1 {
		out[0] = Keyframe{Time: 0, Value: values[0]}
		return out
	}
	last := float64(len(values) - 1)
	for i, v := range values {
		out[i] = Keyframe{Time: float64(i) / last, Value: v}
	}
	return out
}

// Evaluate calculates the interpolated value at time t (0-1).
//
// Keyframes must be sorted by Time. t is clamped to [0, 1]; before the
// first keyframe the first value is held and after the last keyframe the
// last value is held. Zero-length segments jump straight to the later
// keyframe's value.
func Evaluate(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))

	if t <= keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]

		if t > k1.Time {
			continue
		}

		span := k1.Time - k0.Time
		if span <= 0 {
			return k1.Value
		}
		ratio := ease((t-k0.Time)/span, interpolation)
		return utils.Lerp(k0.Value, k1.Value, ratio)
	}

	return keyframes[len(keyframes)-1].Value
}

func ease(ratio float64, interpolation string) float64 {
	switch interpolation {
	case EaseIn:
		return utils.EaseInQuad(ratio)
	case EaseOut:
		return utils.EaseOutQuad(ratio)
	case FastInOutWeak:
		return utils.EaseSmoothstep(ratio)
	default:
		return utils.EaseLinear(ratio)
	}
}

// RandomInRange returns a random float64 in [min, max].
// A nil rnd uses the process-wide source.
func RandomInRange(rnd *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	if rnd == nil {
		return min + rand.Float64()*(max-min)
	}
	return min + rnd.Float64()*(max-min)
}
