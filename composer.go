// Package composer contains the core types of the composer runtime: the
// sample type, the evaluation state, the node interfaces that players,
// inputs and outputs implement, and the constants shared by every node of a
// composition.
//
// A composition is a tree of players and inputs built from a textual
// specification (see package spec and package build). The tree is driven one
// tick at a time; every tick produces exactly one mono Playable sample which
// is written to the outputs of the composition.
package composer

import "math"

type (
	// Playable is a single mono sample. The full int32 range is available;
	// arithmetic on Playables saturates instead of wrapping around.
	Playable int32

	// Player produces one sample per tick. Play is only ever called from the
	// goroutine driving the composition, so implementations may keep mutable
	// state (ramps, caches) without locking.
	Player interface {
		Play(s State) Playable
	}

	// BoundedInput is a control signal whose values lie within the range
	// reported by Bounds. Consumers usually rescale the value to the range
	// they need with Rescale.
	BoundedInput interface {
		Get(s State) float64
		Bounds() (lower, upper float64)
	}

	// BoolInput is a boolean control signal, e.g. a key being held or a
	// timeline event being active.
	BoolInput interface {
		Get(s State) bool
	}

	// Output consumes the sample stream of a composition, one sample per
	// tick. Write may block, e.g. when the hardware has not yet played the
	// previously written audio.
	Output interface {
		Write(p Playable) error
		Close() error
	}
)

// Add returns p + o, saturating at the int32 bounds.
func (p Playable) Add(o Playable) Playable {
	s := int64(p) + int64(o)
	switch {
	case s > math.MaxInt32:
		return math.MaxInt32
	case s < math.MinInt32:
		return math.MinInt32
	}
	return Playable(s)
}

// Scale multiplies p by f, clamping the result to the int32 range.
func (p Playable) Scale(f float64) Playable {
	return PlayableFromFloat(float64(p) * f)
}

// PlayableFromFloat rounds f towards zero and clamps it to the int32 range.
// NaN maps to silence.
func PlayableFromFloat(f float64) Playable {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return Playable(f)
}

// Sum adds all the playables with saturation.
func Sum(ps ...Playable) Playable {
	var s Playable
	for _, p := range ps {
		s = s.Add(p)
	}
	return s
}

// Rescale reads the current value of in and maps it linearly from the bounds
// of the input to [lower, upper]. An input with an empty range maps to lower.
func Rescale(in BoundedInput, s State, lower, upper float64) float64 {
	lo, hi := in.Bounds()
	v := in.Get(s)
	if hi == lo {
		return lower
	}
	return (v-lo)*(upper-lower)/(hi-lo) + lower
}
