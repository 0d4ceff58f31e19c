package composer

// MilliTicksPerTick is the resolution of the sub-tick position kept in State.
const MilliTicksPerTick = 1000

// State is the evaluation state handed to every node. It is a small value and
// is passed by value; nodes that remap time (speed, one-off) hand a shifted
// copy to their children.
//
// The position is kept in milliticks so that nested time remapping does not
// accumulate rounding error: two nested 1.1x speed-ups stay within one tick of
// a single 1.21x speed-up.
type State struct {
	milliTick uint64
	Consts    *Consts
}

// NewState returns the state at tick zero.
func NewState(c *Consts) State {
	return State{Consts: c}
}

// Tick returns the current integer tick.
func (s State) Tick() uint64 {
	return s.milliTick / MilliTicksPerTick
}

// MilliTick returns the current position in thousandths of a tick.
func (s State) MilliTick() uint64 {
	return s.milliTick
}

// Seconds returns the current position in seconds.
func (s State) Seconds() float64 {
	return float64(s.milliTick) / MilliTicksPerTick / s.Consts.SampleHz
}

// Increment advances the state by one tick.
func (s *State) Increment() {
	s.milliTick += MilliTicksPerTick
}

// WithTick returns a copy of the state positioned at tick t.
func (s State) WithTick(t uint64) State {
	s.milliTick = t * MilliTicksPerTick
	return s
}

// WithMilliTick returns a copy of the state positioned at milliTick m.
func (s State) WithMilliTick(m uint64) State {
	s.milliTick = m
	return s
}
