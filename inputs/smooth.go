package inputs

import (
	"github.com/composer-audio/composer"
)

// SmoothBool ramps between 0 and 1 following a bool input: up over In while
// the input is true, down over Out while it is false. The ramp is stateful
// and advances once per Get, so it must be read exactly once per tick.
//
// When Fn is set, the ramp position r is shaped by reading Fn at the tick r
// seconds into the composition and rescaling the value to [0, 1].
type SmoothBool struct {
	Input   composer.BoolInput
	In, Out composer.Time
	Fn      composer.BoundedInput

	activation float64
}

func (b *SmoothBool) Get(s composer.State) float64 {
	if b.Input.Get(s) {
		if b.activation < 1 {
			b.activation = min(b.activation+step(b.In, s.Consts), 1)
		}
	} else if b.activation > 0 {
		b.activation = max(b.activation-step(b.Out, s.Consts), 0)
	}
	if b.Fn == nil {
		return b.activation
	}
	t := composer.Time{Amount: b.activation, Unit: composer.Seconds}
	return composer.Rescale(b.Fn, s.WithTick(t.Ticks(s.Consts)), 0, 1)
}

func (b *SmoothBool) Bounds() (float64, float64) { return 0, 1 }

func (b *SmoothBool) Children() []any {
	if b.Fn == nil {
		return []any{b.Input}
	}
	return []any{b.Input, b.Fn}
}

// step is the change of the ramp per tick for a ramp lasting d. A zero
// duration jumps straight to the end.
func step(d composer.Time, c *composer.Consts) float64 {
	ticks := d.Ticks(c)
	if ticks == 0 {
		return 1
	}
	return 1 / float64(ticks)
}
