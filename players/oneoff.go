package players

import (
	"github.com/composer-audio/composer"
)

// OneOff plays its child from the beginning every time its trigger becomes
// positive, and silence while the trigger is not positive. The child's
// output is recorded the first time it is played and replayed from the
// recording afterwards, so every trigger sounds the same.
type OneOff struct {
	child   composer.Player
	trigger composer.BoundedInput
	history []composer.Playable
	index   uint64
}

func NewOneOff(child composer.Player, trigger composer.BoundedInput) *OneOff {
	return &OneOff{child: child, trigger: trigger}
}

func (o *OneOff) Play(s composer.State) composer.Playable {
	if o.trigger.Get(s) <= 0 {
		o.index = 0
		return 0
	}
	for uint64(len(o.history)) <= o.index {
		o.history = append(o.history, o.child.Play(s.WithTick(uint64(len(o.history)))))
	}
	ret := o.history[o.index]
	o.index++
	return ret
}

func (o *OneOff) Children() []any { return []any{o.child, o.trigger} }
