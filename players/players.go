// Package players contains the sound producing nodes of a composition.
package players

import (
	"math"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/inputs"
)

type (
	// Combiner plays the saturating sum of its children.
	Combiner struct {
		children []composer.Player
	}

	// Volume scales its child by an input rescaled to [0, 1].
	Volume struct {
		child composer.Player
		input composer.BoundedInput
	}

	// PlayInput plays a bounded input directly, rescaled to the full sample
	// range times the loudness factor.
	PlayInput struct {
		input composer.BoundedInput
	}

	// Empty plays silence.
	Empty struct{}

	// Linear plays tick * scale. It is mostly useful for checking time
	// remapping.
	Linear struct {
		scale float64
	}
)

func NewCombiner(children ...composer.Player) *Combiner {
	return &Combiner{children: children}
}

func (c *Combiner) Play(s composer.State) composer.Playable {
	var ret composer.Playable
	for _, child := range c.children {
		ret = ret.Add(child.Play(s))
	}
	return ret
}

func (c *Combiner) Children() []any {
	ret := make([]any, len(c.children))
	for i, child := range c.children {
		ret[i] = child
	}
	return ret
}

func NewVolume(child composer.Player, input composer.BoundedInput) *Volume {
	return &Volume{child: child, input: input}
}

func (v *Volume) Play(s composer.State) composer.Playable {
	return v.child.Play(s).Scale(composer.Rescale(v.input, s, 0, 1))
}

func (v *Volume) Children() []any { return []any{v.child, v.input} }

// NewToggle returns a player that plays child only while input is true.
func NewToggle(child composer.Player, input composer.BoolInput) *Volume {
	return NewVolume(child, &inputs.BoolToBounded{Input: input})
}

// NewSmoothToggle returns a player that fades child in and out following the
// input of smooth.
func NewSmoothToggle(child composer.Player, smooth *inputs.SmoothBool) *Volume {
	return NewVolume(child, smooth)
}

func NewPlayInput(input composer.BoundedInput) *PlayInput {
	return &PlayInput{input: input}
}

func (p *PlayInput) Play(s composer.State) composer.Playable {
	l := s.Consts.LoudnessFactor
	return composer.PlayableFromFloat(composer.Rescale(p.input, s, math.MinInt32*l, math.MaxInt32*l))
}

func (p *PlayInput) Children() []any { return []any{p.input} }

func (Empty) Play(composer.State) composer.Playable { return 0 }

func NewLinear(scale float64) *Linear {
	return &Linear{scale: scale}
}

func (l *Linear) Play(s composer.State) composer.Playable {
	return composer.PlayableFromFloat(float64(s.MilliTick()) / composer.MilliTicksPerTick * l.scale)
}
