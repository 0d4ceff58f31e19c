package players

import (
	"fmt"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/build"
	"github.com/composer-audio/composer/inputs"
	"github.com/composer-audio/composer/spec"
)

// Register adds the constructors of every player in this package to b.
func Register(b *build.Builder) {
	b.Players.Register("combiner", func(s *spec.Spec, b *build.Builder) (composer.Player, error) {
		children, err := build.ConsumePlayers(s, b, "children")
		if err != nil {
			return nil, err
		}
		return NewCombiner(children...), nil
	})
	b.Players.Register("volume", func(s *spec.Spec, b *build.Builder) (composer.Player, error) {
		child, err := build.ConsumePlayer(s, b, "child")
		if err != nil {
			return nil, err
		}
		in, err := build.ConsumeBounded(s, b, "input")
		if err != nil {
			return nil, err
		}
		return NewVolume(child, in), nil
	})
	b.Players.Register("toggle", func(s *spec.Spec, b *build.Builder) (composer.Player, error) {
		child, err := build.ConsumePlayer(s, b, "child")
		if err != nil {
			return nil, err
		}
		in, err := build.ConsumeBool(s, b, "input")
		if err != nil {
			return nil, err
		}
		return NewToggle(child, in), nil
	})
	b.Players.Register("smooth-toggle", func(s *spec.Spec, b *build.Builder) (composer.Player, error) {
		child, err := build.ConsumePlayer(s, b, "child")
		if err != nil {
			return nil, err
		}
		smooth, err := inputs.SmoothBoolFromSpec(s, b)
		if err != nil {
			return nil, err
		}
		return NewSmoothToggle(child, smooth), nil
	})
	b.Players.Register("wave", func(s *spec.Spec, b *build.Builder) (composer.Player, error) {
		w, err := inputs.WaveFromSpec(s, b.Consts)
		if err != nil {
			return nil, err
		}
		return NewPlayInput(w), nil
	})
	b.Players.Register("play-input", func(s *spec.Spec, b *build.Builder) (composer.Player, error) {
		in, err := build.ConsumeBounded(s, b, "input")
		if err != nil {
			return nil, err
		}
		return NewPlayInput(in), nil
	})
	b.Players.Register("sample", newSample)
	b.Players.Register("keyboard", newKeyboard)
	b.Players.Register("speed", func(s *spec.Spec, b *build.Builder) (composer.Player, error) {
		child, err := build.ConsumePlayer(s, b, "child")
		if err != nil {
			return nil, err
		}
		factor, err := spec.Consume[float64](s, "speed")
		if err != nil {
			return nil, err
		}
		return NewSpeed(child, factor)
	})
	b.Players.Register("one-off", func(s *spec.Spec, b *build.Builder) (composer.Player, error) {
		child, err := build.ConsumePlayer(s, b, "child")
		if err != nil {
			return nil, err
		}
		in, err := build.ConsumeBounded(s, b, "input")
		if err != nil {
			return nil, err
		}
		return NewOneOff(child, in), nil
	})
	b.Players.Register("empty", func(s *spec.Spec, b *build.Builder) (composer.Player, error) {
		return Empty{}, nil
	})
	b.Players.Register("linear", func(s *spec.Spec, b *build.Builder) (composer.Player, error) {
		scale, err := spec.ConsumeDefault(s, "scale", 1.0)
		if err != nil {
			return nil, err
		}
		return NewLinear(scale), nil
	})
}

func newSample(s *spec.Spec, b *build.Builder) (composer.Player, error) {
	path, err := spec.Consume[string](s, "path")
	if err != nil {
		return nil, err
	}
	start, err := composer.ConsumeTimeDefault(s, "start", composer.Time{})
	if err != nil {
		return nil, err
	}
	duration := -1.0
	if d, ok, err := composer.ConsumeOptionalTime(s, "duration"); err != nil {
		return nil, err
	} else if ok {
		duration = d.Seconds(b.Consts)
	}
	rec, err := ReadWav(b.Path(path), start.Seconds(b.Consts), duration)
	if err != nil {
		return nil, err
	}
	return NewSample(rec, b.Consts)
}

// newKeyboard pairs every child with the bool input at the same position and
// plays each child only while its input is on. With smoothing durations the
// children fade in and out instead.
func newKeyboard(s *spec.Spec, b *build.Builder) (composer.Player, error) {
	ins, err := build.ConsumeBools(s, b, "inputs")
	if err != nil {
		return nil, err
	}
	children, err := build.ConsumePlayers(s, b, "children")
	if err != nil {
		return nil, err
	}
	if len(ins) != len(children) {
		return nil, &spec.BadValueError{
			Field:  "children",
			Value:  fmt.Sprint(len(children)),
			Reason: fmt.Sprintf("expected one child per input, got %d inputs", len(ins)),
		}
	}
	var smoothing *inputs.Smoothing
	_, hasIn := s.Get("smooth-in-duration")
	_, hasOut := s.Get("smooth-out-duration")
	if hasIn || hasOut {
		if smoothing, err = inputs.SmoothingFromSpec(s); err != nil {
			return nil, err
		}
	}
	gated := make([]composer.Player, len(children))
	for i, child := range children {
		if smoothing == nil {
			gated[i] = NewToggle(child, ins[i])
			continue
		}
		sm, err := smoothing.New(ins[i], b)
		if err != nil {
			return nil, err
		}
		gated[i] = NewSmoothToggle(child, sm)
	}
	return NewCombiner(gated...), nil
}
