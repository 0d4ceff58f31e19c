package inputs

import (
	"fmt"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/build"
	"github.com/composer-audio/composer/spec"
)

// Register adds the constructors of every input in this package to b.
func Register(b *build.Builder) {
	b.Bounded.Register("wave", func(s *spec.Spec, b *build.Builder) (composer.BoundedInput, error) {
		return WaveFromSpec(s, b.Consts)
	})
	b.Bounded.Register("function", newFunction)
	b.Bounded.Register("constant", newConstant)
	b.Bounded.Register("bool-to-bounded", func(s *spec.Spec, b *build.Builder) (composer.BoundedInput, error) {
		in, err := build.ConsumeBool(s, b, "input")
		if err != nil {
			return nil, err
		}
		return &BoolToBounded{Input: in}, nil
	})
	b.Bounded.Register("smooth-bool", func(s *spec.Spec, b *build.Builder) (composer.BoundedInput, error) {
		return SmoothBoolFromSpec(s, b)
	})
	b.Bounded.Register("input-mod", newMod)
	b.Bounded.Register("random", func(s *spec.Spec, b *build.Builder) (composer.BoundedInput, error) {
		seed, err := spec.ConsumeDefault(s, "seed", int64(0))
		if err != nil {
			return nil, err
		}
		return NewRandom(uint64(seed)), nil
	})

	b.Bools.Register("timeline", func(s *spec.Spec, b *build.Builder) (composer.BoolInput, error) {
		duration, err := composer.ConsumeTime(s, "event-duration")
		if err != nil {
			return nil, err
		}
		events, err := spec.Consume[string](s, "events")
		if err != nil {
			return nil, err
		}
		return NewTimeline(events, duration)
	})
	b.Bools.Register("bounded-to-bool", func(s *spec.Spec, b *build.Builder) (composer.BoolInput, error) {
		in, err := build.ConsumeBounded(s, b, "input")
		if err != nil {
			return nil, err
		}
		return &BoundedToBool{Input: in}, nil
	})
	b.Bools.Register("constant", func(s *spec.Spec, b *build.Builder) (composer.BoolInput, error) {
		v, err := spec.Consume[bool](s, "value")
		return ConstantBool(v), err
	})
	b.Bools.Register("not", func(s *spec.Spec, b *build.Builder) (composer.BoolInput, error) {
		in, err := build.ConsumeBool(s, b, "input")
		if err != nil {
			return nil, err
		}
		return &Not{Input: in}, nil
	})
	b.Bools.Register("key", newKey)
	b.Bools.Register("midi-note", newNote)
}

func newFunction(s *spec.Spec, b *build.Builder) (composer.BoundedInput, error) {
	name, err := spec.ConsumeDefault(s, "fn", DefaultShape)
	if err != nil {
		return nil, err
	}
	shape, err := LookupShape(name)
	if err != nil {
		return nil, err
	}
	period, err := composer.ConsumeTimeDefault(s, "period", composer.Time{Amount: 1, Unit: composer.Seconds})
	if err != nil {
		return nil, err
	}
	return NewFunction(shape, period), nil
}

func newConstant(s *spec.Spec, b *build.Builder) (composer.BoundedInput, error) {
	v, err := spec.Consume[float64](s, "value")
	if err != nil {
		return nil, err
	}
	lower, err := spec.ConsumeDefault(s, "lower", 0.0)
	if err != nil {
		return nil, err
	}
	upper, err := spec.ConsumeDefault(s, "upper", 1.0)
	if err != nil {
		return nil, err
	}
	if lower > upper {
		return nil, &spec.BadValueError{Field: "lower", Value: fmt.Sprint(lower), Reason: "must not exceed upper"}
	}
	return &Constant{Value: v, Lower: lower, Upper: upper}, nil
}

func newMod(s *spec.Spec, b *build.Builder) (composer.BoundedInput, error) {
	in, err := build.ConsumeBounded(s, b, "input")
	if err != nil {
		return nil, err
	}
	add, err := spec.ConsumeDefault(s, "add", 0.0)
	if err != nil {
		return nil, err
	}
	mult, err := spec.ConsumeDefault(s, "mult", 1.0)
	if err != nil {
		return nil, err
	}
	return &Mod{Input: in, Add: add, Mult: mult}, nil
}

// SmoothBoolFromSpec builds a SmoothBool from the "input",
// "smooth-in-duration", "smooth-out-duration" and optional "smooth-fn" fields
// of s. It is shared with the smooth-toggle player.
func SmoothBoolFromSpec(s *spec.Spec, b *build.Builder) (*SmoothBool, error) {
	in, err := build.ConsumeBool(s, b, "input")
	if err != nil {
		return nil, err
	}
	sm, err := SmoothingFromSpec(s)
	if err != nil {
		return nil, err
	}
	return sm.New(in, b)
}

// Smoothing holds the smoothing fields of a document. Every SmoothBool made
// from it builds its own shaping function.
type Smoothing struct {
	In, Out composer.Time

	fn spec.Value // nil without "smooth-fn"
}

// SmoothingFromSpec consumes "smooth-in-duration", "smooth-out-duration" and
// the optional "smooth-fn" of s. The function is built by New.
func SmoothingFromSpec(s *spec.Spec) (*Smoothing, error) {
	in, err := composer.ConsumeTime(s, "smooth-in-duration")
	if err != nil {
		return nil, err
	}
	out, err := composer.ConsumeTime(s, "smooth-out-duration")
	if err != nil {
		return nil, err
	}
	fn, _, err := spec.ConsumeOptional[spec.Value](s, "smooth-fn")
	if err != nil {
		return nil, err
	}
	return &Smoothing{In: in, Out: out, fn: fn}, nil
}

// New returns a SmoothBool following input.
func (sm *Smoothing) New(input composer.BoolInput, b *build.Builder) (*SmoothBool, error) {
	ret := &SmoothBool{Input: input, In: sm.In, Out: sm.Out}
	if sm.fn == nil {
		return ret, nil
	}
	fn, err := b.Bounded.Build(spec.Clone(sm.fn), b)
	if err != nil {
		return nil, fmt.Errorf("smooth-fn: %w", err)
	}
	ret.Fn = fn
	return ret, nil
}

func newKey(s *spec.Spec, b *build.Builder) (composer.BoolInput, error) {
	str, err := spec.Consume[string](s, "key")
	if err != nil {
		return nil, err
	}
	k, err := ParseKey(str)
	if err != nil {
		return nil, err
	}
	if b.Keys == nil {
		return nil, fmt.Errorf("keyboard: %w", build.ErrNoDevice)
	}
	return &Key{Keys: b.Keys, Key: k}, nil
}

func newNote(s *spec.Spec, b *build.Builder) (composer.BoolInput, error) {
	note, err := consumeMIDINote(s)
	if err != nil {
		return nil, err
	}
	channel, err := spec.ConsumeDefault(s, "channel", 0)
	if err != nil {
		return nil, err
	}
	if channel < 0 || channel > 16 {
		return nil, &spec.BadValueError{Field: "channel", Value: fmt.Sprint(channel), Reason: "expected 1-16, or 0 for any channel"}
	}
	if b.Notes == nil {
		return nil, fmt.Errorf("midi: %w", build.ErrNoDevice)
	}
	return &Note{Notes: b.Notes, Channel: channel - 1, Note: note}, nil
}
