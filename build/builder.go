package build

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/spec"
)

// Builder holds the registries and the environment constructors build in.
type Builder struct {
	Consts *composer.Consts

	Players *Registry[composer.Player]
	Bounded *Registry[composer.BoundedInput]
	Bools   *Registry[composer.BoolInput]
	Outputs *Registry[composer.Output]

	// Keys and Notes are the input devices available to key and MIDI
	// inputs. Either may be nil.
	Keys  composer.KeyState
	Notes composer.NoteState

	// BaseDir is the directory relative file paths are resolved against.
	BaseDir string
}

// ErrNoDevice is returned by constructors needing an input device that was
// not opened.
var ErrNoDevice = errors.New("input device not available")

// NewBuilder returns a builder with empty registries.
func NewBuilder(c *composer.Consts) *Builder {
	return &Builder{
		Consts:  c,
		Players: NewRegistry[composer.Player]("player"),
		Bounded: NewRegistry[composer.BoundedInput]("bounded input"),
		Bools:   NewRegistry[composer.BoolInput]("bool input"),
		Outputs: NewRegistry[composer.Output]("output"),
	}
}

// Path resolves a file path from a specification against BaseDir.
func (b *Builder) Path(p string) string {
	if filepath.IsAbs(p) || b.BaseDir == "" {
		return p
	}
	return filepath.Join(b.BaseDir, p)
}

// Player builds a player from v.
func (b *Builder) Player(v spec.Value) (composer.Player, error) {
	return b.Players.Build(v, b)
}

// ConsumePlayer consumes the field name of s and builds it as a player.
func ConsumePlayer(s *spec.Spec, b *Builder, name string) (composer.Player, error) {
	return consume(s, b, name, b.Players)
}

// ConsumePlayers consumes the list field name of s and builds every element
// as a player.
func ConsumePlayers(s *spec.Spec, b *Builder, name string) ([]composer.Player, error) {
	return consumeList(s, b, name, b.Players)
}

// ConsumeBounded consumes the field name of s and builds it as a bounded
// input.
func ConsumeBounded(s *spec.Spec, b *Builder, name string) (composer.BoundedInput, error) {
	return consume(s, b, name, b.Bounded)
}

// ConsumeBool consumes the field name of s and builds it as a bool input.
func ConsumeBool(s *spec.Spec, b *Builder, name string) (composer.BoolInput, error) {
	return consume(s, b, name, b.Bools)
}

// ConsumeBools consumes the list field name of s and builds every element as
// a bool input.
func ConsumeBools(s *spec.Spec, b *Builder, name string) ([]composer.BoolInput, error) {
	return consumeList(s, b, name, b.Bools)
}

// ConsumeOutputs consumes the list field name of s and builds every element
// as an output. Outputs built before a failure are closed.
func ConsumeOutputs(s *spec.Spec, b *Builder, name string) ([]composer.Output, error) {
	return consumeList(s, b, name, b.Outputs)
}

func consume[T any](s *spec.Spec, b *Builder, name string, r *Registry[T]) (T, error) {
	v, err := spec.Consume[spec.Value](s, name)
	if err != nil {
		var zero T
		return zero, err
	}
	ret, err := r.Build(v, b)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	return ret, nil
}

func consumeList[T any](s *spec.Spec, b *Builder, name string, r *Registry[T]) ([]T, error) {
	l, err := spec.Consume[spec.List](s, name)
	if err != nil {
		return nil, err
	}
	ret := make([]T, 0, len(l))
	for i, v := range l {
		t, err := r.Build(v, b)
		if err != nil {
			closeAll(ret)
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		ret = append(ret, t)
	}
	return ret, nil
}

// closeAll closes the nodes that hold resources, e.g. outputs.
func closeAll[T any](nodes []T) {
	for _, n := range nodes {
		if c, ok := any(n).(interface{ Close() error }); ok {
			c.Close()
		}
	}
}
