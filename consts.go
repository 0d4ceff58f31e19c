package composer

import (
	"fmt"

	"github.com/composer-audio/composer/spec"
	"github.com/composer-audio/composer/theory"
)

// Consts are the constants of a composition. They are built once, before the
// tree is constructed, and never modified afterwards; every node and the
// reload supervisor share the same pointer.
type Consts struct {
	// SampleHz is the number of ticks per second.
	SampleHz float64
	// BeatsPerMinute and BeatsPerBar convert musical time to seconds.
	BeatsPerMinute float64
	BeatsPerBar    float64
	// LoudnessFactor scales full-range inputs when they are played.
	LoudnessFactor float64
	// ReloadTime is how often the composition file is checked for
	// changes. Zero disables reloading; otherwise it is at least one tick.
	ReloadTime Time

	Scales *theory.ScaleTable
	Chords *theory.ChordTable
}

// DefaultConsts returns the constants used when a composition does not
// override them.
func DefaultConsts() *Consts {
	return &Consts{
		SampleHz:       44100,
		BeatsPerMinute: 120,
		BeatsPerBar:    4,
		LoudnessFactor: 0.3,
		ReloadTime:     Time{Unit: Ticks},
		Scales:         theory.DefaultScales(),
		Chords:         theory.DefaultChords(),
	}
}

// Override returns a copy of c with the fields present in s replaced. All the
// fields of s are consumed; unknown fields are an error.
func (c *Consts) Override(s *spec.Spec) (*Consts, error) {
	ret := *c
	var err error
	if ret.SampleHz, err = spec.ConsumeDefault(s, "sample-hz", c.SampleHz); err != nil {
		return nil, err
	}
	if ret.BeatsPerMinute, err = spec.ConsumeDefault(s, "beats-per-minute", c.BeatsPerMinute); err != nil {
		return nil, err
	}
	if ret.BeatsPerBar, err = spec.ConsumeDefault(s, "beats-per-bar", c.BeatsPerBar); err != nil {
		return nil, err
	}
	if ret.LoudnessFactor, err = spec.ConsumeDefault(s, "loudness-factor", c.LoudnessFactor); err != nil {
		return nil, err
	}
	if ret.ReloadTime, err = ConsumeTimeDefault(s, "reload-time", c.ReloadTime); err != nil {
		return nil, err
	}
	if path, ok, err := spec.ConsumeOptional[string](s, "scale-definition-path"); err != nil {
		return nil, err
	} else if ok {
		if ret.Scales, err = theory.LoadScaleFile(path); err != nil {
			return nil, err
		}
	}
	if path, ok, err := spec.ConsumeOptional[string](s, "chord-definition-path"); err != nil {
		return nil, err
	} else if ok {
		if ret.Chords, err = theory.LoadChordFile(path); err != nil {
			return nil, err
		}
	}
	if err := s.EnsureAllUsed(); err != nil {
		return nil, err
	}
	if ret.SampleHz <= 0 {
		return nil, &spec.BadValueError{Field: "sample-hz", Value: fmt.Sprint(ret.SampleHz), Reason: "must be positive"}
	}
	if ret.BeatsPerMinute <= 0 {
		return nil, &spec.BadValueError{Field: "beats-per-minute", Value: fmt.Sprint(ret.BeatsPerMinute), Reason: "must be positive"}
	}
	if ret.ReloadTime.Amount != 0 && ret.ReloadTime.Ticks(&ret) == 0 {
		return nil, &spec.BadValueError{Field: "reload-time", Value: ret.ReloadTime.String(), Reason: "must be zero or at least one tick"}
	}
	return &ret, nil
}
