// Package outputs contains the sinks the samples of a composition are
// written to.
package outputs

import (
	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/build"
	"github.com/composer-audio/composer/sink"
	"github.com/composer-audio/composer/spec"
)

// Null discards everything written to it.
type Null struct{}

func (Null) Write(composer.Playable) error { return nil }
func (Null) Close() error                  { return nil }

// Register adds the constructors of every output in this package to b.
func Register(b *build.Builder) {
	b.Outputs.Register("speaker", func(s *spec.Spec, b *build.Builder) (composer.Output, error) {
		frameSize, maxUnplayed, err := consumeSinkSize(s)
		if err != nil {
			return nil, err
		}
		return NewSpeaker(b.Consts, frameSize, maxUnplayed)
	})
	b.Outputs.Register("portaudio-speaker", func(s *spec.Spec, b *build.Builder) (composer.Output, error) {
		frameSize, maxUnplayed, err := consumeSinkSize(s)
		if err != nil {
			return nil, err
		}
		return NewPortAudioSpeaker(b.Consts, frameSize, maxUnplayed)
	})
	b.Outputs.Register("null", func(s *spec.Spec, b *build.Builder) (composer.Output, error) {
		return Null{}, nil
	})
	b.Outputs.Register("wav-file", func(s *spec.Spec, b *build.Builder) (composer.Output, error) {
		path, err := spec.Consume[string](s, "path")
		if err != nil {
			return nil, err
		}
		duration, err := composer.ConsumeTime(s, "duration")
		if err != nil {
			return nil, err
		}
		return NewWavFile(b.Path(path), duration, b.Consts)
	})
	b.Outputs.Register("level-meter", func(s *spec.Spec, b *build.Builder) (composer.Output, error) {
		interval, err := composer.ConsumeTimeDefault(s, "interval", composer.Time{Amount: 1, Unit: composer.Seconds})
		if err != nil {
			return nil, err
		}
		return NewLevelMeter(interval, b.Consts, nil)
	})
}

func consumeSinkSize(s *spec.Spec) (frameSize, maxUnplayed int, err error) {
	if frameSize, err = spec.ConsumeDefault(s, "frame-size", sink.DefaultFrameSize); err != nil {
		return
	}
	if frameSize < 1 {
		return 0, 0, &spec.BadValueError{Field: "frame-size", Value: spec.Format(spec.Int(frameSize)), Reason: "must be positive"}
	}
	if maxUnplayed, err = spec.ConsumeDefault(s, "max-unplayed", sink.DefaultMaxUnplayed); err != nil {
		return
	}
	if maxUnplayed < 1 {
		return 0, 0, &spec.BadValueError{Field: "max-unplayed", Value: spec.Format(spec.Int(maxUnplayed)), Reason: "must be positive"}
	}
	return
}
