package players

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/youpy/go-wav"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/inputs"
)

// Recording is the first channel of a decoded wav file, as floats in [-1, 1].
type Recording struct {
	SampleRate uint32
	Samples    []float64
}

// ReadWav decodes the wav file at path, skipping start seconds and keeping at
// most duration seconds. A negative duration keeps everything after start.
func ReadWav(path string, start, duration float64) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open sample: %w", err)
	}
	defer f.Close()
	r := wav.NewReader(f)
	format, err := r.Format()
	if err != nil {
		return nil, fmt.Errorf("could not read wav format of %v: %w", path, err)
	}
	rate := float64(format.SampleRate)
	skip := int(math.Round(start * rate))
	keep := -1
	if duration >= 0 {
		keep = int(math.Round(duration * rate))
	}
	rec := &Recording{SampleRate: format.SampleRate}
	for keep < 0 || len(rec.Samples) < keep {
		samples, err := r.ReadSamples()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read samples of %v: %w", path, err)
		}
		for _, s := range samples {
			if skip > 0 {
				skip--
				continue
			}
			if keep >= 0 && len(rec.Samples) >= keep {
				break
			}
			rec.Samples = append(rec.Samples, r.FloatValue(s, 0))
		}
	}
	if len(rec.Samples) == 0 {
		return nil, fmt.Errorf("sample %v has no audio in the requested range", path)
	}
	return rec, nil
}

// NewSample plays a recording looped, resampled from its own rate to the
// sample rate of the composition.
func NewSample(rec *Recording, c *composer.Consts) (*Speed, error) {
	buf := inputs.NewBuffer(rec.Samples, -1, 1)
	return NewSpeed(NewPlayInput(buf), float64(rec.SampleRate)/c.SampleHz)
}
