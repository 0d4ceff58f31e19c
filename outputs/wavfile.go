package outputs

import (
	"fmt"
	"math"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/composer-audio/composer"
)

// WavFile records the beginning of a composition and writes it to a 16 bit
// mono wav file once enough has been recorded, or on Close. Samples after
// that are discarded.
type WavFile struct {
	path    string
	rate    beep.SampleRate
	samples []float64
	limit   int
	written bool
}

func NewWavFile(path string, duration composer.Time, c *composer.Consts) (*WavFile, error) {
	limit := duration.Ticks(c)
	if limit == 0 {
		return nil, fmt.Errorf("wav file %v: duration must be positive", path)
	}
	return &WavFile{
		path:    path,
		rate:    beep.SampleRate(int(c.SampleHz)),
		samples: make([]float64, 0, limit),
		limit:   int(limit),
	}, nil
}

func (w *WavFile) Write(p composer.Playable) error {
	if w.written {
		return nil
	}
	w.samples = append(w.samples, float64(p)/math.MaxInt32)
	if len(w.samples) < w.limit {
		return nil
	}
	return w.flush()
}

func (w *WavFile) flush() error {
	w.written = true
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("could not create wav file: %w", err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: w.rate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, w.streamer(), format); err != nil {
		return fmt.Errorf("could not encode wav file %v: %w", w.path, err)
	}
	return nil
}

func (w *WavFile) streamer() beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(w.samples) {
			return 0, false
		}
		n := copyMono(samples, w.samples[pos:])
		pos += n
		return n, true
	})
}

func copyMono(dst [][2]float64, src []float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = [2]float64{src[i], src[i]}
	}
	return n
}

// Close writes what has been recorded so far, if the file has not been
// written yet.
func (w *WavFile) Close() error {
	if w.written || len(w.samples) == 0 {
		return nil
	}
	return w.flush()
}
