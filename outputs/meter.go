package outputs

import (
	"fmt"
	"log"
	"math"

	"github.com/viterin/vek/vek32"

	"github.com/composer-audio/composer"
)

// LevelMeter reports the RMS and peak level of the composition once per
// interval, in dBFS.
type LevelMeter struct {
	buf    []float32
	tmp    []float32
	report func(rms, peak float64)
}

// NewLevelMeter returns a meter calling report after every interval. A nil
// report logs the levels.
func NewLevelMeter(interval composer.Time, c *composer.Consts, report func(rms, peak float64)) (*LevelMeter, error) {
	n := interval.Ticks(c)
	if n == 0 {
		return nil, fmt.Errorf("level meter: interval must be positive")
	}
	if report == nil {
		report = logLevel
	}
	return &LevelMeter{buf: make([]float32, 0, n), tmp: make([]float32, n), report: report}, nil
}

func logLevel(rms, peak float64) {
	log.Printf("level: rms %.1f dBFS, peak %.1f dBFS", rms, peak)
}

func (m *LevelMeter) Write(p composer.Playable) error {
	m.buf = append(m.buf, float32(p)/math.MaxInt32)
	if len(m.buf) == cap(m.buf) {
		m.flush()
	}
	return nil
}

func (m *LevelMeter) flush() {
	if len(m.buf) == 0 {
		return
	}
	sq := vek32.Mul_Into(m.tmp[:len(m.buf)], m.buf, m.buf)
	rms := math.Sqrt(float64(vek32.Mean(sq)))
	vek32.Abs_Inplace(m.buf)
	peak := float64(vek32.Max(m.buf))
	m.report(decibels(rms), decibels(peak))
	m.buf = m.buf[:0]
}

func decibels(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

// Close reports the level of a partial last interval.
func (m *LevelMeter) Close() error {
	m.flush()
	return nil
}
