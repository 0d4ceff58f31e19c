package inputs

import (
	"math/rand/v2"
	"slices"

	"github.com/composer-audio/composer"
)

type (
	// Buffer loops over recorded values, one per tick.
	Buffer struct {
		values       []float64
		lower, upper float64
	}

	// Random returns uniformly distributed values in [0, 1).
	Random struct {
		rng *rand.Rand
	}
)

// NewBuffer returns a buffer with the given bounds. values must not be
// empty.
func NewBuffer(values []float64, lower, upper float64) *Buffer {
	return &Buffer{values: values, lower: lower, upper: upper}
}

// NewBufferFromValues returns a buffer bounded by the smallest and largest of
// the values. values must not be empty.
func NewBufferFromValues(values []float64) *Buffer {
	return NewBuffer(values, slices.Min(values), slices.Max(values))
}

func (b *Buffer) Get(s composer.State) float64 {
	return b.values[s.Tick()%uint64(len(b.values))]
}

func (b *Buffer) Bounds() (float64, float64) { return b.lower, b.upper }

// Len returns the number of values in the buffer.
func (b *Buffer) Len() int { return len(b.values) }

// NewRandom returns a random input. A zero seed picks a random one.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Random) Get(composer.State) float64 { return r.rng.Float64() }
func (r *Random) Bounds() (float64, float64) { return 0, 1 }
