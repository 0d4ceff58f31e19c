// Package inputs contains the control signals a composition is driven by:
// periodic functions, constants, timelines, smoothed toggles and input
// devices.
package inputs

import (
	"math"
	"sort"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/spec"
)

type (
	// Shape is a periodic function over one period, x in [0, 1).
	Shape struct {
		Fn           func(x float64) float64
		Lower, Upper float64
	}

	// Wave evaluates a shape at a frequency. The phase is taken from the
	// sub-tick position, so waves stay smooth under time remapping.
	Wave struct {
		shape       Shape
		periodMilli float64
	}

	// Function evaluates a shape over a period given as a Time.
	Function struct {
		shape  Shape
		period composer.Time
	}
)

// Shapes are the functions available to wave and function inputs.
var Shapes = map[string]Shape{
	"sine":     {Fn: func(x float64) float64 { return math.Sin(2 * math.Pi * x) }, Lower: -1, Upper: 1},
	"cosine":   {Fn: func(x float64) float64 { return math.Cos(2 * math.Pi * x) }, Lower: -1, Upper: 1},
	"saw":      {Fn: func(x float64) float64 { return 2*x - 1 }, Lower: -1, Upper: 1},
	"square":   {Fn: square, Lower: -1, Upper: 1},
	"triangle": {Fn: func(x float64) float64 { return 1 - 4*math.Abs(x-0.5) }, Lower: -1, Upper: 1},
	"identity": {Fn: func(x float64) float64 { return x }, Lower: 0, Upper: 1},
}

// DefaultShape is used when no "fn" is given.
const DefaultShape = "sine"

func square(x float64) float64 {
	if x < 0.5 {
		return 1
	}
	return -1
}

// ShapeNames returns the names in Shapes, sorted.
func ShapeNames() []string {
	ret := make([]string, 0, len(Shapes))
	for n := range Shapes {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}

// LookupShape returns the named shape or a BadValueError.
func LookupShape(name string) (Shape, error) {
	s, ok := Shapes[name]
	if !ok {
		return Shape{}, &spec.BadValueError{Field: "fn", Value: name, Reason: "unknown function"}
	}
	return s, nil
}

// NewWave returns a wave of the shape at frequency Hz.
func NewWave(shape Shape, frequency float64, c *composer.Consts) *Wave {
	return &Wave{shape: shape, periodMilli: c.SampleHz * composer.MilliTicksPerTick / frequency}
}

func (w *Wave) Get(s composer.State) float64 {
	if math.IsInf(w.periodMilli, 0) || w.periodMilli <= 0 {
		return w.shape.Fn(0)
	}
	x := math.Mod(float64(s.MilliTick()), w.periodMilli) / w.periodMilli
	return w.shape.Fn(x)
}

func (w *Wave) Bounds() (float64, float64) {
	return w.shape.Lower, w.shape.Upper
}

// NewFunction returns a function input repeating every period.
func NewFunction(shape Shape, period composer.Time) *Function {
	return &Function{shape: shape, period: period}
}

func (f *Function) Get(s composer.State) float64 {
	period := f.period.Ticks(s.Consts) * composer.MilliTicksPerTick
	if period == 0 {
		return f.shape.Fn(0)
	}
	x := float64(s.MilliTick()%period) / float64(period)
	return f.shape.Fn(x)
}

func (f *Function) Bounds() (float64, float64) {
	return f.shape.Lower, f.shape.Upper
}

// WaveFromSpec builds a wave from the "fn" and "frequency" fields of s.
func WaveFromSpec(s *spec.Spec, c *composer.Consts) (*Wave, error) {
	name, err := spec.ConsumeDefault(s, "fn", DefaultShape)
	if err != nil {
		return nil, err
	}
	shape, err := LookupShape(name)
	if err != nil {
		return nil, err
	}
	frequency, err := spec.ConsumeDefault(s, "frequency", 1.0)
	if err != nil {
		return nil, err
	}
	if frequency < 0 || math.IsNaN(frequency) {
		return nil, &spec.BadValueError{Field: "frequency", Value: spec.Format(spec.Float(frequency)), Reason: "must not be negative"}
	}
	return NewWave(shape, frequency, c), nil
}
