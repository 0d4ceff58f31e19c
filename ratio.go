package composer

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
)

// Ratio is an exact non-negative rational number used to remap time without
// drift: applying it to a tick is a single integer multiply-then-divide.
type Ratio struct {
	Num, Den uint64
}

// RatioFromFloat converts f to a Ratio. Every finite float64 is a dyadic
// rational, so the conversion is exact whenever the numerator and denominator
// fit in 64 bits; otherwise the closest continued-fraction convergent with a
// 32-bit denominator is used.
func RatioFromFloat(f float64) (Ratio, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return Ratio{}, fmt.Errorf("ratio must be a finite non-negative number, got %v", f)
	}
	r := new(big.Rat)
	r.SetFloat64(f)
	if r.Num().IsUint64() && r.Denom().IsUint64() {
		return Ratio{Num: r.Num().Uint64(), Den: r.Denom().Uint64()}, nil
	}
	return approximate(f), nil
}

// approximate returns the best continued-fraction approximation of f whose
// denominator fits in 32 bits.
func approximate(f float64) Ratio {
	if f >= math.MaxUint64 {
		return Ratio{Num: math.MaxUint64, Den: 1}
	}
	var h0, h1 uint64 = 0, 1 // numerators
	var k0, k1 uint64 = 1, 0 // denominators
	x := f
	for i := 0; i < 64; i++ {
		a := math.Floor(x)
		if a > math.MaxUint32 {
			break
		}
		ai := uint64(a)
		h2, k2 := ai*h1+h0, ai*k1+k0
		if k2 > math.MaxUint32 || h2 < h1 {
			break
		}
		h0, h1, k0, k1 = h1, h2, k1, k2
		frac := x - a
		if frac < 1e-15 {
			break
		}
		x = 1 / frac
	}
	if k1 == 0 {
		return Ratio{Num: uint64(f), Den: 1}
	}
	return Ratio{Num: h1, Den: k1}
}

// Apply returns floor(v * Num / Den), computed with a 128-bit intermediate.
// Results that do not fit in 64 bits saturate at MaxUint64.
func (r Ratio) Apply(v uint64) uint64 {
	if r.Den == 0 {
		return math.MaxUint64
	}
	hi, lo := bits.Mul64(v, r.Num)
	if hi >= r.Den {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, r.Den)
	return q
}

// Float returns the ratio as a float64.
func (r Ratio) Float() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}
