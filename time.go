package composer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/composer-audio/composer/spec"
)

type (
	// TimeUnit is the unit a Time is measured in.
	TimeUnit int

	// Time is an amount of time in ticks, seconds, beats or bars. Conversions
	// between units need the Consts of the composition. It is written in a
	// specification as "<amount> <unit>", e.g. "0.5 seconds" or "2 bars".
	Time struct {
		Amount float64
		Unit   TimeUnit
	}
)

const (
	Ticks TimeUnit = iota
	Seconds
	Beats
	Bars
)

var unitNames = map[string]TimeUnit{
	"ticks": Ticks, "tick": Ticks,
	"seconds": Seconds, "second": Seconds,
	"beats": Beats, "beat": Beats,
	"bars": Bars, "bar": Bars,
}

func (u TimeUnit) String() string {
	switch u {
	case Ticks:
		return "ticks"
	case Seconds:
		return "seconds"
	case Beats:
		return "beats"
	case Bars:
		return "bars"
	}
	return fmt.Sprintf("TimeUnit(%d)", int(u))
}

// ParseTime parses a time such as "100 ticks" or "1.5 beats".
func ParseTime(s string) (Time, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Time{}, &spec.BadValueError{Field: "time", Value: s, Reason: "expected <amount> <ticks|seconds|beats|bars>"}
	}
	unit, ok := unitNames[strings.ToLower(fields[1])]
	if !ok {
		return Time{}, &spec.BadValueError{Field: "time", Value: s, Reason: "unknown unit " + fields[1]}
	}
	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || amount < 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return Time{}, &spec.BadValueError{Field: "time", Value: s, Reason: "amount must be a non-negative number"}
	}
	if unit == Ticks && amount != math.Trunc(amount) {
		return Time{}, &spec.BadValueError{Field: "time", Value: s, Reason: "ticks must be a whole number"}
	}
	return Time{Amount: amount, Unit: unit}, nil
}

// ConsumeTime consumes a time field from s.
func ConsumeTime(s *spec.Spec, name string) (Time, error) {
	str, err := spec.Consume[string](s, name)
	if err != nil {
		return Time{}, err
	}
	return parseField(name, str)
}

// ConsumeTimeDefault consumes a time field, returning def when it is absent.
func ConsumeTimeDefault(s *spec.Spec, name string, def Time) (Time, error) {
	str, ok, err := spec.ConsumeOptional[string](s, name)
	if err != nil || !ok {
		return def, err
	}
	return parseField(name, str)
}

// ConsumeOptionalTime consumes a time field, reporting whether it was present.
func ConsumeOptionalTime(s *spec.Spec, name string) (Time, bool, error) {
	str, ok, err := spec.ConsumeOptional[string](s, name)
	if err != nil || !ok {
		return Time{}, ok, err
	}
	t, err := parseField(name, str)
	return t, true, err
}

func parseField(name, s string) (Time, error) {
	t, err := ParseTime(s)
	if bad, ok := err.(*spec.BadValueError); ok {
		bad.Field = name
	}
	return t, err
}

// Seconds converts t to seconds.
func (t Time) Seconds(c *Consts) float64 {
	switch t.Unit {
	case Ticks:
		return t.Amount / c.SampleHz
	case Beats:
		return t.Amount * 60 / c.BeatsPerMinute
	case Bars:
		return t.Amount * c.BeatsPerBar * 60 / c.BeatsPerMinute
	}
	return t.Amount
}

// Ticks converts t to whole ticks, rounding down.
func (t Time) Ticks(c *Consts) uint64 {
	if t.Unit == Ticks {
		return uint64(t.Amount)
	}
	return uint64(t.Seconds(c) * c.SampleHz)
}

// Beats converts t to beats.
func (t Time) Beats(c *Consts) float64 {
	switch t.Unit {
	case Beats:
		return t.Amount
	case Bars:
		return t.Amount * c.BeatsPerBar
	}
	return t.Seconds(c) * c.BeatsPerMinute / 60
}

// Duration converts t to wall clock time.
func (t Time) Duration(c *Consts) time.Duration {
	return time.Duration(t.Seconds(c) * float64(time.Second))
}

// IsZero reports whether t is no time at all.
func (t Time) IsZero() bool {
	return t.Amount == 0
}

func (t Time) String() string {
	return strconv.FormatFloat(t.Amount, 'f', -1, 64) + " " + t.Unit.String()
}
