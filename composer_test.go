package composer_test

import (
	"errors"
	"math"
	"testing"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/spec"
)

func TestPlayableSaturates(t *testing.T) {
	for _, tt := range []struct {
		a, b, expected composer.Playable
	}{
		{1, 2, 3},
		{math.MaxInt32, 1, math.MaxInt32},
		{math.MinInt32, -1, math.MinInt32},
		{math.MaxInt32, math.MinInt32, -1},
	} {
		if got := tt.a.Add(tt.b); got != tt.expected {
			t.Fatalf("%v + %v, got: %v expected: %v", tt.a, tt.b, got, tt.expected)
		}
	}
	if got := composer.Playable(math.MaxInt32 / 2).Scale(3); got != math.MaxInt32 {
		t.Fatalf("Scale did not clamp, got: %v", got)
	}
	if got := composer.Playable(100).Scale(-0.5); got != -50 {
		t.Fatalf("got: %v expected: %v", got, -50)
	}
	if got := composer.Sum(math.MaxInt32, math.MaxInt32, math.MinInt32); got != -1 {
		t.Fatalf("Sum, got: %v expected: %v", got, -1)
	}
}

func TestTimeConversions(t *testing.T) {
	c := composer.DefaultConsts()
	for _, tt := range []struct {
		s       string
		ticks   uint64
		seconds float64
		beats   float64
	}{
		{"1000 ticks", 1000, 1000.0 / 44100, 1000.0 / 44100 * 2},
		{"44100 ticks", 44100, 1, 2},
		{"3 seconds", 132300, 3, 6},
		{"2 bars", 176400, 4, 8},
		{"1 beats", 22050, 0.5, 1},
		{"1 beat", 22050, 0.5, 1},
	} {
		tm, err := composer.ParseTime(tt.s)
		if err != nil {
			t.Fatalf("ParseTime(%q) failed: %v", tt.s, err)
		}
		if got := tm.Ticks(c); got != tt.ticks {
			t.Fatalf("%v ticks, got: %v expected: %v", tt.s, got, tt.ticks)
		}
		if got := tm.Seconds(c); math.Abs(got-tt.seconds) > 1e-12 {
			t.Fatalf("%v seconds, got: %v expected: %v", tt.s, got, tt.seconds)
		}
		if got := tm.Beats(c); math.Abs(got-tt.beats) > 1e-12 {
			t.Fatalf("%v beats, got: %v expected: %v", tt.s, got, tt.beats)
		}
	}
}

func TestParseTimeErrors(t *testing.T) {
	for _, s := range []string{"3", "3 minutes", "x seconds", "-1 seconds", "1.5 ticks", "1 2 seconds"} {
		_, err := composer.ParseTime(s)
		var bad *spec.BadValueError
		if !errors.As(err, &bad) {
			t.Fatalf("ParseTime(%q): expected BadValueError, got: %v", s, err)
		}
	}
}

func TestConsumeTimeNamesField(t *testing.T) {
	s := spec.Of("event-duration", spec.Str("3 fortnights"))
	_, err := composer.ConsumeTime(s, "event-duration")
	var bad *spec.BadValueError
	if !errors.As(err, &bad) || bad.Field != "event-duration" {
		t.Fatalf("expected BadValueError on event-duration, got: %v", err)
	}
}

func TestStateMilliTicks(t *testing.T) {
	s := composer.NewState(composer.DefaultConsts())
	for i := 0; i < 5; i++ {
		s.Increment()
	}
	if s.Tick() != 5 || s.MilliTick() != 5000 {
		t.Fatalf("got tick %v millitick %v", s.Tick(), s.MilliTick())
	}
	shifted := s.WithMilliTick(12345)
	if shifted.Tick() != 12 || s.Tick() != 5 {
		t.Fatalf("WithMilliTick, got: %v original: %v", shifted.Tick(), s.Tick())
	}
	if s.WithTick(7).MilliTick() != 7000 {
		t.Fatalf("WithTick, got: %v", s.WithTick(7).MilliTick())
	}
}

func TestConstsOverride(t *testing.T) {
	base := composer.DefaultConsts()
	c, err := base.Override(spec.Of("sample-hz", spec.Int(48000), "reload-time", spec.Str("1 seconds")))
	if err != nil {
		t.Fatalf("Override failed: %v", err)
	}
	if c.SampleHz != 48000 || c.BeatsPerMinute != 120 || c.ReloadTime.Ticks(c) != 48000 {
		t.Fatalf("wrong consts: %+v", c)
	}
	if base.SampleHz != 44100 {
		t.Fatalf("Override modified the base consts")
	}
	_, err = base.Override(spec.Of("sample-rate", spec.Int(48000)))
	var extra *spec.ExtraFieldsError
	if !errors.As(err, &extra) {
		t.Fatalf("expected ExtraFieldsError, got: %v", err)
	}
}

func TestConstsReloadTime(t *testing.T) {
	base := composer.DefaultConsts()
	for _, tt := range []struct {
		reload string
		ok     bool
	}{
		{"0 seconds", true},
		{"1 ticks", true},
		{"0.5 seconds", true},
		{"0.00001 seconds", false},
		{"0.5 ticks", false},
	} {
		_, err := base.Override(spec.Of("reload-time", spec.Str(tt.reload)))
		if tt.ok && err != nil {
			t.Fatalf("%v: got: %v expected no error", tt.reload, err)
		}
		var bad *spec.BadValueError
		if !tt.ok && (!errors.As(err, &bad) || bad.Field != "reload-time") {
			t.Fatalf("%v: got: %v expected a bad reload-time", tt.reload, err)
		}
	}
}
