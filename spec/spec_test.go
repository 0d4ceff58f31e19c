package spec_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/composer-audio/composer/spec"
)

func TestConsumeRemovesField(t *testing.T) {
	s := spec.Of("name", spec.Str("wave"), "frequency", spec.Float(440))
	name, err := spec.Consume[string](s, "name")
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if name != "wave" {
		t.Fatalf("wrong name, got: %v expected: %v", name, "wave")
	}
	if _, ok := s.Get("name"); ok {
		t.Fatalf("consumed field still present")
	}
	if got, expected := s.Names(), []string{"frequency"}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("wrong remaining fields, got: %v expected: %v", got, expected)
	}
}

func TestConsumeMissing(t *testing.T) {
	s := spec.New()
	_, err := spec.Consume[float64](s, "frequency")
	var missing *spec.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got: %v", err)
	}
	if missing.Field != "frequency" {
		t.Fatalf("wrong field, got: %v expected: %v", missing.Field, "frequency")
	}
}

func TestConsumeTypeMismatch(t *testing.T) {
	s := spec.Of("frequency", spec.Str("high"))
	_, err := spec.Consume[float64](s, "frequency")
	var mismatch *spec.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got: %v", err)
	}
	if mismatch.Field != "frequency" || mismatch.Expected != "float" || mismatch.Actual != "string" {
		t.Fatalf("wrong mismatch: %+v", mismatch)
	}
}

func TestIntWidensToFloat(t *testing.T) {
	s := spec.Of("frequency", spec.Int(440))
	f, err := spec.Consume[float64](s, "frequency")
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if f != 440 {
		t.Fatalf("got: %v expected: %v", f, 440.0)
	}
	if _, err := spec.As[int]("x", spec.Float(1.5)); err == nil {
		t.Fatalf("float should not narrow to int")
	}
}

func TestConsumeDefaultAndOptional(t *testing.T) {
	s := spec.Of("var", spec.Str("$2"))
	v, err := spec.ConsumeDefault(s, "var", "$1")
	if err != nil || v != "$2" {
		t.Fatalf("ConsumeDefault present, got: %v, %v", v, err)
	}
	v, err = spec.ConsumeDefault(s, "var", "$1")
	if err != nil || v != "$1" {
		t.Fatalf("ConsumeDefault absent, got: %v, %v", v, err)
	}
	_, ok, err := spec.ConsumeOptional[*spec.Spec](s, "smooth-fn")
	if ok || err != nil {
		t.Fatalf("ConsumeOptional absent, got ok=%v err=%v", ok, err)
	}
}

func TestConsumeList(t *testing.T) {
	s := spec.Of("list", spec.List{spec.Float(1), spec.Int(2), spec.Str("x")})
	_, err := spec.ConsumeList[float64](s, "list")
	var mismatch *spec.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got: %v", err)
	}
	if mismatch.Field != "list[2]" {
		t.Fatalf("wrong field, got: %v expected: %v", mismatch.Field, "list[2]")
	}
	l, err := spec.ConsumeList[float64](spec.New(), "list")
	if err != nil || len(l) != 0 {
		t.Fatalf("absent list should be empty, got: %v, %v", l, err)
	}
}

func TestEnsureAllUsed(t *testing.T) {
	s := spec.Of("name", spec.Str("wave"), "frequncy", spec.Float(1), "fn", spec.Str("sine"))
	if _, err := spec.Consume[string](s, "name"); err != nil {
		t.Fatal(err)
	}
	err := s.EnsureAllUsed()
	var extra *spec.ExtraFieldsError
	if !errors.As(err, &extra) {
		t.Fatalf("expected ExtraFieldsError, got: %v", err)
	}
	if expected := []string{"frequncy", "fn"}; !reflect.DeepEqual(extra.Fields, expected) {
		t.Fatalf("got: %v expected: %v", extra.Fields, expected)
	}
	spec.Consume[float64](s, "frequncy")
	spec.Consume[string](s, "fn")
	if err := s.EnsureAllUsed(); err != nil {
		t.Fatalf("empty document reported: %v", err)
	}
}

func TestSetKeepsPosition(t *testing.T) {
	s := spec.Of("a", spec.Int(1), "b", spec.Int(2))
	s.Set("a", spec.Int(3))
	s.Set("c", spec.Int(4))
	if got, expected := s.Names(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("got: %v expected: %v", got, expected)
	}
}

func TestCloneIsDeep(t *testing.T) {
	inner := spec.Of("x", spec.Int(1))
	s := spec.Of("child", inner, "list", spec.List{spec.Of("y", spec.Int(2))})
	c := s.Clone()
	spec.Consume[int](inner, "x")
	if got := spec.Format(c); got != "{child: {x: 1}, list: [{y: 2}]}" {
		t.Fatalf("clone changed with original: %v", got)
	}
}
