package theory_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/composer-audio/composer/spec"
	"github.com/composer-audio/composer/theory"
)

func TestNoteFrequency(t *testing.T) {
	for _, tt := range []struct {
		note      string
		frequency float64
	}{
		{"a5", 880},
		{"a4", 440},
		{"A4", 440},
		{"c5", 523.25},
		{"c#6", 1108.74},
		{"b3", 246.9425},
		{"g0", 783.99 / 32},
	} {
		n, err := theory.ParseNote(tt.note)
		if err != nil {
			t.Fatalf("ParseNote(%q) failed: %v", tt.note, err)
		}
		if got := n.Frequency(); math.Abs(got-tt.frequency) > 1e-9 {
			t.Fatalf("%v: got: %v expected: %v", tt.note, got, tt.frequency)
		}
	}
}

func TestNoteParseErrors(t *testing.T) {
	for _, s := range []string{"h4", "a", "", "a#b4", "ab4"} {
		_, err := theory.ParseNote(s)
		var bad *spec.BadValueError
		if !errors.As(err, &bad) {
			t.Fatalf("ParseNote(%q): expected BadValueError, got: %v", s, err)
		}
	}
}

func TestNoteAdd(t *testing.T) {
	n, _ := theory.ParseNote("b4")
	if got := n.Next().String(); got != "c5" {
		t.Fatalf("got: %v expected: %v", got, "c5")
	}
	if got := n.Add(-12).String(); got != "b3" {
		t.Fatalf("got: %v expected: %v", got, "b3")
	}
	c, _ := theory.ParseNote("c0")
	if got := c.Add(-1).String(); got != "b-1" {
		t.Fatalf("got: %v expected: %v", got, "b-1")
	}
}

func TestCompleteSteps(t *testing.T) {
	for _, tt := range []struct {
		steps, expected []int
	}{
		{[]int{2, 2, 1, 2, 2, 2, 1}, []int{2, 2, 1, 2, 2, 2, 1}},
		{[]int{2, 2, 3, 2}, []int{2, 2, 3, 2, 3}},
		{[]int{5, 5, 5}, []int{5, 5, 5, 9}},
	} {
		if got := theory.CompleteSteps(tt.steps); !reflect.DeepEqual(got, tt.expected) {
			t.Fatalf("CompleteSteps(%v), got: %v expected: %v", tt.steps, got, tt.expected)
		}
	}
}

func TestScaleNotes(t *testing.T) {
	s, err := theory.ParseScale("c4 major", theory.DefaultScales())
	if err != nil {
		t.Fatalf("ParseScale failed: %v", err)
	}
	var names []string
	for _, n := range s.Notes(9) {
		names = append(names, n.String())
	}
	expected := []string{"c4", "d4", "e4", "f4", "g4", "a4", "b4", "c5", "d5"}
	if !reflect.DeepEqual(names, expected) {
		t.Fatalf("got: %v expected: %v", names, expected)
	}
}

func TestScaleIsCaseInsensitive(t *testing.T) {
	if _, err := theory.ParseScale("c4 MAJOR", theory.DefaultScales()); err != nil {
		t.Fatalf("ParseScale failed: %v", err)
	}
	_, err := theory.ParseScale("c4 nosuch", theory.DefaultScales())
	var unknown *spec.UnknownNameError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownNameError, got: %v", err)
	}
}

func TestScaleIndex(t *testing.T) {
	for _, tt := range []struct {
		s        string
		expected theory.ScaleIndex
	}{
		{"1", theory.ScaleIndex{Index: 1}},
		{"b3", theory.ScaleIndex{Index: 3, Adjust: -1}},
		{"ss6", theory.ScaleIndex{Index: 6, Adjust: 2}},
	} {
		got, err := theory.ParseScaleIndex(tt.s)
		if err != nil {
			t.Fatalf("ParseScaleIndex(%q) failed: %v", tt.s, err)
		}
		if got != tt.expected {
			t.Fatalf("got: %v expected: %v", got, tt.expected)
		}
		if got.String() != tt.s {
			t.Fatalf("String() got: %v expected: %v", got.String(), tt.s)
		}
	}
	for _, s := range []string{"0", "x3", "3b"} {
		if _, err := theory.ParseScaleIndex(s); err == nil {
			t.Fatalf("ParseScaleIndex(%q) should fail", s)
		}
	}
}

func chordNames(c theory.Chord) []string {
	var ret []string
	for _, n := range c {
		ret = append(ret, n.String())
	}
	return ret
}

func TestParseChord(t *testing.T) {
	for _, tt := range []struct {
		s        string
		expected []string
	}{
		{"a4 minor", []string{"a4", "c5", "e5"}},
		{"c4 dim", []string{"c4", "d#4", "f#4"}},
		{"c4 7", []string{"c4", "e4", "g4", "b4"}},
		{"c4 major 4", []string{"f4", "a4", "c5"}},
		{"a4 minor 1", []string{"a4", "c5", "e5"}},
	} {
		c, err := theory.ParseChord(tt.s, theory.DefaultScales(), theory.DefaultChords())
		if err != nil {
			t.Fatalf("ParseChord(%q) failed: %v", tt.s, err)
		}
		if got := chordNames(c); !reflect.DeepEqual(got, tt.expected) {
			t.Fatalf("%v: got: %v expected: %v", tt.s, got, tt.expected)
		}
	}
}

func TestChordInScale(t *testing.T) {
	s, _ := theory.ParseScale("c4 minor", theory.DefaultScales())
	c, err := theory.ChordInScale(s, "major", theory.DefaultChords())
	if err != nil {
		t.Fatal(err)
	}
	if got, expected := chordNames(c), []string{"c4", "d#4", "g4"}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("got: %v expected: %v", got, expected)
	}
}

func TestLoadTableErrors(t *testing.T) {
	if _, err := theory.LoadScaleTable([]byte("bad: [2, -1]")); err == nil {
		t.Fatalf("negative step accepted")
	}
	if _, err := theory.LoadChordTable([]byte("bad: [x1]")); err == nil {
		t.Fatalf("bad scale index accepted")
	}
	tbl, err := theory.LoadScaleTable([]byte("b: [1]\na: [2]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got, expected := tbl.Names(), []string{"b", "a"}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("definition order lost, got: %v expected: %v", got, expected)
	}
}
