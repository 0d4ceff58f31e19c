package theory

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/composer-audio/composer/spec"
)

type (
	// Scale is a sequence of notes starting at Base and ascending by Steps,
	// repeated for as long as needed.
	Scale struct {
		Base  Note
		Steps []int
	}

	// ScaleIndex addresses a note of a scale: Index is one-based and Adjust
	// moves the addressed note by semitones.
	ScaleIndex struct {
		Index  int
		Adjust int
	}
)

// NewScale looks up the named scale in t and roots it at base.
func NewScale(base Note, name string, t *ScaleTable) (Scale, error) {
	steps, ok := t.Lookup(name)
	if !ok {
		return Scale{}, &spec.UnknownNameError{Category: "scale", Name: name}
	}
	return Scale{Base: base, Steps: CompleteSteps(steps)}, nil
}

// CompleteSteps returns steps with one extra step appended when the steps do
// not add up to an octave, so that the scale repeats every octave.
func CompleteSteps(steps []int) []int {
	sum := 0
	for _, s := range steps {
		sum += s
	}
	ret := append([]int(nil), steps...)
	if sum != pitchesPerOctave {
		ret = append(ret, pitchesPerOctave-sum%pitchesPerOctave)
	}
	return ret
}

// Len returns the number of steps in one repetition of the scale.
func (s Scale) Len() int {
	return len(s.Steps)
}

// Notes returns the first n notes of the scale.
func (s Scale) Notes(n int) []Note {
	if n <= 0 {
		return nil
	}
	ret := make([]Note, 0, n)
	note := s.Base
	ret = append(ret, note)
	for i := 0; len(ret) < n; i++ {
		note = note.Add(s.Steps[i%len(s.Steps)])
		ret = append(ret, note)
	}
	return ret
}

// At returns the note at the scale index.
func (s Scale) At(i ScaleIndex) Note {
	idx := max(i.Index, 1)
	notes := s.Notes(idx)
	return notes[idx-1].Add(i.Adjust)
}

var scaleIndexRegexp = regexp.MustCompile(`^([sb]*)([0-9]+)$`)

// ParseScaleIndex parses an index such as "5", "b3" or "s4".
func ParseScaleIndex(s string) (ScaleIndex, error) {
	m := scaleIndexRegexp.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ScaleIndex{}, &spec.BadValueError{Field: "scale-index", Value: s, Reason: "expected an index like 3, b3 or s5"}
	}
	index, err := strconv.Atoi(m[2])
	if err != nil || index < 1 {
		return ScaleIndex{}, &spec.BadValueError{Field: "scale-index", Value: s, Reason: "index must be a positive integer"}
	}
	adjust := strings.Count(m[1], "s") - strings.Count(m[1], "b")
	return ScaleIndex{Index: index, Adjust: adjust}, nil
}

func (i ScaleIndex) String() string {
	var prefix string
	switch {
	case i.Adjust > 0:
		prefix = strings.Repeat("s", i.Adjust)
	case i.Adjust < 0:
		prefix = strings.Repeat("b", -i.Adjust)
	}
	return prefix + strconv.Itoa(i.Index)
}

// ParseScale parses "<note> <scale name>", e.g. "c4 major".
func ParseScale(s string, t *ScaleTable) (Scale, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Scale{}, &spec.BadValueError{Field: "scale", Value: s, Reason: "expected <note> <scale>"}
	}
	note, err := ParseNote(fields[0])
	if err != nil {
		return Scale{}, err
	}
	return NewScale(note, fields[1], t)
}

// Frequencies returns the frequencies of the notes.
func Frequencies(notes []Note) []float64 {
	ret := make([]float64, len(notes))
	for i, n := range notes {
		ret[i] = n.Frequency()
	}
	return ret
}
