package theory

import (
	"strconv"
	"strings"

	"github.com/composer-audio/composer/spec"
)

// Chord is a set of notes played together.
type Chord []Note

// majorSteps is used for chords named relative to a root note.
var majorSteps = []int{2, 2, 1, 2, 2, 2, 1}

// ChordInScale returns the chord's notes within the scale s.
func ChordInScale(s Scale, name string, t *ChordTable) (Chord, error) {
	indices, ok := t.Lookup(name)
	if !ok {
		return nil, &spec.UnknownNameError{Category: "chord", Name: name}
	}
	ret := make(Chord, len(indices))
	for i, idx := range indices {
		ret[i] = s.At(idx)
	}
	return ret, nil
}

// NoteChord returns the named chord rooted at base, e.g. "a4 dim".
func NoteChord(base Note, name string, t *ChordTable) (Chord, error) {
	return ChordInScale(Scale{Base: base, Steps: majorSteps}, name, t)
}

// DegreeChord returns the triad built on the one-based degree of s, e.g. the
// fourth degree of c major gives f, a, c.
func DegreeChord(s Scale, degree int) Chord {
	return Chord{
		s.At(ScaleIndex{Index: degree}),
		s.At(ScaleIndex{Index: degree + 2}),
		s.At(ScaleIndex{Index: degree + 4}),
	}
}

// ParseChord parses either "<note> <chord>" (e.g. "a4 minor") or
// "<note> <scale> <degree>" (e.g. "c4 major 4").
func ParseChord(s string, scales *ScaleTable, chords *ChordTable) (Chord, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 2:
		note, err := ParseNote(fields[0])
		if err != nil {
			return nil, err
		}
		return NoteChord(note, fields[1], chords)
	case 3:
		scale, err := ParseScale(fields[0]+" "+fields[1], scales)
		if err != nil {
			return nil, err
		}
		degree, err := strconv.Atoi(fields[2])
		if err != nil || degree < 1 {
			return nil, &spec.BadValueError{Field: "chord", Value: s, Reason: "degree must be a positive integer"}
		}
		return DegreeChord(scale, degree), nil
	}
	return nil, &spec.BadValueError{Field: "chord", Value: s, Reason: "expected <note> <chord> or <note> <scale> <degree>"}
}

// Frequencies returns the frequencies of the chord's notes.
func (c Chord) Frequencies() []float64 {
	return Frequencies(c)
}
