// Package theory resolves musical names (notes, scales, chords) into
// frequencies.
package theory

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/composer-audio/composer/spec"
)

type (
	// Pitch is a pitch class, C = 0 through B = 11.
	Pitch int

	// Note is a pitch class in a given octave, e.g. a#4.
	Note struct {
		Pitch  Pitch
		Octave int
	}
)

const pitchesPerOctave = 12

var pitchNames = [pitchesPerOctave]string{"c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"}

// frequencies of the pitches in the fifth octave
var octave5 = [pitchesPerOctave]float64{523.25, 554.37, 587.33, 622.25, 659.25, 698.46, 739.99, 783.99, 830.81, 880, 932.33, 987.77}

var noteRegexp = regexp.MustCompile(`^([a-gA-G]#?)([0-9]*)$`)

// ParseNote parses a note such as "a4", "C#5" or "f#3".
func ParseNote(s string) (Note, error) {
	m := noteRegexp.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Note{}, &spec.BadValueError{Field: "note", Value: s, Reason: "expected a note like a4 or c#5"}
	}
	if m[2] == "" {
		return Note{}, &spec.BadValueError{Field: "note", Value: s, Reason: "missing octave"}
	}
	octave, err := strconv.Atoi(m[2])
	if err != nil {
		return Note{}, &spec.BadValueError{Field: "note", Value: s, Reason: err.Error()}
	}
	name := strings.ToLower(m[1])
	for i, n := range pitchNames {
		if n == name {
			return Note{Pitch: Pitch(i), Octave: octave}, nil
		}
	}
	return Note{}, &spec.BadValueError{Field: "note", Value: s, Reason: "unknown pitch"}
}

// Frequency returns the frequency of the note in Hz.
func (n Note) Frequency() float64 {
	return octave5[n.Pitch] * math.Pow(2, float64(n.Octave-5))
}

// Next returns the note a semitone higher.
func (n Note) Next() Note {
	return n.Add(1)
}

// Add returns the note the given number of semitones away; negative values
// go down.
func (n Note) Add(semitones int) Note {
	abs := n.Octave*pitchesPerOctave + int(n.Pitch) + semitones
	octave := abs / pitchesPerOctave
	pitch := abs % pitchesPerOctave
	if pitch < 0 {
		pitch += pitchesPerOctave
		octave--
	}
	return Note{Pitch: Pitch(pitch), Octave: octave}
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", pitchNames[n.Pitch], n.Octave)
}
