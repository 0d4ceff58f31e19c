package inputs

import (
	"strconv"
	"unicode/utf8"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/spec"
	"github.com/composer-audio/composer/theory"
)

type (
	// Key is true while a keyboard key is held.
	Key struct {
		Keys composer.KeyState
		Key  rune
	}

	// Note is true while a MIDI note is held. Channel is zero-based; a
	// negative channel matches any.
	Note struct {
		Notes   composer.NoteState
		Channel int
		Note    uint8
	}
)

func (k *Key) Get(composer.State) bool {
	return k.Keys.KeyHeld(k.Key)
}

func (n *Note) Get(composer.State) bool {
	return n.Notes.NoteHeld(n.Channel, n.Note)
}

// ParseKey parses a single character key.
func ParseKey(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, &spec.BadValueError{Field: "key", Value: s, Reason: "expected a single character"}
	}
	return r, nil
}

// MIDINumber returns the MIDI note number of n; c4 is 60.
func MIDINumber(n theory.Note) (uint8, error) {
	num := (n.Octave+1)*12 + int(n.Pitch)
	if num < 0 || num > 127 {
		return 0, &spec.BadValueError{Field: "note", Value: n.String(), Reason: "outside the MIDI note range"}
	}
	return uint8(num), nil
}

// consumeMIDINote reads a note given either as a name like "c4" or as a MIDI
// note number.
func consumeMIDINote(s *spec.Spec) (uint8, error) {
	v, err := spec.Consume[spec.Value](s, "note")
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case spec.Int:
		if v < 0 || v > 127 {
			return 0, &spec.BadValueError{Field: "note", Value: strconv.FormatInt(int64(v), 10), Reason: "outside the MIDI note range"}
		}
		return uint8(v), nil
	case spec.Str:
		n, err := theory.ParseNote(string(v))
		if err != nil {
			return 0, err
		}
		return MIDINumber(n)
	}
	return 0, &spec.TypeMismatchError{Field: "note", Expected: "string or int", Actual: v.Kind()}
}
