package macro

import (
	"strings"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/spec"
	"github.com/composer-audio/composer/theory"
)

// DefaultVar is the placeholder replaced by the map macro.
const DefaultVar = "$1"

// DefaultChordScale is the scale chords are taken from when none is given.
const DefaultChordScale = "major"

// Map expands to a list with one copy of the "fn" document per element of
// "list", the placeholder "var" (default $1) substituted by the element.
func Map(s *spec.Spec, _ *composer.Consts) (spec.Value, error) {
	fn, err := spec.Consume[*spec.Spec](s, "fn")
	if err != nil {
		return nil, err
	}
	v, err := spec.ConsumeDefault(s, "var", DefaultVar)
	if err != nil {
		return nil, err
	}
	list, err := spec.Consume[spec.List](s, "list")
	if err != nil {
		return nil, err
	}
	ret := make(spec.List, 0, len(list))
	for _, e := range list {
		doc := fn.Clone()
		if !substitute(doc, v, e) {
			return nil, &spec.BadValueError{Field: "fn", Value: spec.Format(fn), Reason: "does not contain " + v}
		}
		ret = append(ret, doc)
	}
	return ret, nil
}

// substitute replaces the first string field containing v, searching the
// fields of s before descending into nested documents and lists. A string
// element is spliced into the field; any other element replaces the field.
func substitute(s *spec.Spec, v string, e spec.Value) bool {
	for _, name := range s.Names() {
		field, _ := s.Get(name)
		str, ok := field.(spec.Str)
		if !ok || !strings.Contains(string(str), v) {
			continue
		}
		if es, ok := e.(spec.Str); ok {
			s.Set(name, spec.Str(strings.ReplaceAll(string(str), v, string(es))))
		} else {
			s.Set(name, spec.Clone(e))
		}
		return true
	}
	for _, name := range s.Names() {
		field, _ := s.Get(name)
		if substituteValue(field, v, e) {
			return true
		}
	}
	return false
}

func substituteValue(field spec.Value, v string, e spec.Value) bool {
	switch field := field.(type) {
	case *spec.Spec:
		return substitute(field, v, e)
	case spec.List:
		for _, f := range field {
			if substituteValue(f, v, e) {
				return true
			}
		}
	}
	return false
}

// Scale expands to the frequencies of "num-notes" notes of the named "scale"
// starting at "note". num-notes defaults to one repetition of the scale.
func Scale(s *spec.Spec, c *composer.Consts) (spec.Value, error) {
	note, err := consumeNote(s)
	if err != nil {
		return nil, err
	}
	name, err := spec.Consume[string](s, "scale")
	if err != nil {
		return nil, err
	}
	scale, err := theory.NewScale(note, name, c.Scales)
	if err != nil {
		return nil, err
	}
	n, err := spec.ConsumeDefault(s, "num-notes", scale.Len())
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, &spec.BadValueError{Field: "num-notes", Value: spec.Format(spec.Int(n)), Reason: "must be at least 1"}
	}
	return frequencies(scale.Notes(n)), nil
}

// Chord expands to the frequencies of the named "chord" built from "scale"
// (default major) rooted at "note".
func Chord(s *spec.Spec, c *composer.Consts) (spec.Value, error) {
	note, err := consumeNote(s)
	if err != nil {
		return nil, err
	}
	scaleName, err := spec.ConsumeDefault(s, "scale", DefaultChordScale)
	if err != nil {
		return nil, err
	}
	chordName, err := spec.Consume[string](s, "chord")
	if err != nil {
		return nil, err
	}
	scale, err := theory.NewScale(note, scaleName, c.Scales)
	if err != nil {
		return nil, err
	}
	chord, err := theory.ChordInScale(scale, chordName, c.Chords)
	if err != nil {
		return nil, err
	}
	return frequencies(chord), nil
}

// TimelineMulti expands every non-blank line of "events" into a timeline
// document sharing "event-duration".
func TimelineMulti(s *spec.Spec, _ *composer.Consts) (spec.Value, error) {
	duration, err := spec.Consume[spec.Value](s, "event-duration")
	if err != nil {
		return nil, err
	}
	events, err := spec.Consume[string](s, "events")
	if err != nil {
		return nil, err
	}
	var ret spec.List
	for _, line := range strings.Split(events, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ret = append(ret, spec.Of(
			"name", spec.Str("timeline"),
			"event-duration", spec.Clone(duration),
			"events", spec.Str(line),
		))
	}
	return ret, nil
}

func consumeNote(s *spec.Spec) (theory.Note, error) {
	str, err := spec.Consume[string](s, "note")
	if err != nil {
		return theory.Note{}, err
	}
	return theory.ParseNote(str)
}

func frequencies(notes []theory.Note) spec.List {
	ret := make(spec.List, len(notes))
	for i, n := range notes {
		ret[i] = spec.Float(n.Frequency())
	}
	return ret
}
