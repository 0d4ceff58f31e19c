package theory

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v2"
)

type (
	// ScaleTable maps scale names to their interval steps in semitones.
	// Names are matched case-insensitively.
	ScaleTable struct {
		names []string
		steps map[string][]int
	}

	// ChordTable maps chord names to the scale indices forming the chord.
	// Names are matched case-insensitively.
	ChordTable struct {
		names   []string
		indices map[string][]ScaleIndex
	}
)

var (
	//go:embed scales.yaml
	defaultScalesYAML []byte
	//go:embed chords.yaml
	defaultChordsYAML []byte
)

// key folds name for case-insensitive lookup. A Caser keeps state, so a new
// one is made per call.
func key(name string) string {
	return cases.Fold().String(name)
}

// DefaultScales returns the built-in scale table.
var DefaultScales = sync.OnceValue(func() *ScaleTable {
	t, err := LoadScaleTable(defaultScalesYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in scale table: %v", err))
	}
	return t
})

// DefaultChords returns the built-in chord table.
var DefaultChords = sync.OnceValue(func() *ChordTable {
	t, err := LoadChordTable(defaultChordsYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in chord table: %v", err))
	}
	return t
})

// LoadScaleTable reads a YAML mapping from scale name to a list of steps.
func LoadScaleTable(data []byte) (*ScaleTable, error) {
	var m yaml.MapSlice
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("could not parse scale table: %w", err)
	}
	t := &ScaleTable{steps: make(map[string][]int, len(m))}
	for _, item := range m {
		name := fmt.Sprint(item.Key)
		raw, ok := item.Value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("scale %q: expected a list of steps", name)
		}
		steps := make([]int, 0, len(raw))
		for _, r := range raw {
			s, ok := r.(int)
			if !ok || s <= 0 {
				return nil, fmt.Errorf("scale %q: steps must be positive integers, got %v", name, r)
			}
			steps = append(steps, s)
		}
		if len(steps) == 0 {
			return nil, fmt.Errorf("scale %q: no steps", name)
		}
		if _, dup := t.steps[key(name)]; !dup {
			t.names = append(t.names, name)
		}
		t.steps[key(name)] = steps
	}
	return t, nil
}

// LoadScaleFile reads a scale table from a file.
func LoadScaleFile(path string) (*ScaleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read scale table: %w", err)
	}
	return LoadScaleTable(data)
}

// Lookup returns the steps of the named scale.
func (t *ScaleTable) Lookup(name string) ([]int, bool) {
	s, ok := t.steps[key(name)]
	return s, ok
}

// Names returns the scale names in definition order.
func (t *ScaleTable) Names() []string {
	return append([]string(nil), t.names...)
}

// LoadChordTable reads a YAML mapping from chord name to a list of scale
// indices such as "1", "b3" or "s5".
func LoadChordTable(data []byte) (*ChordTable, error) {
	var m yaml.MapSlice
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("could not parse chord table: %w", err)
	}
	t := &ChordTable{indices: make(map[string][]ScaleIndex, len(m))}
	for _, item := range m {
		name := fmt.Sprint(item.Key)
		raw, ok := item.Value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("chord %q: expected a list of scale indices", name)
		}
		indices := make([]ScaleIndex, 0, len(raw))
		for _, r := range raw {
			i, err := ParseScaleIndex(fmt.Sprint(r))
			if err != nil {
				return nil, fmt.Errorf("chord %q: %w", name, err)
			}
			indices = append(indices, i)
		}
		if _, dup := t.indices[key(name)]; !dup {
			t.names = append(t.names, name)
		}
		t.indices[key(name)] = indices
	}
	return t, nil
}

// LoadChordFile reads a chord table from a file.
func LoadChordFile(path string) (*ChordTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read chord table: %w", err)
	}
	return LoadChordTable(data)
}

// Lookup returns the scale indices of the named chord.
func (t *ChordTable) Lookup(name string) ([]ScaleIndex, bool) {
	i, ok := t.indices[key(name)]
	return i, ok
}

// Names returns the chord names in definition order.
func (t *ChordTable) Names() []string {
	return append([]string(nil), t.names...)
}
