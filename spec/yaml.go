package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a single YAML document into a Value. Mapping order is
// preserved, anchors and aliases are followed and null values are rejected.
func ParseYAML(text []byte) (Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(text))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("yaml: empty document")
		}
		return nil, fmt.Errorf("yaml: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		return nil, errors.New("yaml: expected exactly one document")
	}
	return fromNode(&doc, 0)
}

// ParseYAMLSpec is like ParseYAML but requires the top level to be a mapping.
func ParseYAMLSpec(text []byte) (*Spec, error) {
	v, err := ParseYAML(text)
	if err != nil {
		return nil, err
	}
	return As[*Spec]("root", v)
}

const maxAliasDepth = 100

func fromNode(n *yaml.Node, depth int) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return nil, fmt.Errorf("yaml: line %d: empty document", n.Line)
		}
		return fromNode(n.Content[0], depth)
	case yaml.AliasNode:
		if depth > maxAliasDepth {
			return nil, fmt.Errorf("yaml: line %d: aliases nested too deep", n.Line)
		}
		return fromNode(n.Alias, depth+1)
	case yaml.MappingNode:
		s := New()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("yaml: line %d: mapping keys must be scalars", k.Line)
			}
			if k.Value == "<<" {
				if err := merge(s, vn, depth); err != nil {
					return nil, err
				}
				continue
			}
			v, err := fromNode(vn, depth)
			if err != nil {
				return nil, err
			}
			if _, dup := s.Get(k.Value); dup {
				return nil, fmt.Errorf("yaml: line %d: duplicate key %q", k.Line, k.Value)
			}
			s.Set(k.Value, v)
		}
		return s, nil
	case yaml.SequenceNode:
		l := make(List, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c, depth)
			if err != nil {
				return nil, err
			}
			l = append(l, v)
		}
		return l, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return nil, fmt.Errorf("yaml: line %d: unsupported node", n.Line)
}

// merge implements the "<<" merge key: fields of the merged mappings that are
// not yet present are added.
func merge(s *Spec, n *yaml.Node, depth int) error {
	v, err := fromNode(n, depth)
	if err != nil {
		return err
	}
	var docs []*Spec
	switch v := v.(type) {
	case *Spec:
		docs = append(docs, v)
	case List:
		for _, e := range v {
			d, ok := e.(*Spec)
			if !ok {
				return fmt.Errorf("yaml: line %d: merge value must be a mapping", n.Line)
			}
			docs = append(docs, d)
		}
	default:
		return fmt.Errorf("yaml: line %d: merge value must be a mapping", n.Line)
	}
	for _, d := range docs {
		for _, name := range d.names {
			if _, ok := s.Get(name); !ok {
				s.Set(name, d.values[name])
			}
		}
	}
	return nil
}

func fromScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!str", "!!binary", "!!timestamp":
		return Str(n.Value), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("yaml: line %d: %w", n.Line, err)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("yaml: line %d: %w", n.Line, err)
		}
		return Float(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("yaml: line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!null":
		return nil, fmt.Errorf("yaml: line %d: null values are not allowed", n.Line)
	}
	return nil, fmt.Errorf("yaml: line %d: unsupported tag %s", n.Line, n.ShortTag())
}
