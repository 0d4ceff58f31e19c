package spec

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	// Value is a node of a specification tree. It is one of Str, Int, Float,
	// Bool, *Spec or List. Values form a tree: they are never shared between
	// two parents and never contain cycles.
	Value interface {
		// Kind names the variant, used in error messages.
		Kind() string
		clone() Value
	}

	Str   string
	Int   int64
	Float float64
	Bool  bool
	List  []Value
)

func (Str) Kind() string   { return "string" }
func (Int) Kind() string   { return "int" }
func (Float) Kind() string { return "float" }
func (Bool) Kind() string  { return "bool" }
func (List) Kind() string  { return "list" }
func (*Spec) Kind() string { return "document" }

func (v Str) clone() Value   { return v }
func (v Int) clone() Value   { return v }
func (v Float) clone() Value { return v }
func (v Bool) clone() Value  { return v }

func (l List) clone() Value {
	if l == nil {
		return List(nil)
	}
	ret := make(List, len(l))
	for i, v := range l {
		ret[i] = v.clone()
	}
	return ret
}

func (s *Spec) clone() Value { return s.Clone() }

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	if v == nil {
		return nil
	}
	return v.clone()
}

// Format renders a value in a compact, YAML-like single line form. It is meant
// for log and error messages.
func Format(v Value) string {
	var b strings.Builder
	format(&b, v)
	return b.String()
}

func format(b *strings.Builder, v Value) {
	switch v := v.(type) {
	case Str:
		b.WriteString(strconv.Quote(string(v)))
	case Int:
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case Float:
		b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 64))
	case Bool:
		b.WriteString(strconv.FormatBool(bool(v)))
	case List:
		b.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, e)
		}
		b.WriteByte(']')
	case *Spec:
		b.WriteByte('{')
		for i, n := range v.names {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(n)
			b.WriteString(": ")
			format(b, v.values[n])
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%v", v)
	}
}
