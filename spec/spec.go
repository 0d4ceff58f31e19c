// Package spec implements the loosely typed specification tree a composition
// is written in, together with the readers that produce it from text.
//
// Constructors read a document with the Consume family of functions, which
// remove the field they read. Once every constructor has run, a document must
// be empty; EnsureAllUsed reports anything left over, so misspelled or
// misplaced fields are errors rather than silently ignored.
package spec

import (
	"fmt"
	"slices"
)

// Spec is an insertion-ordered document mapping field names to values.
type Spec struct {
	names  []string
	values map[string]Value
}

// New returns an empty document.
func New() *Spec {
	return &Spec{values: map[string]Value{}}
}

// Of builds a document from alternating name, value pairs. It is mostly
// useful in tests and macros.
func Of(pairs ...any) *Spec {
	if len(pairs)%2 != 0 {
		panic("spec.Of: odd number of arguments")
	}
	s := New()
	for i := 0; i < len(pairs); i += 2 {
		s.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return s
}

// Set stores v under name. A new name is appended at the end; an existing
// name keeps its position.
func (s *Spec) Set(name string, v Value) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = v
}

// Get returns the value under name without consuming it.
func (s *Spec) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Remove deletes and returns the value under name.
func (s *Spec) Remove(name string) (Value, bool) {
	v, ok := s.values[name]
	if !ok {
		return nil, false
	}
	delete(s.values, name)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
	return v, true
}

// Names returns the field names in document order.
func (s *Spec) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of fields.
func (s *Spec) Len() int {
	return len(s.names)
}

// Clone returns a deep copy of the document.
func (s *Spec) Clone() *Spec {
	ret := &Spec{names: slices.Clone(s.names), values: make(map[string]Value, len(s.values))}
	for n, v := range s.values {
		ret.values[n] = v.clone()
	}
	return ret
}

// EnsureAllUsed returns an ExtraFieldsError if any field is left.
func (s *Spec) EnsureAllUsed() error {
	if len(s.names) == 0 {
		return nil
	}
	return &ExtraFieldsError{Fields: slices.Clone(s.names)}
}

func (s *Spec) String() string {
	return Format(s)
}

// As converts a single value to T. T must be one of string, int, int64,
// float64, bool, *Spec, List or Value. An Int converts to float64; no other
// conversion is done. field names the value in error messages.
func As[T any](field string, v Value) (T, error) {
	var ret T
	mismatch := func(expected string) (T, error) {
		var zero T
		actual := "nothing"
		if v != nil {
			actual = v.Kind()
		}
		return zero, &TypeMismatchError{Field: field, Expected: expected, Actual: actual}
	}
	switch p := any(&ret).(type) {
	case *string:
		s, ok := v.(Str)
		if !ok {
			return mismatch("string")
		}
		*p = string(s)
	case *int:
		i, ok := v.(Int)
		if !ok {
			return mismatch("int")
		}
		*p = int(i)
	case *int64:
		i, ok := v.(Int)
		if !ok {
			return mismatch("int")
		}
		*p = int64(i)
	case *float64:
		switch n := v.(type) {
		case Float:
			*p = float64(n)
		case Int:
			*p = float64(n)
		default:
			return mismatch("float")
		}
	case *bool:
		b, ok := v.(Bool)
		if !ok {
			return mismatch("bool")
		}
		*p = bool(b)
	case **Spec:
		d, ok := v.(*Spec)
		if !ok {
			return mismatch("document")
		}
		*p = d
	case *List:
		l, ok := v.(List)
		if !ok {
			return mismatch("list")
		}
		*p = l
	case *Value:
		if v == nil {
			return mismatch("value")
		}
		*p = v
	default:
		panic(fmt.Sprintf("spec.As: unsupported type %T", ret))
	}
	return ret, nil
}

// Consume removes the field name from s and converts it to T.
func Consume[T any](s *Spec, name string) (T, error) {
	v, ok := s.Remove(name)
	if !ok {
		var zero T
		return zero, &MissingFieldError{Field: name}
	}
	return As[T](name, v)
}

// ConsumeDefault is like Consume, but returns def if the field is absent.
func ConsumeDefault[T any](s *Spec, name string, def T) (T, error) {
	v, ok := s.Remove(name)
	if !ok {
		return def, nil
	}
	return As[T](name, v)
}

// ConsumeOptional is like Consume, but reports an absent field with ok ==
// false instead of an error.
func ConsumeOptional[T any](s *Spec, name string) (ret T, ok bool, err error) {
	v, ok := s.Remove(name)
	if !ok {
		return ret, false, nil
	}
	ret, err = As[T](name, v)
	return ret, true, err
}

// ConsumeList removes the list field name and converts every element to T.
// The first failing element is reported as name[i]. An absent field yields an
// empty list.
func ConsumeList[T any](s *Spec, name string) ([]T, error) {
	l, err := ConsumeDefault[List](s, name, nil)
	if err != nil {
		return nil, err
	}
	return ListOf[T](name, l)
}

// ListOf converts every element of l to T.
func ListOf[T any](field string, l List) ([]T, error) {
	ret := make([]T, 0, len(l))
	for i, v := range l {
		t, err := As[T](fmt.Sprintf("%s[%d]", field, i), v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, t)
	}
	return ret, nil
}
