// Package macro expands macros in a specification tree before it is built.
//
// A macro is a document whose name matches a registered macro. The resolver
// works bottom-up: the children of a document are resolved first, then the
// document itself. The value a macro returns replaces the document and is not
// resolved again.
package macro

import (
	"fmt"
	"sort"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/spec"
)

type (
	// Macro expands the document s into a replacement value. The "name"
	// field has already been consumed. A macro consumes every field it
	// reads; unused fields are an error.
	Macro func(s *spec.Spec, c *composer.Consts) (spec.Value, error)

	// Resolver holds the registered macros.
	Resolver struct {
		consts *composer.Consts
		macros map[string]Macro
	}
)

// NewResolver returns a resolver with the built-in macros registered.
func NewResolver(c *composer.Consts) *Resolver {
	r := &Resolver{consts: c, macros: map[string]Macro{}}
	r.Register("map", Map)
	r.Register("scale", Scale)
	r.Register("chord", Chord)
	r.Register("timeline-multi", TimelineMulti)
	return r
}

// Register adds a macro. Registering a name twice panics.
func (r *Resolver) Register(name string, m Macro) {
	if _, ok := r.macros[name]; ok {
		panic(fmt.Sprintf("macro %q registered twice", name))
	}
	r.macros[name] = m
}

// Names returns the registered macro names, sorted.
func (r *Resolver) Names() []string {
	ret := make([]string, 0, len(r.macros))
	for n := range r.macros {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}

// Resolve expands all macros in v. v is modified in place; use the returned
// value, since the root itself may be replaced.
func (r *Resolver) Resolve(v spec.Value) (spec.Value, error) {
	switch v := v.(type) {
	case *spec.Spec:
		return r.resolveSpec(v)
	case spec.List:
		for i, e := range v {
			resolved, err := r.Resolve(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			v[i] = resolved
		}
		return v, nil
	}
	return v, nil
}

// ResolveSpec resolves s, which must remain a document after expansion.
func (r *Resolver) ResolveSpec(s *spec.Spec) (*spec.Spec, error) {
	v, err := r.Resolve(s)
	if err != nil {
		return nil, err
	}
	ret, ok := v.(*spec.Spec)
	if !ok {
		return nil, &spec.BadValueError{Field: "root", Value: spec.Format(v), Reason: "a macro at the root must expand to a document"}
	}
	return ret, nil
}

func (r *Resolver) resolveSpec(s *spec.Spec) (spec.Value, error) {
	for _, name := range s.Names() {
		child, _ := s.Get(name)
		resolved, err := r.Resolve(child)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		s.Set(name, resolved)
	}
	nameValue, ok := s.Get("name")
	if !ok {
		return s, nil
	}
	name, ok := nameValue.(spec.Str)
	if !ok {
		return s, nil
	}
	m, ok := r.macros[string(name)]
	if !ok {
		return s, nil
	}
	s.Remove("name")
	ret, err := m(s, r.consts)
	if err != nil {
		return nil, fmt.Errorf("macro %q: %w", name, err)
	}
	if err := s.EnsureAllUsed(); err != nil {
		return nil, fmt.Errorf("macro %q: %w", name, err)
	}
	return ret, nil
}
