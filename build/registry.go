// Package build turns a resolved specification tree into a tree of players,
// inputs and outputs.
//
// Every node category has a Registry mapping the node's "name" field to a
// constructor. Node packages add their constructors with a Register function;
// the Builder carries the registries together with everything constructors
// may need (constants, devices, the directory relative paths are read from).
package build

import (
	"fmt"
	"sort"

	"github.com/composer-audio/composer/spec"
)

type (
	// Constructor builds a node of type T from its document. The "name"
	// field has already been consumed; the constructor must consume every
	// field it reads. Fields left over after it returns are an error.
	Constructor[T any] func(s *spec.Spec, b *Builder) (T, error)

	// Registry maps node names of one category to their constructors.
	Registry[T any] struct {
		category     string
		constructors map[string]Constructor[T]
	}
)

// NewRegistry returns an empty registry. category names the registry in
// error messages, e.g. "player".
func NewRegistry[T any](category string) *Registry[T] {
	return &Registry[T]{category: category, constructors: map[string]Constructor[T]{}}
}

// Register adds a constructor. Registering a name twice panics.
func (r *Registry[T]) Register(name string, c Constructor[T]) {
	if _, ok := r.constructors[name]; ok {
		panic(fmt.Sprintf("%s %q registered twice", r.category, name))
	}
	r.constructors[name] = c
}

// Names returns the registered names, sorted.
func (r *Registry[T]) Names() []string {
	ret := make([]string, 0, len(r.constructors))
	for n := range r.constructors {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}

// Category returns the category the registry builds.
func (r *Registry[T]) Category() string {
	return r.category
}

// Build constructs a node from v, which must be a document with a "name"
// field naming a registered constructor.
func (r *Registry[T]) Build(v spec.Value, b *Builder) (T, error) {
	var zero T
	s, err := spec.As[*spec.Spec](r.category, v)
	if err != nil {
		return zero, err
	}
	name, err := spec.Consume[string](s, "name")
	if err != nil {
		return zero, fmt.Errorf("%s: %w", r.category, err)
	}
	c, ok := r.constructors[name]
	if !ok {
		return zero, &spec.UnknownNameError{Category: r.category, Name: name}
	}
	ret, err := c(s, b)
	if err != nil {
		return zero, fmt.Errorf("%s %q: %w", r.category, name, err)
	}
	if err := s.EnsureAllUsed(); err != nil {
		closeAll([]T{ret})
		return zero, fmt.Errorf("%s %q: %w", r.category, name, err)
	}
	return ret, nil
}
