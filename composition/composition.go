// Package composition loads a whole composition document and drives it one
// tick at a time.
//
// A composition document has three top level fields:
//
//	consts:  overrides of the default constants (optional)
//	players: the root player
//	outputs: a list of outputs the samples are written to (optional)
package composition

import (
	"errors"
	"fmt"
	"log"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/build"
	"github.com/composer-audio/composer/inputs"
	"github.com/composer-audio/composer/macro"
	"github.com/composer-audio/composer/outputs"
	"github.com/composer-audio/composer/players"
	"github.com/composer-audio/composer/spec"
)

type (
	// Devices are the environment of a composition: input devices and the
	// directory relative paths are resolved against.
	Devices struct {
		Keys    composer.KeyState
		Notes   composer.NoteState
		BaseDir string
	}

	// Composition is a loaded composition document.
	Composition struct {
		Consts  *composer.Consts
		Root    composer.Player
		Outputs []composer.Output
	}

	// Loader builds compositions from the text of composition documents.
	Loader struct {
		Reader  spec.Reader
		Consts  *composer.Consts // defaults the consts of a document override
		Devices Devices

		// set by Load, used by LoadPlayer
		loaded *composer.Consts
		fixed  map[string]string
	}
)

// NewBuilder returns a builder with every player, input and output
// registered.
func NewBuilder(c *composer.Consts, d Devices) *build.Builder {
	b := build.NewBuilder(c)
	b.Keys, b.Notes, b.BaseDir = d.Keys, d.Notes, d.BaseDir
	inputs.Register(b)
	players.Register(b)
	outputs.Register(b)
	return b
}

// Names returns the registered names per category, macros included.
func Names(c *composer.Consts) map[string][]string {
	b := NewBuilder(c, Devices{})
	return map[string][]string{
		b.Players.Category(): b.Players.Names(),
		b.Bounded.Category(): b.Bounded.Names(),
		b.Bools.Category():   b.Bools.Names(),
		b.Outputs.Category(): b.Outputs.Names(),
		"macro":              macro.NewResolver(c).Names(),
	}
}

// Load reads, resolves and builds a composition. Nothing is left open when
// an error is returned.
func (l *Loader) Load(text []byte) (*Composition, error) {
	s, err := l.Reader.Read(text)
	if err != nil {
		return nil, err
	}
	fixed := fixedFields(s)
	c := l.base()
	doc, ok, err := spec.ConsumeOptional[*spec.Spec](s, "consts")
	if err != nil {
		return nil, err
	}
	if ok {
		if c, err = c.Override(doc); err != nil {
			return nil, fmt.Errorf("consts: %w", err)
		}
	}
	resolved, err := macro.NewResolver(c).ResolveSpec(s)
	if err != nil {
		return nil, fmt.Errorf("could not resolve macros: %w", err)
	}
	b := NewBuilder(c, l.Devices)
	root, err := build.ConsumePlayer(resolved, b, "players")
	if err != nil {
		return nil, fmt.Errorf("could not build players: %w", err)
	}
	var outs []composer.Output
	if _, ok := resolved.Get("outputs"); ok {
		if outs, err = build.ConsumeOutputs(resolved, b, "outputs"); err != nil {
			return nil, fmt.Errorf("could not build outputs: %w", err)
		}
	}
	if err := resolved.EnsureAllUsed(); err != nil {
		closeOutputs(outs)
		return nil, err
	}
	l.loaded, l.fixed = c, fixed
	return &Composition{Consts: c, Root: root, Outputs: outs}, nil
}

// LoadPlayer rebuilds only the root player of a composition document, with
// the constants of the last Load. Changes to consts and outputs need a
// restart; they are reported in the log and otherwise ignored.
func (l *Loader) LoadPlayer(text []byte) (composer.Player, error) {
	c := l.loaded
	if c == nil {
		c = l.base()
	}
	s, err := l.Reader.Read(text)
	if err != nil {
		return nil, err
	}
	fixed := fixedFields(s)
	for _, name := range []string{"consts", "outputs"} {
		if fixed[name] != l.fixed[name] {
			log.Printf("reload: %v changed, restart to apply", name)
		}
		s.Remove(name)
	}
	resolved, err := macro.NewResolver(c).ResolveSpec(s)
	if err != nil {
		return nil, fmt.Errorf("could not resolve macros: %w", err)
	}
	root, err := build.ConsumePlayer(resolved, NewBuilder(c, l.Devices), "players")
	if err != nil {
		return nil, fmt.Errorf("could not build players: %w", err)
	}
	if err := resolved.EnsureAllUsed(); err != nil {
		return nil, err
	}
	return root, nil
}

// fixedFields formats the fields of a document that are not reloaded.
func fixedFields(s *spec.Spec) map[string]string {
	ret := map[string]string{}
	for _, name := range []string{"consts", "outputs"} {
		if v, ok := s.Get(name); ok {
			ret[name] = spec.Format(v)
		}
	}
	return ret
}

func (l *Loader) base() *composer.Consts {
	if l.Consts == nil {
		return composer.DefaultConsts()
	}
	return l.Consts
}

// Close closes every output of the composition.
func (c *Composition) Close() error {
	return closeOutputs(c.Outputs)
}

func closeOutputs(outs []composer.Output) error {
	var errs []error
	for i, o := range outs {
		if err := o.Close(); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
