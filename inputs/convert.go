package inputs

import (
	"github.com/composer-audio/composer"
)

type (
	// Constant is a bounded input that never changes.
	Constant struct {
		Value        float64
		Lower, Upper float64
	}

	// BoolToBounded is 1 while its input is true and 0 otherwise.
	BoolToBounded struct {
		Input composer.BoolInput
	}

	// BoundedToBool is true while its input, rescaled to [-1, 1], is not
	// negative.
	BoundedToBool struct {
		Input composer.BoundedInput
	}

	// Mod is Input * Mult + Add, with the bounds transformed accordingly.
	Mod struct {
		Input     composer.BoundedInput
		Add, Mult float64
	}

	// ConstantBool is a bool input that never changes.
	ConstantBool bool

	// Not inverts a bool input.
	Not struct {
		Input composer.BoolInput
	}
)

func (c *Constant) Get(composer.State) float64 { return c.Value }
func (c *Constant) Bounds() (float64, float64) { return c.Lower, c.Upper }

func (b *BoolToBounded) Get(s composer.State) float64 {
	if b.Input.Get(s) {
		return 1
	}
	return 0
}

func (b *BoolToBounded) Bounds() (float64, float64) { return 0, 1 }
func (b *BoolToBounded) Children() []any            { return []any{b.Input} }

func (b *BoundedToBool) Get(s composer.State) bool {
	return composer.Rescale(b.Input, s, -1, 1) >= 0
}

func (b *BoundedToBool) Children() []any { return []any{b.Input} }

func (m *Mod) Get(s composer.State) float64 {
	return m.Input.Get(s)*m.Mult + m.Add
}

func (m *Mod) Bounds() (float64, float64) {
	lo, hi := m.Input.Bounds()
	lo, hi = lo*m.Mult+m.Add, hi*m.Mult+m.Add
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func (m *Mod) Children() []any { return []any{m.Input} }

func (c ConstantBool) Get(composer.State) bool { return bool(c) }

func (n *Not) Get(s composer.State) bool { return !n.Input.Get(s) }
func (n *Not) Children() []any           { return []any{n.Input} }
