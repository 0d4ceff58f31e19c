package players

import (
	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/spec"
)

// Speed plays its child with time scaled by a constant factor: at position t
// the child is played at t * factor. The factor is held as an exact ratio
// and applied to the sub-tick position, so chains of Speed nodes neither
// drift nor jitter.
type Speed struct {
	child composer.Player
	ratio composer.Ratio
}

// NewSpeed returns child sped up by factor. factor must be finite and not
// negative.
func NewSpeed(child composer.Player, factor float64) (*Speed, error) {
	r, err := composer.RatioFromFloat(factor)
	if err != nil {
		return nil, &spec.BadValueError{Field: "speed", Value: spec.Format(spec.Float(factor)), Reason: err.Error()}
	}
	return &Speed{child: child, ratio: r}, nil
}

func (p *Speed) Play(s composer.State) composer.Playable {
	return p.child.Play(s.WithMilliTick(p.Scale(s.MilliTick())))
}

// Scale returns the position the child is played at for milliTick m.
func (p *Speed) Scale(m uint64) uint64 {
	return p.ratio.Apply(m)
}

func (p *Speed) Children() []any { return []any{p.child} }
