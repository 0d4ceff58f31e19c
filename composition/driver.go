package composition

import (
	"context"
	"fmt"
	"log"

	"github.com/composer-audio/composer"
)

// Swapper hands over rebuilt root players. It must not block.
type Swapper interface {
	Take() (composer.Player, bool)
}

// Driver plays the root player of a composition one tick at a time and
// writes every sample to the outputs. It is the only caller of the player
// tree.
type Driver struct {
	state   composer.State
	root    composer.Player
	outputs []composer.Output

	swapper     Swapper
	reloadTicks uint64
}

// ctxCheckTicks is how often Run looks at its context.
const ctxCheckTicks = 1024

// NewDriver returns a driver at tick zero. If swapper is not nil, it is
// asked for a new root player every reload-time of the composition.
func NewDriver(c *Composition, swapper Swapper) *Driver {
	return &Driver{
		state:       composer.NewState(c.Consts),
		root:        c.Root,
		outputs:     c.Outputs,
		swapper:     swapper,
		reloadTicks: c.Consts.ReloadTime.Ticks(c.Consts),
	}
}

// Step plays one tick.
func (d *Driver) Step() error {
	if d.swapper != nil && d.reloadTicks > 0 && d.state.Tick()%d.reloadTicks == 0 {
		if root, ok := d.swapper.Take(); ok {
			d.root = root
			log.Printf("driver: swapped in a new player at tick %d", d.state.Tick())
		}
	}
	p := d.root.Play(d.state)
	for i, o := range d.outputs {
		if err := o.Write(p); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}
	d.state.Increment()
	return nil
}

// Run steps until ctx is done or an output fails. It returns nil when ctx
// ends the run.
func (d *Driver) Run(ctx context.Context) error {
	for {
		for i := 0; i < ctxCheckTicks; i++ {
			if err := d.Step(); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

// Tick returns the number of ticks played.
func (d *Driver) Tick() uint64 {
	return d.state.Tick()
}

// Root returns the player currently playing.
func (d *Driver) Root() composer.Player {
	return d.root
}

// Close closes the outputs.
func (d *Driver) Close() error {
	return closeOutputs(d.outputs)
}
