//go:build cgo

package devices

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// OpenMIDI opens the first MIDI input whose name starts with prefix. An
// empty prefix takes the first input.
func OpenMIDI(prefix string) (*MIDI, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("could not open MIDI driver: %w", err)
	}
	ins, err := driver.Ins()
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("could not list MIDI inputs: %w", err)
	}
	for _, in := range ins {
		if !strings.HasPrefix(in.String(), prefix) {
			continue
		}
		if err := in.Open(); err != nil {
			driver.Close()
			return nil, fmt.Errorf("opening MIDI input failed: %w", err)
		}
		m := &MIDI{name: in.String()}
		stop, err := midi.ListenTo(in, m.HandleMessage)
		if err != nil {
			in.Close()
			driver.Close()
			return nil, fmt.Errorf("could not listen to MIDI input %v: %w", in, err)
		}
		m.close = func() {
			stop()
			in.Close()
			driver.Close()
		}
		return m, nil
	}
	driver.Close()
	return nil, fmt.Errorf("could not find any MIDI input starting with %q", prefix)
}
