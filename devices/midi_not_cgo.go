//go:build !cgo

package devices

import "errors"

// OpenMIDI fails: the MIDI driver needs cgo.
func OpenMIDI(prefix string) (*MIDI, error) {
	return nil, errors.New("MIDI input not supported in builds without cgo")
}
