package devices

import (
	"sync/atomic"

	"gitlab.com/gomidi/midi/v2"
)

const numChannels = 16

// NoteTable records which notes are held on which MIDI channel. It is
// written by the MIDI driver and read by the composition without locking.
type NoteTable struct {
	held [numChannels][128]atomic.Bool
}

// NoteHeld reports whether note is held on channel, counting from 0. A
// negative channel matches any channel.
func (t *NoteTable) NoteHeld(channel int, note uint8) bool {
	if note > 127 || channel >= numChannels {
		return false
	}
	if channel >= 0 {
		return t.held[channel][note].Load()
	}
	for c := range t.held {
		if t.held[c][note].Load() {
			return true
		}
	}
	return false
}

// Set marks a note as held or released.
func (t *NoteTable) Set(channel, note uint8, on bool) {
	if channel >= numChannels || note > 127 {
		return
	}
	t.held[channel][note].Store(on)
}

// HandleMessage updates the table from a MIDI message. A note on with zero
// velocity releases the note.
func (t *NoteTable) HandleMessage(msg midi.Message, timestampms int32) {
	var channel, key, velocity uint8
	if msg.GetNoteOn(&channel, &key, &velocity) {
		t.Set(channel, key, velocity > 0)
	} else if msg.GetNoteOff(&channel, &key, &velocity) {
		t.Set(channel, key, false)
	}
}

// MIDI is an open MIDI input.
type MIDI struct {
	NoteTable
	name  string
	close func()
}

// Name returns the name of the input port.
func (m *MIDI) Name() string { return m.name }

func (m *MIDI) Close() error {
	if m.close != nil {
		m.close()
		m.close = nil
	}
	return nil
}
