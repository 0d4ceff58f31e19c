package devices_test

import (
	"testing"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/devices"
)

var (
	_ composer.KeyState  = (*devices.Keyboard)(nil)
	_ composer.NoteState = (*devices.NoteTable)(nil)
	_ composer.NoteState = (*devices.MIDI)(nil)
)

func TestKeyboardHold(t *testing.T) {
	k := devices.NewKeyboard(50 * time.Millisecond)
	if k.KeyHeld('a') {
		t.Fatalf("key held before it was pressed")
	}
	k.Press('a')
	if !k.KeyHeld('a') || k.KeyHeld('b') {
		t.Fatalf("got: a %v b %v expected: a true b false", k.KeyHeld('a'), k.KeyHeld('b'))
	}
	time.Sleep(100 * time.Millisecond)
	if k.KeyHeld('a') {
		t.Fatalf("key still held after the hold window")
	}
}

func TestNoteTable(t *testing.T) {
	var n devices.NoteTable
	n.HandleMessage(midi.NoteOn(2, 60, 100), 0)
	for _, tt := range []struct {
		channel  int
		note     uint8
		expected bool
	}{
		{2, 60, true},
		{-1, 60, true},
		{1, 60, false},
		{2, 61, false},
		{16, 60, false},
	} {
		if got := n.NoteHeld(tt.channel, tt.note); got != tt.expected {
			t.Fatalf("channel %v note %v got: %v expected: %v", tt.channel, tt.note, got, tt.expected)
		}
	}
	n.HandleMessage(midi.NoteOn(2, 60, 0), 0)
	if n.NoteHeld(-1, 60) {
		t.Fatalf("note on with zero velocity should release the note")
	}
	n.HandleMessage(midi.NoteOn(0, 64, 1), 0)
	n.HandleMessage(midi.NoteOff(0, 64), 0)
	if n.NoteHeld(0, 64) {
		t.Fatalf("note off should release the note")
	}
}
