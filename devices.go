package composer

type (
	// KeyState reports which keys of a keyboard are held.
	KeyState interface {
		KeyHeld(key rune) bool
	}

	// NoteState reports which notes of a MIDI device are held. A negative
	// channel matches any channel.
	NoteState interface {
		NoteHeld(channel int, note uint8) bool
	}
)
