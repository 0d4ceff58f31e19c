// Package devices contains the input devices key and midi-note inputs read
// from.
package devices

import (
	"fmt"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
)

// DefaultKeyHold is how long a key counts as held after it was pressed.
// Terminals only report presses, so a held key is recognised by the key
// repeat of the terminal refreshing it.
const DefaultKeyHold = 150 * time.Millisecond

// Keyboard tracks which keys are held down.
type Keyboard struct {
	hold time.Duration
	now  func() time.Time

	mu      sync.Mutex
	pressed map[rune]time.Time

	interrupt chan struct{}
	closeOnce sync.Once
}

// NewKeyboard returns a keyboard that is not attached to a terminal; keys
// are fed to it with Press.
func NewKeyboard(hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &Keyboard{
		hold:      hold,
		now:       time.Now,
		pressed:   map[rune]time.Time{},
		interrupt: make(chan struct{}),
	}
}

// OpenKeyboard puts the terminal in raw mode and feeds its key presses to a
// new keyboard until Close.
func OpenKeyboard(hold time.Duration) (*Keyboard, error) {
	events, err := keyboard.GetKeys(16)
	if err != nil {
		return nil, fmt.Errorf("could not open keyboard: %w", err)
	}
	k := NewKeyboard(hold)
	go func() {
		for e := range events {
			if e.Err != nil {
				continue
			}
			switch {
			case e.Key == keyboard.KeyCtrlC || e.Key == keyboard.KeyEsc:
				k.stop()
			case e.Key == keyboard.KeySpace:
				k.Press(' ')
			case e.Rune != 0:
				k.Press(e.Rune)
			}
		}
	}()
	return k, nil
}

// Press marks r as pressed now.
func (k *Keyboard) Press(r rune) {
	t := k.now()
	k.mu.Lock()
	k.pressed[r] = t
	k.mu.Unlock()
}

func (k *Keyboard) KeyHeld(r rune) bool {
	k.mu.Lock()
	t, ok := k.pressed[r]
	k.mu.Unlock()
	return ok && k.now().Sub(t) < k.hold
}

// Interrupt is closed when ctrl-c or escape is pressed. The terminal does
// not raise a signal for them in raw mode.
func (k *Keyboard) Interrupt() <-chan struct{} {
	return k.interrupt
}

func (k *Keyboard) stop() {
	k.closeOnce.Do(func() { close(k.interrupt) })
}

// Close restores the terminal.
func (k *Keyboard) Close() error {
	k.stop()
	return keyboard.Close()
}
