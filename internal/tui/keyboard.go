package tui

import (
	"context"
	"errors"
	"io"

	"ratscrew/internal/config"
	"ratscrew/pkg/playable"
)

// ErrQuit is returned by Keyboard.Run when a quit key is pressed
var ErrQuit = errors.New("quit")

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// Keyboard turns raw keystrokes from a shared keyboard into player events
type Keyboard struct {
	bindings map[byte]playable.Event
}

// NewKeyboard returns a keyboard for the configured bindings
// Player 1 and player 2 are given IDs 1 and 2.
func NewKeyboard(keys config.KeyBindings) *Keyboard {
	keys = keys.Lower()
	return &Keyboard{
		bindings: map[byte]playable.Event{
			keys.Player1Play[0]: playable.Play(1),
			keys.Player1Slap[0]: playable.Slap(1),
			keys.Player2Play[0]: playable.Play(2),
			keys.Player2Slap[0]: playable.Slap(2),
		},
	}
}

// Decode returns the event bound to the key
// Letters match regardless of case.
func (k *Keyboard) Decode(b byte) (playable.Event, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	e, ok := k.bindings[b]
	return e, ok
}

// Run reads keystrokes until a quit key, the end of input or ctx is done
// Unbound keys are ignored. submit must not block.
func (k *Keyboard) Run(ctx context.Context, in io.Reader, submit func(playable.Event) bool) error {
	buf := make([]byte, 32)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := in.Read(buf)
		for _, b := range buf[:n] {
			if b == keyCtrlC || b == keyEscape {
				return ErrQuit
			}

			if e, ok := k.Decode(b); ok {
				submit(e)
			}
		}

		if err != nil {
			return err
		}
	}
}
