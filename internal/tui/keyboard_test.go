package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"ratscrew/internal/config"
	"ratscrew/pkg/playable"
)

func runKeyboard(t *testing.T, input string) ([]playable.Event, error) {
	t.Helper()

	var events []playable.Event
	k := NewKeyboard(config.DefaultConfig().Keys)
	err := k.Run(context.Background(), strings.NewReader(input), func(e playable.Event) bool {
		events = append(events, e)
		return true
	})

	return events, err
}

func TestKeyboard_Run(t *testing.T) {
	a := assert.New(t)

	events, err := runKeyboard(t, "qxwoP\x1bq")
	a.Equal(ErrQuit, err)
	a.Equal([]playable.Event{
		playable.Play(1),
		playable.Slap(1),
		playable.Play(2),
		playable.Slap(2),
	}, events)

	events, err = runKeyboard(t, "oo\x03")
	a.Equal(ErrQuit, err)
	a.Equal([]playable.Event{playable.Play(2), playable.Play(2)}, events)

	events, err = runKeyboard(t, "q")
	a.Equal(io.EOF, err)
	a.Equal([]playable.Event{playable.Play(1)}, events)
}

func TestKeyboard_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	k := NewKeyboard(config.DefaultConfig().Keys)
	err := k.Run(ctx, strings.NewReader("q"), func(playable.Event) bool {
		t.Fatal("no input expected")
		return false
	})
	assert.Equal(t, context.Canceled, err)
}

func TestKeyboard_Decode(t *testing.T) {
	a := assert.New(t)
	k := NewKeyboard(config.KeyBindings{Player1Play: "a", Player1Slap: "s", Player2Play: "k", Player2Slap: "l"})

	e, ok := k.Decode('a')
	a.True(ok)
	a.Equal(playable.Play(1), e)

	e, ok = k.Decode('L')
	a.True(ok)
	a.Equal(playable.Slap(2), e)

	_, ok = k.Decode('q')
	a.False(ok)

	_, ok = k.Decode('1')
	a.False(ok)
}

func TestKeyboard_Decode_UppercaseBinding(t *testing.T) {
	a := assert.New(t)
	k := NewKeyboard(config.KeyBindings{Player1Play: "Q", Player1Slap: "W", Player2Play: "o", Player2Slap: "p"})

	e, ok := k.Decode('q')
	a.True(ok)
	a.Equal(playable.Play(1), e)

	e, ok = k.Decode('W')
	a.True(ok)
	a.Equal(playable.Slap(1), e)

	_, ok = k.Decode('x')
	a.False(ok)
}
