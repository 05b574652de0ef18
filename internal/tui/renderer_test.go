package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"ratscrew/internal/config"
	"ratscrew/pkg/deck"
	"ratscrew/pkg/playable"
	"ratscrew/pkg/ratscrew"
	"ratscrew/pkg/room"
	"ratscrew/pkg/snapshot"
)

func testGameState() *ratscrew.GameState {
	return &ratscrew.GameState{
		RoundState: ratscrew.RoundState{
			Phase:          ratscrew.PhaseFaceCardChain,
			Turn:           2,
			ChainOwner:     1,
			DrawsRemaining: 2,
		},
		Participants: []*ratscrew.GameStateParticipant{
			{PlayerID: 1, CardsInHand: 20},
			{PlayerID: 2, CardsInHand: 27},
		},
		PileSize: 5,
		TopCards: deck.CardsFromString("12h,7s,10d,5c"),
	}
}

func TestRenderer_Render(t *testing.T) {
	a := assert.New(t)
	buf := &bytes.Buffer{}
	r := NewRenderer(buf, config.DefaultConfig().Keys)

	a.False(r.Update(&playable.Response{Key: room.KeyGame, Data: testGameState()}))
	a.False(r.Update(&playable.Response{Key: room.KeyLogs, Data: []*playable.LogMessage{
		playable.SimpleLogMessage(1, "{} played %s", "Q♡"),
	}}))
	a.NoError(r.Render())

	out := buf.String()
	a.True(strings.HasPrefix(out, clearScreen))
	a.Equal(strings.Count(out, "\n"), strings.Count(out, "\r\n"))

	lines := strings.Split(out, "\r\n")
	// bottom-most card on the left, top card on the right
	a.Equal("|5        | |10       | |7        | |Queen    |", lines[3])
	a.Equal("|    ♣    | |    ♢    | |    ♠    | |    ♡    |", lines[5])
	a.Contains(out, "Player 1: 20 cards    Player 2: 27 cards    Pile:  5")
	a.Contains(out, "Face card chain! Player 2 must draw 2 more for Player 1")
	a.Contains(out, "Player 1 played Q♡")
	a.Contains(out, "Player 1: q play, w slap    Player 2: o play, p slap    Esc quits")
}

func TestRenderer_Render_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf, config.DefaultConfig().Keys)
	assert.NoError(t, r.Render())
	assert.Contains(t, buf.String(), "Shuffling...")

	gs := testGameState()
	gs.TopCards = nil
	gs.RoundState = ratscrew.RoundState{Phase: ratscrew.PhaseAwaitingPlay, Turn: 1}
	r.Update(&playable.Response{Key: room.KeyGame, Data: gs})
	r.Update(&playable.Response{Key: room.KeyError, Value: "not your turn"})

	buf.Reset()
	assert.NoError(t, r.Render())
	assert.Contains(t, buf.String(), "(the pile is empty)")
	assert.Contains(t, buf.String(), "Player 1 to play")
	assert.Contains(t, buf.String(), "! not your turn")
}

func TestRenderer_Render_LogLimit(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf, config.DefaultConfig().Keys)
	r.Update(&playable.Response{Key: room.KeyGame, Data: testGameState()})

	logs := make([]*playable.LogMessage, 10)
	for i := range logs {
		logs[i] = playable.SimpleLogMessage(0, "message %d", i)
	}
	r.Update(&playable.Response{Key: room.KeyLogs, Data: logs})

	assert.NoError(t, r.Render())
	assert.NotContains(t, buf.String(), "message 3")
	assert.Contains(t, buf.String(), "message 4")
	assert.Contains(t, buf.String(), "message 9")
}

func TestRenderer_Watch(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf, config.DefaultConfig().Keys)

	gs := testGameState()
	gs.RoundState = ratscrew.RoundState{Phase: ratscrew.PhaseGameOver, Winner: 2}

	updates := make(chan *playable.Response, 3)
	updates <- &playable.Response{Key: room.KeyGame, Data: gs}
	updates <- &playable.Response{Key: room.KeyGameEnded}

	assert.NoError(t, r.Watch(context.Background(), updates, time.Hour))
	assert.Contains(t, buf.String(), "Player 2 wins!")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Watch(ctx, make(chan *playable.Response), time.Millisecond)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRenderer_frame(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, config.DefaultConfig().Keys)
	snapshot.ValidateSnapshot(t, r.frame())

	r.Update(&playable.Response{Key: room.KeyGame, Data: testGameState()})
	snapshot.ValidateSnapshot(t, r.frame())
}
