package ratscrew

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"ratscrew/pkg/playable"
)

func TestAutoPlayer_NextEvent(t *testing.T) {
	a := assert.New(t)
	g := setupTestGame(t, "2c,5c", "5d,9d")
	auto := NewAutoPlayer(g, time.Millisecond*5)
	a.Equal(time.Millisecond*5, auto.Delay())

	a.Equal(playable.Play(1), auto.NextEvent())
	_, _ = g.Play(1)
	a.Equal(playable.Play(2), auto.NextEvent())
	_, _ = g.Play(2)
	_, _ = g.Play(1)

	// player 2 is up, player 1 is out but the double is on top
	a.Equal(playable.Play(2), auto.NextEvent())

	g = setupTestGame(t, "2c,5c", "5d,5h,9d")
	auto = NewAutoPlayer(g, 0)
	for i := 0; i < 4; i++ {
		_, _ = auto.Tick()
	}

	a.Equal(playable.Slap(1), auto.NextEvent())
	updated, err := auto.Tick()
	a.True(updated)
	a.NoError(err)
	a.Equal(4, g.idToParticipant[1].HandSize())
}

func TestAutoPlayer_Tick_GameOver(t *testing.T) {
	g := setupTestGame(t, "2c", "3d")
	auto := NewAutoPlayer(g, 0)

	updated, err := auto.Tick()
	assert.True(t, updated)
	assert.NoError(t, err)

	updated, err = auto.Tick()
	assert.False(t, updated)
	assert.NoError(t, err)
}

func TestSimulate(t *testing.T) {
	a := assert.New(t)

	g := setupTestGame(t, "2c,3c", "4d,5d")
	winner, err := Simulate(g, 100)
	a.NoError(err)
	a.Equal(int64(2), winner)

	// a winner is returned right away for a finished game
	winner, err = Simulate(g, 0)
	a.NoError(err)
	a.Equal(int64(2), winner)

	g = setupTestGame(t, "2c,3c", "4d,5d")
	winner, err = Simulate(g, 2)
	a.Equal(ErrPlayLimitReached, err)
	a.Equal(int64(0), winner)
}

func TestSimulate_FullDeck(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g, err := NewGame(logrus.StandardLogger(), []int64{1, 2}, Options{Seed: seed})
		assert.NoError(t, err)

		winner, err := Simulate(g, 5000)
		if err == ErrPlayLimitReached {
			// some deals cycle forever without slaps
			assert.Equal(t, 52, g.CardCount())
			continue
		}

		assert.NoError(t, err)
		assert.Contains(t, []int64{1, 2}, winner)
		assert.Equal(t, g.State().Winner, winner)
		assert.Equal(t, 52, g.CardCount())
	}
}
