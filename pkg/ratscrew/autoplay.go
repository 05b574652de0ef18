package ratscrew

import (
	"time"

	"ratscrew/pkg/playable"
)

// AutoPlayer draws automatically for whoever is expected to play
// Slaps are left to the players, except when the player up has no cards left.
type AutoPlayer struct {
	game  *Game
	delay time.Duration
}

// NewAutoPlayer returns an AutoPlayer that plays one card per tick
func NewAutoPlayer(game *Game, delay time.Duration) *AutoPlayer {
	return &AutoPlayer{
		game:  game,
		delay: delay,
	}
}

// Delay is how long to wait between automatic plays
func (a *AutoPlayer) Delay() time.Duration {
	return a.delay
}

// Tick plays a card for the player who is up
func (a *AutoPlayer) Tick() (bool, error) {
	if _, err := a.game.Apply(a.NextEvent()); err != nil {
		if err == ErrGameIsOver {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// NextEvent returns the event the automatic loop would perform next
func (a *AutoPlayer) NextEvent() playable.Event {
	rs := a.game.State()
	if size, _ := a.game.HandSize(rs.Turn); size == 0 && rs.Turn > 0 {
		// with no cards left the pile must still be slappable, take it
		return playable.Slap(rs.Turn)
	}

	return playable.Play(rs.Turn)
}

// Simulate plays the game automatically until someone wins
// ErrPlayLimitReached is returned if the game is still going after maxPlays plays.
func Simulate(game *Game, maxPlays int) (int64, error) {
	a := NewAutoPlayer(game, 0)
	for i := 0; i < maxPlays; i++ {
		if rs := game.State(); rs.IsGameOver() {
			return rs.Winner, nil
		}

		if _, err := a.Tick(); err != nil {
			return 0, err
		}
	}

	if rs := game.State(); rs.IsGameOver() {
		return rs.Winner, nil
	}

	return 0, ErrPlayLimitReached
}
