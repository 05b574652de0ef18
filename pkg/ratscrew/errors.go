package ratscrew

import (
	"errors"
	"fmt"

	"ratscrew/pkg/playable"
)

// ErrGameIsOver is returned when an action is attempted on an ended game
var ErrGameIsOver = errors.New("game is over")

// ErrPlayerNotFound is returned when a player is not found in the game
var ErrPlayerNotFound = errors.New("player not found")

// ErrNotYourTurn is wrapped by InvalidActionError
var ErrNotYourTurn = errors.New("not your turn")

// ErrEmptyHand is returned when a card is drawn from an empty hand
// This means a game-over check was skipped and is never expected during play.
var ErrEmptyHand = errors.New("cannot draw from an empty hand")

// ErrNothingToPlay is returned when a player with no cards tries to play
// The only way back in is to slap the pile.
var ErrNothingToPlay = errors.New("no cards left to play, slap the pile")

// ErrEmptyPile is returned when the top of an empty pile is requested
var ErrEmptyPile = errors.New("the pile is empty")

// ErrPlayLimitReached is returned by Simulate when no one has won in time
var ErrPlayLimitReached = errors.New("play limit reached without a winner")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError struct {
	Min int
	Max int
	Got int
}

func (p PlayerCountError) Error() string {
	if p.Min == p.Max {
		return fmt.Sprintf("expected exactly %d players, got %d", p.Min, p.Got)
	}

	return fmt.Sprintf("expected %d to %d players, got %d", p.Min, p.Max, p.Got)
}

// InsufficientPileDepthError is returned when the pile is not deep enough for a query
type InsufficientPileDepthError struct {
	Want int
	Got  int
}

func (e InsufficientPileDepthError) Error() string {
	return fmt.Sprintf("pile needs at least %d cards, has %d", e.Want, e.Got)
}

// InvalidActionError is returned when a player acts out of turn
// The action is rejected and the game state is unchanged.
type InvalidActionError struct {
	PlayerID int64
	Action   playable.Action
	Phase    Phase
	Expected int64
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("player %d cannot %s during %s, waiting on player %d", e.PlayerID, e.Action, e.Phase, e.Expected)
}

// Unwrap allows errors.Is(err, ErrNotYourTurn)
func (e *InvalidActionError) Unwrap() error {
	return ErrNotYourTurn
}
