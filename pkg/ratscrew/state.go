package ratscrew

import (
	"ratscrew/pkg/deck"
	"ratscrew/pkg/playable"
)

// Phase is the resting state of the round engine
type Phase string

// Phase constants
const (
	// PhaseAwaitingPlay means Turn must play a card
	PhaseAwaitingPlay Phase = "awaiting-play"

	// PhaseFaceCardChain means Turn is drawing against ChainOwner's face card
	PhaseFaceCardChain Phase = "face-card-chain"

	// PhaseGameOver means Winner holds the game
	PhaseGameOver Phase = "game-over"
)

// RoundState is a snapshot of whose action the engine is waiting on
type RoundState struct {
	Phase Phase `json:"phase"`
	// Turn is the player expected to play next (the drawer during a chain)
	Turn int64 `json:"turn"`
	// ChainOwner played the active face card, 0 outside of a chain
	ChainOwner     int64 `json:"chainOwner,omitempty"`
	DrawsRemaining int   `json:"drawsRemaining,omitempty"`
	Winner         int64 `json:"winner,omitempty"`
}

// IsGameOver returns true if the game has a winner
func (r RoundState) IsGameOver() bool {
	return r.Phase == PhaseGameOver
}

// EventKind identifies what happened during a transition
type EventKind string

// EventKind constants
const (
	EventCardPlayed     EventKind = "card-played"
	EventChainStarted   EventKind = "chain-started"
	EventChainRestarted EventKind = "chain-restarted"
	// EventRoundOver is emitted when a chain owner collects the pile
	// The state has already moved on to PhaseAwaitingPlay with the owner leading.
	EventRoundOver  EventKind = "round-over"
	EventSlapWon    EventKind = "slap-won"
	EventSlapFailed EventKind = "slap-failed"
	EventGameOver   EventKind = "game-over"
)

// TransitionEvent is a single step of a transition
type TransitionEvent struct {
	Kind     EventKind  `json:"kind"`
	PlayerID int64      `json:"playerId"`
	Card     *deck.Card `json:"card,omitempty"`
	// CardsWon is set when the pile changes hands
	CardsWon int         `json:"cardsWon,omitempty"`
	Draws    int         `json:"draws,omitempty"`
	Pattern  SlapPattern `json:"pattern,omitempty"`
}

// Transition is the result of applying one input event
type Transition struct {
	Events []TransitionEvent `json:"events"`
	State  RoundState        `json:"state"`
}

// Has returns true if an event of the given kind occurred
func (t *Transition) Has(kind EventKind) bool {
	for _, e := range t.Events {
		if e.Kind == kind {
			return true
		}
	}

	return false
}

func (t *Transition) add(e TransitionEvent) {
	t.Events = append(t.Events, e)
}

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	ID           string                  `json:"id"`
	RoundState   RoundState              `json:"roundState"`
	Participants []*GameStateParticipant `json:"participants"`
	PileSize     int                     `json:"pileSize"`
	// TopCards holds up to the top four cards of the pile, top card first
	TopCards   []*deck.Card      `json:"topCards"`
	LastEvents []TransitionEvent `json:"lastEvents"`
	Plays      int               `json:"plays"`
}

// GameStateParticipant is the state of an individual participant
type GameStateParticipant struct {
	PlayerID    int64 `json:"playerId"`
	CardsInHand int   `json:"cardsInHand"`
}

const visiblePileCards = 4

func (g *Game) getGameState() *GameState {
	participants := make([]*GameStateParticipant, len(g.participants))
	for i, p := range g.participants {
		participants[i] = &GameStateParticipant{
			PlayerID:    p.PlayerID,
			CardsInHand: p.HandSize(),
		}
	}

	var lastEvents []TransitionEvent
	if g.lastTransition != nil {
		lastEvents = g.lastTransition.Events
	}

	return &GameState{
		ID:           g.id,
		RoundState:   g.State(),
		Participants: participants,
		PileSize:     g.pile.Len(),
		TopCards:     g.pile.TopCards(visiblePileCards),
		LastEvents:   lastEvents,
		Plays:        g.plays,
	}
}

// GetState returns the public state of the game
func (g *Game) GetState() (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: g.Name(),
		Data:  g.getGameState(),
	}, nil
}
