package ratscrew

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"ratscrew/pkg/deck"
	"ratscrew/pkg/playable"
)

// Game is a two-player game of Egyptian Ratscrew
// All methods are synchronous and must be called from a single goroutine.
type Game struct {
	id              string
	participants    []*Participant
	idToParticipant map[int64]*Participant
	pile            *Pile

	phase          Phase
	turn           *Participant
	chainOwner     *Participant
	drawsRemaining int
	winner         *Participant

	plays          int
	lastTransition *Transition

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
}

// NewGame shuffles a fresh deck, deals it and returns a game where the first player leads
func NewGame(logger logrus.FieldLogger, playerIDs []int64, opts Options) (*Game, error) {
	if err := validatePlayerIDs(playerIDs); err != nil {
		return nil, err
	}

	d := deck.New()
	if opts.Generator != nil {
		d.SetGenerator(opts.Generator)
	} else if opts.Seed > 0 {
		d.SetSeed(opts.Seed)
	}
	d.Shuffle()

	logger.WithField("deck", d.HashCode()).Debug("dealing shuffled deck")

	first, second, err := d.Deal()
	if err != nil {
		return nil, err
	}

	return newGame(logger, playerIDs, first, second), nil
}

// NewGameWithHands returns a game from already dealt hands
// This is useful for tests and for replaying a known deal.
func NewGameWithHands(logger logrus.FieldLogger, playerIDs []int64, first, second deck.Hand) (*Game, error) {
	if err := validatePlayerIDs(playerIDs); err != nil {
		return nil, err
	}

	if len(first) == 0 || len(second) == 0 {
		return nil, errors.New("both players must start with at least one card")
	}

	return newGame(logger, playerIDs, first.Clone(), second.Clone()), nil
}

func validatePlayerIDs(playerIDs []int64) error {
	if len(playerIDs) != 2 {
		return PlayerCountError{
			Min: 2,
			Max: 2,
			Got: len(playerIDs),
		}
	}

	if playerIDs[0] <= 0 || playerIDs[1] <= 0 {
		return errors.New("player IDs must be greater than 0")
	}

	if playerIDs[0] == playerIDs[1] {
		return fmt.Errorf("duplicate player ID: %d", playerIDs[0])
	}

	return nil
}

func newGame(logger logrus.FieldLogger, playerIDs []int64, first, second deck.Hand) *Game {
	participants := []*Participant{
		NewParticipant(playerIDs[0], first),
		NewParticipant(playerIDs[1], second),
	}

	idToParticipant := make(map[int64]*Participant)
	for _, p := range participants {
		idToParticipant[p.PlayerID] = p
	}

	g := &Game{
		id:              uuid.New().String(),
		participants:    participants,
		idToParticipant: idToParticipant,
		pile:            NewPile(),
		phase:           PhaseAwaitingPlay,
		turn:            participants[0],
		logger:          logger,
		logChan:         make(chan []*playable.LogMessage, 256),
	}

	g.sendLogMessages(playable.SimpleLogMessage(0, "New game of Egyptian Ratscrew, %d cards each", len(first)))
	return g
}

// ID returns the unique ID of the game
func (g *Game) ID() string {
	return g.id
}

// Name returns "ratscrew"
func (g *Game) Name() string {
	return "ratscrew"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// State returns the current round state
func (g *Game) State() RoundState {
	rs := RoundState{
		Phase: g.phase,
	}

	if g.turn != nil {
		rs.Turn = g.turn.PlayerID
	}

	if g.chainOwner != nil {
		rs.ChainOwner = g.chainOwner.PlayerID
		rs.DrawsRemaining = g.drawsRemaining
	}

	if g.winner != nil {
		rs.Winner = g.winner.PlayerID
	}

	return rs
}

// Pile returns the cards in the pile, top card first
func (g *Game) Pile() []*deck.Card {
	return g.pile.Cards()
}

// HandSize returns the number of cards the player holds
func (g *Game) HandSize(playerID int64) (int, error) {
	p, ok := g.idToParticipant[playerID]
	if !ok {
		return 0, ErrPlayerNotFound
	}

	return p.HandSize(), nil
}

// CardCount returns the total number of cards in play (both hands and the pile)
func (g *Game) CardCount() int {
	n := g.pile.Len()
	for _, p := range g.participants {
		n += p.HandSize()
	}

	return n
}

// Participants returns the participants in seat order
func (g *Game) Participants() []*Participant {
	return append([]*Participant{}, g.participants...)
}

// Play is shorthand for Apply(playable.Play(playerID))
func (g *Game) Play(playerID int64) (*Transition, error) {
	return g.Apply(playable.Play(playerID))
}

// Slap is shorthand for Apply(playable.Slap(playerID))
func (g *Game) Slap(playerID int64) (*Transition, error) {
	return g.Apply(playable.Slap(playerID))
}

// Apply performs a single input event and returns what happened
// A rejected event returns an error and leaves the game untouched.
func (g *Game) Apply(event playable.Event) (*Transition, error) {
	if g.phase == PhaseGameOver {
		return nil, ErrGameIsOver
	}

	p, ok := g.idToParticipant[event.PlayerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	t := &Transition{}
	var err error
	switch event.Action {
	case playable.ActionPlay:
		err = g.play(p, t)
	case playable.ActionSlap:
		err = g.slap(p, t)
	default:
		err = fmt.Errorf("unknown action: %s", event.Action)
	}

	if err != nil {
		if errors.Is(err, ErrEmptyHand) {
			g.logger.WithFields(logrus.Fields{
				"game":   g.id,
				"player": p.PlayerID,
				"action": event.Action.String(),
			}).Error("invariant violation: drew from an empty hand")
		}

		return nil, err
	}

	t.State = g.State()
	g.lastTransition = t
	g.sendLogMessages(logMessagesFor(t)...)

	return t, nil
}

// Action performs the event and always requests a state update on success
func (g *Game) Action(event playable.Event) (bool, error) {
	if _, err := g.Apply(event); err != nil {
		return false, err
	}

	return true, nil
}

// GetEndOfGameDetails returns details at the end of the game
func (g *Game) GetEndOfGameDetails() (*playable.GameOverDetails, bool) {
	if g.phase != PhaseGameOver {
		return nil, false
	}

	return &playable.GameOverDetails{
		WinnerID: g.winner.PlayerID,
		Log:      g.getGameState(),
	}, true
}

func (g *Game) opponent(p *Participant) *Participant {
	if p == g.participants[0] {
		return g.participants[1]
	}

	return g.participants[0]
}

// play handles both a normal play and a draw against a face card
func (g *Game) play(p *Participant, t *Transition) error {
	if p != g.turn {
		return &InvalidActionError{
			PlayerID: p.PlayerID,
			Action:   playable.ActionPlay,
			Phase:    g.phase,
			Expected: g.turn.PlayerID,
		}
	}

	// an empty hand only survives while the pile can still be slapped
	if p.HandSize() == 0 {
		return ErrNothingToPlay
	}

	res := p.DrawOnto(g.pile)
	if res.HandEmpty {
		return ErrEmptyHand
	}

	card := res.Card
	g.plays++
	t.add(TransitionEvent{Kind: EventCardPlayed, PlayerID: p.PlayerID, Card: card})

	if g.checkGameOver(p, t) {
		return nil
	}

	if card.IsFaceCard() {
		// a face card drawn mid-chain restarts the chain with the roles swapped
		kind := EventChainStarted
		if g.phase == PhaseFaceCardChain {
			kind = EventChainRestarted
		}

		g.startChain(p, card, kind, t)
		return nil
	}

	if g.phase == PhaseAwaitingPlay {
		g.turn = g.opponent(p)
		return nil
	}

	g.drawsRemaining--
	if g.drawsRemaining > 0 {
		return nil
	}

	owner := g.chainOwner
	won := g.pile.AwardTo(owner)
	g.endChain(owner)
	t.add(TransitionEvent{Kind: EventRoundOver, PlayerID: owner.PlayerID, CardsWon: won})

	g.checkGameOver(owner, t)
	return nil
}

func (g *Game) slap(p *Participant, t *Transition) error {
	if pattern, ok := g.pile.SlapPattern(); ok {
		won := g.pile.AwardTo(p)
		g.endChain(p)
		t.add(TransitionEvent{Kind: EventSlapWon, PlayerID: p.PlayerID, CardsWon: won, Pattern: pattern})

		g.checkGameOver(p, t)
		return nil
	}

	// burn: the card goes on the pile without any face-card effect and the turn is unchanged
	res := p.DrawOnto(g.pile)
	if res.HandEmpty {
		return ErrEmptyHand
	}

	t.add(TransitionEvent{Kind: EventSlapFailed, PlayerID: p.PlayerID, Card: res.Card})
	g.checkGameOver(p, t)
	return nil
}

func (g *Game) startChain(owner *Participant, card *deck.Card, kind EventKind, t *Transition) {
	draws, err := card.RequiredDraws()
	if err != nil {
		// callers only pass face cards
		panic(err)
	}

	g.phase = PhaseFaceCardChain
	g.chainOwner = owner
	g.turn = g.opponent(owner)
	g.drawsRemaining = draws

	t.add(TransitionEvent{Kind: kind, PlayerID: owner.PlayerID, Card: card, Draws: draws})
}

// endChain clears any chain and gives the lead to the participant
func (g *Game) endChain(leader *Participant) {
	g.phase = PhaseAwaitingPlay
	g.turn = leader
	g.chainOwner = nil
	g.drawsRemaining = 0
}

// checkGameOver ends the game if a participant is out of cards with nothing to slap
// The acting participant is checked first.
func (g *Game) checkGameOver(actor *Participant, t *Transition) bool {
	if g.pile.IsValidSlap() {
		return false
	}

	for _, p := range []*Participant{actor, g.opponent(actor)} {
		if p.HandSize() == 0 {
			winner := g.opponent(p)
			g.phase = PhaseGameOver
			g.winner = winner
			g.turn = nil
			g.chainOwner = nil
			g.drawsRemaining = 0

			t.add(TransitionEvent{Kind: EventGameOver, PlayerID: winner.PlayerID})
			return true
		}
	}

	return false
}
