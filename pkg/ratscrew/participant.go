package ratscrew

import "ratscrew/pkg/deck"

// Participant is one of the two players in the game
type Participant struct {
	PlayerID int64
	hand     deck.Hand
}

// NewParticipant returns a new participant holding the given hand
func NewParticipant(playerID int64, hand deck.Hand) *Participant {
	return &Participant{
		PlayerID: playerID,
		hand:     hand,
	}
}

// DrawOnto moves the front card of the hand onto the top of the pile
func (p *Participant) DrawOnto(pile *Pile) deck.DrawResult {
	res := p.hand.Draw()
	if !res.HandEmpty {
		pile.Play(res.Card)
	}

	return res
}

// HandSize returns the number of cards the participant holds
func (p *Participant) HandSize() int {
	return len(p.hand)
}

// Hand returns a shallow copy of the participant's hand
func (p *Participant) Hand() deck.Hand {
	return p.hand.Clone()
}
