package ratscrew

import "ratscrew/pkg/deck"

// SlapPattern names the pattern that made a slap valid
type SlapPattern string

// slap patterns, in the order they are checked
const (
	// PatternDouble is two cards of the same rank on top
	PatternDouble SlapPattern = "double"
	// PatternMarriage is a King and a Queen on top, in either order
	PatternMarriage SlapPattern = "marriage"
	// PatternSandwich is the top and third-from-top sharing a rank
	PatternSandwich SlapPattern = "sandwich"
)

// Pile is the central pile of played cards
type Pile struct {
	// cards[len-1] is the top of the pile
	cards []*deck.Card
}

// NewPile returns a pile holding cards, given top first
func NewPile(cards ...*deck.Card) *Pile {
	p := &Pile{cards: make([]*deck.Card, 0, deck.Size)}
	for i := len(cards) - 1; i >= 0; i-- {
		p.Play(cards[i])
	}

	return p
}

// Play places the card on top of the pile
func (p *Pile) Play(card *deck.Card) {
	p.cards = append(p.cards, card)
}

// Len returns the number of cards in the pile
func (p *Pile) Len() int {
	return len(p.cards)
}

// Top returns the most recently played card
func (p *Pile) Top() (*deck.Card, error) {
	return p.fromTop(1)
}

// SecondFromTop returns the card played before the top card
func (p *Pile) SecondFromTop() (*deck.Card, error) {
	return p.fromTop(2)
}

// ThirdFromTop returns the card two plays before the top card
func (p *Pile) ThirdFromTop() (*deck.Card, error) {
	return p.fromTop(3)
}

func (p *Pile) fromTop(depth int) (*deck.Card, error) {
	n := len(p.cards)
	if n == 0 {
		return nil, ErrEmptyPile
	}

	if n < depth {
		return nil, InsufficientPileDepthError{Want: depth, Got: n}
	}

	return p.cards[n-depth], nil
}

// IsDouble returns true if the top two cards share a rank
func (p *Pile) IsDouble() (bool, error) {
	if err := p.requireDepth(2); err != nil {
		return false, err
	}

	return p.rankFromTop(1) == p.rankFromTop(2), nil
}

// IsMarriage returns true if the top two cards are a King and a Queen
func (p *Pile) IsMarriage() (bool, error) {
	if err := p.requireDepth(2); err != nil {
		return false, err
	}

	top, second := p.rankFromTop(1), p.rankFromTop(2)
	return (top == deck.King && second == deck.Queen) || (top == deck.Queen && second == deck.King), nil
}

// IsSandwich returns true if the top and third-from-top cards share a rank
func (p *Pile) IsSandwich() (bool, error) {
	if err := p.requireDepth(3); err != nil {
		return false, err
	}

	return p.rankFromTop(1) == p.rankFromTop(3), nil
}

// IsValidSlap returns true if any slap pattern is on top of the pile
// Piles too shallow for a pattern are simply not slappable.
func (p *Pile) IsValidSlap() bool {
	_, ok := p.SlapPattern()
	return ok
}

// SlapPattern returns the first pattern that makes a slap valid
func (p *Pile) SlapPattern() (SlapPattern, bool) {
	if len(p.cards) >= 2 {
		if ok, _ := p.IsDouble(); ok {
			return PatternDouble, true
		}

		if ok, _ := p.IsMarriage(); ok {
			return PatternMarriage, true
		}
	}

	if len(p.cards) >= 3 {
		if ok, _ := p.IsSandwich(); ok {
			return PatternSandwich, true
		}
	}

	return "", false
}

// AwardTo moves the whole pile, top card first, to the back of the participant's hand
// It returns the number of cards moved. This is the only way the pile is emptied.
func (p *Pile) AwardTo(participant *Participant) int {
	n := len(p.cards)
	for i := n - 1; i >= 0; i-- {
		participant.hand.Append(p.cards[i])
	}

	p.cards = make([]*deck.Card, 0, deck.Size)
	return n
}

// Cards returns a copy of the pile, top card first
func (p *Pile) Cards() []*deck.Card {
	return p.TopCards(len(p.cards))
}

// TopCards returns up to n cards from the top of the pile, top card first
func (p *Pile) TopCards(n int) []*deck.Card {
	if n > len(p.cards) {
		n = len(p.cards)
	}

	cards := make([]*deck.Card, n)
	for i := 0; i < n; i++ {
		cards[i] = p.cards[len(p.cards)-1-i]
	}

	return cards
}

func (p *Pile) requireDepth(depth int) error {
	if n := len(p.cards); n < depth {
		return InsufficientPileDepthError{Want: depth, Got: n}
	}

	return nil
}

func (p *Pile) rankFromTop(depth int) int {
	return p.cards[len(p.cards)-depth].Rank
}
