package deck

// Hand is an ordered collection of cards. The front is the next card to play
type Hand []*Card

// DrawResult is the outcome of drawing from the front of a hand
// Exactly one of Card and HandEmpty is set.
type DrawResult struct {
	Card      *Card
	HandEmpty bool
}

// Draw removes and returns the front card
func (h *Hand) Draw() DrawResult {
	if len(*h) == 0 {
		return DrawResult{HandEmpty: true}
	}

	card := (*h)[0]
	*h = (*h)[1:]
	return DrawResult{Card: card}
}

// Append adds cards to the back of the hand, preserving their order
func (h *Hand) Append(cards ...*Card) {
	*h = append(*h, cards...)
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
