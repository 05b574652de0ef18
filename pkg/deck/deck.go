package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"

	"ratscrew/internal/rng"
)

// Size is the number of cards in a standard deck
const Size = 52

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck represents a playing deck
type Deck struct {
	Cards []*Card `json:"cards"`
	rng   rng.Generator
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		rng: rng.Crypto{},
	}

	d.buildDeck()
	return d
}

// SetSeed will use a deterministic generator for the next Shuffle()
// This should only be used by tests and replays
func (d *Deck) SetSeed(seed int64) {
	d.rng = rng.Seeded(seed)
}

// SetGenerator sets the random source used by Shuffle()
func (d *Deck) SetGenerator(g rng.Generator) {
	d.rng = g
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, Size)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle performs a Fisher-Yates shuffle over the remaining cards
// Every position is swapped exactly once, so it always terminates.
func (d *Deck) Shuffle() {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) <= 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

// Deal alternately distributes every card, one at a time, into two hands
// The deck must be full and is empty afterwards.
func (d *Deck) Deal() (Hand, Hand, error) {
	if n := d.CardsLeft(); n != Size {
		return nil, nil, fmt.Errorf("cannot deal from a deck of %d cards, need %d", n, Size)
	}

	first := make(Hand, 0, Size/2)
	second := make(Hand, 0, Size/2)
	for i := 0; d.CardsLeft() > 0; i++ {
		card, err := d.Draw()
		if err != nil {
			return nil, nil, err
		}

		if i%2 == 0 {
			first.Append(card)
		} else {
			second.Append(card)
		}
	}

	return first, second, nil
}
