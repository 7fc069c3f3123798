package inky

import (
	"math/rand/v2"
)

// Deck is a shuffled, immutable copy of a catalog, read by index only.
type Deck struct {
	cards []Asset
}

// NewDeck returns a uniformly shuffled deck of all the catalog assets.
// The permutation only depends on r, so a seeded r gives a reproducible deck.
func NewDeck(c *Catalog, r *rand.Rand) *Deck {
	cards := c.Assets()
	r.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return &Deck{cards: cards}
}

// NewSeededDeck shuffles the catalog with a PCG source seeded by seed.
func NewSeededDeck(c *Catalog, seed uint64) *Deck {
	return NewDeck(c, rand.New(rand.NewPCG(seed, seed)))
}

// DeckOf creates a deck with the given cards in that exact order.
func DeckOf(cards ...Asset) *Deck {
	return &Deck{cards: append([]Asset(nil), cards...)}
}

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.cards) }

// At returns the card at index i. It panics if i is out of range.
func (d *Deck) At(i int) Asset { return d.cards[i] }

// Cards returns a copy of the deck in order.
func (d *Deck) Cards() []Asset { return append([]Asset(nil), d.cards...) }

// window returns up to n cards starting at i.
func (d *Deck) window(i, n int) []Asset {
	if i >= len(d.cards) || n <= 0 {
		return nil
	}
	end := min(i+n, len(d.cards))
	return append([]Asset(nil), d.cards[i:end]...)
}
