// internal/game/deck.go
package game

import (
	"math/rand"
	"time"

	"github.com/jason-s-yu/uno/internal/models"
)

// StandardDeckSize is the number of cards in play for every game.
const StandardDeckSize = 108

// Deck is the face-down draw pile. Cards are drawn from index 0.
type Deck struct {
	Cards []models.Card
	rng   *rand.Rand
}

// DiscardPile is the face-up pile. The last card is the top card.
type DiscardPile struct {
	Cards []models.Card
}

// newRand returns a time-seeded source, used when the caller does not supply one.
func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// standardCards builds the unshuffled 108-card multiset.
func standardCards() []models.Card {
	cards := make([]models.Card, 0, StandardDeckSize)
	for _, color := range models.PlayableColors {
		cards = append(cards, models.NumberCard(color, 0))
		for n := 1; n <= 9; n++ {
			cards = append(cards, models.NumberCard(color, n), models.NumberCard(color, n))
		}
		for i := 0; i < 2; i++ {
			cards = append(cards,
				models.ActionCard(color, models.KindSkip),
				models.ActionCard(color, models.KindReverse),
				models.ActionCard(color, models.KindDrawTwo),
			)
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, models.WildCard(), models.WildDrawFourCard())
	}
	return cards
}

// NewStandardDeck builds and shuffles a full deck. A nil rng gets a time-seeded source.
func NewStandardDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = newRand()
	}
	d := &Deck{Cards: standardCards(), rng: rng}
	d.Shuffle()
	return d
}

// Shuffle permutes the deck in place (Fisher-Yates via rand.Shuffle).
func (d *Deck) Shuffle() {
	if d.rng == nil {
		d.rng = newRand()
	}
	d.rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

func (d *Deck) Len() int {
	return len(d.Cards)
}

// Contents returns a copy of the remaining cards in draw order.
func (d *Deck) Contents() []models.Card {
	out := make([]models.Card, len(d.Cards))
	copy(out, d.Cards)
	return out
}

// Draw removes n cards from the top. When the deck runs short, every discard
// except the top card is shuffled back in and drawing continues. If deck plus
// reclaimable discard cannot cover n, nothing is moved and ErrDeckExhausted is
// returned. reshuffled reports whether the discard was folded back in.
func (d *Deck) Draw(n int, discard *DiscardPile) (cards []models.Card, reshuffled bool, err error) {
	if n <= 0 {
		return nil, false, nil
	}
	if d.Len()+discard.Reclaimable() < n {
		return nil, false, ErrDeckExhausted
	}

	cards = make([]models.Card, 0, n)
	for len(cards) < n {
		if d.Len() == 0 {
			d.Cards = append(d.Cards, discard.reclaim()...)
			d.Shuffle()
			reshuffled = true
		}
		take := n - len(cards)
		if take > d.Len() {
			take = d.Len()
		}
		cards = append(cards, d.Cards[:take]...)
		d.Cards = d.Cards[take:]
	}
	return cards, reshuffled, nil
}

// Top returns the visible card. ok is false only for an empty pile.
func (p *DiscardPile) Top() (models.Card, bool) {
	if len(p.Cards) == 0 {
		return models.Card{}, false
	}
	return p.Cards[len(p.Cards)-1], true
}

func (p *DiscardPile) Push(c models.Card) {
	p.Cards = append(p.Cards, c)
}

func (p *DiscardPile) Len() int {
	return len(p.Cards)
}

// Reclaimable is the number of cards under the top card.
func (p *DiscardPile) Reclaimable() int {
	if len(p.Cards) <= 1 {
		return 0
	}
	return len(p.Cards) - 1
}

// reclaim takes every card except the top, leaving the top card alone on the pile.
func (p *DiscardPile) reclaim() []models.Card {
	if len(p.Cards) <= 1 {
		return nil
	}
	top := p.Cards[len(p.Cards)-1]
	under := make([]models.Card, len(p.Cards)-1)
	copy(under, p.Cards[:len(p.Cards)-1])
	p.Cards = []models.Card{top}
	return under
}
