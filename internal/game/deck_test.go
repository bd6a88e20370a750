// internal/game/deck_test.go
package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/uno/internal/models"
)

func TestStandardDeckComposition(t *testing.T) {
	d := NewStandardDeck(rand.New(rand.NewSource(1)))
	require.Equal(t, StandardDeckSize, d.Len())

	counts := make(map[models.Card]int)
	for _, c := range d.Cards {
		counts[c]++
	}
	for _, color := range models.PlayableColors {
		assert.Equal(t, 1, counts[models.NumberCard(color, 0)], "%s 0", color)
		for n := 1; n <= 9; n++ {
			assert.Equal(t, 2, counts[models.NumberCard(color, n)], "%s %d", color, n)
		}
		for _, k := range []models.Kind{models.KindSkip, models.KindReverse, models.KindDrawTwo} {
			assert.Equal(t, 2, counts[models.ActionCard(color, k)], "%s %s", color, k)
		}
	}
	assert.Equal(t, 4, counts[models.WildCard()])
	assert.Equal(t, 4, counts[models.WildDrawFourCard()])
}

func TestDeckShuffleIsSeeded(t *testing.T) {
	a := NewStandardDeck(rand.New(rand.NewSource(9)))
	b := NewStandardDeck(rand.New(rand.NewSource(9)))
	c := NewStandardDeck(rand.New(rand.NewSource(10)))
	assert.Equal(t, a.Cards, b.Cards)
	assert.NotEqual(t, a.Cards, c.Cards)
	assert.NotEqual(t, standardCards(), a.Cards)
}

func TestDeckDrawFromFront(t *testing.T) {
	d := &Deck{Cards: []models.Card{red(1), red(2), red(3)}}
	cards, reshuffled, err := d.Draw(2, &DiscardPile{})
	require.NoError(t, err)
	assert.False(t, reshuffled)
	assert.Equal(t, []models.Card{red(1), red(2)}, cards)
	assert.Equal(t, []models.Card{red(3)}, d.Contents())

	cards, _, err = d.Draw(0, &DiscardPile{})
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestDeckDrawReclaimsDiscardKeepingTop(t *testing.T) {
	d := &Deck{Cards: []models.Card{red(1)}, rng: rand.New(rand.NewSource(3))}
	discard := &DiscardPile{Cards: []models.Card{blue(1), blue(2), blue(3), green(7)}}

	cards, reshuffled, err := d.Draw(3, discard)
	require.NoError(t, err)
	assert.True(t, reshuffled)
	require.Len(t, cards, 3)
	assert.Equal(t, red(1), cards[0])
	assert.ElementsMatch(t, []models.Card{blue(1), blue(2), blue(3)}, append(cards[1:], d.Cards...))

	top, ok := discard.Top()
	require.True(t, ok)
	assert.Equal(t, green(7), top)
	assert.Equal(t, 1, discard.Len())
}

func TestDeckDrawExhaustedMovesNothing(t *testing.T) {
	d := &Deck{Cards: []models.Card{red(1)}}
	discard := &DiscardPile{Cards: []models.Card{blue(1), green(7)}}

	_, _, err := d.Draw(3, discard)
	assert.ErrorIs(t, err, ErrDeckExhausted)
	assert.Equal(t, []models.Card{red(1)}, d.Cards)
	assert.Equal(t, []models.Card{blue(1), green(7)}, discard.Cards)
}

func TestDiscardPileEmpty(t *testing.T) {
	var p DiscardPile
	_, ok := p.Top()
	assert.False(t, ok)
	assert.Zero(t, p.Reclaimable())
	assert.Nil(t, p.reclaim())
}
