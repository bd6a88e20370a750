// internal/game/helpers_test.go
package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/uno/internal/models"
)

func red(n int) models.Card    { return models.NumberCard(models.ColorRed, n) }
func blue(n int) models.Card   { return models.NumberCard(models.ColorBlue, n) }
func green(n int) models.Card  { return models.NumberCard(models.ColorGreen, n) }
func yellow(n int) models.Card { return models.NumberCard(models.ColorYellow, n) }

func colorPtr(c models.Color) *models.Color { return &c }

// setupTestGame deals a deterministic game for numPlayers.
func setupTestGame(t *testing.T, numPlayers int, rules *HouseRules) *UnoGame {
	t.Helper()
	r := DefaultHouseRules()
	if rules != nil {
		r = *rules
	}
	names := make([]string, numPlayers)
	for i := range names {
		names[i] = string(rune('A' + i))
	}
	g, err := NewUnoGame(names, r, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	return g
}

// takeFromDeck removes one copy of c from the deck. If every copy is held by another
// player, that copy is swapped for the deck's first card so hand sizes are unchanged.
func takeFromDeck(t *testing.T, g *UnoGame, c models.Card, except int) models.Card {
	t.Helper()
	for i, dc := range g.Deck.Cards {
		if dc == c {
			g.Deck.Cards = append(g.Deck.Cards[:i:i], g.Deck.Cards[i+1:]...)
			return c
		}
	}
	for _, p := range g.Players {
		if p.ID == except {
			continue
		}
		for i, hc := range p.Hand {
			if hc == c {
				require.NotEmpty(t, g.Deck.Cards, "no replacement card for %s", c)
				p.Hand[i] = g.Deck.Cards[0]
				g.Deck.Cards = g.Deck.Cards[1:]
				return c
			}
		}
	}
	t.Fatalf("card %s not available to rig", c)
	return models.Card{}
}

// rigHand replaces playerID's hand with exactly cards. The 108-card multiset is preserved.
func rigHand(t *testing.T, g *UnoGame, playerID int, cards ...models.Card) {
	t.Helper()
	p := g.Players[playerID]
	g.Deck.Cards = append(g.Deck.Cards, p.Hand...)
	p.Hand = []models.Card{}
	for _, c := range cards {
		p.AddCards(takeFromDeck(t, g, c, playerID))
	}
	require.Equal(t, StandardDeckSize, g.CardCount())
}

// rigTop makes c the only card on the discard pile.
func rigTop(t *testing.T, g *UnoGame, c models.Card) {
	t.Helper()
	g.Deck.Cards = append(g.Deck.Cards, g.DiscardPile.Cards...)
	g.DiscardPile.Cards = nil
	g.DiscardPile.Push(takeFromDeck(t, g, c, -1))
	g.ActiveColor = nil
	require.Equal(t, StandardDeckSize, g.CardCount())
}

// rigDeckFront moves cards to the front of the deck, in order.
func rigDeckFront(t *testing.T, g *UnoGame, cards ...models.Card) {
	t.Helper()
	front := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		front = append(front, takeFromDeck(t, g, c, -1))
	}
	g.Deck.Cards = append(front, g.Deck.Cards...)
	require.Equal(t, StandardDeckSize, g.CardCount())
}
