// internal/game/events_test.go
package game

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/uno/internal/models"
)

func TestPlayEvents(t *testing.T) {
	id := uuid.New()
	blue := models.ColorBlue
	events := PlayEvents(id, Outcome{
		Kind:         OutcomeWildDrawFour,
		PlayerID:     0,
		NextPlayerID: 1,
		CardsOwed:    4,
		Card:         models.WildDrawFourCard(),
		ActiveColor:  &blue,
	})
	require.Len(t, events, 2)
	assert.Equal(t, EventPlayerPlayCard, events[0].Type)
	assert.Equal(t, "wild_draw_four", events[0].Payload["effect"])
	assert.Equal(t, 4, events[0].Payload["cardsOwed"])
	assert.Equal(t, "blue", events[0].Payload["activeColor"])
	assert.Equal(t, EventGamePlayerTurn, events[1].Type)
	assert.Equal(t, 1, events[1].Player.ID)
}

func TestPlayEventsWinAndPending(t *testing.T) {
	id := uuid.New()
	won := PlayEvents(id, Outcome{Kind: OutcomeGameWon, PlayerID: 2, NextPlayerID: NoPlayer, Card: red(3)})
	require.Len(t, won, 2)
	assert.Equal(t, EventGameEnd, won[1].Type)
	assert.Equal(t, 2, won[1].Player.ID)

	pending := PlayEvents(id, Outcome{Kind: OutcomeColorPending, PlayerID: 0, NextPlayerID: 0, Card: models.WildCard()})
	assert.Len(t, pending, 1)
}

func TestDrawEventsHideCards(t *testing.T) {
	id := uuid.New()
	events := DrawEvents(id, DrawResult{
		PlayerID:     1,
		NextPlayerID: 2,
		Cards:        []models.Card{red(1), blue(2)},
		Forced:       true,
		Reshuffled:   true,
	}, 40)
	require.Len(t, events, 3)
	assert.Equal(t, EventGameReshuffle, events[0].Type)
	assert.Equal(t, EventPlayerDraw, events[1].Type)
	assert.Equal(t, 2, events[1].Payload["count"])

	data, err := json.Marshal(events[1])
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"kind"`)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "player_draw", decoded["type"])
}
