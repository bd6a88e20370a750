// internal/game/events.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// GameEventType is an enum-like type for broadcasting game actions.
type GameEventType string

const (
	EventGameCreated       GameEventType = "game_created"
	EventGameReset         GameEventType = "game_reset"
	EventGameDeleted       GameEventType = "game_deleted"
	EventPlayerPlayCard    GameEventType = "player_play_card"
	EventPlayerChooseColor GameEventType = "player_choose_color"
	EventPlayerDraw        GameEventType = "player_draw" // public: count only, never the cards
	EventGameReshuffle     GameEventType = "game_reshuffle_stockpile"
	EventGamePlayerTurn    GameEventType = "game_player_turn"
	EventGameEnd           GameEventType = "game_end"
)

// EventPlayer is used within GameEvent payloads for player identification.
type EventPlayer struct {
	ID int `json:"id"`
}

// GameEvent holds data about an event that can be broadcast to every watcher of a game.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	GameID  uuid.UUID              `json:"game_id"`
	Player  *EventPlayer           `json:"player,omitempty"`
	Card    *models.Card           `json:"card,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

func turnEvent(gameID uuid.UUID, next int) GameEvent {
	return GameEvent{
		Type:   EventGamePlayerTurn,
		GameID: gameID,
		Player: &EventPlayer{ID: next},
	}
}

func effectPayload(out Outcome) map[string]interface{} {
	payload := map[string]interface{}{"effect": string(out.Kind)}
	if out.CardsOwed > 0 {
		payload["cardsOwed"] = out.CardsOwed
	}
	if out.ActiveColor != nil {
		payload["activeColor"] = out.ActiveColor.String()
	}
	return payload
}

// PlayEvents describes a successful PlayCard.
func PlayEvents(gameID uuid.UUID, out Outcome) []GameEvent {
	card := out.Card
	events := []GameEvent{{
		Type:    EventPlayerPlayCard,
		GameID:  gameID,
		Player:  &EventPlayer{ID: out.PlayerID},
		Card:    &card,
		Payload: effectPayload(out),
	}}
	switch out.Kind {
	case OutcomeGameWon:
		events = append(events, GameEvent{
			Type:   EventGameEnd,
			GameID: gameID,
			Player: &EventPlayer{ID: out.PlayerID},
		})
	case OutcomeColorPending:
		// the same player still has to choose; no turn change to announce
	default:
		events = append(events, turnEvent(gameID, out.NextPlayerID))
	}
	return events
}

// ChooseColorEvents describes a successful ChooseColor.
func ChooseColorEvents(gameID uuid.UUID, out Outcome) []GameEvent {
	return []GameEvent{
		{
			Type:    EventPlayerChooseColor,
			GameID:  gameID,
			Player:  &EventPlayer{ID: out.PlayerID},
			Payload: effectPayload(out),
		},
		turnEvent(gameID, out.NextPlayerID),
	}
}

// DrawEvents describes a successful DrawCard without revealing the drawn cards.
func DrawEvents(gameID uuid.UUID, res DrawResult, deckSize int) []GameEvent {
	var events []GameEvent
	if res.Reshuffled {
		events = append(events, GameEvent{
			Type:    EventGameReshuffle,
			GameID:  gameID,
			Payload: map[string]interface{}{"stockpileSize": deckSize},
		})
	}
	events = append(events,
		GameEvent{
			Type:   EventPlayerDraw,
			GameID: gameID,
			Player: &EventPlayer{ID: res.PlayerID},
			Payload: map[string]interface{}{
				"count":         len(res.Cards),
				"forced":        res.Forced,
				"stockpileSize": deckSize,
			},
		},
		turnEvent(gameID, res.NextPlayerID),
	)
	return events
}
