// internal/handlers/game.go
package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
)

type createGameRequest struct {
	PlayerNames []string               `json:"player_names"`
	Rules       map[string]interface{} `json:"rules,omitempty"`
}

type playCardRequest struct {
	PlayerID  *int    `json:"player_id"`
	CardIndex *int    `json:"card_index"`
	Color     *string `json:"color,omitempty"`
}

type drawCardRequest struct {
	PlayerID *int `json:"player_id"`
}

type chooseColorRequest struct {
	PlayerID *int   `json:"player_id"`
	Color    string `json:"color"`
}

// DeckResponse lists the undrawn cards of a game.
type DeckResponse struct {
	Cards []models.Card `json:"cards"`
}

// CreateGameHandler creates a game for the named players and returns its summary.
func (gs *GameServer) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeJSON(r, &req); err != nil {
		gs.writeError(w, r, err)
		return
	}
	rules, err := game.ParseRules(req.Rules, gs.DefaultRules)
	if err != nil {
		gs.Logger.Debugf("invalid rules in create request: %v", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_rules"})
		return
	}

	summary, err := gs.GameStore.Create(req.PlayerNames, rules)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	gs.Logger.WithFields(logrus.Fields{
		"game_id": summary.ID,
		"players": len(summary.Players),
	}).Info("created game")

	// a game deleted in the meantime has nothing left to announce
	_ = gs.GameStore.View(summary.ID, func(*game.UnoGame) error {
		gs.publish(summary.ID, 0, game.NoPlayer, string(game.EventGameCreated), map[string]interface{}{
			"players": req.PlayerNames,
			"rules":   rules,
		}, nil)
		return nil
	})
	writeJSON(w, http.StatusCreated, summary)
}

// ListGamesHandler returns every live game id.
func (gs *GameServer) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	ids := gs.GameStore.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	writeJSON(w, http.StatusOK, out)
}

// GetGameHandler returns the public summary of a game.
func (gs *GameServer) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDParam(r)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	summary, err := gs.GameStore.Summary(id)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetGameStateHandler returns the full state, including every hand.
func (gs *GameServer) GetGameStateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDParam(r)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	state, err := gs.GameStore.State(id)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// GetDeckHandler reveals the undrawn deck. It answers 404 unless debug deck access is enabled.
func (gs *GameServer) GetDeckHandler(w http.ResponseWriter, r *http.Request) {
	if !gs.DebugDeck {
		http.NotFound(w, r)
		return
	}
	id, err := gameIDParam(r)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	cards, err := gs.GameStore.DeckContents(id)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DeckResponse{Cards: cards})
}

// DeleteGameHandler removes a game and disconnects its watchers.
func (gs *GameServer) DeleteGameHandler(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDParam(r)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	err = gs.GameStore.DeleteWith(id, func(*game.UnoGame) {
		gs.Hub.CloseGame(id, game.GameEvent{Type: game.EventGameDeleted, GameID: id})
		gs.publish(id, 0, game.NoPlayer, string(game.EventGameDeleted), nil, nil)
	})
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	gs.Logger.WithField("game_id", id).Info("deleted game")
	w.WriteHeader(http.StatusNoContent)
}

// PlayCardHandler plays a card from the acting player's hand.
func (gs *GameServer) PlayCardHandler(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDParam(r)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	var req playCardRequest
	if err := decodeJSON(r, &req); err != nil {
		gs.writeError(w, r, err)
		return
	}
	if req.PlayerID == nil || req.CardIndex == nil {
		gs.writeError(w, r, errBadRequest)
		return
	}
	color, err := parseColorParam(req.Color)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}

	var out game.Outcome
	err = gs.GameStore.With(id, func(g *game.UnoGame) error {
		var e error
		if out, e = g.PlayCard(*req.PlayerID, *req.CardIndex, color); e != nil {
			return e
		}
		actionType := game.EventPlayerPlayCard
		if out.Kind == game.OutcomeGameWon {
			actionType = game.EventGameEnd
		}
		gs.publish(id, g.TurnNumber, out.PlayerID, string(actionType), map[string]interface{}{
			"card":      out.Card,
			"cardIndex": *req.CardIndex,
			"effect":    out.Kind,
		}, game.PlayEvents(id, out))
		return nil
	})
	if err != nil {
		gs.writeError(w, r, err)
		return
	}

	gs.logAction(id, out.PlayerID, "play_card").WithField("effect", out.Kind).Info("card played")
	writeJSON(w, http.StatusOK, out)
}

// DrawCardHandler draws the owed cards (or one card) for the acting player.
// The drawn cards are returned only to this caller.
func (gs *GameServer) DrawCardHandler(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDParam(r)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	var req drawCardRequest
	if err := decodeJSON(r, &req); err != nil {
		gs.writeError(w, r, err)
		return
	}
	if req.PlayerID == nil {
		gs.writeError(w, r, errBadRequest)
		return
	}

	var res game.DrawResult
	err = gs.GameStore.With(id, func(g *game.UnoGame) error {
		var e error
		if res, e = g.DrawCard(*req.PlayerID); e != nil {
			return e
		}
		gs.publish(id, g.TurnNumber, res.PlayerID, string(game.EventPlayerDraw), map[string]interface{}{
			"count":      len(res.Cards),
			"forced":     res.Forced,
			"reshuffled": res.Reshuffled,
		}, game.DrawEvents(id, res, g.Deck.Len()))
		return nil
	})
	if err != nil {
		gs.writeError(w, r, err)
		return
	}

	gs.logAction(id, res.PlayerID, "draw_card").WithField("count", len(res.Cards)).Info("cards drawn")
	writeJSON(w, http.StatusOK, res)
}

// ChooseColorHandler declares the color of a wild played without one.
func (gs *GameServer) ChooseColorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDParam(r)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	var req chooseColorRequest
	if err := decodeJSON(r, &req); err != nil {
		gs.writeError(w, r, err)
		return
	}
	if req.PlayerID == nil {
		gs.writeError(w, r, errBadRequest)
		return
	}
	color, ok := models.ParseColor(req.Color)
	if !ok {
		gs.writeError(w, r, game.ErrInvalidColor)
		return
	}

	var out game.Outcome
	err = gs.GameStore.With(id, func(g *game.UnoGame) error {
		var e error
		if out, e = g.ChooseColor(*req.PlayerID, color); e != nil {
			return e
		}
		gs.publish(id, g.TurnNumber, out.PlayerID, string(game.EventPlayerChooseColor), map[string]interface{}{
			"color":  color,
			"effect": out.Kind,
		}, game.ChooseColorEvents(id, out))
		return nil
	})
	if err != nil {
		gs.writeError(w, r, err)
		return
	}

	gs.logAction(id, out.PlayerID, "choose_color").WithField("color", color).Info("color chosen")
	writeJSON(w, http.StatusOK, out)
}

// ResetGameHandler redeals a game for the same players.
func (gs *GameServer) ResetGameHandler(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDParam(r)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	var summary game.GameSummary
	err = gs.GameStore.With(id, func(g *game.UnoGame) error {
		if e := g.Reset(); e != nil {
			return e
		}
		summary = g.Summary()
		gs.publish(id, 0, game.NoPlayer, string(game.EventGameReset), nil, []game.GameEvent{
			{Type: game.EventGameReset, GameID: id},
			{Type: game.EventGamePlayerTurn, GameID: id, Player: &game.EventPlayer{ID: summary.CurrentTurn}},
		})
		return nil
	})
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	gs.Logger.WithField("game_id", id).Info("reset game")
	writeJSON(w, http.StatusOK, summary)
}

func (gs *GameServer) logAction(id uuid.UUID, playerID int, action string) *logrus.Entry {
	return gs.Logger.WithFields(logrus.Fields{
		"game_id":   id,
		"player_id": playerID,
		"action":    action,
	})
}
