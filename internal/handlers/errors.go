package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/uno/internal/game"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{game.ErrNotFound, http.StatusNotFound, "not_found"},
	{game.ErrNotYourTurn, http.StatusConflict, "not_your_turn"},
	{game.ErrGameOver, http.StatusConflict, "game_over"},
	{game.ErrColorChoicePending, http.StatusConflict, "color_choice_pending"},
	{game.ErrMustDrawPendingCards, http.StatusConflict, "must_draw_pending_cards"},
	{game.ErrInvalidCardIndex, http.StatusBadRequest, "invalid_card_index"},
	{game.ErrInvalidMove, http.StatusBadRequest, "invalid_move"},
	{game.ErrMissingColorChoice, http.StatusBadRequest, "missing_color_choice"},
	{game.ErrNoColorChoicePending, http.StatusBadRequest, "no_color_choice_pending"},
	{game.ErrInvalidColor, http.StatusBadRequest, "invalid_color"},
	{game.ErrInvalidPlayer, http.StatusBadRequest, "invalid_player"},
	{game.ErrNotEnoughPlayers, http.StatusBadRequest, "not_enough_players"},
	{game.ErrTooManyPlayers, http.StatusBadRequest, "too_many_players"},
	{errBadRequest, http.StatusBadRequest, "bad_request"},
	{game.ErrDeckExhausted, http.StatusInternalServerError, "deck_exhausted"},
}

// statusFor maps an error to its HTTP status and stable code.
func statusFor(err error) (int, string) {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.status, ec.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// writeError writes err as an ErrorResponse. Invariant violations are logged at error level.
func (gs *GameServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	entry := gs.Logger.WithFields(logrus.Fields{
		"path": r.URL.Path,
		"code": code,
	})
	switch {
	case game.IsInvariantViolation(err):
		entry.Errorf("game invariant violated: %v", err)
	case status >= http.StatusInternalServerError:
		entry.Errorf("request failed: %v", err)
	default:
		entry.Debugf("request rejected: %v", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}
