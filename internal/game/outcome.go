// internal/game/outcome.go
package game

import "github.com/jason-s-yu/uno/internal/models"

// NoPlayer marks the absence of a next player, e.g. once the game is won.
const NoPlayer = -1

// OutcomeKind classifies the effect of a successful play.
type OutcomeKind string

const (
	OutcomePlay         OutcomeKind = "play"
	OutcomeSkip         OutcomeKind = "skip"
	OutcomeReverse      OutcomeKind = "reverse"
	OutcomeDrawTwo      OutcomeKind = "draw_two"
	OutcomeWild         OutcomeKind = "wild"
	OutcomeWildDrawFour OutcomeKind = "wild_draw_four"
	OutcomeGameWon      OutcomeKind = "game_won"
	OutcomeColorPending OutcomeKind = "color_pending" // deferred variant: the wild is down, the color is not chosen yet
)

// Outcome is the result of PlayCard or ChooseColor.
type Outcome struct {
	Kind         OutcomeKind   `json:"kind"`
	PlayerID     int           `json:"player_id"`
	NextPlayerID int           `json:"next_player_id"`
	CardsOwed    int           `json:"cards_owed,omitempty"` // cards the next player must draw
	Card         models.Card   `json:"card"`
	ActiveColor  *models.Color `json:"active_color,omitempty"`
}

// DrawResult is the result of DrawCard. Cards are private to the drawing player.
type DrawResult struct {
	PlayerID     int           `json:"player_id"`
	NextPlayerID int           `json:"next_player_id"`
	Cards        []models.Card `json:"cards"`
	Forced       bool          `json:"forced"` // the draw settled a Draw Two / Wild Draw Four debt
	Reshuffled   bool          `json:"reshuffled"`
}
