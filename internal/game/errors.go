// internal/game/errors.go
package game

import "errors"

// Errors returned by engine and registry operations. A failed operation never
// changes game state.
var (
	ErrNotFound             = errors.New("game not found")
	ErrNotEnoughPlayers     = errors.New("a game needs at least two players")
	ErrTooManyPlayers       = errors.New("not enough cards to deal every player a hand")
	ErrInvalidPlayer        = errors.New("no such player in this game")
	ErrGameOver             = errors.New("game is already over")
	ErrNotYourTurn          = errors.New("not your turn")
	ErrInvalidCardIndex     = errors.New("no card at that hand position")
	ErrMustDrawPendingCards = errors.New("pending cards must be drawn before playing")
	ErrInvalidMove          = errors.New("card does not match the top of the discard pile")
	ErrMissingColorChoice   = errors.New("a wild card needs a color choice of red, green, blue or yellow")
	ErrColorChoicePending   = errors.New("a color must be chosen for the wild card first")
	ErrNoColorChoicePending = errors.New("no color choice is pending")
	ErrInvalidColor         = errors.New("unknown color")

	// ErrDeckExhausted means deck and reclaimable discard could not cover a draw.
	// With a closed 108-card economy this indicates a broken invariant.
	ErrDeckExhausted = errors.New("deck and discard pile are exhausted")
)

// IsInvariantViolation reports errors that signal corrupted game state rather
// than an illegal request.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrDeckExhausted)
}
