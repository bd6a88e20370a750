// internal/game/turn.go
package game

import "fmt"

// Direction is the order in which seats take turns.
type Direction uint8

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter_clockwise"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "clockwise":
		*d = Clockwise
	case "counter_clockwise":
		*d = CounterClockwise
	default:
		return fmt.Errorf("unknown direction %q", string(text))
	}
	return nil
}

// Reversed returns the opposite direction.
func (d Direction) Reversed() Direction {
	if d == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

// TurnTracker is the current seat, play direction and the draw debt of the seat to act.
// Only the engine mutates it.
type TurnTracker struct {
	Current      int
	Direction    Direction
	PendingDraws int
	seats        int
}

func newTurnTracker(seats int) TurnTracker {
	return TurnTracker{Current: 0, Direction: Clockwise, seats: seats}
}

// Peek returns the seat reached after moving steps seats in the current direction.
func (t *TurnTracker) Peek(steps int) int {
	if t.seats == 0 {
		return 0
	}
	delta := steps % t.seats
	if t.Direction == CounterClockwise {
		delta = t.seats - delta
	}
	return (t.Current + delta) % t.seats
}

// Advance moves the turn steps seats in the current direction and returns the new seat.
func (t *TurnTracker) Advance(steps int) int {
	t.Current = t.Peek(steps)
	return t.Current
}

// Reverse flips the direction of play.
func (t *TurnTracker) Reverse() {
	t.Direction = t.Direction.Reversed()
}

// AddPending increases the draw debt owed by the next seat to act.
func (t *TurnTracker) AddPending(n int) {
	if n > 0 {
		t.PendingDraws += n
	}
}

// Owed is the number of cards the seat to act takes on a draw: the debt, or one card.
func (t *TurnTracker) Owed() int {
	if t.PendingDraws > 0 {
		return t.PendingDraws
	}
	return 1
}

// ClearPending settles the draw debt.
func (t *TurnTracker) ClearPending() {
	t.PendingDraws = 0
}
