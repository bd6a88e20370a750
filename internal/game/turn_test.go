// internal/game/turn_test.go
package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnTrackerClockwise(t *testing.T) {
	tt := newTurnTracker(4)
	assert.Equal(t, 1, tt.Peek(1))
	assert.Equal(t, 2, tt.Peek(2))
	assert.Equal(t, 0, tt.Peek(4))

	tt.Current = 3
	assert.Equal(t, 0, tt.Advance(1))
	assert.Equal(t, 2, tt.Advance(2))
}

func TestTurnTrackerCounterClockwise(t *testing.T) {
	tt := newTurnTracker(3)
	tt.Reverse()
	assert.Equal(t, CounterClockwise, tt.Direction)
	assert.Equal(t, 2, tt.Advance(1))
	assert.Equal(t, 1, tt.Advance(1))
	assert.Equal(t, 2, tt.Advance(2))

	tt.Reverse()
	assert.Equal(t, Clockwise, tt.Direction)
	assert.Equal(t, 0, tt.Advance(1))
}

func TestTurnTrackerPending(t *testing.T) {
	tt := newTurnTracker(2)
	assert.Equal(t, 1, tt.Owed())

	tt.AddPending(2)
	tt.AddPending(-3)
	assert.Equal(t, 2, tt.Owed())
	tt.AddPending(4)
	assert.Equal(t, 6, tt.Owed())

	tt.ClearPending()
	assert.Zero(t, tt.PendingDraws)
	assert.Equal(t, 1, tt.Owed())
}

func TestDirectionText(t *testing.T) {
	b, err := CounterClockwise.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "counter_clockwise", string(b))
	assert.Equal(t, "clockwise", Clockwise.String())

	for _, d := range []Direction{Clockwise, CounterClockwise} {
		text, err := d.MarshalText()
		require.NoError(t, err)
		var back Direction
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, d, back)
	}

	var d Direction
	assert.Error(t, d.UnmarshalText([]byte("sideways")))
	assert.Error(t, d.UnmarshalText([]byte("Clockwise")))
}

func TestDirectionJSONInStateView(t *testing.T) {
	g := setupTestGame(t, 3, nil)
	g.Turn.Reverse()
	data, err := json.Marshal(g.State())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"direction":"counter_clockwise"`)

	var view GameStateView
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, CounterClockwise, view.Direction)
	assert.Equal(t, g.ID, view.ID)
}
