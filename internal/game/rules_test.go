// internal/game/rules_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseRulesUpdate(t *testing.T) {
	rules := DefaultHouseRules()
	require.NoError(t, rules.Update(map[string]interface{}{
		"deferredColorChoice": true,
		"handSize":            float64(5),
	}))
	assert.True(t, rules.DeferredColorChoice)
	assert.Equal(t, 5, rules.HandSize)

	// missing and null keys keep their value
	require.NoError(t, rules.Update(map[string]interface{}{"handSize": nil}))
	assert.Equal(t, 5, rules.HandSize)
}

func TestHouseRulesUpdateRejects(t *testing.T) {
	rules := DefaultHouseRules()
	assert.Error(t, rules.Update(map[string]interface{}{"deferredColorChoice": "yes"}))
	assert.Error(t, rules.Update(map[string]interface{}{"handSize": "7"}))
	assert.Error(t, rules.Update(map[string]interface{}{"handSize": 0}))
}

func TestParseRulesLeavesCurrent(t *testing.T) {
	current := DefaultHouseRules()
	parsed, err := ParseRules(map[string]interface{}{"handSize": 3}, current)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.HandSize)
	assert.Equal(t, DefaultHandSize, current.HandSize)

	parsed, err = ParseRules(nil, current)
	require.NoError(t, err)
	assert.Equal(t, current, parsed)
}
