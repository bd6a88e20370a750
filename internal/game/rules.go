// internal/game/rules.go
package game

import "fmt"

// DefaultHandSize is the number of cards dealt to every player.
const DefaultHandSize = 7

// HouseRules defines the optional rule variants of a game.
type HouseRules struct {
	DeferredColorChoice bool `json:"deferredColorChoice"` // a wild may be played without a color; the player then calls ChooseColor before anyone acts
	HandSize            int  `json:"handSize"`            // cards dealt per player; default 7
}

// DefaultHouseRules returns the standard rules: inline color choice, seven-card hands.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		DeferredColorChoice: false,
		HandSize:            DefaultHandSize,
	}
}

// Update will update the house rules with the new rules provided.
// Keys that are missing or null keep their old value.
func (rules *HouseRules) Update(newRules map[string]interface{}) error {
	assignBool := func(field *bool, key string) error {
		if val, exists := newRules[key]; exists && val != nil {
			b, ok := val.(bool)
			if !ok {
				return fmt.Errorf("invalid type for %s", key)
			}
			*field = b
		}
		return nil
	}

	assignInt := func(field *int, key string, minVal int, validationMsg string) error {
		if val, exists := newRules[key]; exists && val != nil {
			// JSON numbers decode as float64
			switch v := val.(type) {
			case float64:
				*field = int(v)
			case int:
				*field = v
			default:
				return fmt.Errorf("invalid type for %s", key)
			}
			if *field < minVal {
				return fmt.Errorf("%s", validationMsg)
			}
		}
		return nil
	}

	if err := assignBool(&rules.DeferredColorChoice, "deferredColorChoice"); err != nil {
		return err
	}
	if err := assignInt(&rules.HandSize, "handSize", 1, "handSize must be at least 1"); err != nil {
		return err
	}
	return nil
}

// ParseRules applies rules on top of current and returns the result. current is not modified.
func ParseRules(rules map[string]interface{}, current HouseRules) (HouseRules, error) {
	houseRules := current
	err := houseRules.Update(rules)
	return houseRules, err
}
