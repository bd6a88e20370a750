// internal/models/card.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Color is the color printed on a card. Wild is only ever printed on Wild-family cards.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorWild
)

// PlayableColors are the colors a Wild-family card may be declared as.
var PlayableColors = []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow}

var colorNames = map[Color]string{
	ColorRed:    "red",
	ColorGreen:  "green",
	ColorBlue:   "blue",
	ColorYellow: "yellow",
	ColorWild:   "wild",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// IsPlayable reports whether c may be chosen as the active color after a wild.
func (c Color) IsPlayable() bool {
	return c <= ColorYellow
}

// ParseColor accepts any casing of red, green, blue, yellow or wild.
func ParseColor(s string) (Color, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for c, name := range colorNames {
		if name == needle {
			return c, true
		}
	}
	return 0, false
}

func (c Color) MarshalText() ([]byte, error) {
	if _, ok := colorNames[c]; !ok {
		return nil, fmt.Errorf("unknown color %d", uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("unknown color %q", string(text))
	}
	*c = parsed
	return nil
}

// Kind is the face of a card. The set is closed; effect resolution switches over every value.
type Kind uint8

const (
	KindNumber Kind = iota
	KindSkip
	KindReverse
	KindDrawTwo
	KindWild
	KindWildDrawFour
)

var kindNames = map[Kind]string{
	KindNumber:       "number",
	KindSkip:         "skip",
	KindReverse:      "reverse",
	KindDrawTwo:      "draw_two",
	KindWild:         "wild",
	KindWildDrawFour: "wild_draw_four",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	needle := strings.ToLower(string(text))
	for kind, name := range kindNames {
		if name == needle {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", string(text))
}

// Card is an immutable value. Number is only meaningful when Kind is KindNumber.
type Card struct {
	Color  Color
	Kind   Kind
	Number int
}

// NumberCard builds a colored number card (0..9).
func NumberCard(color Color, n int) Card {
	return Card{Color: color, Kind: KindNumber, Number: n}
}

// ActionCard builds a colored Skip, Reverse or DrawTwo.
func ActionCard(color Color, kind Kind) Card {
	return Card{Color: color, Kind: kind}
}

func WildCard() Card {
	return Card{Color: ColorWild, Kind: KindWild}
}

func WildDrawFourCard() Card {
	return Card{Color: ColorWild, Kind: KindWildDrawFour}
}

// IsWild reports whether the card is Wild-colored (Wild or WildDrawFour).
func (c Card) IsWild() bool {
	return c.Color == ColorWild
}

func (c Card) String() string {
	switch c.Kind {
	case KindNumber:
		return fmt.Sprintf("%s %d", c.Color, c.Number)
	case KindWild:
		return "wild"
	case KindWildDrawFour:
		return "wild draw four"
	default:
		return fmt.Sprintf("%s %s", c.Color, strings.ReplaceAll(c.Kind.String(), "_", " "))
	}
}

type cardJSON struct {
	Color  Color `json:"color"`
	Kind   Kind  `json:"kind"`
	Number *int  `json:"number,omitempty"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	out := cardJSON{Color: c.Color, Kind: c.Kind}
	if c.Kind == KindNumber {
		n := c.Number
		out.Number = &n
	}
	return json.Marshal(out)
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var in cardJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Card{Color: in.Color, Kind: in.Kind}
	if in.Number != nil {
		c.Number = *in.Number
	}
	return nil
}

// Matches reports whether candidate may be played on top.
//
// Wild-colored candidates are always legal. active, when set, stands in for the
// color of a Wild-colored top; a Wild-colored top with no active color (the
// starting card) accepts anything.
func Matches(top, candidate Card, active *Color) bool {
	if candidate.IsWild() {
		return true
	}
	topColor := top.Color
	if top.IsWild() {
		if active == nil {
			return true
		}
		topColor = *active
	}
	if candidate.Color == topColor {
		return true
	}
	if candidate.Kind != top.Kind {
		return false
	}
	if candidate.Kind == KindNumber {
		return candidate.Number == top.Number
	}
	return true
}
