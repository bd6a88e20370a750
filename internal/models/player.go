package models

// Player is a seat at the table. ID is the seat index and never changes for the
// lifetime of a game. Hand positions shift when a card is removed.
type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Hand []Card `json:"hand"`
}

func NewPlayer(id int, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Hand: []Card{},
	}
}

// AddCards appends cards to the end of the hand.
func (p *Player) AddCards(cards ...Card) {
	p.Hand = append(p.Hand, cards...)
}

// CardAt returns the card at a hand position.
func (p *Player) CardAt(idx int) (Card, bool) {
	if idx < 0 || idx >= len(p.Hand) {
		return Card{}, false
	}
	return p.Hand[idx], true
}

// RemoveCard removes and returns the card at idx, shifting later cards down by one.
func (p *Player) RemoveCard(idx int) (Card, bool) {
	card, ok := p.CardAt(idx)
	if !ok {
		return Card{}, false
	}
	p.Hand = append(p.Hand[:idx:idx], p.Hand[idx+1:]...)
	return card, true
}

func (p *Player) HandSize() int {
	return len(p.Hand)
}

// HasWon reports whether the hand is empty.
func (p *Player) HasWon() bool {
	return len(p.Hand) == 0
}
