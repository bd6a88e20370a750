// internal/cli/style.go
package cli

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
)

var colorStyles = map[models.Color]pterm.Color{
	models.ColorRed:    pterm.FgRed,
	models.ColorGreen:  pterm.FgGreen,
	models.ColorBlue:   pterm.FgBlue,
	models.ColorYellow: pterm.FgYellow,
	models.ColorWild:   pterm.FgMagenta,
}

func styleCard(c models.Card) string {
	return colorStyles[c.Color].Sprint(c.String())
}

func (m *Menu) render(state game.GameStateView) {
	var b strings.Builder
	top := styleCard(state.DiscardTop)
	if state.ActiveColor != nil {
		top += fmt.Sprintf(" (active %s)", colorStyles[*state.ActiveColor].Sprint(state.ActiveColor.String()))
	}
	b.WriteString(pterm.Sprintfln("Top card: %s", top))
	b.WriteString(pterm.Sprintfln("Deck: %d  Discard: %d  Direction: %s", state.DeckCardsRemaining, state.DiscardSize, state.Direction))
	if state.PendingDraws > 0 {
		b.WriteString(pterm.Sprintfln("%s must draw %d", state.Players[state.CurrentTurn].Name, state.PendingDraws))
	}
	for _, p := range state.Players {
		marker := "  "
		if p.ID == state.CurrentTurn && state.Winner == nil {
			marker = pterm.LightCyan("> ")
		}
		b.WriteString(pterm.Sprintfln("%s%s (%d cards)", marker, p.Name, len(p.Hand)))
	}
	if state.Winner == nil {
		cards := make([]string, 0, len(state.Players[state.CurrentTurn].Hand))
		for _, hc := range state.Players[state.CurrentTurn].Hand {
			cards = append(cards, fmt.Sprintf("[%d] %s", hc.Idx, styleCard(hc.Card)))
		}
		b.WriteString(pterm.Sprintfln("Hand: %s", strings.Join(cards, "  ")))
	}

	box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1).
		WithTitle(pterm.LightYellow("|" + state.Status + "|")).WithTitleTopCenter()
	pterm.Fprintln(m.Out, box.Sprint(b.String()))
}

func (m *Menu) printOutcome(name string, out game.Outcome) {
	msg := fmt.Sprintf("%s played %s", name, styleCard(out.Card))
	switch out.Kind {
	case game.OutcomeSkip:
		msg += ", next player is skipped"
	case game.OutcomeReverse:
		msg += ", direction reversed"
	case game.OutcomeDrawTwo, game.OutcomeWildDrawFour:
		msg += fmt.Sprintf(", next player draws %d", out.CardsOwed)
	case game.OutcomeColorPending:
		msg += ", color to be chosen"
	}
	if out.ActiveColor != nil && out.Kind != game.OutcomeGameWon {
		msg += fmt.Sprintf(" (color %s)", out.ActiveColor)
	}
	m.printInfo(msg)
}

func (m *Menu) printInfo(msg string) {
	pterm.Info.WithWriter(m.Out).Println(msg)
}

func (m *Menu) printSuccess(msg string) {
	pterm.Success.WithWriter(m.Out).Println(msg)
}

func (m *Menu) printError(err error) {
	pterm.Error.WithWriter(m.Out).Println(err.Error())
}
