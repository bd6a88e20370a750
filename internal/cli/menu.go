// internal/cli/menu.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
)

const (
	optCreate = "Create game"
	optList   = "List games"
	optPlay   = "Play game"
	optDelete = "Delete game"
	optExit   = "Exit"

	optDraw = "Draw card"
	optBack = "Back to menu"
)

// Menu drives games in a local GameStore from a terminal.
type Menu struct {
	Store  *game.GameStore
	Prompt Prompter
	Out    io.Writer
	Rules  game.HouseRules
	Logger *logrus.Logger
}

// NewMenu builds a menu over an empty store that prints to out.
func NewMenu(prompt Prompter, out io.Writer, logger *logrus.Logger) *Menu {
	if logger == nil {
		logger = logrus.New()
	}
	return &Menu{
		Store:  game.NewGameStore(),
		Prompt: prompt,
		Out:    out,
		Rules:  game.DefaultHouseRules(),
		Logger: logger,
	}
}

// Run shows the main menu until the operator exits or the prompter fails.
func (m *Menu) Run() error {
	for {
		choice, err := m.Prompt.Select("Main menu", []string{optCreate, optList, optPlay, optDelete, optExit})
		if err != nil {
			return err
		}
		switch choice {
		case optCreate:
			err = m.createGame()
		case optList:
			m.listGames()
		case optPlay:
			err = m.pickAndPlay()
		case optDelete:
			err = m.deleteGame()
		case optExit:
			pterm.Fprintln(m.Out, "Bye!")
			return nil
		}
		if err != nil {
			if errors.Is(err, errAborted) {
				return err
			}
			m.printError(err)
		}
	}
}

// errAborted marks prompter failures, which end the session.
var errAborted = errors.New("prompt aborted")

func (m *Menu) ask(prompt, def string) (string, error) {
	s, err := m.Prompt.Input(prompt, def)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errAborted, err)
	}
	return strings.TrimSpace(s), nil
}

func (m *Menu) choose(prompt string, options []string) (string, error) {
	s, err := m.Prompt.Select(prompt, options)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errAborted, err)
	}
	return s, nil
}

func (m *Menu) createGame() error {
	raw, err := m.ask("Number of players", "2")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 2 {
		return game.ErrNotEnoughPlayers
	}
	names := make([]string, n)
	for i := range names {
		if names[i], err = m.ask(fmt.Sprintf("Name of player %d", i+1), ""); err != nil {
			return err
		}
	}
	summary, err := m.Store.Create(names, m.Rules)
	if err != nil {
		return err
	}
	m.Logger.WithField("game_id", summary.ID).Debug("created game")
	m.printInfo(fmt.Sprintf("Created game %s", summary.ID))
	return nil
}

func (m *Menu) listGames() {
	ids := m.Store.IDs()
	if len(ids) == 0 {
		m.printInfo("No games yet")
		return
	}
	data := pterm.TableData{{"ID", "Status", "Players", "Turn"}}
	for _, id := range ids {
		s, err := m.Store.Summary(id)
		if err != nil {
			continue // deleted since listing
		}
		names := make([]string, len(s.Players))
		for i, p := range s.Players {
			names[i] = p.Name
		}
		turn := s.Players[s.CurrentTurn].Name
		if s.Winner != nil {
			turn = "-"
		}
		data = append(data, []string{id.String(), s.Status, strings.Join(names, ", "), turn})
	}
	pterm.DefaultTable.WithHasHeader().WithWriter(m.Out).WithData(data).Render()
}

func (m *Menu) readGameID() (uuid.UUID, error) {
	raw, err := m.ask("Game id", "")
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, game.ErrNotFound
	}
	return id, nil
}

func (m *Menu) deleteGame() error {
	id, err := m.readGameID()
	if err != nil {
		return err
	}
	ok, err := m.Prompt.Confirm(fmt.Sprintf("Delete game %s?", id), false)
	if err != nil {
		return fmt.Errorf("%w: %v", errAborted, err)
	}
	if !ok {
		return nil
	}
	if err := m.Store.Delete(id); err != nil {
		return err
	}
	m.printInfo(fmt.Sprintf("Deleted game %s", id))
	return nil
}

func (m *Menu) pickAndPlay() error {
	id, err := m.readGameID()
	if err != nil {
		return err
	}
	return m.Play(id)
}

// Play runs turns for game id until it ends or the operator goes back.
// Rule violations are printed and the same player is asked again.
func (m *Menu) Play(id uuid.UUID) error {
	for {
		state, err := m.Store.State(id)
		if err != nil {
			return err
		}
		m.render(state)
		if state.Winner != nil {
			m.printSuccess(fmt.Sprintf("%s wins!", state.Winner.Name))
			return nil
		}

		current := state.Players[state.CurrentTurn]
		if state.ColorPending {
			color, err := m.chooseColor(current.Name)
			if err != nil {
				return err
			}
			if _, err := m.Store.ChooseColor(id, current.ID, color); err != nil {
				m.printError(err)
			}
			continue
		}

		options := make([]string, 0, len(current.Hand)+2)
		for _, hc := range current.Hand {
			options = append(options, fmt.Sprintf("%d: %s", hc.Idx, hc.Card))
		}
		options = append(options, optDraw, optBack)

		choice, err := m.choose(fmt.Sprintf("%s, your move", current.Name), options)
		if err != nil {
			return err
		}
		switch choice {
		case optBack:
			return nil
		case optDraw:
			res, err := m.Store.DrawCard(id, current.ID)
			if err != nil {
				m.printError(err)
				continue
			}
			drawn := make([]string, len(res.Cards))
			for i, c := range res.Cards {
				drawn[i] = c.String()
			}
			m.printInfo(fmt.Sprintf("%s drew %s", current.Name, strings.Join(drawn, ", ")))
		default:
			idx, card, ok := handChoice(choice, current.Hand)
			if !ok {
				m.printError(game.ErrInvalidCardIndex)
				continue
			}
			var chosen *models.Color
			if card.IsWild() && !state.Rules.DeferredColorChoice {
				color, err := m.chooseColor(current.Name)
				if err != nil {
					return err
				}
				chosen = &color
			}
			out, err := m.Store.PlayCard(id, current.ID, idx, chosen)
			if err != nil {
				m.printError(err)
				continue
			}
			m.printOutcome(current.Name, out)
		}
	}
}

func handChoice(choice string, hand []game.HandCard) (int, models.Card, bool) {
	prefix, _, found := strings.Cut(choice, ":")
	if !found {
		return 0, models.Card{}, false
	}
	idx, err := strconv.Atoi(prefix)
	if err != nil || idx < 0 || idx >= len(hand) {
		return 0, models.Card{}, false
	}
	return idx, hand[idx].Card, true
}

func (m *Menu) chooseColor(name string) (models.Color, error) {
	options := make([]string, len(models.PlayableColors))
	for i, c := range models.PlayableColors {
		options[i] = c.String()
	}
	choice, err := m.choose(fmt.Sprintf("%s, choose a color", name), options)
	if err != nil {
		return 0, err
	}
	color, ok := models.ParseColor(choice)
	if !ok {
		return 0, game.ErrInvalidColor
	}
	return color, nil
}
