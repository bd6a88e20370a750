// cmd/uno/main.go runs games locally from the terminal.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/uno/internal/cli"
	"github.com/jason-s-yu/uno/internal/config"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	logger.SetOutput(os.Stderr)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("U", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("N", pterm.FgYellow.ToStyle()),
		putils.LettersFromStringWithStyle("O", pterm.FgGreen.ToStyle()),
	).Render()

	menu := cli.NewMenu(cli.PtermPrompter{}, os.Stdout, logger)
	menu.Rules.DeferredColorChoice = cfg.DeferColor
	if err := menu.Run(); err != nil {
		logger.Fatalf("uno: %v", err)
	}
}
