// internal/cli/prompt.go
package cli

import "github.com/pterm/pterm"

// Prompter asks the operator for input.
type Prompter interface {
	Select(prompt string, options []string) (string, error)
	Input(prompt, def string) (string, error)
	Confirm(prompt string, def bool) (bool, error)
}

// PtermPrompter uses pterm's interactive printers.
type PtermPrompter struct{}

func (PtermPrompter) Select(prompt string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithDefaultText(prompt).
		WithOptions(options).
		WithMaxHeight(12).
		Show()
}

func (PtermPrompter) Input(prompt, def string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithDefaultText(prompt).
		WithDefaultValue(def).
		Show()
}

func (PtermPrompter) Confirm(prompt string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultText(prompt).
		WithDefaultValue(def).
		Show()
}
