package tui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via CHISEL_TEST_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (CHISEL_TEST_NO_INTERACTIVE is set)")

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
func checkInteractiveAllowed() error {
	if os.Getenv("CHISEL_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// Prompter asks the user questions on the terminal. It satisfies
// engine.Confirmer. With assumeYes set, every confirmation is approved
// without asking.
type Prompter struct {
	assumeYes bool
}

// NewPrompter creates a Prompter. assumeYes corresponds to the --yes flag.
func NewPrompter(assumeYes bool) *Prompter {
	return &Prompter{assumeYes: assumeYes}
}

// Confirm asks a yes/no question and returns the answer.
func (p *Prompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	if p.assumeYes {
		return true, nil
	}
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	answer := defaultValue
	question := &survey.Confirm{
		Message: prompt,
		Default: defaultValue,
	}
	if err := survey.AskOne(question, &answer); err != nil {
		return false, err
	}
	return answer, nil
}

// PromptMessage asks for a commit message, pre-filled with defaultValue.
// With assumeYes set, the default is accepted without asking.
func (p *Prompter) PromptMessage(prompt, defaultValue string) (string, error) {
	if p.assumeYes {
		return defaultValue, nil
	}
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	message := ""
	question := &survey.Input{
		Message: prompt,
		Default: defaultValue,
	}
	if err := survey.AskOne(question, &message); err != nil {
		return "", err
	}
	return message, nil
}
