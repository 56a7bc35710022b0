package common

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// ConfirmDestructive gates a destructive operation behind a prompt.
// assumeYes skips the prompt; non-interactive sessions must pass it.
func ConfirmDestructive(command *cobra.Command, prompt string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !IsInteractiveTerminal(command) {
		return false, ValidationError("refusing to run a destructive command without confirmation on a non-interactive terminal", nil)
	}

	confirmed := false
	field := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(field)).
		WithInput(command.InOrStdin()).
		WithOutput(command.OutOrStdout())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}
