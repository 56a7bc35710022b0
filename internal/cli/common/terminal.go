package common

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func IsInteractiveTerminal(command *cobra.Command) bool {
	return isTerminalReader(command.InOrStdin()) && isTerminalWriter(command.OutOrStdout())
}

// TerminalWidth reports the column count of the output terminal, or
// fallback when the output is not a terminal.
func TerminalWidth(command *cobra.Command, fallback int) int {
	file, ok := command.OutOrStdout().(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

func isTerminalReader(reader io.Reader) bool {
	file, ok := reader.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func isTerminalWriter(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
