package apply

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dogctl/declarative"
	"dogctl/internal/cli/common"
)

// NewDiffCommand compares a local JSON definition with the live remote
// resource it references.
func NewDiffCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fileFlag string

	command := &cobra.Command{
		Use:   "diff",
		Short: "Show differences between a local definition and its live resource",
		Long: strings.Join([]string{
			"Diff loads a local JSON definition, fetches the live resource referenced by its 'id',",
			"and prints a unified diff of the two canonical JSON renderings.",
			"Live state is the from side, the local file the to side.",
		}, " "),
		Example: strings.Join([]string{
			"  dogctl diff -f monitor.json",
		}, "\n"),
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			if strings.TrimSpace(fileFlag) == "" {
				return common.ValidationError("flag --file is required", nil)
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}
			engine := declarative.NewEngineForClient(client)

			result, err := engine.DiffPath(command.Context(), fileFlag)
			if err != nil {
				return err
			}
			if result.Equal {
				return common.WriteText(command, fmt.Sprintf("%s %s: no differences", result.Kind, result.ID))
			}
			_, err = fmt.Fprint(command.OutOrStdout(), result.Unified)
			return err
		},
	}

	command.Flags().StringVarP(&fileFlag, "file", "f", "", "JSON resource file to compare against live state")
	return command
}
