package monitor

import (
	"github.com/spf13/cobra"

	"dogctl/datadog"
	"dogctl/internal/cli/common"
)

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var tags string

	command := &cobra.Command{
		Use:   "list",
		Short: "List monitors",
		Example: "  dogctl monitor list\n" +
			"  dogctl monitor list --tags team:sre,env:prod",
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			monitors, err := client.Monitors.List(command.Context(), datadog.ListMonitorsOptions{Tags: tags})
			if err != nil {
				return err
			}
			return common.WriteDocuments(command, globalFlags, monitors, listColumns)
		},
	}

	command.Flags().StringVar(&tags, "tags", "", "comma-separated monitor tags filter")
	return command
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "get <monitor-id>",
		Short:   "Show one monitor",
		Example: "  dogctl monitor get 12345",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			monitor, err := client.Monitors.Get(command.Context(), args[0])
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, monitor)
		},
	}
}
