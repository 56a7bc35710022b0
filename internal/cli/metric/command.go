package metric

import (
	"github.com/spf13/cobra"

	"dogctl/internal/cli/common"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "metric",
		Short: "Query and inspect metrics",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newQueryCommand(deps, globalFlags),
		newSearchCommand(deps, globalFlags),
		newMetadataCommand(deps, globalFlags),
	)
	return command
}

func newQueryCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fromSpec string
	var toSpec string

	command := &cobra.Command{
		Use:   "query <query>",
		Short: "Run a timeseries query",
		Example: "  dogctl metric query 'avg:system.cpu.user{*}'\n" +
			"  dogctl metric query 'avg:system.cpu.user{*}' --from 4h --to now",
		Args: cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			from, to, err := common.ParseTimeRange(fromSpec, toSpec)
			if err != nil {
				return err
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			result, err := client.Metrics.Query(command.Context(), from, to, args[0])
			if err != nil {
				return err
			}
			return common.WriteValue(command, globalFlags, map[string]any(result))
		},
	}

	command.Flags().StringVar(&fromSpec, "from", "1h", "range start (relative span, unix timestamp, or ISO datetime)")
	command.Flags().StringVar(&toSpec, "to", "now", "range end")
	return command
}

func newSearchCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "search <pattern>",
		Short:   "Search metric names",
		Example: "  dogctl metric search system.cpu",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			names, err := client.Metrics.Search(command.Context(), args[0])
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return common.WriteText(command, "(no matching metrics)")
			}
			for _, name := range names {
				if err := common.WriteText(command, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newMetadataCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "metadata <metric-name>",
		Short:   "Show metric metadata",
		Example: "  dogctl metric metadata system.cpu.user",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			metadata, err := client.Metrics.Metadata(command.Context(), args[0])
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, metadata)
		},
	}
}
