package host

import (
	"github.com/spf13/cobra"

	"dogctl/datadog"
	"dogctl/faults"
	"dogctl/internal/cli/common"
	"dogctl/resource"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "host",
		Short: "Inspect and mute infrastructure hosts",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags),
		newGetCommand(deps, globalFlags),
		newTotalsCommand(deps, globalFlags),
		newMuteCommand(deps, globalFlags),
		newUnmuteCommand(deps, globalFlags),
	)
	return command
}

var listColumns = []common.Column{
	{Header: "host", Value: func(doc resource.Document) string { return common.FieldString(doc, "host_name") }},
	{Header: "up", Value: func(doc resource.Document) string { return common.FieldString(doc, "up") }},
	{Header: "muted", Value: func(doc resource.Document) string { return common.FieldString(doc, "is_muted") }},
	{Header: "apps", Value: func(doc resource.Document) string {
		return common.FormatTags(common.TagStrings(doc["apps"]), 4)
	}},
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var filter string
	var count int

	command := &cobra.Command{
		Use:     "list",
		Short:   "List reporting hosts",
		Example: "  dogctl host list --filter env:prod --count 50",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			hosts, err := client.Hosts.List(command.Context(), datadog.ListHostsOptions{Filter: filter, Count: count})
			if err != nil {
				return err
			}
			return common.WriteDocuments(command, globalFlags, hosts, listColumns)
		},
	}

	command.Flags().StringVar(&filter, "filter", "", "host search filter")
	command.Flags().IntVar(&count, "count", 100, "maximum number of hosts to return")
	return command
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "get <hostname>",
		Short:   "Show one host by name",
		Example: "  dogctl host get web-01.example.com",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			hosts, err := client.Hosts.List(command.Context(), datadog.ListHostsOptions{Filter: args[0], Count: 10})
			if err != nil {
				return err
			}
			for _, host := range hosts {
				if common.FieldString(host, "host_name") == args[0] {
					return common.WriteDocument(command, globalFlags, host)
				}
			}
			return faults.NewTypedError(faults.NotFoundError, "host "+args[0]+" is not reporting", nil)
		},
	}
}

func newTotalsCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "totals",
		Short:   "Show total and active host counts",
		Example: "  dogctl host totals",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			totals, err := client.Hosts.Totals(command.Context())
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, totals)
		},
	}
}

func newMuteCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var message string
	var until string

	command := &cobra.Command{
		Use:     "mute <hostname>",
		Short:   "Mute a host",
		Example: "  dogctl host mute web-01 --message 'kernel upgrade' --until 2h",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			var end int64
			if until != "" {
				parsedEnd, err := common.ParseUntil(until)
				if err != nil {
					return err
				}
				end = parsedEnd
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			muted, err := client.Hosts.Mute(command.Context(), args[0], message, end)
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, muted)
		},
	}

	command.Flags().StringVar(&message, "message", "", "reason shown on the muted host")
	command.Flags().StringVar(&until, "until", "", "mute end time (relative span or ISO datetime)")
	return command
}

func newUnmuteCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "unmute <hostname>",
		Short:   "Unmute a host",
		Example: "  dogctl host unmute web-01",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			unmuted, err := client.Hosts.Unmute(command.Context(), args[0])
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, unmuted)
		},
	}
}
