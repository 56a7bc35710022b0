package downtime

import (
	"fmt"

	"github.com/spf13/cobra"

	"dogctl/datadog"
	"dogctl/internal/cli/common"
	"dogctl/resource"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "downtime",
		Short: "Schedule and cancel downtimes",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags),
		newGetCommand(deps, globalFlags),
		newCreateCommand(deps, globalFlags),
		newUpdateCommand(deps, globalFlags),
		newCancelCommand(deps, globalFlags),
		newCancelByScopeCommand(deps, globalFlags),
	)
	return command
}

var listColumns = []common.Column{
	{Header: "id", Value: func(doc resource.Document) string { return common.FieldString(doc, "id") }},
	{Header: "scope", Value: func(doc resource.Document) string {
		return common.FormatTags(common.TagStrings(doc["scope"]), 3)
	}},
	{Header: "message", Value: func(doc resource.Document) string { return common.FieldString(doc, "message") }},
	{Header: "disabled", Value: func(doc resource.Document) string { return common.FieldString(doc, "disabled") }},
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var currentOnly bool

	command := &cobra.Command{
		Use:     "list",
		Short:   "List downtimes",
		Example: "  dogctl downtime list --current-only",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			downtimes, err := client.Downtimes.List(command.Context(), datadog.ListDowntimesOptions{CurrentOnly: currentOnly})
			if err != nil {
				return err
			}
			return common.WriteDocuments(command, globalFlags, downtimes, listColumns)
		},
	}

	command.Flags().BoolVar(&currentOnly, "current-only", false, "hide downtimes that are disabled")
	return command
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "get <downtime-id>",
		Short:   "Show one downtime",
		Example: "  dogctl downtime get 98765",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			downtime, err := client.Downtimes.Get(command.Context(), args[0])
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, downtime)
		},
	}
}

func newCreateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fileFlag string

	command := &cobra.Command{
		Use:     "create -f <file>",
		Short:   "Schedule a downtime from a JSON definition",
		Example: "  dogctl downtime create -f downtime.json",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			doc, err := common.LoadPayloadDocument(command, fileFlag)
			if err != nil {
				return err
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			created, err := client.Downtimes.Create(command.Context(), doc)
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, created)
		},
	}

	command.Flags().StringVarP(&fileFlag, "file", "f", "", "downtime definition file ('-' reads stdin)")
	_ = command.MarkFlagRequired("file")
	return command
}

func newUpdateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fileFlag string

	command := &cobra.Command{
		Use:     "update <downtime-id> -f <file>",
		Short:   "Update a scheduled downtime",
		Example: "  dogctl downtime update 98765 -f downtime.json",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			doc, err := common.LoadPayloadDocument(command, fileFlag)
			if err != nil {
				return err
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			updated, err := client.Downtimes.Update(command.Context(), args[0], doc.WithoutID())
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, updated)
		},
	}

	command.Flags().StringVarP(&fileFlag, "file", "f", "", "downtime definition file ('-' reads stdin)")
	_ = command.MarkFlagRequired("file")
	return command
}

func newCancelCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assumeYes bool

	command := &cobra.Command{
		Use:     "cancel <downtime-id>",
		Aliases: []string{"delete"},
		Short:   "Cancel a downtime",
		Example: "  dogctl downtime cancel 98765 --confirm",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			confirmed, err := common.ConfirmDestructive(command, fmt.Sprintf("Cancel downtime %s?", args[0]), assumeYes)
			if err != nil {
				return err
			}
			if !confirmed {
				return common.WriteText(command, "aborted")
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}
			if err := client.Downtimes.Cancel(command.Context(), args[0]); err != nil {
				return err
			}
			return common.WriteText(command, "cancelled downtime "+args[0])
		},
	}

	command.Flags().BoolVar(&assumeYes, "confirm", false, "skip the confirmation prompt")
	return command
}

func newCancelByScopeCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assumeYes bool

	command := &cobra.Command{
		Use:     "cancel-by-scope <scope>",
		Short:   "Cancel every downtime matching a scope",
		Example: "  dogctl downtime cancel-by-scope env:staging --confirm",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			confirmed, err := common.ConfirmDestructive(command, fmt.Sprintf("Cancel all downtimes scoped to %s?", args[0]), assumeYes)
			if err != nil {
				return err
			}
			if !confirmed {
				return common.WriteText(command, "aborted")
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			cancelled, err := client.Downtimes.CancelByScope(command.Context(), args[0])
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, cancelled)
		},
	}

	command.Flags().BoolVar(&assumeYes, "confirm", false, "skip the confirmation prompt")
	return command
}
