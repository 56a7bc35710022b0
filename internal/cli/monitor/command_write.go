package monitor

import (
	"fmt"

	"github.com/spf13/cobra"

	"dogctl/internal/cli/common"
)

func newCreateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fileFlag string

	command := &cobra.Command{
		Use:     "create -f <file>",
		Short:   "Create a monitor from a JSON definition",
		Example: "  dogctl monitor create -f monitor.json",
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

			created, err := client.Monitors.Create(command.Context(), doc)
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, created)
		},
	}

	command.Flags().StringVarP(&fileFlag, "file", "f", "", "monitor definition file ('-' reads stdin)")
	_ = command.MarkFlagRequired("file")
	return command
}

func newUpdateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fileFlag string

	command := &cobra.Command{
		Use:     "update <monitor-id> -f <file>",
		Short:   "Update a monitor from a JSON definition",
		Example: "  dogctl monitor update 12345 -f monitor.json",
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

			updated, err := client.Monitors.Update(command.Context(), args[0], doc.WithoutID())
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, updated)
		},
	}

	command.Flags().StringVarP(&fileFlag, "file", "f", "", "monitor definition file ('-' reads stdin)")
	_ = command.MarkFlagRequired("file")
	return command
}

func newDeleteCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assumeYes bool

	command := &cobra.Command{
		Use:     "delete <monitor-id>",
		Short:   "Delete a monitor",
		Example: "  dogctl monitor delete 12345 --confirm",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			confirmed, err := common.ConfirmDestructive(command, fmt.Sprintf("Delete monitor %s?", args[0]), assumeYes)
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
			if err := client.Monitors.Delete(command.Context(), args[0]); err != nil {
				return err
			}
			return common.WriteText(command, "deleted monitor "+args[0])
		},
	}

	command.Flags().BoolVar(&assumeYes, "confirm", false, "skip the confirmation prompt")
	return command
}

func newValidateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fileFlag string

	command := &cobra.Command{
		Use:     "validate -f <file>",
		Short:   "Validate a monitor definition without creating it",
		Example: "  dogctl monitor validate -f monitor.json",
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

			result, err := client.Monitors.Validate(command.Context(), doc)
			if err != nil {
				return err
			}
			if len(result) == 0 {
				return common.WriteText(command, "monitor definition is valid")
			}
			return common.WriteDocument(command, globalFlags, result)
		},
	}

	command.Flags().StringVarP(&fileFlag, "file", "f", "", "monitor definition file ('-' reads stdin)")
	_ = command.MarkFlagRequired("file")
	return command
}
