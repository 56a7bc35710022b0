package tag

import (
	"github.com/spf13/cobra"

	"dogctl/internal/cli/common"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "tag",
		Short: "Manage host tags",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags),
		newAddCommand(deps, globalFlags),
		newReplaceCommand(deps, globalFlags),
	)
	return command
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var source string

	command := &cobra.Command{
		Use:     "list <hostname>",
		Short:   "List the tags on a host",
		Example: "  dogctl tag list web-01",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			tags, err := client.Tags.List(command.Context(), args[0], source)
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				return common.WriteText(command, "(no tags)")
			}
			for _, tag := range tags {
				if err := common.WriteText(command, tag); err != nil {
					return err
				}
			}
			return nil
		},
	}

	command.Flags().StringVar(&source, "source", "", "tag source, e.g. users or chef")
	return command
}

func newAddCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var source string

	command := &cobra.Command{
		Use:     "add <hostname> <tags>",
		Short:   "Add tags to a host",
		Example: "  dogctl tag add web-01 env:prod,team:sre",
		Args:    cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			tags := common.ParseTags(args[1])
			if len(tags) == 0 {
				return common.ValidationError("no tags given", nil)
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			result, err := client.Tags.Add(command.Context(), args[0], tags, source)
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, result)
		},
	}

	command.Flags().StringVar(&source, "source", "", "tag source, e.g. users or chef")
	return command
}

func newReplaceCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var source string

	command := &cobra.Command{
		Use:     "replace <hostname> <tags>",
		Short:   "Replace every tag on a host",
		Example: "  dogctl tag replace web-01 env:prod,team:sre",
		Args:    cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			tags := common.ParseTags(args[1])
			if len(tags) == 0 {
				return common.ValidationError("no tags given", nil)
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			result, err := client.Tags.Replace(command.Context(), args[0], tags, source)
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, result)
		},
	}

	command.Flags().StringVar(&source, "source", "", "tag source, e.g. users or chef")
	return command
}
