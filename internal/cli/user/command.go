package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"dogctl/internal/cli/common"
	"dogctl/resource"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "user",
		Short: "Manage organization users",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags),
		newGetCommand(deps, globalFlags),
		newInviteCommand(deps, globalFlags),
		newDisableCommand(deps, globalFlags),
	)
	return command
}

var listColumns = []common.Column{
	{Header: "id", Value: func(doc resource.Document) string { return common.FieldString(doc, "id") }},
	{Header: "email", Value: func(doc resource.Document) string { return userAttribute(doc, "email") }},
	{Header: "name", Value: func(doc resource.Document) string { return userAttribute(doc, "name") }},
	{Header: "status", Value: func(doc resource.Document) string { return userAttribute(doc, "status") }},
}

func userAttribute(doc resource.Document, key string) string {
	attributes, ok := doc["attributes"].(map[string]any)
	if !ok {
		return common.FieldString(doc, key)
	}
	return common.FieldString(resource.Document(attributes), key)
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List users",
		Example: "  dogctl user list",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			users, err := client.Users.List(command.Context())
			if err != nil {
				return err
			}
			return common.WriteDocuments(command, globalFlags, users, listColumns)
		},
	}
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "get <user-id>",
		Short:   "Show one user",
		Example: "  dogctl user get 9bd2c1f0-7b4f-11ec-a5a6-da7ad0900002",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			user, err := client.Users.Get(command.Context(), args[0])
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, user)
		},
	}
}

func newInviteCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var role string

	command := &cobra.Command{
		Use:     "invite <email>",
		Short:   "Invite a user to the organization",
		Example: "  dogctl user invite alex@example.com --role 'Standard User'",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			invitation, err := client.Users.Invite(command.Context(), args[0], role)
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, invitation)
		},
	}

	command.Flags().StringVar(&role, "role", "", "role title for the invited user")
	return command
}

func newDisableCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assumeYes bool

	command := &cobra.Command{
		Use:     "disable <user-id>",
		Short:   "Disable a user",
		Example: "  dogctl user disable 9bd2c1f0-7b4f-11ec-a5a6-da7ad0900002 --confirm",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			confirmed, err := common.ConfirmDestructive(command, fmt.Sprintf("Disable user %s?", args[0]), assumeYes)
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
			if err := client.Users.Disable(command.Context(), args[0]); err != nil {
				return err
			}
			return common.WriteText(command, "disabled user "+args[0])
		},
	}

	command.Flags().BoolVar(&assumeYes, "confirm", false, "skip the confirmation prompt")
	return command
}
