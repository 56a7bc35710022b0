package cli

import (
	"context"

	"github.com/spf13/cobra"

	"dogctl/debugctx"
	"dogctl/internal/cli/apm"
	applycmd "dogctl/internal/cli/apply"
	"dogctl/internal/cli/common"
	configcmd "dogctl/internal/cli/config"
	"dogctl/internal/cli/downtime"
	"dogctl/internal/cli/event"
	"dogctl/internal/cli/host"
	"dogctl/internal/cli/investigate"
	"dogctl/internal/cli/logs"
	"dogctl/internal/cli/metric"
	"dogctl/internal/cli/monitor"
	"dogctl/internal/cli/tag"
	"dogctl/internal/cli/user"
	"dogctl/internal/cli/version"
)

func NewRootCommand(deps Dependencies) *cobra.Command {
	commandDeps := deps.commandDependencies()
	var globalFlags common.GlobalFlags

	root := &cobra.Command{
		Use:   "dogctl",
		Short: "Manage Datadog monitors, dashboards, SLOs, and downtimes from the command line",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, _ []string) error {
			if err := common.ValidateOutputFormat(globalFlags.Output); err != nil {
				return err
			}

			commandContext := context.Background()
			commandContext = debugctx.WithEnabled(commandContext, globalFlags.Debug)
			commandContext = debugctx.WithWriter(commandContext, command.ErrOrStderr())
			command.SetContext(commandContext)

			debugctx.Printf(
				command.Context(),
				"root flags profile=%q output=%q jq=%q command=%q",
				globalFlags.Profile,
				globalFlags.Output,
				globalFlags.JQ,
				command.CommandPath(),
			)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	common.BindGlobalFlags(root, &globalFlags)
	root.PersistentFlags().BoolP("help", "h", false, "help for command")

	root.AddGroup(
		&cobra.Group{ID: "declarative", Title: "Declarative Commands:"},
		&cobra.Group{ID: "api", Title: "API Commands:"},
		&cobra.Group{ID: "other", Title: "Other Commands:"},
	)

	declarativeCommands := []*cobra.Command{
		applycmd.NewApplyCommand(commandDeps, &globalFlags),
		applycmd.NewDiffCommand(commandDeps, &globalFlags),
	}
	for _, command := range declarativeCommands {
		command.GroupID = "declarative"
		root.AddCommand(command)
	}

	apiCommands := []*cobra.Command{
		monitor.NewCommand(commandDeps, &globalFlags),
		downtime.NewCommand(commandDeps, &globalFlags),
		metric.NewCommand(commandDeps, &globalFlags),
		event.NewCommand(commandDeps, &globalFlags),
		host.NewCommand(commandDeps, &globalFlags),
		logs.NewCommand(commandDeps, &globalFlags),
		apm.NewCommand(commandDeps, &globalFlags),
		investigate.NewCommand(commandDeps, &globalFlags),
		tag.NewCommand(commandDeps, &globalFlags),
		user.NewCommand(commandDeps, &globalFlags),
	}
	for _, command := range apiCommands {
		command.GroupID = "api"
		root.AddCommand(command)
	}

	otherCommands := []*cobra.Command{
		configcmd.NewCommand(commandDeps, &globalFlags),
		version.NewCommand(),
	}
	for _, command := range otherCommands {
		command.GroupID = "other"
		root.AddCommand(command)
	}

	return root
}
