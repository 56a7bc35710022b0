package monitor

import (
	"github.com/spf13/cobra"

	"dogctl/internal/cli/common"
)

func newMuteCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var scope string
	var until string

	command := &cobra.Command{
		Use:   "mute <monitor-id>",
		Short: "Mute a monitor, optionally for one scope or until a time",
		Example: "  dogctl monitor mute 12345\n" +
			"  dogctl monitor mute 12345 --scope host:web-01 --until 4h",
		Args: cobra.ExactArgs(1),
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

			muted, err := client.Monitors.Mute(command.Context(), args[0], scope, end)
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, muted)
		},
	}

	command.Flags().StringVar(&scope, "scope", "", "mute only this scope, e.g. host:web-01")
	command.Flags().StringVar(&until, "until", "", "mute end time (relative span or ISO datetime)")
	return command
}

func newUnmuteCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var scope string

	command := &cobra.Command{
		Use:     "unmute <monitor-id>",
		Short:   "Unmute a monitor",
		Example: "  dogctl monitor unmute 12345",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			unmuted, err := client.Monitors.Unmute(command.Context(), args[0], scope)
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, unmuted)
		},
	}

	command.Flags().StringVar(&scope, "scope", "", "unmute only this scope")
	return command
}

func newMuteAllCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assumeYes bool

	command := &cobra.Command{
		Use:     "mute-all",
		Short:   "Mute every monitor in the account",
		Example: "  dogctl monitor mute-all --confirm",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			confirmed, err := common.ConfirmDestructive(command, "Mute ALL monitors in the account?", assumeYes)
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
			if _, err := client.Monitors.MuteAll(command.Context()); err != nil {
				return err
			}
			return common.WriteText(command, "muted all monitors")
		},
	}

	command.Flags().BoolVar(&assumeYes, "confirm", false, "skip the confirmation prompt")
	return command
}

func newUnmuteAllCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "unmute-all",
		Short:   "Lift an account-wide monitor mute",
		Example: "  dogctl monitor unmute-all",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}
			if err := client.Monitors.UnmuteAll(command.Context()); err != nil {
				return err
			}
			return common.WriteText(command, "unmuted all monitors")
		},
	}
}
