package common

import "github.com/spf13/cobra"

type GlobalFlags struct {
	Profile string
	Debug   bool
	Output  string
	JQ      string
}

func BindGlobalFlags(command *cobra.Command, flags *GlobalFlags) {
	command.PersistentFlags().StringVarP(&flags.Profile, "profile", "p", "", "configuration profile name")
	command.PersistentFlags().BoolVarP(&flags.Debug, "debug", "d", false, "enable debug output")
	command.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputTable, "output format: table|json|yaml|markdown|csv")
	command.PersistentFlags().StringVar(&flags.JQ, "jq", "", "jq expression applied to command output")
}
