package monitor

import (
	"github.com/spf13/cobra"

	"dogctl/internal/cli/common"
	"dogctl/resource"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "monitor",
		Short: "Inspect and manage monitors",
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
		newDeleteCommand(deps, globalFlags),
		newValidateCommand(deps, globalFlags),
		newMuteCommand(deps, globalFlags),
		newUnmuteCommand(deps, globalFlags),
		newMuteAllCommand(deps, globalFlags),
		newUnmuteAllCommand(deps, globalFlags),
	)
	return command
}

var listColumns = []common.Column{
	{Header: "id", Value: func(doc resource.Document) string { return common.FieldString(doc, "id") }},
	{Header: "name", Value: func(doc resource.Document) string { return common.FieldString(doc, "name") }},
	{Header: "type", Value: func(doc resource.Document) string { return common.FieldString(doc, "type") }},
	{Header: "state", Value: func(doc resource.Document) string { return monitorState(doc) }},
	{Header: "tags", Value: func(doc resource.Document) string {
		return common.FormatTags(common.TagStrings(doc["tags"]), 3)
	}},
}

func monitorState(doc resource.Document) string {
	status, ok := doc["overall_state"].(string)
	if !ok {
		return ""
	}
	return status
}
