package event

import (
	"github.com/spf13/cobra"

	"dogctl/datadog"
	"dogctl/internal/cli/common"
	"dogctl/resource"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "event",
		Short: "Browse and post events",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags),
		newGetCommand(deps, globalFlags),
		newPostCommand(deps, globalFlags),
	)
	return command
}

var listColumns = []common.Column{
	{Header: "id", Value: func(doc resource.Document) string { return common.FieldString(doc, "id") }},
	{Header: "date", Value: func(doc resource.Document) string { return common.FieldString(doc, "date_happened") }},
	{Header: "priority", Value: func(doc resource.Document) string { return common.FieldString(doc, "priority") }},
	{Header: "title", Value: func(doc resource.Document) string { return common.FieldString(doc, "title") }},
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fromSpec string
	var toSpec string
	var sources string
	var priority string
	var tags string

	command := &cobra.Command{
		Use:   "list",
		Short: "List events in a time range",
		Example: "  dogctl event list --from 24h\n" +
			"  dogctl event list --from 7d --priority normal --tags env:prod",
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			from, to, err := common.ParseTimeRange(fromSpec, toSpec)
			if err != nil {
				return err
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			events, err := client.Events.List(command.Context(), datadog.ListEventsOptions{
				Start:    from,
				End:      to,
				Sources:  sources,
				Priority: priority,
				Tags:     tags,
			})
			if err != nil {
				return err
			}
			return common.WriteDocuments(command, globalFlags, events, listColumns)
		},
	}

	command.Flags().StringVar(&fromSpec, "from", "24h", "range start")
	command.Flags().StringVar(&toSpec, "to", "now", "range end")
	command.Flags().StringVar(&sources, "sources", "", "comma-separated event sources")
	command.Flags().StringVar(&priority, "priority", "", "event priority: normal|low")
	command.Flags().StringVar(&tags, "tags", "", "comma-separated tags filter")
	return command
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "get <event-id>",
		Short:   "Show one event",
		Example: "  dogctl event get 6509751066204913045",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			event, err := client.Events.Get(command.Context(), args[0])
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, event)
		},
	}
}

func newPostCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var title string
	var text string
	var priority string
	var tags string

	command := &cobra.Command{
		Use:     "post",
		Short:   "Post a new event",
		Example: "  dogctl event post --title 'Deploy finished' --text 'web v1.42' --tags env:prod",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			if title == "" || text == "" {
				return common.ValidationError("flags --title and --text are required", nil)
			}

			body := resource.Document{"title": title, "text": text}
			if priority != "" {
				body["priority"] = priority
			}
			if parsedTags := common.ParseTags(tags); len(parsedTags) > 0 {
				tagValues := make([]any, 0, len(parsedTags))
				for _, tag := range parsedTags {
					tagValues = append(tagValues, tag)
				}
				body["tags"] = tagValues
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			posted, err := client.Events.Post(command.Context(), body)
			if err != nil {
				return err
			}
			return common.WriteDocument(command, globalFlags, posted)
		},
	}

	command.Flags().StringVar(&title, "title", "", "event title")
	command.Flags().StringVar(&text, "text", "", "event body text")
	command.Flags().StringVar(&priority, "priority", "", "event priority: normal|low")
	command.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	return command
}
