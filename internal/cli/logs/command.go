package logs

import (
	"github.com/spf13/cobra"

	"dogctl/datadog"
	"dogctl/internal/cli/common"
	"dogctl/resource"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "logs",
		Short: "Search and aggregate log events",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newSearchCommand(deps, globalFlags),
		newAggregateCommand(deps, globalFlags),
	)
	return command
}

var searchColumns = []common.Column{
	{Header: "timestamp", Value: func(doc resource.Document) string { return attributeString(doc, "timestamp") }},
	{Header: "service", Value: func(doc resource.Document) string { return attributeString(doc, "service") }},
	{Header: "status", Value: func(doc resource.Document) string { return attributeString(doc, "status") }},
	{Header: "message", Value: func(doc resource.Document) string { return attributeString(doc, "message") }},
}

func attributeString(doc resource.Document, key string) string {
	attributes, ok := doc["attributes"].(map[string]any)
	if !ok {
		return common.FieldString(doc, key)
	}
	return common.FieldString(resource.Document(attributes), key)
}

func newSearchCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var query string
	var fromSpec string
	var toSpec string
	var limit int
	var sortOrder string

	command := &cobra.Command{
		Use:     "search",
		Aliases: []string{"query"},
		Short:   "Search log events",
		Example: "  dogctl logs search --query 'service:web status:error' --from 1h\n" +
			"  dogctl logs search --query 'service:web' --limit 200 --sort -timestamp",
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

			events, err := client.Logs.Search(command.Context(), datadog.SearchRequest{
				Query: query,
				From:  from,
				To:    to,
				Limit: limit,
				Sort:  sortOrder,
			})
			if err != nil {
				return err
			}
			return common.WriteDocuments(command, globalFlags, events, searchColumns)
		},
	}

	command.Flags().StringVarP(&query, "query", "q", "*", "log search query")
	command.Flags().StringVar(&fromSpec, "from", "15m", "range start")
	command.Flags().StringVar(&toSpec, "to", "now", "range end")
	command.Flags().IntVar(&limit, "limit", 50, "maximum number of events")
	command.Flags().StringVar(&sortOrder, "sort", "timestamp", "sort order: timestamp|-timestamp")
	return command
}

func newAggregateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var query string
	var fromSpec string
	var toSpec string
	var metricName string
	var groupBy string

	command := &cobra.Command{
		Use:     "aggregate",
		Short:   "Aggregate log events into buckets",
		Example: "  dogctl logs aggregate --query 'status:error' --from 24h --group-by service",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			from, to, err := common.ParseTimeRange(fromSpec, toSpec)
			if err != nil {
				return err
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			result, err := client.Logs.Aggregate(command.Context(), datadog.AggregateRequest{
				Query:   query,
				From:    from,
				To:      to,
				Metric:  metricName,
				GroupBy: groupBy,
			})
			if err != nil {
				return err
			}
			return common.WriteValue(command, globalFlags, map[string]any(result))
		},
	}

	command.Flags().StringVarP(&query, "query", "q", "*", "log search query")
	command.Flags().StringVar(&fromSpec, "from", "1h", "range start")
	command.Flags().StringVar(&toSpec, "to", "now", "range end")
	command.Flags().StringVar(&metricName, "metric", "count", "aggregation: count or a measure facet")
	command.Flags().StringVar(&groupBy, "group-by", "", "facet to group results by")
	return command
}
