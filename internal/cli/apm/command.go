package apm

import (
	"github.com/spf13/cobra"

	"dogctl/datadog"
	"dogctl/internal/cli/common"
	"dogctl/resource"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "apm",
		Short: "Explore APM spans and services",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newTracesCommand(deps, globalFlags),
		newServicesCommand(deps, globalFlags),
		newAnalyticsCommand(deps, globalFlags),
	)
	return command
}

var traceColumns = []common.Column{
	{Header: "trace-id", Value: func(doc resource.Document) string { return spanAttribute(doc, "trace_id") }},
	{Header: "service", Value: func(doc resource.Document) string { return spanAttribute(doc, "service") }},
	{Header: "resource", Value: func(doc resource.Document) string { return spanAttribute(doc, "resource_name") }},
	{Header: "duration", Value: func(doc resource.Document) string { return spanAttribute(doc, "duration") }},
	{Header: "status", Value: func(doc resource.Document) string { return spanAttribute(doc, "status") }},
}

func spanAttribute(doc resource.Document, key string) string {
	attributes, ok := doc["attributes"].(map[string]any)
	if !ok {
		return common.FieldString(doc, key)
	}
	return common.FieldString(resource.Document(attributes), key)
}

func newTracesCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var query string
	var fromSpec string
	var toSpec string
	var limit int

	command := &cobra.Command{
		Use:     "traces",
		Short:   "Search APM spans",
		Example: "  dogctl apm traces --query 'service:checkout status:error' --from 1h",
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

			spans, err := client.Spans.Search(command.Context(), datadog.SearchRequest{
				Query: query,
				From:  from,
				To:    to,
				Limit: limit,
			})
			if err != nil {
				return err
			}
			return common.WriteDocuments(command, globalFlags, spans, traceColumns)
		},
	}

	command.Flags().StringVarP(&query, "query", "q", "*", "span search query")
	command.Flags().StringVar(&fromSpec, "from", "15m", "range start")
	command.Flags().StringVar(&toSpec, "to", "now", "range end")
	command.Flags().IntVar(&limit, "limit", 50, "maximum number of spans")
	return command
}

func newServicesCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var env string
	var fromSpec string
	var toSpec string

	command := &cobra.Command{
		Use:     "services",
		Short:   "Show span counts per service",
		Example: "  dogctl apm services --env prod --from 1h",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			from, to, err := common.ParseTimeRange(fromSpec, toSpec)
			if err != nil {
				return err
			}

			query := "*"
			if env != "" {
				query = "env:" + env
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}

			result, err := client.Spans.Aggregate(command.Context(), datadog.AggregateRequest{
				Query:   query,
				From:    from,
				To:      to,
				GroupBy: "service",
			})
			if err != nil {
				return err
			}
			return common.WriteValue(command, globalFlags, map[string]any(result))
		},
	}

	command.Flags().StringVar(&env, "env", "", "restrict to one environment")
	command.Flags().StringVar(&fromSpec, "from", "1h", "range start")
	command.Flags().StringVar(&toSpec, "to", "now", "range end")
	return command
}

func newAnalyticsCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var query string
	var fromSpec string
	var toSpec string
	var metricName string
	var groupBy string

	command := &cobra.Command{
		Use:     "analytics",
		Short:   "Aggregate spans by an arbitrary facet",
		Example: "  dogctl apm analytics --query 'service:checkout' --metric avg:@duration --group-by resource_name",
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

			result, err := client.Spans.Aggregate(command.Context(), datadog.AggregateRequest{
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

	command.Flags().StringVarP(&query, "query", "q", "*", "span search query")
	command.Flags().StringVar(&fromSpec, "from", "1h", "range start")
	command.Flags().StringVar(&toSpec, "to", "now", "range end")
	command.Flags().StringVar(&metricName, "metric", "count", "aggregation: count or a measure facet")
	command.Flags().StringVar(&groupBy, "group-by", "", "facet to group results by")
	return command
}
