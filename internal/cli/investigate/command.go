package investigate

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dogctl/datadog"
	"dogctl/internal/cli/common"
	"dogctl/resource"
)

// NewCommand bundles multi-step troubleshooting workflows that combine
// span aggregations and log searches into one report.
func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "investigate",
		Short: "Run troubleshooting workflows for a service",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newLatencyCommand(deps, globalFlags),
		newErrorsCommand(deps, globalFlags),
		newThroughputCommand(deps, globalFlags),
		newCompareCommand(deps, globalFlags),
	)
	return command
}

func newLatencyCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fromSpec string
	var toSpec string
	var thresholdMS int

	command := &cobra.Command{
		Use:     "latency <service>",
		Short:   "Find slow endpoints and related errors",
		Example: "  dogctl investigate latency checkout --from 1h --threshold 500",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			service := args[0]
			from, to, err := common.ParseTimeRange(fromSpec, toSpec)
			if err != nil {
				return err
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}
			ctx := command.Context()
			thresholdNanos := int64(thresholdMS) * 1_000_000

			p99Response, err := client.Spans.Aggregate(ctx, datadog.AggregateRequest{
				Query:   fmt.Sprintf("service:%s @duration:>%d", service, thresholdNanos),
				From:    from,
				To:      to,
				Compute: []datadog.AggregateCompute{{Aggregation: "pc99", Metric: "@duration"}},
			})
			if err != nil {
				return err
			}

			endpointsResponse, err := client.Spans.Aggregate(ctx, datadog.AggregateRequest{
				Query:   "service:" + service,
				From:    from,
				To:      to,
				Compute: []datadog.AggregateCompute{{Aggregation: "pc99", Metric: "@duration"}},
				GroupBy: "resource_name",
			})
			if err != nil {
				return err
			}

			errorLogs, err := client.Logs.Search(ctx, datadog.SearchRequest{
				Query: fmt.Sprintf("service:%s status:error", service),
				From:  from,
				To:    to,
				Limit: 100,
			})
			if err != nil {
				return err
			}

			slowEndpoints := endpointStats(endpointsResponse, "resource_name")
			for i := range slowEndpoints {
				slowEndpoints[i].Value = nanosToMillis(slowEndpoints[i].Value)
			}

			report := resource.Document{
				"service":        service,
				"time_range":     timeRangeDocument(from, to),
				"threshold_ms":   thresholdMS,
				"p99_latency_ms": nanosToMillis(firstCompute(p99Response)),
				"slow_endpoints": statsToValues(slowEndpoints),
				"error_count":    len(errorLogs),
			}
			return common.WriteDocument(command, globalFlags, report)
		},
	}

	command.Flags().StringVar(&fromSpec, "from", "1h", "range start")
	command.Flags().StringVar(&toSpec, "to", "now", "range end")
	command.Flags().IntVar(&thresholdMS, "threshold", 500, "latency threshold in milliseconds")
	return command
}

func newErrorsCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fromSpec string
	var toSpec string

	command := &cobra.Command{
		Use:     "errors <service>",
		Short:   "Break errors down by endpoint with recent log samples",
		Example: "  dogctl investigate errors checkout --from 1h",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			service := args[0]
			from, to, err := common.ParseTimeRange(fromSpec, toSpec)
			if err != nil {
				return err
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}
			ctx := command.Context()
			errorQuery := fmt.Sprintf("service:%s status:error", service)

			countResponse, err := client.Spans.Aggregate(ctx, datadog.AggregateRequest{
				Query: errorQuery,
				From:  from,
				To:    to,
			})
			if err != nil {
				return err
			}

			byEndpointResponse, err := client.Spans.Aggregate(ctx, datadog.AggregateRequest{
				Query:   errorQuery,
				From:    from,
				To:      to,
				GroupBy: "resource_name",
			})
			if err != nil {
				return err
			}

			errorLogs, err := client.Logs.Search(ctx, datadog.SearchRequest{
				Query: errorQuery,
				From:  from,
				To:    to,
				Limit: 100,
			})
			if err != nil {
				return err
			}

			recentMessages := make([]any, 0, len(errorLogs))
			for _, log := range errorLogs {
				if attributes, ok := log["attributes"].(map[string]any); ok {
					if message, ok := attributes["message"].(string); ok {
						recentMessages = append(recentMessages, message)
					}
				}
			}

			report := resource.Document{
				"service":     service,
				"time_range":  timeRangeDocument(from, to),
				"error_count": firstCompute(countResponse),
				"by_endpoint": statsToValues(endpointStats(byEndpointResponse, "resource_name")),
				"recent_logs": recentMessages,
			}
			return common.WriteDocument(command, globalFlags, report)
		},
	}

	command.Flags().StringVar(&fromSpec, "from", "1h", "range start")
	command.Flags().StringVar(&toSpec, "to", "now", "range end")
	return command
}

func newThroughputCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fromSpec string
	var toSpec string

	command := &cobra.Command{
		Use:     "throughput <service>",
		Short:   "Show request volume per endpoint",
		Example: "  dogctl investigate throughput checkout --from 1h",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			service := args[0]
			from, to, err := common.ParseTimeRange(fromSpec, toSpec)
			if err != nil {
				return err
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}
			ctx := command.Context()

			totalResponse, err := client.Spans.Aggregate(ctx, datadog.AggregateRequest{
				Query: "service:" + service,
				From:  from,
				To:    to,
			})
			if err != nil {
				return err
			}

			byEndpointResponse, err := client.Spans.Aggregate(ctx, datadog.AggregateRequest{
				Query:   "service:" + service,
				From:    from,
				To:      to,
				GroupBy: "resource_name",
			})
			if err != nil {
				return err
			}

			report := resource.Document{
				"service":        service,
				"time_range":     timeRangeDocument(from, to),
				"total_requests": firstCompute(totalResponse),
				"by_endpoint":    statsToValues(endpointStats(byEndpointResponse, "resource_name")),
			}
			return common.WriteDocument(command, globalFlags, report)
		},
	}

	command.Flags().StringVar(&fromSpec, "from", "1h", "range start")
	command.Flags().StringVar(&toSpec, "to", "now", "range end")
	return command
}

func newCompareCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fromSpec string
	var baselineSpec string

	command := &cobra.Command{
		Use:     "compare <service>",
		Short:   "Compare current traffic and latency against a baseline window",
		Example: "  dogctl investigate compare checkout --from 1h --baseline 2h",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			service := args[0]
			currentFrom, currentTo, err := common.ParseTimeRange(fromSpec, "now")
			if err != nil {
				return err
			}
			baselineFrom, _, err := common.ParseTimeRange(baselineSpec, "now")
			if err != nil {
				return err
			}
			// The baseline window ends where the current one starts.
			baselineTo := currentFrom
			if baselineFrom >= baselineTo {
				return common.ValidationError("baseline window must start before the current window", nil)
			}

			client, err := common.ResolveClient(deps, globalFlags)
			if err != nil {
				return err
			}
			ctx := command.Context()

			currentCount, currentP99, err := windowMetrics(ctx, client, service, currentFrom, currentTo)
			if err != nil {
				return err
			}
			baselineCount, baselineP99, err := windowMetrics(ctx, client, service, baselineFrom, baselineTo)
			if err != nil {
				return err
			}

			report := resource.Document{
				"service": service,
				"current": resource.Document{
					"request_count":  currentCount,
					"p99_latency_ms": currentP99,
				},
				"baseline": resource.Document{
					"request_count":  baselineCount,
					"p99_latency_ms": baselineP99,
				},
				"delta": resource.Document{
					"request_count_change":  currentCount - baselineCount,
					"request_count_pct":     percentChange(currentCount, baselineCount),
					"p99_latency_change_ms": roundTwo(currentP99 - baselineP99),
					"p99_latency_pct":       percentChange(currentP99, baselineP99),
				},
			}
			return common.WriteDocument(command, globalFlags, report)
		},
	}

	command.Flags().StringVar(&fromSpec, "from", "1h", "current window start")
	command.Flags().StringVar(&baselineSpec, "baseline", "2h", "baseline window start, before the current window")
	return command
}

func windowMetrics(ctx context.Context, client *datadog.Client, service string, from, to int64) (float64, float64, error) {
	countResponse, err := client.Spans.Aggregate(ctx, datadog.AggregateRequest{
		Query: "service:" + service,
		From:  from,
		To:    to,
	})
	if err != nil {
		return 0, 0, err
	}

	p99Response, err := client.Spans.Aggregate(ctx, datadog.AggregateRequest{
		Query:   "service:" + service,
		From:    from,
		To:      to,
		Compute: []datadog.AggregateCompute{{Aggregation: "pc99", Metric: "@duration"}},
	})
	if err != nil {
		return 0, 0, err
	}

	return firstCompute(countResponse), nanosToMillis(firstCompute(p99Response)), nil
}

func timeRangeDocument(from, to int64) resource.Document {
	return resource.Document{
		"from": time.Unix(from, 0).UTC().Format(time.RFC3339),
		"to":   time.Unix(to, 0).UTC().Format(time.RFC3339),
	}
}

func statsToValues(stats []endpointStat) []any {
	values := make([]any, 0, len(stats))
	for _, stat := range stats {
		values = append(values, resource.Document{"endpoint": stat.Endpoint, "value": stat.Value})
	}
	return values
}
