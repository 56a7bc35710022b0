package datadog

import (
	"context"
	"net/http"

	"dogctl/resource"
)

type LogsAPI struct {
	client *Client
}

type SearchRequest struct {
	Query string
	From  int64
	To    int64
	Limit int
	Sort  string
}

func (r SearchRequest) body() resource.Document {
	filter := resource.Document{
		"query": r.Query,
		"from":  r.From * 1000,
		"to":    r.To * 1000,
	}

	body := resource.Document{"filter": filter}
	if r.Limit > 0 {
		body["page"] = resource.Document{"limit": r.Limit}
	}
	if r.Sort != "" {
		body["sort"] = r.Sort
	}
	return body
}

func (a LogsAPI) Search(ctx context.Context, request SearchRequest) ([]resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/v2/logs/events/search",
		body:   request.body(),
	})
	if err != nil {
		return nil, err
	}
	return documentListField(value, "data")
}

// AggregateCompute names one aggregation, optionally over a measure
// facet, e.g. {Aggregation: "pc99", Metric: "@duration"}.
type AggregateCompute struct {
	Aggregation string
	Metric      string
}

type AggregateRequest struct {
	Query   string
	From    int64
	To      int64
	Metric  string
	GroupBy string
	Compute []AggregateCompute
}

func (r AggregateRequest) computes() []any {
	if len(r.Compute) > 0 {
		computes := make([]any, 0, len(r.Compute))
		for _, compute := range r.Compute {
			entry := resource.Document{"aggregation": compute.Aggregation}
			if compute.Metric != "" {
				entry["metric"] = compute.Metric
			}
			computes = append(computes, entry)
		}
		return computes
	}

	compute := resource.Document{"aggregation": "count"}
	if r.Metric != "" && r.Metric != "count" {
		compute = resource.Document{"aggregation": r.Metric}
	}
	return []any{compute}
}

func (r AggregateRequest) body() resource.Document {
	body := resource.Document{
		"filter": resource.Document{
			"query": r.Query,
			"from":  r.From * 1000,
			"to":    r.To * 1000,
		},
		"compute": r.computes(),
	}
	if r.GroupBy != "" {
		body["group_by"] = []any{resource.Document{"facet": r.GroupBy}}
	}
	return body
}

func (a LogsAPI) Aggregate(ctx context.Context, request AggregateRequest) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/v2/logs/analytics/aggregate",
		body:   request.body(),
	})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}
