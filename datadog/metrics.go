package datadog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"dogctl/resource"
)

type MetricsAPI struct {
	client *Client
}

func (a MetricsAPI) Query(ctx context.Context, from int64, to int64, queryString string) (resource.Document, error) {
	query := url.Values{}
	query.Set("from", strconv.FormatInt(from, 10))
	query.Set("to", strconv.FormatInt(to, 10))
	query.Set("query", queryString)

	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/query", query: query})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a MetricsAPI) Search(ctx context.Context, pattern string) ([]string, error) {
	query := url.Values{}
	query.Set("q", "metrics:"+pattern)

	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/search", query: query})
	if err != nil {
		return nil, err
	}

	envelope, err := asDocument(value)
	if err != nil {
		return nil, err
	}

	results, _ := envelope["results"].(map[string]any)
	rawMetrics, _ := results["metrics"].([]any)
	metrics := make([]string, 0, len(rawMetrics))
	for _, raw := range rawMetrics {
		if name, isString := raw.(string); isString {
			metrics = append(metrics, name)
		}
	}
	return metrics, nil
}

func (a MetricsAPI) Metadata(ctx context.Context, metricName string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/metrics/" + metricName})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}
