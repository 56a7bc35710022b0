package datadog

import (
	"context"
	"net/http"
	"strconv"

	"dogctl/resource"
)

type SpansAPI struct {
	client *Client
}

func epochString(seconds int64) string {
	return strconv.FormatInt(seconds, 10)
}

func (a SpansAPI) Search(ctx context.Context, request SearchRequest) ([]resource.Document, error) {
	body := request.body()
	if filter, isObject := body["filter"].(resource.Document); isObject {
		// Span filters take RFC3339 or epoch strings rather than millis.
		filter["from"] = epochString(request.From)
		filter["to"] = epochString(request.To)
	}

	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/v2/spans/events/search",
		body:   resource.Document{"data": resource.Document{"attributes": body, "type": "search_request"}},
	})
	if err != nil {
		return nil, err
	}
	return documentListField(value, "data")
}

func (a SpansAPI) Aggregate(ctx context.Context, request AggregateRequest) (resource.Document, error) {
	body := request.body()
	if filter, isObject := body["filter"].(resource.Document); isObject {
		filter["from"] = epochString(request.From)
		filter["to"] = epochString(request.To)
	}

	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/v2/spans/analytics/aggregate",
		body:   resource.Document{"data": resource.Document{"attributes": body, "type": "aggregate_request"}},
	})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}
