package datadog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"dogctl/resource"
)

type EventsAPI struct {
	client *Client
}

type ListEventsOptions struct {
	Start    int64
	End      int64
	Sources  string
	Priority string
	Tags     string
}

func (a EventsAPI) List(ctx context.Context, opts ListEventsOptions) ([]resource.Document, error) {
	query := url.Values{}
	query.Set("start", strconv.FormatInt(opts.Start, 10))
	query.Set("end", strconv.FormatInt(opts.End, 10))
	if opts.Sources != "" {
		query.Set("sources", opts.Sources)
	}
	if opts.Priority != "" {
		query.Set("priority", opts.Priority)
	}
	if opts.Tags != "" {
		query.Set("tags", opts.Tags)
	}

	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/events", query: query})
	if err != nil {
		return nil, err
	}
	return documentListField(value, "events")
}

func (a EventsAPI) Get(ctx context.Context, eventID string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/events/" + eventID})
	if err != nil {
		return nil, err
	}

	envelope, err := asDocument(value)
	if err != nil {
		return nil, err
	}
	if event, isObject := envelope["event"].(map[string]any); isObject {
		return resource.Document(event), nil
	}
	return envelope, nil
}

func (a EventsAPI) Post(ctx context.Context, body resource.Document) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPost, path: "/api/v1/events", body: body})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}
