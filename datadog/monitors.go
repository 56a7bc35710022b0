package datadog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"dogctl/resource"
)

type MonitorsAPI struct {
	client *Client
}

type ListMonitorsOptions struct {
	Tags string
}

func (a MonitorsAPI) List(ctx context.Context, opts ListMonitorsOptions) ([]resource.Document, error) {
	query := url.Values{}
	if opts.Tags != "" {
		query.Set("monitor_tags", opts.Tags)
	}

	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/monitor", query: query})
	if err != nil {
		return nil, err
	}
	return asDocumentList(value)
}

func (a MonitorsAPI) Get(ctx context.Context, monitorID string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/monitor/" + monitorID})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a MonitorsAPI) Create(ctx context.Context, body resource.Document) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPost, path: "/api/v1/monitor", body: body})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a MonitorsAPI) Update(ctx context.Context, monitorID string, body resource.Document) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPut, path: "/api/v1/monitor/" + monitorID, body: body})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a MonitorsAPI) Delete(ctx context.Context, monitorID string) error {
	_, err := a.client.do(ctx, requestSpec{method: http.MethodDelete, path: "/api/v1/monitor/" + monitorID})
	return err
}

func (a MonitorsAPI) Validate(ctx context.Context, body resource.Document) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPost, path: "/api/v1/monitor/validate", body: body})
	if err != nil {
		return nil, err
	}
	if value == nil {
		return resource.Document{}, nil
	}
	return asDocument(value)
}

func (a MonitorsAPI) Mute(ctx context.Context, monitorID string, scope string, end int64) (resource.Document, error) {
	query := url.Values{}
	if scope != "" {
		query.Set("scope", scope)
	}
	if end > 0 {
		query.Set("end", strconv.FormatInt(end, 10))
	}

	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/v1/monitor/" + monitorID + "/mute",
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a MonitorsAPI) MuteAll(ctx context.Context) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPost, path: "/api/v1/monitor/mute_all"})
	if err != nil {
		return nil, err
	}
	if value == nil {
		return resource.Document{}, nil
	}
	return asDocument(value)
}

func (a MonitorsAPI) UnmuteAll(ctx context.Context) error {
	_, err := a.client.do(ctx, requestSpec{method: http.MethodPost, path: "/api/v1/monitor/unmute_all"})
	return err
}

func (a MonitorsAPI) Unmute(ctx context.Context, monitorID string, scope string) (resource.Document, error) {
	query := url.Values{}
	if scope != "" {
		query.Set("scope", scope)
	}

	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/v1/monitor/" + monitorID + "/unmute",
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}
