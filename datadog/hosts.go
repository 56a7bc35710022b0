package datadog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"dogctl/resource"
)

type HostsAPI struct {
	client *Client
}

type ListHostsOptions struct {
	Filter string
	Count  int
}

func (a HostsAPI) List(ctx context.Context, opts ListHostsOptions) ([]resource.Document, error) {
	query := url.Values{}
	if opts.Filter != "" {
		query.Set("filter", opts.Filter)
	}
	if opts.Count > 0 {
		query.Set("count", strconv.Itoa(opts.Count))
	}

	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/hosts", query: query})
	if err != nil {
		return nil, err
	}
	return documentListField(value, "host_list")
}

func (a HostsAPI) Totals(ctx context.Context) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/hosts/totals"})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a HostsAPI) Mute(ctx context.Context, hostname string, message string, end int64) (resource.Document, error) {
	body := resource.Document{}
	if message != "" {
		body["message"] = message
	}
	if end > 0 {
		body["end"] = end
	}

	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/v1/host/" + hostname + "/mute",
		body:   body,
	})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a HostsAPI) Unmute(ctx context.Context, hostname string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPost, path: "/api/v1/host/" + hostname + "/unmute"})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}
