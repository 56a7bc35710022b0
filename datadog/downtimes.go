package datadog

import (
	"context"
	"net/http"

	"dogctl/resource"
)

type DowntimesAPI struct {
	client *Client
}

type ListDowntimesOptions struct {
	CurrentOnly bool
}

func (a DowntimesAPI) List(ctx context.Context, opts ListDowntimesOptions) ([]resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/downtime"})
	if err != nil {
		return nil, err
	}

	downtimes, err := asDocumentList(value)
	if err != nil {
		return nil, err
	}
	if !opts.CurrentOnly {
		return downtimes, nil
	}

	active := make([]resource.Document, 0, len(downtimes))
	for _, downtime := range downtimes {
		if disabled, _ := downtime["disabled"].(bool); disabled {
			continue
		}
		active = append(active, downtime)
	}
	return active, nil
}

func (a DowntimesAPI) Get(ctx context.Context, downtimeID string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/downtime/" + downtimeID})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a DowntimesAPI) Create(ctx context.Context, body resource.Document) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPost, path: "/api/v1/downtime", body: body})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a DowntimesAPI) Update(ctx context.Context, downtimeID string, body resource.Document) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPut, path: "/api/v1/downtime/" + downtimeID, body: body})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a DowntimesAPI) Cancel(ctx context.Context, downtimeID string) error {
	_, err := a.client.do(ctx, requestSpec{method: http.MethodDelete, path: "/api/v1/downtime/" + downtimeID})
	return err
}

// CancelByScope cancels every downtime whose scope matches exactly and
// returns the cancelled ids.
func (a DowntimesAPI) CancelByScope(ctx context.Context, scope string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/v1/downtime/cancel/by_scope",
		body:   resource.Document{"scope": scope},
	})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}
