package datadog

import (
	"context"
	"net/http"

	"dogctl/resource"
)

type DashboardsAPI struct {
	client *Client
}

func (a DashboardsAPI) List(ctx context.Context) ([]resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/dashboard"})
	if err != nil {
		return nil, err
	}
	return documentListField(value, "dashboards")
}

func (a DashboardsAPI) Get(ctx context.Context, dashboardID string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/dashboard/" + dashboardID})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a DashboardsAPI) Create(ctx context.Context, body resource.Document) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPost, path: "/api/v1/dashboard", body: body})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a DashboardsAPI) Update(ctx context.Context, dashboardID string, body resource.Document) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPut, path: "/api/v1/dashboard/" + dashboardID, body: body})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a DashboardsAPI) Delete(ctx context.Context, dashboardID string) error {
	_, err := a.client.do(ctx, requestSpec{method: http.MethodDelete, path: "/api/v1/dashboard/" + dashboardID})
	return err
}
