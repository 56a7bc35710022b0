package datadog

import (
	"context"
	"net/http"

	"dogctl/faults"
	"dogctl/resource"
)

type SLOsAPI struct {
	client *Client
}

func (a SLOsAPI) List(ctx context.Context) ([]resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/slo"})
	if err != nil {
		return nil, err
	}
	return documentListField(value, "data")
}

// Get unwraps the {"data": {...}} envelope so callers see the SLO object
// itself, matching the other kind-specific get operations.
func (a SLOsAPI) Get(ctx context.Context, sloID string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v1/slo/" + sloID})
	if err != nil {
		return nil, err
	}
	return sloFromEnvelope(value)
}

// Create unwraps the {"data": [{...}]} envelope and returns the first created
// SLO.
func (a SLOsAPI) Create(ctx context.Context, body resource.Document) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPost, path: "/api/v1/slo", body: body})
	if err != nil {
		return nil, err
	}
	return firstSLOFromEnvelope(value)
}

func (a SLOsAPI) Update(ctx context.Context, sloID string, body resource.Document) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodPut, path: "/api/v1/slo/" + sloID, body: body})
	if err != nil {
		return nil, err
	}
	return firstSLOFromEnvelope(value)
}

func (a SLOsAPI) Delete(ctx context.Context, sloID string) error {
	_, err := a.client.do(ctx, requestSpec{method: http.MethodDelete, path: "/api/v1/slo/" + sloID})
	return err
}

func sloFromEnvelope(value resource.Value) (resource.Document, error) {
	envelope, err := asDocument(value)
	if err != nil {
		return nil, err
	}

	data, isObject := envelope["data"].(map[string]any)
	if !isObject {
		return nil, faults.NewTypedError(faults.TransportError, "SLO response envelope is missing data", nil)
	}
	return resource.Document(data), nil
}

func firstSLOFromEnvelope(value resource.Value) (resource.Document, error) {
	items, err := documentListField(value, "data")
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, faults.NewTypedError(faults.TransportError, "SLO response envelope holds no data", nil)
	}
	return items[0], nil
}
