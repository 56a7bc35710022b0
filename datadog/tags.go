package datadog

import (
	"context"
	"net/http"
	"net/url"

	"dogctl/resource"
)

type TagsAPI struct {
	client *Client
}

func sourceQuery(source string) url.Values {
	query := url.Values{}
	if source != "" {
		query.Set("source", source)
	}
	return query
}

func (a TagsAPI) List(ctx context.Context, hostname string, source string) ([]string, error) {
	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodGet,
		path:   "/api/v1/tags/hosts/" + hostname,
		query:  sourceQuery(source),
	})
	if err != nil {
		return nil, err
	}

	envelope, err := asDocument(value)
	if err != nil {
		return nil, err
	}

	rawTags, _ := envelope["tags"].([]any)
	tags := make([]string, 0, len(rawTags))
	for _, raw := range rawTags {
		if tag, isString := raw.(string); isString {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (a TagsAPI) Add(ctx context.Context, hostname string, tags []string, source string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/v1/tags/hosts/" + hostname,
		query:  sourceQuery(source),
		body:   resource.Document{"tags": tags},
	})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

// Replace overwrites every tag on the host attributed to the source.
func (a TagsAPI) Replace(ctx context.Context, hostname string, tags []string, source string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{
		method: http.MethodPut,
		path:   "/api/v1/tags/hosts/" + hostname,
		query:  sourceQuery(source),
		body:   resource.Document{"tags": tags},
	})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}
