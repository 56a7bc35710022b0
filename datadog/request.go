package datadog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"dogctl/debugctx"
	"dogctl/faults"
	"dogctl/resource"
)

const maxResponseBytes = 8 << 20

type requestSpec struct {
	method string
	path   string
	query  url.Values
	body   any
}

func (c *Client) do(ctx context.Context, spec requestSpec) (resource.Value, error) {
	for attempt := 1; ; attempt++ {
		value, err := c.execute(ctx, spec)
		if err == nil {
			return value, nil
		}

		delay, retryable := c.retry.Backoff(err, attempt)
		if !retryable {
			return nil, err
		}

		debugctx.Logger(ctx).Info("retrying request",
			"method", spec.method, "path", spec.path, "attempt", attempt, "delay", delay.String())
		if sleepErr := sleepContext(ctx, delay); sleepErr != nil {
			return nil, sleepErr
		}
	}
}

func (c *Client) execute(ctx context.Context, spec requestSpec) (resource.Value, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, faults.NewTypedError(faults.TransportError, "request cancelled while rate limited", err)
	}

	request, err := c.newRequest(ctx, spec)
	if err != nil {
		return nil, err
	}

	debugctx.Logger(ctx).Info("http request", "method", spec.method, "url", request.URL.String())

	response, err := c.client.Do(request)
	if err != nil {
		return nil, faults.NewTypedError(faults.TransportError, "remote request failed", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, faults.NewTypedError(faults.TransportError, "failed to read remote response body", err)
	}

	debugctx.Logger(ctx).Info("http response", "status", response.StatusCode, "bytes", len(body))

	if response.StatusCode >= http.StatusBadRequest {
		return nil, classifyStatusError(response.StatusCode, body)
	}

	return decodeJSONResponse(body)
}

func (c *Client) newRequest(ctx context.Context, spec requestSpec) (*http.Request, error) {
	target := *c.baseURL
	target.Path = joinBaseAndRequestPath(c.baseURL.Path, spec.path)
	if len(spec.query) > 0 {
		target.RawQuery = spec.query.Encode()
	}

	var bodyReader io.Reader
	if spec.body != nil {
		encoded, err := json.Marshal(spec.body)
		if err != nil {
			return nil, faults.NewTypedError(faults.ValidationError, "failed to encode request body", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, spec.method, target.String(), bodyReader)
	if err != nil {
		return nil, faults.NewTypedError(faults.InternalError, "failed to create remote request", err)
	}

	request.Header.Set("Accept", defaultMediaType)
	if spec.body != nil {
		request.Header.Set("Content-Type", defaultMediaType)
	}
	request.Header.Set(apiKeyHeader, c.apiKey)
	request.Header.Set(appKeyHeader, c.appKey)

	return request, nil
}

func joinBaseAndRequestPath(basePath string, requestPath string) string {
	trimmedBase := strings.TrimSuffix(basePath, "/")
	if !strings.HasPrefix(requestPath, "/") {
		requestPath = "/" + requestPath
	}
	return trimmedBase + requestPath
}
