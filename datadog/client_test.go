package datadog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"dogctl/config"
	"dogctl/faults"
	"dogctl/resource"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(
		config.Credentials{APIKey: "api-key", AppKey: "app-key", Site: "datadoghq.com"},
		WithBaseURL(server.URL),
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}),
		WithRateLimit(rate.NewLimiter(rate.Inf, 0)),
	)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return client, server
}

func TestNewClientRequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewClient(config.Credentials{APIKey: "only-api"})
	if !faults.IsCategory(err, faults.AuthError) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestRequestCarriesAuthHeaders(t *testing.T) {
	t.Parallel()

	var gotAPIKey, gotAppKey string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("DD-API-KEY")
		gotAppKey = r.Header.Get("DD-APPLICATION-KEY")
		_, _ = w.Write([]byte(`{"id": 1}`))
	}))

	if _, err := client.Monitors.Get(context.Background(), "1"); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if gotAPIKey != "api-key" || gotAppKey != "app-key" {
		t.Fatalf("missing auth headers: %q %q", gotAPIKey, gotAppKey)
	}
}

func TestRetryOnRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"id": 42}`))
	}))

	monitor, err := client.Monitors.Get(context.Background(), "42")
	if err != nil {
		t.Fatalf("Get() error after retries: %v", err)
	}
	if got, _ := monitor.ID(); got != "42" {
		t.Fatalf("unexpected monitor %v", monitor)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestRetryBudgetExhaustedOnRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.Monitors.Get(context.Background(), "42")
	if !faults.IsCategory(err, faults.RateLimitError) {
		t.Fatalf("expected rate-limit error, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", calls.Load())
	}
}

func TestRetryOnServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))

	if _, err := client.Monitors.Get(context.Background(), "7"); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestFatalStatusesAreNotRetried(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		status   int
		category faults.ErrorCategory
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, category: faults.AuthError},
		{name: "forbidden", status: http.StatusForbidden, category: faults.AuthError},
		{name: "not found", status: http.StatusNotFound, category: faults.NotFoundError},
		{name: "bad request", status: http.StatusBadRequest, category: faults.ValidationError},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, category: faults.ValidationError},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(testCase.status)
			}))

			_, err := client.Monitors.Get(context.Background(), "1")
			if !faults.IsCategory(err, testCase.category) {
				t.Fatalf("expected %s, got %v", testCase.category, err)
			}
			if calls.Load() != 1 {
				t.Fatalf("fatal status must not retry, got %d attempts", calls.Load())
			}
		})
	}
}

func TestRetryBackoffSchedule(t *testing.T) {
	t.Parallel()

	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
	rateLimited := faults.NewTypedError(faults.RateLimitError, "429", nil)
	serverFailed := faults.NewTypedError(faults.ServerError, "502", nil)

	if delay, ok := policy.Backoff(rateLimited, 1); !ok || delay != time.Second {
		t.Fatalf("attempt 1 rate limit backoff = (%v, %t)", delay, ok)
	}
	if delay, ok := policy.Backoff(rateLimited, 2); !ok || delay != 2*time.Second {
		t.Fatalf("attempt 2 rate limit backoff = (%v, %t)", delay, ok)
	}
	if _, ok := policy.Backoff(rateLimited, 3); ok {
		t.Fatalf("attempt 3 must exhaust the budget")
	}

	if delay, ok := policy.Backoff(serverFailed, 2); !ok || delay != time.Second {
		t.Fatalf("server error backoff must stay constant, got (%v, %t)", delay, ok)
	}
	if _, ok := policy.Backoff(faults.NewTypedError(faults.ValidationError, "400", nil), 1); ok {
		t.Fatalf("validation errors must never retry")
	}
}

func TestSLOEnvelopeUnwrap(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"data": [{"id": "slo-1", "name": "availability"}]}`))
		default:
			_, _ = w.Write([]byte(`{"data": {"id": "slo-1", "name": "availability"}}`))
		}
	}))

	created, err := client.SLOs.Create(context.Background(), resource.Document{"name": "availability"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if id, _ := created.ID(); id != "slo-1" {
		t.Fatalf("created SLO id = %q", id)
	}

	fetched, err := client.SLOs.Get(context.Background(), "slo-1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if fetched["name"] != "availability" {
		t.Fatalf("unexpected SLO %v", fetched)
	}
}

func TestUpdateMonitorSendsBodyWithoutID(t *testing.T) {
	t.Parallel()

	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"id": 12345, "name": "CPU Alert Updated"}`))
	}))

	body := resource.Document{"name": "CPU Alert Updated", "query": "avg:system.cpu{*} > 95"}
	updated, err := client.Monitors.Update(context.Background(), "12345", body)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if gotPath != "/api/v1/monitor/12345" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if id, _ := updated.ID(); id != "12345" {
		t.Fatalf("unexpected id %q", id)
	}
}
