package datadog

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"dogctl/config"
	"dogctl/faults"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMediaType   = "application/json"

	apiKeyHeader = "DD-API-KEY"
	appKeyHeader = "DD-APPLICATION-KEY"
)

// Client is a thin gateway over the Datadog REST API. It owns transport
// concerns only: authentication headers, rate limiting, retries, and
// status-code classification. Callers see decoded JSON values and typed
// errors.
type Client struct {
	baseURL *url.URL
	apiKey  string
	appKey  string
	client  *http.Client
	limiter *rate.Limiter
	retry   RetryPolicy

	Monitors   MonitorsAPI
	Dashboards DashboardsAPI
	SLOs       SLOsAPI
	Downtimes  DowntimesAPI
	Metrics    MetricsAPI
	Events     EventsAPI
	Hosts      HostsAPI
	Logs       LogsAPI
	Spans      SpansAPI
	Tags       TagsAPI
	Users      UsersAPI
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

// WithBaseURL overrides the site-derived endpoint. Tests point this at a
// local server.
func WithBaseURL(raw string) ClientOption {
	return func(c *Client) {
		parsed, err := url.Parse(strings.TrimSpace(raw))
		if err == nil && parsed.Scheme != "" && parsed.Host != "" {
			c.baseURL = parsed
		}
	}
}

func WithRetryPolicy(policy RetryPolicy) ClientOption {
	return func(c *Client) {
		c.retry = policy.normalized()
	}
}

func WithRateLimit(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

func NewClient(credentials config.Credentials, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(credentials.APIKey) == "" || strings.TrimSpace(credentials.AppKey) == "" {
		return nil, faults.NewTypedError(faults.AuthError, "missing API credentials", nil).
			WithHint("set DD_API_KEY and DD_APP_KEY or run dogctl config init")
	}

	site := strings.TrimSpace(credentials.Site)
	if site == "" {
		site = config.DefaultSite
	}

	baseURL, err := url.Parse("https://api." + site)
	if err != nil {
		return nil, faults.NewTypedError(faults.ValidationError, "invalid site "+site, err)
	}

	gateway := &Client{
		baseURL: baseURL,
		apiKey:  credentials.APIKey,
		appKey:  credentials.AppKey,
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		retry:   DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(gateway)
	}

	gateway.Monitors = MonitorsAPI{client: gateway}
	gateway.Dashboards = DashboardsAPI{client: gateway}
	gateway.SLOs = SLOsAPI{client: gateway}
	gateway.Downtimes = DowntimesAPI{client: gateway}
	gateway.Metrics = MetricsAPI{client: gateway}
	gateway.Events = EventsAPI{client: gateway}
	gateway.Hosts = HostsAPI{client: gateway}
	gateway.Logs = LogsAPI{client: gateway}
	gateway.Spans = SpansAPI{client: gateway}
	gateway.Tags = TagsAPI{client: gateway}
	gateway.Users = UsersAPI{client: gateway}

	return gateway, nil
}
