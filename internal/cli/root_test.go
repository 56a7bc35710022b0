package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"dogctl/config"
	"dogctl/datadog"
	"dogctl/faults"
)

// newTestDependencies wires the command tree against a fake API server
// and an isolated profile catalog.
func newTestDependencies(t *testing.T, handler http.Handler) Dependencies {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv(config.CatalogFileEnvVar, filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv(config.ProfileEnvVar, "")
	t.Setenv(config.APIKeyEnvVar, "test-api-key")
	t.Setenv(config.AppKeyEnvVar, "test-app-key")
	t.Setenv(config.SiteEnvVar, "")

	return Dependencies{
		Profiles: config.NewProfileService(),
		NewClient: func(credentials config.Credentials) (*datadog.Client, error) {
			return datadog.NewClient(
				credentials,
				datadog.WithBaseURL(server.URL),
				datadog.WithRetryPolicy(datadog.RetryPolicy{MaxAttempts: 1, BaseDelay: time.Millisecond}),
				datadog.WithRateLimit(rate.NewLimiter(rate.Inf, 0)),
			)
		},
	}
}

func runCommand(t *testing.T, deps Dependencies, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	root := NewRootCommand(deps)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMonitorListRendersJSON(t *testing.T) {
	deps := newTestDependencies(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/monitor" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`[{"id": 1, "name": "CPU Alert", "type": "metric alert", "query": "avg:system.cpu{*} > 90"}]`))
	}))

	output, err := runCommand(t, deps, "monitor", "list", "-o", "json")
	if err != nil {
		t.Fatalf("monitor list error: %v", err)
	}
	if !strings.Contains(output, `"name": "CPU Alert"`) {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestMonitorListTableOutput(t *testing.T) {
	deps := newTestDependencies(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "name": "CPU Alert", "overall_state": "OK", "tags": ["env:prod", "team:sre"]}]`))
	}))

	output, err := runCommand(t, deps, "monitor", "list")
	if err != nil {
		t.Fatalf("monitor list error: %v", err)
	}
	for _, fragment := range []string{"ID", "NAME", "CPU Alert", "env:prod, team:sre"} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("table output missing %q:\n%s", fragment, output)
		}
	}
}

func TestApplyDryRunMakesNoRequests(t *testing.T) {
	var calls atomic.Int32
	deps := newTestDependencies(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))

	path := filepath.Join(t.TempDir(), "monitor.json")
	if err := os.WriteFile(path, []byte(`{"query": "avg:system.cpu{*} > 90"}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	output, err := runCommand(t, deps, "apply", "-f", path, "--dry-run")
	if err != nil {
		t.Fatalf("apply --dry-run error: %v", err)
	}
	if !strings.Contains(output, "would create monitor") {
		t.Fatalf("unexpected output:\n%s", output)
	}
	if !strings.Contains(output, `{"query":"avg:system.cpu{*} > 90"}`) {
		t.Fatalf("dry run must echo the document:\n%s", output)
	}
	if calls.Load() != 0 {
		t.Fatalf("dry run must not call the API, saw %d requests", calls.Load())
	}
}

func TestApplyDryRunNeedsNoCredentials(t *testing.T) {
	t.Setenv(config.CatalogFileEnvVar, filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv(config.ProfileEnvVar, "")
	t.Setenv(config.APIKeyEnvVar, "")
	t.Setenv(config.AppKeyEnvVar, "")
	t.Setenv(config.SiteEnvVar, "")

	deps := Dependencies{
		Profiles: config.NewProfileService(),
		NewClient: func(config.Credentials) (*datadog.Client, error) {
			t.Error("dry run must not construct a client")
			return nil, faults.NewTypedError(faults.AuthError, "missing API credentials", nil)
		},
	}

	path := filepath.Join(t.TempDir(), "monitor.json")
	if err := os.WriteFile(path, []byte(`{"query": "avg:system.cpu{*} > 90"}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	output, err := runCommand(t, deps, "apply", "-f", path, "--dry-run")
	if err != nil {
		t.Fatalf("apply --dry-run without credentials failed: %v", err)
	}
	if !strings.Contains(output, "would create monitor") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestApplyCreatesMonitor(t *testing.T) {
	deps := newTestDependencies(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/monitor" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id": 777, "query": "avg:system.cpu{*} > 90"}`))
	}))

	path := filepath.Join(t.TempDir(), "monitor.json")
	if err := os.WriteFile(path, []byte(`{"query": "avg:system.cpu{*} > 90"}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	output, err := runCommand(t, deps, "apply", "-f", path)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if !strings.Contains(output, "created monitor 777") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestApplyDirectoryWithoutRecursiveFails(t *testing.T) {
	deps := newTestDependencies(t, http.NotFoundHandler())

	_, err := runCommand(t, deps, "apply", "-f", t.TempDir())
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ExitCodeForError(err) != 4 {
		t.Fatalf("exit code = %d, want 4", ExitCodeForError(err))
	}
}

func TestDiffReportsNoDifferences(t *testing.T) {
	deps := newTestDependencies(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 123, "name": "CPU Alert", "query": "avg:system.cpu{*} > 90"}`))
	}))

	path := filepath.Join(t.TempDir(), "monitor.json")
	local := `{"id": 123, "name": "CPU Alert", "query": "avg:system.cpu{*} > 90"}`
	if err := os.WriteFile(path, []byte(local), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	output, err := runCommand(t, deps, "diff", "-f", path)
	if err != nil {
		t.Fatalf("diff error: %v", err)
	}
	if !strings.Contains(output, "no differences") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestDiffRendersUnifiedDiff(t *testing.T) {
	deps := newTestDependencies(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 123, "name": "CPU Alert", "query": "avg:system.cpu{*} > 90"}`))
	}))

	path := filepath.Join(t.TempDir(), "monitor.json")
	local := `{"id": 123, "name": "CPU Alert Updated", "query": "avg:system.cpu{*} > 90"}`
	if err := os.WriteFile(path, []byte(local), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	output, err := runCommand(t, deps, "diff", "-f", path)
	if err != nil {
		t.Fatalf("diff error: %v", err)
	}
	for _, fragment := range []string{"--- live (monitor 123)", "+++ local (" + path + ")", "CPU Alert Updated"} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("diff output missing %q:\n%s", fragment, output)
		}
	}
}

func TestNotFoundErrorSurfacesFromAPI(t *testing.T) {
	deps := newTestDependencies(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := runCommand(t, deps, "monitor", "get", "999")
	if !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if ExitCodeForError(err) != 3 {
		t.Fatalf("exit code = %d, want 3", ExitCodeForError(err))
	}
}

func TestInvalidOutputFormatIsRejected(t *testing.T) {
	deps := newTestDependencies(t, http.NotFoundHandler())

	_, err := runCommand(t, deps, "monitor", "list", "-o", "xml")
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfigProfileLifecycle(t *testing.T) {
	deps := newTestDependencies(t, http.NotFoundHandler())
	t.Setenv(config.APIKeyEnvVar, "")
	t.Setenv(config.AppKeyEnvVar, "")

	if _, err := runCommand(t, deps, "config", "set-profile", "staging",
		"--api-key", "stored-api-1234", "--app-key", "stored-app-5678", "--site", "eu"); err != nil {
		t.Fatalf("set-profile error: %v", err)
	}
	if _, err := runCommand(t, deps, "config", "use-profile", "staging"); err != nil {
		t.Fatalf("use-profile error: %v", err)
	}

	output, err := runCommand(t, deps, "config", "list-profiles", "-o", "json")
	if err != nil {
		t.Fatalf("list-profiles error: %v", err)
	}
	if !strings.Contains(output, "staging") || strings.Contains(output, "stored-api-1234") {
		t.Fatalf("list must name the profile and mask its key:\n%s", output)
	}

	output, err = runCommand(t, deps, "config", "get", "-p", "staging")
	if err != nil {
		t.Fatalf("config get error: %v", err)
	}
	if !strings.Contains(output, "****1234") {
		t.Fatalf("config get must mask keys:\n%s", output)
	}
}
