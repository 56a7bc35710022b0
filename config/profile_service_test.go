package config

import (
	"path/filepath"
	"testing"

	"dogctl/faults"
)

func newTestService(t *testing.T) ProfileService {
	t.Helper()
	return NewProfileServiceAt(filepath.Join(t.TempDir(), "config.yaml"))
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv(APIKeyEnvVar, "")
	t.Setenv(AppKeyEnvVar, "")
	t.Setenv(SiteEnvVar, "")
	t.Setenv(ProfileEnvVar, "")
}

func TestUpsertAndList(t *testing.T) {
	service := newTestService(t)

	if err := service.Upsert(Profile{Name: "staging", APIKey: "api-1", AppKey: "app-1", Site: "eu"}); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if err := service.Upsert(Profile{Name: "prod", APIKey: "api-2", AppKey: "app-2"}); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	profiles, err := service.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(profiles) != 2 || profiles[0].Name != "prod" || profiles[1].Name != "staging" {
		t.Fatalf("unexpected profiles %v", profiles)
	}

	// First profile written becomes active.
	active, err := service.ActiveName()
	if err != nil {
		t.Fatalf("ActiveName() error: %v", err)
	}
	if active != "staging" {
		t.Fatalf("ActiveName() = %q, want staging", active)
	}
}

func TestSetActiveUnknownProfile(t *testing.T) {
	service := newTestService(t)

	err := service.SetActive("ghost")
	if !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestResolveEnvOverridesProfile(t *testing.T) {
	clearCredentialEnv(t)
	service := newTestService(t)

	if err := service.Upsert(Profile{Name: "staging", APIKey: "stored-api", AppKey: "stored-app", Site: "eu"}); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	t.Setenv(APIKeyEnvVar, "env-api")

	credentials, err := service.Resolve(ProfileSelection{Name: "staging"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if credentials.APIKey != "env-api" {
		t.Fatalf("env var must win, got %q", credentials.APIKey)
	}
	if credentials.AppKey != "stored-app" {
		t.Fatalf("profile value must fill the gap, got %q", credentials.AppKey)
	}
	if credentials.Site != "datadoghq.eu" {
		t.Fatalf("site shortcut must expand, got %q", credentials.Site)
	}
}

func TestResolveMissingProfile(t *testing.T) {
	clearCredentialEnv(t)
	service := newTestService(t)

	_, err := service.Resolve(ProfileSelection{Name: "ghost"})
	if !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestResolveEnvOnly(t *testing.T) {
	clearCredentialEnv(t)
	service := newTestService(t)

	t.Setenv(APIKeyEnvVar, "api")
	t.Setenv(AppKeyEnvVar, "app")

	credentials, err := service.Resolve(ProfileSelection{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if credentials.Site != DefaultSite {
		t.Fatalf("Site = %q, want default", credentials.Site)
	}
}

func TestResolveMissingCredentials(t *testing.T) {
	clearCredentialEnv(t)
	service := newTestService(t)

	_, err := service.Resolve(ProfileSelection{})
	if !faults.IsCategory(err, faults.AuthError) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if faults.HintOf(err) == "" {
		t.Fatalf("expected remediation hint")
	}
}

func TestExpandSite(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want string
	}{
		{in: "us", want: "datadoghq.com"},
		{in: "eu", want: "datadoghq.eu"},
		{in: "us3", want: "us3.datadoghq.com"},
		{in: "gov", want: "ddog-gov.com"},
		{in: "custom.example.com", want: "custom.example.com"},
	}

	for _, testCase := range testCases {
		if got := ExpandSite(testCase.in); got != testCase.want {
			t.Fatalf("ExpandSite(%q) = %q, want %q", testCase.in, got, testCase.want)
		}
	}
}

func TestMaskKey(t *testing.T) {
	t.Parallel()

	if got := MaskKey("abcdef123456"); got != "****3456" {
		t.Fatalf("MaskKey() = %q", got)
	}
	if got := MaskKey("ab"); got != "****" {
		t.Fatalf("short key must fully mask, got %q", got)
	}
}
