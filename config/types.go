package config

const (
	CatalogFileEnvVar = "DOGCTL_CONFIG_FILE"
	ProfileEnvVar     = "DOGCTL_PROFILE"
	APIKeyEnvVar      = "DD_API_KEY"
	AppKeyEnvVar      = "DD_APP_KEY"
	SiteEnvVar        = "DD_SITE"

	DefaultSite               = "datadoghq.com"
	DefaultProfileCatalogPath = "~/.dogctl/config.yaml"
)

type ProfileCatalog struct {
	Profiles      []Profile `yaml:"profiles"`
	ActiveProfile string    `yaml:"active-profile,omitempty"`
}

type Profile struct {
	Name   string `yaml:"name"`
	APIKey string `yaml:"api-key"`
	AppKey string `yaml:"app-key"`
	Site   string `yaml:"site,omitempty"`
}

// Credentials is a fully resolved API identity: profile values with
// environment overrides applied and the site shortcut expanded.
type Credentials struct {
	APIKey string
	AppKey string
	Site   string
}

type ProfileSelection struct {
	Name string
}

// ExpandSite resolves dogshell-style region shortcuts to full site hosts.
// Unknown values pass through unchanged.
func ExpandSite(site string) string {
	regions := map[string]string{
		"us":  "datadoghq.com",
		"eu":  "datadoghq.eu",
		"us3": "us3.datadoghq.com",
		"us5": "us5.datadoghq.com",
		"ap1": "ap1.datadoghq.com",
		"gov": "ddog-gov.com",
	}

	if expanded, found := regions[site]; found {
		return expanded
	}
	return site
}

// MaskKey renders a credential for display, keeping only the last four
// characters visible.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
