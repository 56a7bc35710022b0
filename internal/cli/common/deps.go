package common

import (
	"dogctl/config"
	"dogctl/datadog"
)

// ClientFactory builds an API client from resolved credentials. Command
// tests swap in a factory returning a client bound to a fake server.
type ClientFactory func(credentials config.Credentials) (*datadog.Client, error)

type CommandDependencies struct {
	Profiles  config.ProfileService
	NewClient ClientFactory
}

func RequireProfiles(deps CommandDependencies) (config.ProfileService, error) {
	if deps.Profiles == nil {
		return nil, ValidationError("profile service is not configured", nil)
	}
	return deps.Profiles, nil
}

// ResolveClient resolves credentials for the selected profile and
// builds an API client from them.
func ResolveClient(deps CommandDependencies, globalFlags *GlobalFlags) (*datadog.Client, error) {
	profiles, err := RequireProfiles(deps)
	if err != nil {
		return nil, err
	}

	selection := config.ProfileSelection{}
	if globalFlags != nil {
		selection.Name = globalFlags.Profile
	}
	credentials, err := profiles.Resolve(selection)
	if err != nil {
		return nil, err
	}

	factory := deps.NewClient
	if factory == nil {
		factory = func(credentials config.Credentials) (*datadog.Client, error) {
			return datadog.NewClient(credentials)
		}
	}
	return factory(credentials)
}
