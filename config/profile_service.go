package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"dogctl/faults"
)

type ProfileService interface {
	List() ([]Profile, error)
	Get(name string) (Profile, error)
	Upsert(profile Profile) error
	SetActive(name string) error
	ActiveName() (string, error)

	// Resolve returns credentials for the selected profile with environment
	// variables taking precedence over stored values. Selection priority:
	// explicit name, then DOGCTL_PROFILE, then the catalog's active profile,
	// then environment variables alone.
	Resolve(selection ProfileSelection) (Credentials, error)
}

type fileProfileService struct {
	path string
}

func NewProfileService() ProfileService {
	return &fileProfileService{path: catalogPath()}
}

func NewProfileServiceAt(path string) ProfileService {
	return &fileProfileService{path: path}
}

func catalogPath() string {
	if fromEnv := strings.TrimSpace(os.Getenv(CatalogFileEnvVar)); fromEnv != "" {
		return fromEnv
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileCatalogPath
	}
	return filepath.Join(home, ".dogctl", "config.yaml")
}

func (s *fileProfileService) load() (ProfileCatalog, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ProfileCatalog{}, nil
		}
		return ProfileCatalog{}, faults.NewTypedError(faults.InternalError, "failed to read profile catalog", err)
	}

	var catalog ProfileCatalog
	if err := yaml.Unmarshal(content, &catalog); err != nil {
		return ProfileCatalog{}, faults.NewTypedError(faults.ValidationError, "profile catalog is not valid YAML", err)
	}
	return catalog, nil
}

func (s *fileProfileService) save(catalog ProfileCatalog) error {
	encoded, err := yaml.Marshal(catalog)
	if err != nil {
		return faults.NewTypedError(faults.InternalError, "failed to serialize profile catalog", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return faults.NewTypedError(faults.InternalError, "failed to create config directory", err)
	}
	if err := os.WriteFile(s.path, encoded, 0o600); err != nil {
		return faults.NewTypedError(faults.InternalError, "failed to write profile catalog", err)
	}
	return nil
}

func (s *fileProfileService) List() ([]Profile, error) {
	catalog, err := s.load()
	if err != nil {
		return nil, err
	}

	profiles := append([]Profile(nil), catalog.Profiles...)
	sort.Slice(profiles, func(i int, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}

func (s *fileProfileService) Get(name string) (Profile, error) {
	catalog, err := s.load()
	if err != nil {
		return Profile{}, err
	}

	for _, profile := range catalog.Profiles {
		if profile.Name == name {
			return profile, nil
		}
	}
	return Profile{}, faults.NewTypedError(faults.NotFoundError, "Profile '"+name+"' not found", nil)
}

func (s *fileProfileService) Upsert(profile Profile) error {
	if strings.TrimSpace(profile.Name) == "" {
		return faults.NewTypedError(faults.ValidationError, "profile name is required", nil)
	}

	catalog, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for idx, current := range catalog.Profiles {
		if current.Name == profile.Name {
			catalog.Profiles[idx] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		catalog.Profiles = append(catalog.Profiles, profile)
	}
	if catalog.ActiveProfile == "" {
		catalog.ActiveProfile = profile.Name
	}

	return s.save(catalog)
}

func (s *fileProfileService) SetActive(name string) error {
	catalog, err := s.load()
	if err != nil {
		return err
	}

	for _, profile := range catalog.Profiles {
		if profile.Name == name {
			catalog.ActiveProfile = name
			return s.save(catalog)
		}
	}
	return faults.NewTypedError(faults.NotFoundError, "Profile '"+name+"' not found", nil)
}

func (s *fileProfileService) ActiveName() (string, error) {
	catalog, err := s.load()
	if err != nil {
		return "", err
	}
	return catalog.ActiveProfile, nil
}

func (s *fileProfileService) Resolve(selection ProfileSelection) (Credentials, error) {
	catalog, err := s.load()
	if err != nil {
		return Credentials{}, err
	}

	name := strings.TrimSpace(selection.Name)
	if name == "" {
		name = strings.TrimSpace(os.Getenv(ProfileEnvVar))
	}
	if name == "" {
		name = catalog.ActiveProfile
	}

	var base Profile
	if name != "" {
		found := false
		for _, profile := range catalog.Profiles {
			if profile.Name == name {
				base = profile
				found = true
				break
			}
		}
		if !found && (selection.Name != "" || os.Getenv(ProfileEnvVar) != "") {
			return Credentials{}, faults.NewTypedError(faults.NotFoundError, "Profile '"+name+"' not found", nil)
		}
	}

	credentials := Credentials{
		APIKey: firstNonEmpty(os.Getenv(APIKeyEnvVar), base.APIKey),
		AppKey: firstNonEmpty(os.Getenv(AppKeyEnvVar), base.AppKey),
		Site:   ExpandSite(firstNonEmpty(os.Getenv(SiteEnvVar), base.Site, DefaultSite)),
	}

	if credentials.APIKey == "" || credentials.AppKey == "" {
		return Credentials{}, faults.NewTypedError(
			faults.AuthError,
			"missing API credentials",
			nil,
		).WithHint("set DD_API_KEY and DD_APP_KEY or run dogctl config init")
	}

	return credentials, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
