package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const profilePrefix = "profile "

type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	GetProfile(ctx context.Context, name string) (domain.ConfigProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultPaths returns the shared config and credentials files, honoring the
// AWS_CONFIG_FILE and AWS_SHARED_CREDENTIALS_FILE overrides.
func DefaultPaths() (configPath, credentialsPath string, err error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("unable to get home directory: %w", err)
	}

	configPath = os.Getenv("AWS_CONFIG_FILE")
	if configPath == "" {
		configPath = filepath.Join(homeDir, ".aws", "config")
	}
	credentialsPath = os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	if credentialsPath == "" {
		credentialsPath = filepath.Join(homeDir, ".aws", "credentials")
	}
	return configPath, credentialsPath, nil
}

// NewRegistry reads profiles from the shared config file and, when present,
// the credentials file. Missing files yield an empty registry.
func NewRegistry(configPath, credentialsPath string) (Registry, error) {
	cfg, err := ini.LooseLoad(configPath, credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS profiles: %w", err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ConfigProfile, error) {
	byName := make(map[string]domain.ConfigProfile)
	for _, section := range cr.cfg.Sections() {
		name, ok := profileName(section.Name())
		if !ok || len(section.Keys()) == 0 {
			continue
		}
		p := toProfile(name, section)
		if existing, seen := byName[name]; seen {
			p = merge(existing, p)
		}
		byName[name] = p
	}

	profiles := make([]domain.ConfigProfile, 0, len(byName))
	for _, p := range byName {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(ctx context.Context, name string) (domain.ConfigProfile, error) {
	profiles, err := cr.GetProfiles(ctx)
	if err != nil {
		return domain.ConfigProfile{}, err
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.ConfigProfile{}, fmt.Errorf("profile %s not found", name)
}

// profileName strips the "profile " prefix used by the config file. Sections
// such as sso-session or services are not profiles.
func profileName(section string) (string, bool) {
	switch {
	case section == ini.DefaultSection:
		return "", false
	case section == "default":
		return section, true
	case strings.HasPrefix(section, profilePrefix):
		return strings.TrimSpace(strings.TrimPrefix(section, profilePrefix)), true
	case strings.Contains(section, " "):
		return "", false
	default:
		// credentials file sections carry the bare name
		return section, true
	}
}

func toProfile(name string, section *ini.Section) domain.ConfigProfile {
	p := domain.ConfigProfile{
		Name:    name,
		Type:    domain.ProfileTypeCredentials,
		Region:  section.Key("region").String(),
		RoleARN: section.Key("role_arn").String(),
	}
	switch {
	case p.RoleARN != "":
		p.Type = domain.ProfileTypeRole
	case section.HasKey("sso_start_url") || section.HasKey("sso_session"):
		p.Type = domain.ProfileTypeSSO
	}
	return p
}

func merge(a, b domain.ConfigProfile) domain.ConfigProfile {
	if a.Region == "" {
		a.Region = b.Region
	}
	if a.RoleARN == "" && b.RoleARN != "" {
		a.RoleARN = b.RoleARN
		a.Type = b.Type
	}
	if a.Type == domain.ProfileTypeCredentials && b.Type != domain.ProfileTypeCredentials {
		a.Type = b.Type
	}
	return a
}
