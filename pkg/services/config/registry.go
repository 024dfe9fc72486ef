package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

var ErrProfileNotFound = errors.New("profile not found")

// Registry lists the record sources declared in the profiles file.
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.SourceProfile, error)
	GetProfile(ctx context.Context, name string) (domain.SourceProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// NewRegistry loads an INI file with one section per profile:
//
//	[line-a]
//	type = snowflake
//	account = xy12345
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.SourceProfile, error) {
	var profiles []domain.SourceProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profile, err := toProfile(section)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.SourceProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.SourceProfile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return toProfile(section)
}

func toProfile(section *ini.Section) (domain.SourceProfile, error) {
	settings := section.KeysHash()
	kind := settings["type"]
	if kind == "" {
		return domain.SourceProfile{}, fmt.Errorf("profile %s has no type", section.Name())
	}
	delete(settings, "type")
	return domain.SourceProfile{
		Name:     section.Name(),
		Type:     domain.SourceType(kind),
		Settings: settings,
	}, nil
}
