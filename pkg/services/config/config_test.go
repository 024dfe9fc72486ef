package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "defect-atlas.db", cfg.Store.Path)
	assert.Equal(t, 15*time.Minute, cfg.Source.SyncInterval)
	assert.False(t, cfg.Source.FallbackToFixture)
	assert.Equal(t, uint64(1), cfg.Fixture.Seed)
	assert.Equal(t, 200, cfg.Fixture.Count)
	assert.Equal(t, 45, cfg.Fixture.Days)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	// Given
	path := writeFile(t, "atlas.yaml", `server:
  port: 9000
  shutdown_timeout: 3s
store:
  path: /tmp/atlas.db
source:
  profile: line-a
  fallback_to_fixture: true
  sync_interval: 1m
`)
	t.Setenv("DEFECT_ATLAS_SERVER_PORT", "9090")
	t.Setenv("DEFECT_ATLAS_LOG_LEVEL", "debug")

	// When
	cfg, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/tmp/atlas.db", cfg.Store.Path)
	assert.Equal(t, "line-a", cfg.Source.Profile)
	assert.True(t, cfg.Source.FallbackToFixture)
	assert.Equal(t, time.Minute, cfg.Source.SyncInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	path := writeFile(t, "bad.yaml", "server: port: : bad")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() AppConfig {
		return AppConfig{
			Server:  ServerConfig{Port: 8080},
			Store:   StoreConfig{Path: "x.db"},
			Source:  SourceConfig{SyncInterval: time.Minute},
			Fixture: FixtureConfig{Count: 10, Days: 5},
		}
	}

	tests := map[string]func(c *AppConfig){
		"port zero":         func(c *AppConfig) { c.Server.Port = 0 },
		"port too large":    func(c *AppConfig) { c.Server.Port = 70000 },
		"empty store path":  func(c *AppConfig) { c.Store.Path = "" },
		"zero sync":         func(c *AppConfig) { c.Source.SyncInterval = 0 },
		"zero fixture rows": func(c *AppConfig) { c.Fixture.Count = 0 },
		"zero fixture days": func(c *AppConfig) { c.Fixture.Days = -1 },
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

const profilesINI = `
[line-a]
type = snowflake
account = xy12345
user = qa
table = INSPECTIONS

[dashboard]
type = http
base_url = http://localhost:3000

[empty]

[broken]
host = nowhere
`

func TestRegistry_GetProfile(t *testing.T) {
	registry, err := NewRegistry(writeFile(t, "profiles.ini", profilesINI))
	require.NoError(t, err)

	profile, err := registry.GetProfile(context.Background(), "line-a")

	require.NoError(t, err)
	assert.Equal(t, "line-a", profile.Name)
	assert.Equal(t, domain.SourceTypeSnowflake, profile.Type)
	assert.Equal(t, "xy12345", profile.Setting("account", ""))
	assert.Equal(t, "INSPECTIONS", profile.Setting("table", ""))
	assert.NotContains(t, profile.Settings, "type")
}

func TestRegistry_GetProfile_Missing(t *testing.T) {
	registry, err := NewRegistry(writeFile(t, "profiles.ini", profilesINI))
	require.NoError(t, err)

	_, err = registry.GetProfile(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = registry.GetProfile(context.Background(), "empty")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = registry.GetProfile(context.Background(), "broken")
	assert.Error(t, err)
}

func TestRegistry_GetProfiles_RejectsUntypedSection(t *testing.T) {
	registry, err := NewRegistry(writeFile(t, "profiles.ini", profilesINI))
	require.NoError(t, err)

	_, err = registry.GetProfiles(context.Background())

	assert.ErrorContains(t, err, "broken")
}

func TestRegistry_GetProfiles(t *testing.T) {
	content := "[a]\ntype = fixture\nseed = 3\n\n[b]\ntype = s3\nbucket = drops\n"
	registry, err := NewRegistry(writeFile(t, "profiles.ini", content))
	require.NoError(t, err)

	profiles, err := registry.GetProfiles(context.Background())

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "fixture:a", profiles[0].String())
	assert.Equal(t, "s3:b", profiles[1].String())
}
