package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "DEFECT_ATLAS"

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type SourceConfig struct {
	Profile           string        `mapstructure:"profile"`
	ProfilesPath      string        `mapstructure:"profiles_path"`
	FallbackToFixture bool          `mapstructure:"fallback_to_fixture"`
	SyncInterval      time.Duration `mapstructure:"sync_interval"`
}

type FixtureConfig struct {
	Seed  uint64 `mapstructure:"seed"`
	Count int    `mapstructure:"count"`
	Days  int    `mapstructure:"days"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Source  SourceConfig  `mapstructure:"source"`
	Fixture FixtureConfig `mapstructure:"fixture"`
	Log     LogConfig     `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_upload_bytes", 32<<20)
	v.SetDefault("store.path", "defect-atlas.db")
	v.SetDefault("source.profile", "")
	v.SetDefault("source.profiles_path", DefaultProfilesPath())
	v.SetDefault("source.fallback_to_fixture", false)
	v.SetDefault("source.sync_interval", "15m")
	v.SetDefault("fixture.seed", 1)
	v.SetDefault("fixture.count", 200)
	v.SetDefault("fixture.days", 45)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// DefaultProfilesPath is $HOME/.defectatlascfg, or a relative file when the
// home directory is unknown.
func DefaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".defectatlascfg"
	}
	return filepath.Join(home, ".defectatlascfg")
}

// Load reads the YAML file at path (optional) and applies DEFECT_ATLAS_*
// environment overrides on top of the defaults.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Store.Path == "" {
		errs = append(errs, errors.New("store.path is required"))
	}
	if c.Source.SyncInterval <= 0 {
		errs = append(errs, fmt.Errorf("source.sync_interval must be positive: %s", c.Source.SyncInterval))
	}
	if c.Fixture.Count <= 0 {
		errs = append(errs, fmt.Errorf("fixture.count must be positive: %d", c.Fixture.Count))
	}
	if c.Fixture.Days <= 0 {
		errs = append(errs, fmt.Errorf("fixture.days must be positive: %d", c.Fixture.Days))
	}
	return errors.Join(errs...)
}
